package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyfold/pyfold/pkg/assemble"
	"github.com/pyfold/pyfold/pkg/pipeline"
)

// concatCommand creates the concat command producing the flattened .py file.
func (c *CLI) concatCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "concat [src-dir]",
		Short: "Flatten a Python source tree into one dependency-ordered file",
		Long: `Flatten a Python source tree into a single .py file.

Modules are scanned recursively, their internal imports resolved into a
dependency graph, and the contents concatenated so every module appears
after its dependencies. Relative imports are neutralized in place and
external imports are hoisted, deduplicated, and sorted into a header.

Summary levels:
  none       verbatim module bodies (default)
  interface  class and function bodies elided, signatures kept
  core       interface plus getters and boilerplate __init__ methods elided

Examples:
  pyfold concat src
  pyfold concat src --level interface -o flat.py
  pyfold concat --config pyfold.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd, &flags)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Root = args[0]
			}
			return c.runConcat(cmd.Context(), opts, output)
		},
	}

	addPipelineFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "combined.py", "output file")

	return cmd
}

// runConcat executes the pipeline and writes the flattened artifact.
func (c *CLI) runConcat(ctx context.Context, opts pipeline.Options, output string) error {
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Flattening %s...", opts.Root))
	spinner.Start()

	res, err := c.newRunner().Run(ctx, opts)
	if err != nil {
		spinner.StopWithError("Flatten failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := assemble.WriteFile(output, res.Artifact); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Flatten complete")
	printFile(output)
	printStats(res.Stats.ModuleCount, res.Stats.EdgeCount, res.Stats.CycleCount)
	if res.Stats.CycleCount > 0 {
		printWarning("circular imports detected; emitted in discovery order")
	}
	printNewline()
	printNextStep("Inspect", "pyfold report "+opts.Root)

	return nil
}
