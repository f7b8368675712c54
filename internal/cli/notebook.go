package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pyfold/pyfold/pkg/assemble"
	"github.com/pyfold/pyfold/pkg/pipeline"
)

// notebookCommand creates the notebook command producing an .ipynb artifact.
func (c *CLI) notebookCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "notebook [src-dir]",
		Short: "Flatten a Python source tree into a Jupyter notebook",
		Long: `Flatten a Python source tree into a single Jupyter notebook.

The notebook wraps the same artifact produced by 'concat' as one code
cell between two markdown cells, ready to upload to Colab or run locally.

Examples:
  pyfold notebook src
  pyfold notebook src --level interface -o flat.ipynb`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd, &flags)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Root = args[0]
			}
			return c.runNotebook(cmd.Context(), opts, output)
		},
	}

	addPipelineFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "combined.ipynb", "output file")

	return cmd
}

// runNotebook executes the pipeline and writes the notebook wrapper.
func (c *CLI) runNotebook(ctx context.Context, opts pipeline.Options, output string) error {
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

	banner := assemble.Banner(opts.SummaryLevel(), res.RunID, time.Now())
	nb := assemble.NewNotebook(res.Artifact, banner, res.RunID)
	if err := assemble.ExportNotebook(nb, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Notebook complete")
	printFile(output)
	printStats(res.Stats.ModuleCount, res.Stats.EdgeCount, res.Stats.CycleCount)

	return nil
}
