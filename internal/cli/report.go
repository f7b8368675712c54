package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pyfold/pyfold/pkg/pipeline"
)

// reportCommand creates the report command for dependency analysis.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		flags       pipelineFlags
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "report [src-dir]",
		Short: "Analyze a Python source tree's internal dependencies",
		Long: `Analyze a Python source tree and print a dependency report:
module and edge counts, emission order with per-module dependency
chains, circular-import warnings, and each module's declared classes,
functions, and imports.

With -i, an interactive browser opens instead of the plain-text report.

Examples:
  pyfold report src
  pyfold report src -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd, &flags)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Root = args[0]
			}
			return c.runReport(cmd.Context(), opts, interactive)
		},
	}

	addPipelineFlags(cmd, &flags)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse modules interactively")

	return cmd
}

// runReport executes the pipeline and renders the analysis.
func (c *CLI) runReport(ctx context.Context, opts pipeline.Options, interactive bool) error {
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %s...", opts.Root))
	spinner.Start()

	res, err := c.newRunner().Run(ctx, opts)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if interactive {
		model := NewModuleListModel(res)
		_, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
		return err
	}

	fmt.Print(pipeline.Report(res))
	return nil
}
