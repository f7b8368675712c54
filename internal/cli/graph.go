package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyfold/pyfold/pkg/errors"
	pkgio "github.com/pyfold/pyfold/pkg/io"
	"github.com/pyfold/pyfold/pkg/pipeline"
	"github.com/pyfold/pyfold/pkg/render/nodelink"
)

// Graph export formats.
const (
	formatDOT  = "dot"
	formatJSON = "json"
	formatSVG  = "svg"
	formatPNG  = "png"
)

// graphCommand creates the graph command for exporting the dependency graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph [src-dir]",
		Short: "Export the module dependency graph",
		Long: `Export the internal dependency graph of a Python source tree.

Formats:
  dot   Graphviz DOT text (default)
  json  nodes and edges as JSON
  svg   rendered diagram (SVG)
  png   rendered diagram (PNG)

Text formats write to stdout when no output file is given; svg and png
require -o.

Examples:
  pyfold graph src
  pyfold graph src --format json -o deps.json
  pyfold graph src --format svg -o deps.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd, &flags)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Root = args[0]
			}
			return c.runGraph(cmd.Context(), opts, format, output)
		},
	}

	addPipelineFlags(cmd, &flags)
	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, json, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout for text formats if empty)")

	return cmd
}

// runGraph scans and resolves the tree, then exports the graph.
func (c *CLI) runGraph(ctx context.Context, opts pipeline.Options, format, output string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := c.newRunner()
	table, err := runner.Scan(opts)
	if err != nil {
		return err
	}
	g := runner.BuildGraph(table)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	switch format {
	case formatDOT:
		return writeText(output, nodelink.ToDOT(g, nodelink.Options{}))
	case formatJSON:
		if output == "" {
			return pkgio.WriteJSON(g, os.Stdout)
		}
		if err := pkgio.ExportJSON(g, output); err != nil {
			return err
		}
	case formatSVG, formatPNG:
		if output == "" {
			return errors.New(errors.ErrCodeInvalidInput, "%s output requires -o <file>", format)
		}
		dot := nodelink.ToDOT(g, nodelink.Options{})
		var data []byte
		if format == formatSVG {
			data, err = nodelink.RenderSVG(ctx, dot)
		} else {
			data, err = nodelink.RenderPNG(ctx, dot)
		}
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: dot, json, svg, png)", format)
	}

	printSuccess("Graph exported")
	printFile(output)
	printStats(g.NodeCount(), g.EdgeCount(), 0)

	return nil
}

// writeText writes s to the given path, or to stdout when path is empty.
func writeText(path, s string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	printSuccess("Graph exported")
	printFile(path)
	return nil
}
