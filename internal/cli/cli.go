// Package cli implements the pyfold command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pyfold/pyfold/pkg/buildinfo"
	"github.com/pyfold/pyfold/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and default filenames.
	appName = "pyfold"

	// defaultConfigFile is the config file looked up when --config is unset.
	defaultConfigFile = "pyfold.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Pyfold flattens Python source trees into a single file",
		Long:         `Pyfold scans a Python source tree, resolves the internal import graph, orders modules so dependencies come first, and concatenates everything into one dependency-ordered file or notebook with optional interface summarization.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.concatCommand())
	root.AddCommand(c.notebookCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Options Helpers
// =============================================================================

// loadOptions builds pipeline options from an optional config file overlaid
// with command-line flags. Flags the user set explicitly win over the file.
func loadOptions(cmd *cobra.Command, flags *pipelineFlags) (pipeline.Options, error) {
	opts := pipeline.Options{}

	path := flags.config
	if path == "" {
		// The default config file is optional; an explicit one is not.
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		loaded, err := pipeline.LoadConfig(path)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts = loaded
	}

	if cmd.Flags().Changed("root") || opts.Root == "" {
		opts.Root = flags.root
	}
	if cmd.Flags().Changed("level") || opts.Level == "" {
		opts.Level = flags.level
	}
	if cmd.Flags().Changed("exclude") || len(opts.Exclude) == 0 {
		opts.Exclude = flags.exclude
	}
	if cmd.Flags().Changed("rules") || opts.RulesPath == "" {
		opts.RulesPath = flags.rules
	}
	if cmd.Flags().Changed("label-mode") || opts.LabelMode == "" {
		opts.LabelMode = flags.labelMode
	}
	if cmd.Flags().Changed("prune-isolated") {
		opts.PruneIsolated = flags.pruneIsolated
	}

	return opts, nil
}

// pipelineFlags holds the command-line flags shared by pipeline-backed
// commands.
type pipelineFlags struct {
	config        string
	root          string
	level         string
	exclude       []string
	rules         string
	labelMode     string
	pruneIsolated bool
}

// addPipelineFlags registers the shared pipeline flags on cmd.
func addPipelineFlags(cmd *cobra.Command, flags *pipelineFlags) {
	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "config file (default: pyfold.toml if present)")
	cmd.Flags().StringVarP(&flags.root, "root", "r", pipeline.DefaultRoot, "source directory to scan")
	cmd.Flags().StringVarP(&flags.level, "level", "l", pipeline.DefaultLevel, "summary level: none, interface, core")
	cmd.Flags().StringSliceVarP(&flags.exclude, "exclude", "x", nil, "path substrings to skip during scanning")
	cmd.Flags().StringVar(&flags.rules, "rules", "", "TOML rules file replacing the built-in summarization rules")
	cmd.Flags().StringVar(&flags.labelMode, "label-mode", pipeline.DefaultLabelMode, "diagram labels: letters, numbers")
	cmd.Flags().BoolVar(&flags.pruneIsolated, "prune-isolated", false, "omit modules without dependencies from the diagram")
}
