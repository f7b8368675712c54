// Package pipeline provides the core scan → graph → order → transform →
// assemble pipeline for pyfold.
//
// This package centralizes the flow used by every CLI command so that the
// flattened artifact, the notebook, the report, and the graph exports all
// observe identical scanning, resolution, and ordering behavior.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{Root: "src", Level: "interface"}
//	result, err := runner.Run(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Artifact)
package pipeline

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/pyfold/pyfold/pkg/errors"
	"github.com/pyfold/pyfold/pkg/render/ascii"
	"github.com/pyfold/pyfold/pkg/summary"
)

// Default values shared by CLI commands and config files.
const (
	// DefaultRoot is the source directory scanned when none is given.
	DefaultRoot = "src"

	// DefaultLevel is the summarization level applied when none is given.
	DefaultLevel = string(summary.LevelNone)

	// DefaultLabelMode is the node-labeling scheme for the ASCII diagram.
	DefaultLabelMode = string(ascii.LabelLetters)
)

// ValidLabelModes is the set of supported diagram label modes.
var ValidLabelModes = map[string]bool{
	string(ascii.LabelLetters): true,
	string(ascii.LabelNumbers): true,
}

// Options contains all configuration for one pipeline run.
// The struct maps one-to-one onto the optional pyfold.toml config file.
type Options struct {
	// Root is the directory scanned for Python modules.
	Root string `toml:"root"`

	// Level is the summarization level: none, interface, or core.
	Level string `toml:"level"`

	// Exclude lists substrings; a module path containing any of them is
	// skipped during scanning.
	Exclude []string `toml:"exclude"`

	// RulesPath names a TOML file whose rule set replaces the built-in
	// defaults wholesale. Empty selects the defaults.
	RulesPath string `toml:"rules"`

	// LabelMode selects diagram node labeling: letters or numbers.
	LabelMode string `toml:"label_mode"`

	// PruneIsolated drops modules without dependency relationships from the
	// ASCII diagram (never from the artifact itself).
	PruneIsolated bool `toml:"prune_isolated"`

	// Logger receives progress and debug output. Defaults to a discard
	// logger.
	Logger *log.Logger `toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `toml:"-"`
}

// LoadConfig reads Options from a TOML config file. Fields absent from the
// file keep their zero values; ValidateAndSetDefaults fills them afterwards.
func LoadConfig(path string) (Options, error) {
	var opts Options
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config from %s", path)
	}
	return opts, nil
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Root == "" {
		o.Root = DefaultRoot
	}
	if o.Level == "" {
		o.Level = DefaultLevel
	}
	if _, err := summary.ParseLevel(o.Level); err != nil {
		return err
	}
	if o.LabelMode == "" {
		o.LabelMode = DefaultLabelMode
	}
	if !ValidLabelModes[o.LabelMode] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid label mode: %q (must be one of: letters, numbers)", o.LabelMode)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SummaryLevel returns the parsed level. Call after ValidateAndSetDefaults.
func (o *Options) SummaryLevel() summary.Level {
	return summary.Level(o.Level)
}

// Rules loads the custom rule set if one is configured, or returns nil to
// select the built-in defaults.
func (o *Options) Rules() (*summary.Rules, error) {
	if o.RulesPath == "" {
		return nil, nil
	}
	return summary.LoadRules(o.RulesPath)
}
