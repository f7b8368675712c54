// Package summary implements the rule-driven content transformation applied
// to each module before concatenation.
//
// Transformation has two steps: relative-import neutralization, which wraps
// leading-dot import lines in inert, auditable blocks, and summarization,
// which elides declaration bodies according to a declarative rule set. Rules
// are data - pattern, replacement, explanation triples - so a custom set can
// be substituted wholesale from a TOML file without touching the transformer.
//
// Summarization levels:
//   - none: content passes through summarization unchanged
//   - interface: type and callable bodies collapse to their header line plus
//     an annotated placeholder
//   - core: interface rules plus getter and initializer collapsing
package summary

import (
	"fmt"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/pyfold/pyfold/pkg/errors"
)

// Level controls how aggressively module bodies are elided.
type Level string

// Supported summarization levels.
const (
	LevelNone      Level = "none"
	LevelInterface Level = "interface"
	LevelCore      Level = "core"
)

// ParseLevel validates a level string.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelNone, LevelInterface, LevelCore:
		return Level(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidLevel,
		"invalid summary level: %q (must be one of: none, interface, core)", s)
}

// Body selection modes for a rule.
const (
	// BodyBlock consumes everything after the header line up to (not
	// including) the next top-level declaration.
	BodyBlock = "block"

	// BodyReturn consumes a single return statement following the header
	// line; the rule does not fire on any other body shape.
	BodyReturn = "return"
)

// Rule is one pattern/replacement/explanation triple. A rule is a pure
// function over text: order-sensitive within a level, side-effect-free.
//
// Pattern is a regular expression matched against each line at the line
// start; Replacement is expanded from the header match (e.g. "${1}:");
// Explanation is appended to the elision placeholder as a trailing inline
// annotation so a reviewer can identify what category of elision occurred.
type Rule struct {
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`
	Explanation string `toml:"explanation"`
	Body        string `toml:"body"` // "block" (default) or "return"

	re *regexp.Regexp
}

// Compile validates the rule and prepares its pattern for matching.
func (r *Rule) Compile() error {
	if r.Body == "" {
		r.Body = BodyBlock
	}
	if r.Body != BodyBlock && r.Body != BodyReturn {
		return fmt.Errorf("invalid body mode: %q (must be %q or %q)", r.Body, BodyBlock, BodyReturn)
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return fmt.Errorf("compile pattern %q: %w", r.Pattern, err)
	}
	r.re = re
	return nil
}

var (
	// topLevelDeclRE marks the boundary where body consumption stops:
	// the next column-zero type or callable declaration.
	topLevelDeclRE = regexp.MustCompile(`^(class|def)\s`)

	// placeholderRE recognizes already-elided placeholder lines. A header
	// followed by one is never reduced further.
	placeholderRE = regexp.MustCompile(`^[ \t]*\.\.\. #`)

	returnRE = regexp.MustCompile(`^[ \t]*return\b`)
)

// Apply rewrites every occurrence of the rule in text and returns the
// result. The input is never mutated.
//
// A header line whose following line is already an elision placeholder is
// left untouched, so re-applying rules to summarized text cannot collapse it
// further. For BodyBlock rules, consumption stops at the next top-level
// declaration, so adjacent declarations are never merged.
func (r *Rule) Apply(text string) string {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		m := r.re.FindStringSubmatchIndex(line)
		if m == nil || m[0] != 0 {
			out = append(out, line)
			continue
		}
		if i+1 < len(lines) && placeholderRE.MatchString(lines[i+1]) {
			out = append(out, line)
			continue
		}

		header := string(r.re.ExpandString(nil, r.Replacement, line, m))
		placeholder := indentOf(line) + "    ... # " + r.Explanation

		switch r.Body {
		case BodyReturn:
			if i+1 >= len(lines) || !returnRE.MatchString(lines[i+1]) {
				out = append(out, line)
				continue
			}
			out = append(out, header, placeholder)
			i++ // the single return statement
		default:
			out = append(out, header, placeholder)
			for i+1 < len(lines) && !topLevelDeclRE.MatchString(lines[i+1]) {
				i++
			}
		}
	}

	return joinLines(out)
}

// Rules is a full rule set: the interface rules plus the additional core
// rules. At LevelCore the interface rules run first, then the core rules,
// preserving declaration order within each list.
type Rules struct {
	Interface []Rule `toml:"interface"`
	Core      []Rule `toml:"core"`
}

// Compile prepares every rule in the set.
func (rs *Rules) Compile() error {
	for i := range rs.Interface {
		if err := rs.Interface[i].Compile(); err != nil {
			return err
		}
	}
	for i := range rs.Core {
		if err := rs.Core[i].Compile(); err != nil {
			return err
		}
	}
	return nil
}

// ForLevel returns the rules to apply, in order, for a level.
// LevelNone returns nil: summarization is skipped entirely.
func (rs *Rules) ForLevel(level Level) []Rule {
	switch level {
	case LevelInterface:
		return rs.Interface
	case LevelCore:
		return append(append([]Rule{}, rs.Interface...), rs.Core...)
	}
	return nil
}

// DefaultRules returns the built-in rule set, compiled and ready to apply.
func DefaultRules() *Rules {
	rs := &Rules{
		Interface: []Rule{
			{
				Pattern:     `^(class\s+\w+(?:\([^)]*\))?)\s*:`,
				Replacement: `${1}:`,
				Explanation: "Class interface preserved",
				Body:        BodyBlock,
			},
			{
				Pattern:     `^(def\s+\w+\s*\([^)]*\))\s*:`,
				Replacement: `${1}:`,
				Explanation: "Function signature preserved",
				Body:        BodyBlock,
			},
		},
		Core: []Rule{
			{
				Pattern:     `^([ \t]*def\s+get_\w+\s*\([^)]*\))\s*:\s*$`,
				Replacement: `${1}:`,
				Explanation: "Getter method summarized",
				Body:        BodyReturn,
			},
			{
				Pattern:     `^([ \t]*def\s+__init__\s*\([^)]*\))\s*:`,
				Replacement: `${1}:`,
				Explanation: "Standard initialization summarized",
				Body:        BodyBlock,
			},
		},
	}
	if err := rs.Compile(); err != nil {
		panic(err) // built-in patterns are constants
	}
	return rs
}

// LoadRules reads a custom rule set from a TOML file. The file replaces the
// defaults wholesale:
//
//	[[interface]]
//	pattern = '^(class\s+\w+)\s*:'
//	replacement = '${1}:'
//	explanation = "Class interface preserved"
//
//	[[core]]
//	pattern = '^([ \t]*def\s+__init__\s*\([^)]*\))\s*:'
//	replacement = '${1}:'
//	explanation = "Standard initialization summarized"
func LoadRules(path string) (*Rules, error) {
	var rs Rules
	if _, err := toml.DecodeFile(path, &rs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRules, err, "load rules from %s", path)
	}
	if err := rs.Compile(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRules, err, "compile rules from %s", path)
	}
	return &rs, nil
}
