package summary

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pyfold/pyfold/pkg/errors"
)

// relativeImportRE matches a relative-import line: leading whitespace, then
// "from" followed by a dotted path.
var relativeImportRE = regexp.MustCompile(`^[ \t]*from[ \t]+\..*$`)

// Transformer rewrites one module's text for the flattened artifact:
// relative-import neutralization followed by level-driven summarization.
type Transformer struct {
	level Level
	rules *Rules
}

// NewTransformer creates a transformer for the given level. A nil rule set
// selects the built-in defaults.
func NewTransformer(level Level, rules *Rules) *Transformer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Transformer{level: level, rules: rules}
}

// Transform neutralizes relative imports and then summarizes content at the
// transformer's level. Non-text content (invalid UTF-8 or embedded NUL) is
// rejected rather than transformed on a best-effort basis.
func (t *Transformer) Transform(content string) (string, error) {
	if !isText(content) {
		return "", errors.New(errors.ErrCodeInvalidInput, "module content is not text")
	}
	return t.Summarize(NeutralizeImports(content)), nil
}

// Summarize applies the rule set for the transformer's level, in order.
// At LevelNone this is the identity function: the content is returned
// unchanged, byte for byte.
func (t *Transformer) Summarize(content string) string {
	if t.level == LevelNone {
		return content
	}
	result := content
	for _, r := range t.rules.ForLevel(t.level) {
		result = r.Apply(result)
	}
	return result
}

// NeutralizeImports replaces every relative-import line with an inert block
// that preserves the original line verbatim for audit:
//
//	"""RELATIVE_IMPORT:
//	from .util import helper
//	"""
//
// The block reuses the original line's indentation exactly. Relative imports
// are meaningless once modules are flattened into one artifact; wrapping them
// keeps them visible without being executable.
func NeutralizeImports(content string) string {
	lines := splitLines(content)
	for i, line := range lines {
		if relativeImportRE.MatchString(line) {
			indent := indentOf(line)
			lines[i] = indent + `"""RELATIVE_IMPORT:` + "\n" + line + "\n" + indent + `"""`
		}
	}
	return joinLines(lines)
}

// isText reports whether content is valid UTF-8 without NUL bytes.
func isText(content string) bool {
	return utf8.ValidString(content) && !strings.ContainsRune(content, 0)
}

func splitLines(text string) []string { return strings.Split(text, "\n") }

func joinLines(lines []string) string { return strings.Join(lines, "\n") }

// indentOf returns the leading whitespace of a line.
func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
