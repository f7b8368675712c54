package module

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pyfold/pyfold/pkg/errors"
)

// Extraction holds the names pulled out of a module's text.
type Extraction struct {
	Imports   []string // import strings as written, leading dots preserved
	Classes   []string // declared type names
	Functions []string // declared callable names
}

// Extractor pulls imports and declarations out of module text. The default
// is [LineExtractor]; a tokenizer-backed implementation can be substituted
// without touching the scanner or graph builder.
type Extractor interface {
	Extract(content string) Extraction
}

var (
	// importRE matches both import forms. Group 1 is the dotted path of a
	// "from X import Y" statement (leading dots preserved); group 2 is the
	// name list of a plain "import X" statement.
	importRE = regexp.MustCompile(`(?m)^(?:from[ \t]+(\S+)[ \t]+)?import[ \t]+([^#\n]+)`)

	classRE = regexp.MustCompile(`(?m)^\s*class\s+(\w+)`)
	funcRE  = regexp.MustCompile(`(?m)^\s*def\s+(\w+)`)
)

// LineExtractor is the default line-pattern extractor. It treats modules as
// line-oriented text with recognizable import and definition markers; it does
// not parse, execute, or validate the source.
type LineExtractor struct{}

// Extract scans content for import statements, class declarations, and
// function declarations. For "from X import Y" the dotted path X is captured
// verbatim; for "import X, Y" only the first comma-separated token is taken.
func (LineExtractor) Extract(content string) Extraction {
	var ex Extraction

	for _, m := range importRE.FindAllStringSubmatch(content, -1) {
		if m[1] != "" {
			ex.Imports = append(ex.Imports, m[1])
			continue
		}
		first := strings.TrimSpace(strings.Split(m[2], ",")[0])
		if first != "" {
			ex.Imports = append(ex.Imports, first)
		}
	}
	for _, m := range classRE.FindAllStringSubmatch(content, -1) {
		ex.Classes = append(ex.Classes, m[1])
	}
	for _, m := range funcRE.FindAllStringSubmatch(content, -1) {
		ex.Functions = append(ex.Functions, m[1])
	}

	ex.Imports = sortedSet(ex.Imports)
	ex.Classes = sortedSet(ex.Classes)
	ex.Functions = sortedSet(ex.Functions)
	return ex
}

// Scanner discovers Python modules under a root directory and extracts their
// records. Paths containing any configured exclusion substring are skipped
// silently.
type Scanner struct {
	root      string
	fsys      fs.FS
	exclude   []string
	extractor Extractor
	logger    *log.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExclusions sets substrings that exclude a module path from scanning.
// Matching is plain substring containment against the slash-separated path
// relative to the scan root.
func WithExclusions(patterns []string) Option {
	return func(s *Scanner) { s.exclude = patterns }
}

// WithExtractor replaces the default line-pattern extractor.
func WithExtractor(e Extractor) Option {
	return func(s *Scanner) { s.extractor = e }
}

// WithLogger sets the logger used for debug output during scanning.
func WithLogger(l *log.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// withFS overrides the filesystem read from during a scan. Used by tests.
func withFS(fsys fs.FS) Option {
	return func(s *Scanner) { s.fsys = fsys }
}

// NewScanner creates a scanner rooted at the given directory.
func NewScanner(root string, opts ...Option) *Scanner {
	s := &Scanner{
		root:      root,
		extractor: LineExtractor{},
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Excluded reports whether the relative path matches any exclusion substring.
func (s *Scanner) Excluded(rel string) bool {
	for _, pattern := range s.exclude {
		if pattern != "" && strings.Contains(rel, pattern) {
			return true
		}
	}
	return false
}

// Scan walks the root directory and returns a table of all discovered
// modules in lexical walk order.
//
// Excluded paths are skipped without error. Empty or unparseable files
// produce valid records with no imports or declarations. An I/O failure
// reading any module aborts the scan: no partial table is returned, and the
// error names the offending path.
func (s *Scanner) Scan() (*Table, error) {
	fsys := s.fsys
	if fsys == nil {
		fsys = dirFS(s.root)
	}

	table := NewTable()
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", filepath.Join(s.root, p))
		}
		if d.IsDir() || !strings.HasSuffix(p, ".py") {
			return nil
		}
		if s.Excluded(p) {
			s.logger.Debugf("excluding %s", p)
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "read module %s", filepath.Join(s.root, p))
		}

		rec := s.analyze(p, string(data))
		table.Add(rec)
		s.logger.Debug("added module", "path", p, "imports", len(rec.Imports))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// dirFS adapts the scan root to an fs.FS.
func dirFS(root string) fs.FS { return os.DirFS(root) }

// analyze builds a record from a module's text.
func (s *Scanner) analyze(rel, content string) *Record {
	ex := s.extractor.Extract(content)
	return &Record{
		Path:      rel,
		Content:   content,
		Imports:   ex.Imports,
		Classes:   ex.Classes,
		Functions: ex.Functions,
	}
}
