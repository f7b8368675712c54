package module

import (
	"io"
	"path"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pyfold/pyfold/pkg/dag"
)

// Builder resolves each record's import strings against the module table and
// constructs the dependency graph. Edges run (dependency, dependent):
// the imported module must be emitted before the importer.
//
// Resolution is total. Every import either produces one or more edges,
// is classified external (no internal target), or is dropped as an
// unresolvable relative import. It never fails.
type Builder struct {
	table  *Table
	logger *log.Logger
}

// NewBuilder creates a builder over a complete module table. The table must
// not be mutated while the builder is in use; resolution searches the entire
// known-module set.
func NewBuilder(table *Table, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Builder{table: table, logger: logger}
}

// Build constructs the dependency graph for the table.
//
// Nodes are added in discovery order, then each record's imports are resolved
// to edges. Duplicate resolutions collapse to a single edge, and an import
// resolving back to its own module adds nothing.
func (b *Builder) Build() *dag.Graph {
	g := dag.New()
	for _, p := range b.table.Paths() {
		_ = g.AddNode(p)
		b.logger.Debug("added node", "path", p)
	}

	for _, p := range b.table.Paths() {
		rec, _ := b.table.Get(p)
		for _, imp := range rec.Imports {
			for _, target := range b.resolve(rec, imp) {
				if target == rec.Path {
					continue
				}
				if err := g.AddEdge(target, rec.Path); err == nil {
					b.logger.Debug("added edge", "dependency", target, "dependent", rec.Path)
				}
			}
		}
	}
	return g
}

// resolve maps one import string to the internal modules it refers to.
// Relative imports resolve to at most one target; absolute imports may
// resolve to several when path suffixes overlap.
func (b *Builder) resolve(rec *Record, imp string) []string {
	if strings.HasPrefix(imp, ".") {
		if target, ok := b.resolveRelative(rec, imp); ok {
			return []string{target}
		}
		return nil
	}
	return b.resolveAbsolute(imp)
}

// resolveRelative resolves a leading-dot import from the importing module's
// directory. Each dot ascends one level, where the scan root itself counts
// as one level - so a single dot from a root-level module targets the root.
// A dot count exceeding the available depth makes the import unresolvable,
// which is silently dropped.
func (b *Builder) resolveRelative(rec *Record, imp string) (string, bool) {
	dots := len(imp) - len(strings.TrimLeft(imp, "."))
	parts := strings.Split(path.Dir(rec.Path), "/") // ["."] at the root

	if dots > len(parts) {
		b.logger.Debug("unresolvable relative import", "module", rec.Path, "import", imp)
		return "", false
	}
	base := strings.Join(parts[:len(parts)-dots], "/")

	remainder := strings.TrimLeft(imp, ".")
	var candidate string
	if remainder == "" {
		candidate = path.Join(base, "__init__.py")
	} else {
		candidate = path.Join(base, strings.ReplaceAll(remainder, ".", "/")+".py")
	}

	if _, ok := b.table.Get(candidate); ok {
		return candidate, true
	}
	return "", false
}

// resolveAbsolute resolves a dotted absolute import by path-suffix match.
// Every known module whose relative path ends with the import's path form
// (at a path-component boundary) is a target; imports matching nothing are
// implicitly external.
func (b *Builder) resolveAbsolute(imp string) []string {
	suffix := strings.ReplaceAll(imp, ".", "/") + ".py"

	var targets []string
	for _, p := range b.table.Paths() {
		if p == suffix || strings.HasSuffix(p, "/"+suffix) {
			targets = append(targets, p)
		}
	}
	return targets
}
