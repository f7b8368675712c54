// Package assemble produces the final concatenated artifact from the
// ordered, transformed module list.
//
// The artifact has a fixed section order: banner, dependency-structure
// visualization, sorted external imports, then each module's transformed
// content preceded by a provenance comment naming its original path. The
// whole artifact is built in memory and written once; no partial output is
// ever emitted.
package assemble

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pyfold/pyfold/pkg/buildinfo"
	"github.com/pyfold/pyfold/pkg/module"
	"github.com/pyfold/pyfold/pkg/summary"
)

// Input carries everything the assembler needs for one artifact.
type Input struct {
	// Level is the summarization level recorded in the banner.
	Level summary.Level

	// Order lists module paths in emission order.
	Order []string

	// Contents maps module path to transformed content.
	Contents map[string]string

	// Table is the scanned module table, used for external-import
	// classification.
	Table *module.Table

	// Visualization is the pre-rendered dependency-structure block,
	// interpolated verbatim.
	Visualization string

	// RunID identifies this run in the banner for provenance.
	RunID string

	// GeneratedAt is the generation timestamp recorded in the banner.
	GeneratedAt time.Time
}

// Banner returns the artifact header identifying the tool, version,
// generation level, timestamp, and run ID.
func Banner(level summary.Level, runID string, at time.Time) string {
	return strings.Join([]string{
		fmt.Sprintf("# Generated by pyfold %s", buildinfo.Version),
		fmt.Sprintf("# generated: %s", at.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("# run: %s", runID),
		fmt.Sprintf("# summary level: %s", level),
	}, "\n")
}

// ExternalImports returns the sorted import statements for every external
// import across the table. An import is external if it is not relative and
// its dotted root does not correspond to the top-level directory (or
// root-level file) of any internal module.
func ExternalImports(t *module.Table) []string {
	roots := internalRoots(t)

	seen := make(map[string]bool)
	for _, p := range t.Paths() {
		rec, _ := t.Get(p)
		for _, imp := range rec.Imports {
			if strings.HasPrefix(imp, ".") {
				continue
			}
			root := strings.Split(imp, ".")[0]
			if !roots[root] {
				seen[imp] = true
			}
		}
	}

	stmts := make([]string, 0, len(seen))
	for imp := range seen {
		stmts = append(stmts, "import "+imp)
	}
	sort.Strings(stmts)
	return stmts
}

// internalRoots collects the top-level name each module contributes: the
// first path component, with the .py suffix trimmed for root-level files.
func internalRoots(t *module.Table) map[string]bool {
	roots := make(map[string]bool)
	for _, p := range t.Paths() {
		first := strings.Split(p, "/")[0]
		roots[strings.TrimSuffix(first, ".py")] = true
	}
	return roots
}

// Build assembles the complete artifact text. Every path in in.Order with
// transformed content appears exactly once, preceded by its provenance
// comment.
func Build(in Input) string {
	var b strings.Builder

	b.WriteString(Banner(in.Level, in.RunID, in.GeneratedAt))
	b.WriteString("\n\n")

	b.WriteString(`"""` + "\n")
	b.WriteString(in.Visualization)
	b.WriteString("\n" + `"""` + "\n\n")

	b.WriteString("# External imports\n")
	for _, stmt := range ExternalImports(in.Table) {
		b.WriteString(stmt + "\n")
	}

	b.WriteString("\n# Combined module code\n")
	for _, p := range in.Order {
		content, ok := in.Contents[p]
		if !ok {
			continue
		}
		b.WriteString("\n# From " + p + "\n")
		b.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// WriteFile writes the assembled artifact to path in a single operation.
func WriteFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
