package pipeline

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pyfold/pyfold/pkg/assemble"
	"github.com/pyfold/pyfold/pkg/dag"
	"github.com/pyfold/pyfold/pkg/listing"
	"github.com/pyfold/pyfold/pkg/module"
	"github.com/pyfold/pyfold/pkg/render/ascii"
	"github.com/pyfold/pyfold/pkg/summary"
)

// Runner executes pipeline stages. Stages can be run individually (Scan,
// BuildGraph, Order, TransformAll) or end to end with Run.
type Runner struct {
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{logger: logger}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Table is the scanned module table in discovery order.
	Table *module.Table

	// Graph is the resolved dependency graph.
	Graph *dag.Graph

	// Ordering is the emission order, with cycle diagnostics when the graph
	// was not orderable.
	Ordering dag.Ordering

	// Contents maps module path to transformed content.
	Contents map[string]string

	// Artifact is the fully assembled output text.
	Artifact string

	// RunID identifies this run in artifact provenance.
	RunID string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ModuleCount   int
	EdgeCount     int
	CycleCount    int
	ScanTime      time.Duration
	OrderTime     time.Duration
	TransformTime time.Duration
}

// Run executes the complete pipeline: scan, graph build, ordering, per-module
// transformation, and assembly. The artifact is assembled fully in memory;
// writing it is the caller's concern.
//
// Cycles do not fail the run: they are logged, reported in the result, and
// the ordering falls back to discovery order so the artifact stays complete.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		r.logger = opts.Logger
	}

	res := &Result{RunID: uuid.NewString()}

	start := time.Now()
	table, err := r.Scan(opts)
	if err != nil {
		return nil, err
	}
	res.Table = table
	res.Stats.ModuleCount = table.Len()
	res.Stats.ScanTime = time.Since(start)
	r.logger.Debug("scan complete", "modules", table.Len())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	res.Graph = r.BuildGraph(table)
	res.Ordering = r.Order(res.Graph)
	res.Stats.EdgeCount = res.Graph.EdgeCount()
	res.Stats.CycleCount = len(res.Ordering.Cycles)
	res.Stats.OrderTime = time.Since(start)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	rules, err := opts.Rules()
	if err != nil {
		return nil, err
	}
	res.Contents, err = r.TransformAll(table, opts.SummaryLevel(), rules)
	if err != nil {
		return nil, err
	}
	res.Stats.TransformTime = time.Since(start)

	res.Artifact = assemble.Build(assemble.Input{
		Level:         opts.SummaryLevel(),
		Order:         res.Ordering.Order,
		Contents:      res.Contents,
		Table:         table,
		Visualization: r.Visualization(opts, res),
		RunID:         res.RunID,
		GeneratedAt:   time.Now(),
	})
	return res, nil
}

// Scan discovers modules under the configured root.
func (r *Runner) Scan(opts Options) (*module.Table, error) {
	scanner := module.NewScanner(opts.Root,
		module.WithExclusions(opts.Exclude),
		module.WithLogger(r.logger),
	)
	return scanner.Scan()
}

// BuildGraph resolves imports across the complete table into the dependency
// graph. The table must be fully populated first; resolution searches the
// entire known-module set.
func (r *Runner) BuildGraph(table *module.Table) *dag.Graph {
	return module.NewBuilder(table, r.logger).Build()
}

// Order produces the emission order, logging a warning for each cycle.
func (r *Runner) Order(g *dag.Graph) dag.Ordering {
	ord := g.TopoSort()
	for _, cycle := range ord.Cycles {
		r.logger.Warn("circular dependency detected, using discovery order",
			"cycle", strings.Join(cycle, " -> "))
	}
	return ord
}

// TransformAll transforms every module in the table at the given level.
func (r *Runner) TransformAll(table *module.Table, level summary.Level, rules *summary.Rules) (map[string]string, error) {
	tr := summary.NewTransformer(level, rules)
	contents := make(map[string]string, table.Len())
	for _, p := range table.Paths() {
		rec, _ := table.Get(p)
		out, err := tr.Transform(rec.Content)
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", p, err)
		}
		contents[p] = out
	}
	return contents, nil
}

// Visualization renders the dependency-structure block interpolated into the
// artifact header: directory layout, labeled dependency diagram with legend,
// and the import summary.
func (r *Runner) Visualization(opts Options, res *Result) string {
	diagram := ascii.Render(res.Graph, ascii.Options{
		Mode:          ascii.LabelMode(opts.LabelMode),
		PruneIsolated: opts.PruneIsolated,
	})

	note := "modules detached from the diagram have no dependency relationship"
	if opts.PruneIsolated {
		note = "non-dependent modules elided"
	}

	var b strings.Builder
	b.WriteString("Directory Structure:\n")
	b.WriteString(listing.Tree(opts.Root))
	b.WriteString("\n\nModule Dependencies:\n\n")
	b.WriteString(diagram.Legend)
	b.WriteString("\n" + note + "\n\n")
	b.WriteString(diagram.Block)
	b.WriteString("\n\nImport Summary:\n")
	b.WriteString(importSummary(res.Table))
	return b.String()
}

// importSummary lists external and internal (relative) dependencies across
// the table.
func importSummary(t *module.Table) string {
	external := make(map[string]bool)
	internal := make(map[string]bool)
	for _, p := range t.Paths() {
		rec, _ := t.Get(p)
		for _, imp := range rec.Imports {
			if strings.HasPrefix(imp, ".") {
				internal[imp] = true
			} else {
				external[imp] = true
			}
		}
	}
	return fmt.Sprintf("External Dependencies:\n  %s\nInternal Dependencies:\n  %s",
		joinSorted(external), joinSorted(internal))
}

func joinSorted(set map[string]bool) string {
	items := make([]string, 0, len(set))
	for s := range set {
		items = append(items, s)
	}
	sort.Strings(items)
	return strings.Join(items, ", ")
}
