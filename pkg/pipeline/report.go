package pipeline

import (
	"fmt"
	"strings"
)

// Report renders a human-readable dependency analysis of a pipeline result:
// summary statistics, per-module dependency chains, cycle warnings, and the
// classes, functions, and imports each module declares.
func Report(res *Result) string {
	var b strings.Builder

	b.WriteString("Dependency Analysis Report\n")
	b.WriteString("==========================\n\n")

	fmt.Fprintf(&b, "Modules:  %d\n", res.Stats.ModuleCount)
	fmt.Fprintf(&b, "Edges:    %d\n", res.Stats.EdgeCount)
	fmt.Fprintf(&b, "Cycles:   %d\n", res.Stats.CycleCount)
	fmt.Fprintf(&b, "Run:      %s\n\n", res.RunID)

	if len(res.Ordering.Cycles) > 0 {
		b.WriteString("Circular Dependencies\n")
		b.WriteString("---------------------\n")
		for _, cycle := range res.Ordering.Cycles {
			fmt.Fprintf(&b, "  %s -> %s\n", strings.Join(cycle, " -> "), cycle[0])
		}
		b.WriteString("\nEmission falls back to discovery order for the full set.\n\n")
	}

	b.WriteString("Dependency Chains\n")
	b.WriteString("-----------------\n")
	for _, p := range res.Ordering.Order {
		deps := res.Graph.Dependencies(p)
		if len(deps) == 0 {
			fmt.Fprintf(&b, "  %s (no internal dependencies)\n", p)
			continue
		}
		fmt.Fprintf(&b, "  %s\n", p)
		for _, d := range deps {
			fmt.Fprintf(&b, "    <- %s\n", d)
		}
	}
	b.WriteString("\n")

	b.WriteString("Module Details\n")
	b.WriteString("--------------\n")
	for _, p := range res.Table.Paths() {
		rec, _ := res.Table.Get(p)
		fmt.Fprintf(&b, "\n%s\n", p)
		writeDetail(&b, "classes", rec.Classes)
		writeDetail(&b, "functions", rec.Functions)
		writeDetail(&b, "imports", rec.Imports)
	}

	return b.String()
}

func writeDetail(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s: %s\n", label, strings.Join(items, ", "))
}
