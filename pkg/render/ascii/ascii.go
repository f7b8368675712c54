// Package ascii renders a dependency graph as a layered text diagram with a
// legend mapping short node labels back to module paths.
//
// The output is an opaque text block for interpolation into the assembled
// artifact's header; callers should not parse it.
package ascii

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pyfold/pyfold/pkg/dag"
)

// LabelMode selects how nodes are labeled in the diagram.
type LabelMode string

// Supported label modes.
const (
	// LabelLetters labels nodes A, B, ..., Z, AA, AB, ...
	LabelLetters LabelMode = "letters"
	// LabelNumbers labels nodes 1, 2, 3, ...
	LabelNumbers LabelMode = "numbers"
)

// Options configures diagram rendering.
type Options struct {
	// Mode selects the node labeling scheme. Defaults to LabelLetters.
	Mode LabelMode

	// PruneIsolated drops nodes that participate in no edges.
	PruneIsolated bool
}

// Diagram is a rendered dependency diagram.
type Diagram struct {
	// Legend maps each short label to its module path, one per line.
	Legend string

	// Block is the layered diagram plus the edge list.
	Block string
}

// Render produces a layered diagram of the graph. Nodes are placed on the
// row matching their dependency depth (a node one row below its deepest
// dependency); with cycles present, depth cannot be computed and all nodes
// share one row.
func Render(g *dag.Graph, opts Options) Diagram {
	if opts.Mode == "" {
		opts.Mode = LabelLetters
	}

	nodes := g.Nodes()
	if opts.PruneIsolated {
		kept := nodes[:0]
		for _, id := range nodes {
			if !g.IsIsolated(id) {
				kept = append(kept, id)
			}
		}
		nodes = kept
	}

	labels := make(map[string]string, len(nodes))
	var legend strings.Builder
	legend.WriteString("Legend:\n")
	for i, id := range nodes {
		labels[id] = label(opts.Mode, i)
		fmt.Fprintf(&legend, "%s: %s\n", labels[id], id)
	}

	rows := layer(g, nodes)

	var block strings.Builder
	for _, row := range rows {
		block.WriteString(" ")
		for _, id := range row {
			fmt.Fprintf(&block, " [%s]", labels[id])
		}
		block.WriteString("\n")
	}
	if edges := edgeLines(g, labels); len(edges) > 0 {
		block.WriteString("\n")
		for _, e := range edges {
			block.WriteString("  " + e + "\n")
		}
	}

	return Diagram{
		Legend: strings.TrimRight(legend.String(), "\n"),
		Block:  strings.TrimRight(block.String(), "\n"),
	}
}

// label produces the short label for a node index.
// Letters mode yields A..Z then AA, AB, ... like spreadsheet columns.
func label(mode LabelMode, index int) string {
	if mode == LabelNumbers {
		return strconv.Itoa(index + 1)
	}
	s := ""
	for index >= 0 {
		s = string(rune('A'+index%26)) + s
		index = index/26 - 1
	}
	return s
}

// layer groups nodes into rows by dependency depth: a node sits one row
// below its deepest dependency. Falls back to a single row when the graph
// has cycles.
func layer(g *dag.Graph, nodes []string) [][]string {
	keep := make(map[string]bool, len(nodes))
	for _, id := range nodes {
		keep[id] = true
	}

	ord := g.TopoSort()
	depth := make(map[string]int, len(nodes))
	maxDepth := 0
	if !ord.HasCycles() {
		for _, id := range ord.Order {
			d := 0
			for _, dep := range g.Dependencies(id) {
				if depth[dep]+1 > d {
					d = depth[dep] + 1
				}
			}
			depth[id] = d
			if d > maxDepth {
				maxDepth = d
			}
		}
	}

	rows := make([][]string, maxDepth+1)
	for _, id := range nodes {
		if keep[id] {
			rows[depth[id]] = append(rows[depth[id]], id)
		}
	}
	return rows
}

// edgeLines formats each edge as "A -> B" using the short labels.
// Edges touching pruned nodes are omitted.
func edgeLines(g *dag.Graph, labels map[string]string) []string {
	var lines []string
	for _, e := range g.Edges() {
		from, okF := labels[e.From]
		to, okT := labels[e.To]
		if okF && okT {
			lines = append(lines, from+" -> "+to)
		}
	}
	return lines
}
