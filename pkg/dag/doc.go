// Package dag implements the directed dependency graph used to order modules
// in the assembled artifact.
//
// Nodes are module identifiers (canonical slash-separated paths relative to
// the scan root). Edges are ordered pairs (dependency, dependent), meaning
// the dependency's content must be emitted before the dependent's. The graph
// remembers the order in which nodes were first added (discovery order); this
// order is the tie-break for independent nodes during topological sorting and
// the fallback ordering when the graph contains cycles.
//
// # Usage
//
//	g := dag.New()
//	_ = g.AddNode("a.py")
//	_ = g.AddNode("b.py")
//	_ = g.AddEdge("a.py", "b.py") // a.py must precede b.py
//
//	ord := g.TopoSort()
//	if ord.HasCycles() {
//	    // ord.Order is the discovery-order fallback, ord.Cycles the diagnostics
//	}
//
// The graph is not safe for concurrent use without external synchronization.
package dag
