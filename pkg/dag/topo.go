package dag

// Ordering is the result of ordering a graph for emission.
//
// Exactly one of two shapes is produced: a total order consistent with every
// edge (Cycles is nil), or the discovery-order fallback together with the
// detected cycles (Cycles is non-nil). Never both.
type Ordering struct {
	// Order lists node IDs such that, for every edge (dep, dependent), dep
	// precedes dependent - unless Cycles is non-nil, in which case Order is
	// the discovery-order fallback.
	Order []string

	// Cycles holds each detected simple cycle as an ordered sequence of node
	// IDs. Nil when the graph is acyclic.
	Cycles [][]string
}

// HasCycles reports whether the ordering fell back to discovery order.
func (o Ordering) HasCycles() bool { return len(o.Cycles) > 0 }

// TopoSort orders the graph so that every dependency precedes its dependents.
//
// The implementation is Kahn's algorithm with a stable tie-break: among nodes
// whose dependencies are all satisfied, the one discovered first is emitted
// first. This keeps output deterministic across runs on an unchanged input
// set.
//
// If the graph contains a cycle, no consistent order exists. TopoSort then
// enumerates all simple cycles for diagnostics and returns the discovery
// order as fallback, so a run always produces a complete ordering.
func (g *Graph) TopoSort() Ordering {
	indegree := make(map[string]int, len(g.order))
	for _, id := range g.order {
		indegree[id] = len(g.incoming[id])
	}

	// ready holds emittable nodes sorted by discovery index. Graphs here are
	// module-table sized, so a linear insertion keeps things simple.
	var ready []string
	for _, id := range g.order {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	sorted := make([]string, 0, len(g.order))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		sorted = append(sorted, id)

		for _, dep := range g.outgoing[id] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = g.insertByDiscovery(ready, dep)
			}
		}
	}

	if len(sorted) < len(g.order) {
		return Ordering{
			Order:  g.Nodes(),
			Cycles: g.SimpleCycles(),
		}
	}
	return Ordering{Order: sorted}
}

// insertByDiscovery inserts id into ready keeping discovery-index order.
func (g *Graph) insertByDiscovery(ready []string, id string) []string {
	pos := len(ready)
	for i, r := range ready {
		if g.index[id] < g.index[r] {
			pos = i
			break
		}
	}
	ready = append(ready, "")
	copy(ready[pos+1:], ready[pos:])
	ready[pos] = id
	return ready
}
