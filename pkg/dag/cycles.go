package dag

// SimpleCycles enumerates every simple cycle in the graph.
//
// Each cycle is reported once, as an ordered node sequence starting at the
// cycle's earliest-discovered member (no closing repetition of the first
// node). Cycles are returned in discovery order of their starting node.
//
// Enumeration walks depth-first from each node, restricted to nodes
// discovered at or after the start node, which yields each simple cycle
// exactly once. This is exponential in the worst case, like any simple-cycle
// enumeration, but graphs here are module tables where cycles are rare and
// short.
func (g *Graph) SimpleCycles() [][]string {
	var cycles [][]string

	for _, start := range g.order {
		startIdx := g.index[start]
		onPath := make(map[string]bool)
		var path []string

		var dfs func(id string)
		dfs = func(id string) {
			onPath[id] = true
			path = append(path, id)

			for _, next := range g.outgoing[id] {
				if g.index[next] < startIdx {
					continue
				}
				if next == start {
					cycle := make([]string, len(path))
					copy(cycle, path)
					cycles = append(cycles, cycle)
					continue
				}
				if !onPath[next] {
					dfs(next)
				}
			}

			path = path[:len(path)-1]
			onPath[id] = false
		}

		dfs(start)
	}

	return cycles
}
