package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfEdge is returned by [Graph.AddEdge] when From equals To.
	// A module never depends on itself.
	ErrSelfEdge = errors.New("self edges are not allowed")
)

// Edge represents a directed connection (dependency, dependent).
// From must be emitted before To in the assembled artifact.
type Edge struct {
	From string // dependency node ID
	To   string // dependent node ID
}

// Graph is a directed graph over module identifiers with stable discovery
// order. Edge insertion is idempotent: adding the same (From, To) pair twice
// leaves a single edge.
//
// The zero value is not usable - use New to create a valid Graph instance.
type Graph struct {
	order    []string // node IDs in discovery order
	index    map[string]int
	edges    []Edge
	edgeSet  map[Edge]struct{}
	outgoing map[string][]string // nodeID -> dependents
	incoming map[string][]string // nodeID -> dependencies
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		index:    make(map[string]int),
		edgeSet:  make(map[Edge]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph, recording its discovery position.
// Returns ErrInvalidNodeID if the ID is empty, or ErrDuplicateNodeID if a
// node with the same ID already exists.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[id]; exists {
		return ErrDuplicateNodeID
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
	return nil
}

// AddEdge adds a directed edge (dependency, dependent) between two existing
// nodes. Returns ErrUnknownSourceNode or ErrUnknownTargetNode if either
// endpoint is missing, or ErrSelfEdge if From equals To.
//
// Adding an edge that already exists is a no-op.
func (g *Graph) AddEdge(from, to string) error {
	if _, ok := g.index[from]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.index[to]; !ok {
		return ErrUnknownTargetNode
	}
	if from == to {
		return ErrSelfEdge
	}
	e := Edge{From: from, To: to}
	if _, dup := g.edgeSet[e]; dup {
		return nil
	}
	g.edgeSet[e] = struct{}{}
	g.edges = append(g.edges, e)
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return nil
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// HasEdge reports whether the edge (from, to) exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edgeSet[Edge{From: from, To: to}]
	return ok
}

// Nodes returns all node IDs in discovery order.
// The returned slice is a copy and can be modified freely.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Dependents returns the IDs of nodes this node has edges to (modules that
// depend on it). The returned slice should be treated as read-only.
func (g *Graph) Dependents(id string) []string { return g.outgoing[id] }

// Dependencies returns the IDs of nodes that have edges to this node
// (modules it depends on). The returned slice should be treated as read-only.
func (g *Graph) Dependencies(id string) []string { return g.incoming[id] }

// OutDegree returns the number of dependents of the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of dependencies of the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// IsIsolated reports whether the node participates in no edges.
func (g *Graph) IsIsolated(id string) bool {
	return len(g.outgoing[id]) == 0 && len(g.incoming[id]) == 0
}

// DiscoveryIndex returns the position at which the node was first added,
// and true, or 0 and false if the node does not exist.
func (g *Graph) DiscoveryIndex(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}
