// Package io serializes dependency graphs for interchange with other tools.
//
// The JSON format lists nodes in discovery order and edges in insertion
// order, so exports of an unchanged source tree are byte-identical.
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pyfold/pyfold/pkg/dag"
)

type graphDoc struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID string `json:"id"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes a dependency graph as JSON and writes it to w.
func WriteJSON(g *dag.Graph, w io.Writer) error {
	out := graphDoc{
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	for _, id := range g.Nodes() {
		out.Nodes = append(out.Nodes, node{ID: id})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge{From: e.From, To: e.To})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a dependency graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *dag.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
