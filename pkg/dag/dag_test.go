package dag

import (
	"errors"
	"testing"
)

func TestAddNode_Basic(t *testing.T) {
	g := New()
	if err := g.AddNode("a.py"); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if !g.HasNode("a.py") {
		t.Error("HasNode(a.py) = false, want true")
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestAddNode_EmptyID(t *testing.T) {
	g := New()
	if err := g.AddNode(""); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(\"\") error = %v, want ErrInvalidNodeID", err)
	}
}

func TestAddNode_Duplicate(t *testing.T) {
	g := New()
	g.AddNode("a.py")
	if err := g.AddNode("a.py"); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(dup) error = %v, want ErrDuplicateNodeID", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestAddEdge_UnknownEndpoints(t *testing.T) {
	g := New()
	g.AddNode("a.py")

	if err := g.AddEdge("missing.py", "a.py"); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(unknown from) error = %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge("a.py", "missing.py"); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(unknown to) error = %v, want ErrUnknownTargetNode", err)
	}
}

func TestAddEdge_SelfEdge(t *testing.T) {
	g := New()
	g.AddNode("a.py")
	if err := g.AddEdge("a.py", "a.py"); !errors.Is(err, ErrSelfEdge) {
		t.Errorf("AddEdge(self) error = %v, want ErrSelfEdge", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestAddEdge_Idempotent(t *testing.T) {
	g := New()
	g.AddNode("a.py")
	g.AddNode("b.py")

	if err := g.AddEdge("a.py", "b.py"); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if err := g.AddEdge("a.py", "b.py"); err != nil {
		t.Fatalf("AddEdge(dup) error = %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if got := g.Dependents("a.py"); len(got) != 1 {
		t.Errorf("Dependents(a.py) = %v, want one entry", got)
	}
}

func TestNodes_DiscoveryOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"c.py", "a.py", "b.py"} {
		g.AddNode(id)
	}

	got := g.Nodes()
	want := []string{"c.py", "a.py", "b.py"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Nodes() = %v, want %v", got, want)
		}
	}
}

func TestDegrees(t *testing.T) {
	g := New()
	g.AddNode("core.py")
	g.AddNode("app.py")
	g.AddNode("lone.py")
	g.AddEdge("core.py", "app.py")

	if g.OutDegree("core.py") != 1 {
		t.Errorf("OutDegree(core.py) = %d, want 1", g.OutDegree("core.py"))
	}
	if g.InDegree("app.py") != 1 {
		t.Errorf("InDegree(app.py) = %d, want 1", g.InDegree("app.py"))
	}
	if !g.IsIsolated("lone.py") {
		t.Error("IsIsolated(lone.py) = false, want true")
	}
	if g.IsIsolated("core.py") {
		t.Error("IsIsolated(core.py) = true, want false")
	}
}

func TestDiscoveryIndex(t *testing.T) {
	g := New()
	g.AddNode("a.py")
	g.AddNode("b.py")

	if i, ok := g.DiscoveryIndex("b.py"); !ok || i != 1 {
		t.Errorf("DiscoveryIndex(b.py) = %d, %v, want 1, true", i, ok)
	}
	if _, ok := g.DiscoveryIndex("missing.py"); ok {
		t.Error("DiscoveryIndex(missing.py) ok = true, want false")
	}
}
