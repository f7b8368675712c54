package module

import (
	"reflect"
	"testing"
)

// tableOf builds a table from path -> content, preserving the given order.
func tableOf(entries [][2]string) *Table {
	table := NewTable()
	ex := LineExtractor{}
	for _, e := range entries {
		extraction := ex.Extract(e[1])
		table.Add(&Record{
			Path:      e[0],
			Content:   e[1],
			Imports:   extraction.Imports,
			Classes:   extraction.Classes,
			Functions: extraction.Functions,
		})
	}
	return table
}

func TestBuild_RelativeChain(t *testing.T) {
	// b imports a, c imports b, all at the root via single-dot imports.
	table := tableOf([][2]string{
		{"a.py", "class Base:\n    pass\n"},
		{"b.py", "from .a import Base\n"},
		{"c.py", "from .b import Derived\n"},
	})

	g := NewBuilder(table, nil).Build()

	if !g.HasEdge("a.py", "b.py") {
		t.Error("missing edge a.py -> b.py")
	}
	if !g.HasEdge("b.py", "c.py") {
		t.Error("missing edge b.py -> c.py")
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}

	ord := g.TopoSort()
	want := []string{"a.py", "b.py", "c.py"}
	if !reflect.DeepEqual(ord.Order, want) {
		t.Errorf("TopoSort() order = %v, want %v", ord.Order, want)
	}
}

func TestBuild_MutualImportsCycle(t *testing.T) {
	table := tableOf([][2]string{
		{"a.py", "from .b import beta\n"},
		{"b.py", "from .a import alpha\n"},
	})

	g := NewBuilder(table, nil).Build()
	ord := g.TopoSort()

	if !ord.HasCycles() {
		t.Fatal("TopoSort() reported no cycles for mutual imports")
	}
	if want := []string{"a.py", "b.py"}; !reflect.DeepEqual(ord.Order, want) {
		t.Errorf("fallback order = %v, want discovery order %v", ord.Order, want)
	}
	if want := [][]string{{"a.py", "b.py"}}; !reflect.DeepEqual(ord.Cycles, want) {
		t.Errorf("cycles = %v, want %v", ord.Cycles, want)
	}
}

func TestBuild_RelativeAscendsPerDot(t *testing.T) {
	// Each dot ascends one level from the importing module's directory: one
	// dot from pkg/ reaches the root, two dots from pkg/sub/ reach it too.
	table := tableOf([][2]string{
		{"core.py", "class Engine:\n    pass\n"},
		{"pkg/app.py", "from .core import Engine\n"},
		{"pkg/sub/deep.py", "from ..core import Engine\n"},
	})

	g := NewBuilder(table, nil).Build()

	if !g.HasEdge("core.py", "pkg/app.py") {
		t.Error("missing edge core.py -> pkg/app.py (single dot)")
	}
	if !g.HasEdge("core.py", "pkg/sub/deep.py") {
		t.Error("missing edge core.py -> pkg/sub/deep.py (double dot)")
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestBuild_BareRelativeDotTargetsInit(t *testing.T) {
	table := tableOf([][2]string{
		{"__init__.py", ""},
		{"app.py", "from . import helpers\n"},
	})

	g := NewBuilder(table, nil).Build()
	if !g.HasEdge("__init__.py", "app.py") {
		t.Error("missing edge __init__.py -> app.py")
	}
}

func TestBuild_UnresolvableRelativeDropped(t *testing.T) {
	// Three dots from a root-level module exceed the available depth.
	table := tableOf([][2]string{
		{"a.py", "from ...nowhere import thing\n"},
		{"b.py", "from .missing import thing\n"},
	})

	g := NewBuilder(table, nil).Build()
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0 (unresolvable imports dropped)", g.EdgeCount())
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2 (all modules stay in the graph)", g.NodeCount())
	}
}

func TestBuild_AbsoluteSuffixMatch(t *testing.T) {
	table := tableOf([][2]string{
		{"pkg/util.py", "def helper():\n    pass\n"},
		{"app.py", "import pkg.util\n"},
	})

	g := NewBuilder(table, nil).Build()
	if !g.HasEdge("pkg/util.py", "app.py") {
		t.Error("missing edge pkg/util.py -> app.py")
	}
}

func TestBuild_AbsoluteOverlappingSuffixes(t *testing.T) {
	// "import util" matches every module whose path ends in /util.py plus a
	// root-level util.py.
	table := tableOf([][2]string{
		{"util.py", ""},
		{"pkg/util.py", ""},
		{"app.py", "import util\n"},
	})

	g := NewBuilder(table, nil).Build()
	if !g.HasEdge("util.py", "app.py") {
		t.Error("missing edge util.py -> app.py")
	}
	if !g.HasEdge("pkg/util.py", "app.py") {
		t.Error("missing edge pkg/util.py -> app.py")
	}
}

func TestBuild_ComponentBoundaryOnly(t *testing.T) {
	// "import il" must not match util.py on a partial-filename basis.
	table := tableOf([][2]string{
		{"util.py", ""},
		{"app.py", "import il\n"},
	})

	g := NewBuilder(table, nil).Build()
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0 (partial filename must not match)", g.EdgeCount())
	}
}

func TestBuild_ExternalImportsAddNothing(t *testing.T) {
	table := tableOf([][2]string{
		{"app.py", "import numpy\nfrom scipy import stats\n"},
	})

	g := NewBuilder(table, nil).Build()
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestBuild_SelfResolutionSkipped(t *testing.T) {
	// A module whose import resolves back to itself adds no edge.
	table := tableOf([][2]string{
		{"pkg/util.py", "import pkg.util\n"},
	})

	g := NewBuilder(table, nil).Build()
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}
