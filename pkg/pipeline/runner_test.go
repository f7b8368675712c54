package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writeSource lays out a small project with a dependency chain and one
// external import.
func writeSource(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRun_EndToEnd(t *testing.T) {
	root := writeSource(t, map[string]string{
		"a.py": "import numpy\n\nclass Base:\n    pass\n",
		"b.py": "from .a import Base\n\nclass Derived(Base):\n    pass\n",
		"c.py": "from .b import Derived\n\ndef main():\n    pass\n",
	})

	res, err := NewRunner(nil).Run(context.Background(), Options{Root: root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Stats.ModuleCount != 3 {
		t.Errorf("ModuleCount = %d, want 3", res.Stats.ModuleCount)
	}
	if res.Stats.EdgeCount != 2 {
		t.Errorf("EdgeCount = %d, want 2", res.Stats.EdgeCount)
	}
	if res.Stats.CycleCount != 0 {
		t.Errorf("CycleCount = %d, want 0", res.Stats.CycleCount)
	}
	if want := []string{"a.py", "b.py", "c.py"}; !reflect.DeepEqual(res.Ordering.Order, want) {
		t.Errorf("Ordering.Order = %v, want %v", res.Ordering.Order, want)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}

	// Dependencies precede dependents in the artifact body.
	posA := strings.Index(res.Artifact, "# From a.py")
	posB := strings.Index(res.Artifact, "# From b.py")
	posC := strings.Index(res.Artifact, "# From c.py")
	if posA < 0 || posB < 0 || posC < 0 || !(posA < posB && posB < posC) {
		t.Errorf("artifact module order wrong: a=%d b=%d c=%d", posA, posB, posC)
	}
	if !strings.Contains(res.Artifact, "import numpy") {
		t.Error("artifact missing hoisted external import")
	}
	if !strings.Contains(res.Artifact, `"""RELATIVE_IMPORT:`) {
		t.Error("artifact missing neutralized relative import block")
	}
	if !strings.Contains(res.Artifact, "Directory Structure:") {
		t.Error("artifact missing directory-structure block")
	}
	if !strings.Contains(res.Artifact, "Legend:") {
		t.Error("artifact missing dependency-diagram legend")
	}
}

func TestRun_CycleFallsBackToDiscoveryOrder(t *testing.T) {
	root := writeSource(t, map[string]string{
		"a.py": "from .b import beta\n",
		"b.py": "from .a import alpha\n",
	})

	res, err := NewRunner(nil).Run(context.Background(), Options{Root: root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Stats.CycleCount != 1 {
		t.Errorf("CycleCount = %d, want 1", res.Stats.CycleCount)
	}
	if want := []string{"a.py", "b.py"}; !reflect.DeepEqual(res.Ordering.Order, want) {
		t.Errorf("fallback order = %v, want %v", res.Ordering.Order, want)
	}
	// Both modules still appear exactly once.
	for _, p := range []string{"a.py", "b.py"} {
		if n := strings.Count(res.Artifact, "# From "+p); n != 1 {
			t.Errorf("module %s emitted %d times, want 1", p, n)
		}
	}
}

func TestRun_InterfaceLevelElidesBodies(t *testing.T) {
	root := writeSource(t, map[string]string{
		"engine.py": "class Engine:\n    def start(self):\n        self.running = True\n",
	})

	res, err := NewRunner(nil).Run(context.Background(), Options{Root: root, Level: "interface"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.Contains(res.Artifact, "class Engine:") {
		t.Error("artifact missing class header")
	}
	if !strings.Contains(res.Artifact, "... # Class interface preserved") {
		t.Error("artifact missing elision placeholder")
	}
	if strings.Contains(res.Artifact, "self.running = True") {
		t.Error("artifact kept an elided body")
	}
}

func TestRun_ExclusionSkipsModules(t *testing.T) {
	root := writeSource(t, map[string]string{
		"app.py":        "import os\n",
		"tests/test.py": "import app\n",
	})

	res, err := NewRunner(nil).Run(context.Background(), Options{
		Root:    root,
		Exclude: []string{"tests/"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Stats.ModuleCount != 1 {
		t.Errorf("ModuleCount = %d, want 1", res.Stats.ModuleCount)
	}
	// The directory-structure block still shows the full tree; the excluded
	// module's content must not be emitted.
	if strings.Contains(res.Artifact, "# From tests/test.py") {
		t.Error("artifact emitted an excluded module")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	root := writeSource(t, map[string]string{"a.py": "pass\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewRunner(nil).Run(ctx, Options{Root: root}); err == nil {
		t.Error("Run() error = nil, want context cancellation")
	}
}

func TestReport_Sections(t *testing.T) {
	root := writeSource(t, map[string]string{
		"a.py": "class Base:\n    pass\n",
		"b.py": "from .a import Base\n\ndef run():\n    pass\n",
	})

	res, err := NewRunner(nil).Run(context.Background(), Options{Root: root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	report := Report(res)
	for _, want := range []string{
		"Dependency Analysis Report",
		"Modules:  2",
		"Edges:    1",
		"Dependency Chains",
		"a.py (no internal dependencies)",
		"<- a.py",
		"Module Details",
		"classes: Base",
		"functions: run",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Report() missing %q:\n%s", want, report)
		}
	}
}

func TestReport_CycleWarning(t *testing.T) {
	root := writeSource(t, map[string]string{
		"a.py": "from .b import x\n",
		"b.py": "from .a import y\n",
	})

	res, err := NewRunner(nil).Run(context.Background(), Options{Root: root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	report := Report(res)
	if !strings.Contains(report, "Circular Dependencies") {
		t.Errorf("Report() missing cycle section:\n%s", report)
	}
	if !strings.Contains(report, "a.py -> b.py -> a.py") {
		t.Errorf("Report() missing cycle chain:\n%s", report)
	}
}
