package summary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pyfold/pyfold/pkg/errors"
)

func TestRuleCompile_InvalidPattern(t *testing.T) {
	rule := Rule{Pattern: `(unclosed`, Replacement: `${1}:`}
	if err := rule.Compile(); err == nil {
		t.Error("Compile() error = nil, want pattern failure")
	}
}

func TestRuleCompile_InvalidBodyMode(t *testing.T) {
	rule := Rule{Pattern: `^class`, Body: "lines"}
	if err := rule.Compile(); err == nil {
		t.Error("Compile() error = nil, want body mode failure")
	}
}

func TestRuleCompile_DefaultsToBlock(t *testing.T) {
	rule := Rule{Pattern: `^class`}
	if err := rule.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if rule.Body != BodyBlock {
		t.Errorf("Body = %q, want %q", rule.Body, BodyBlock)
	}
}

func TestForLevel(t *testing.T) {
	rs := DefaultRules()

	if got := rs.ForLevel(LevelNone); got != nil {
		t.Errorf("ForLevel(none) = %v, want nil", got)
	}
	if got := rs.ForLevel(LevelInterface); len(got) != len(rs.Interface) {
		t.Errorf("ForLevel(interface) returned %d rules, want %d", len(got), len(rs.Interface))
	}
	core := rs.ForLevel(LevelCore)
	if len(core) != len(rs.Interface)+len(rs.Core) {
		t.Errorf("ForLevel(core) returned %d rules, want %d", len(core), len(rs.Interface)+len(rs.Core))
	}
	// Interface rules run before core rules.
	if core[0].Explanation != rs.Interface[0].Explanation {
		t.Errorf("ForLevel(core)[0] = %q, want first interface rule", core[0].Explanation)
	}
}

func TestLoadRules_ReplacesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	content := `
[[interface]]
pattern = '^(class\s+\w+)\s*:'
replacement = '${1}:'
explanation = "Custom class rule"

[[core]]
pattern = '^([ \t]*def\s+__init__\s*\([^)]*\))\s*:'
replacement = '${1}:'
explanation = "Custom init rule"
body = "block"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rs, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if len(rs.Interface) != 1 || len(rs.Core) != 1 {
		t.Fatalf("LoadRules() = %d interface, %d core rules, want 1 and 1", len(rs.Interface), len(rs.Core))
	}

	got := rs.Interface[0].Apply("class Engine:\n    pass")
	want := "class Engine:\n    ... # Custom class rule"
	if got != want {
		t.Errorf("custom rule Apply() =\n%q\nwant\n%q", got, want)
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("LoadRules() error = nil, want failure")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidRules {
		t.Errorf("GetCode(err) = %v, want ErrCodeInvalidRules", code)
	}
}

func TestLoadRules_BadPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	content := `
[[interface]]
pattern = '(unclosed'
replacement = '${1}:'
explanation = "broken"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRules(path); err == nil {
		t.Error("LoadRules() error = nil, want compile failure")
	}
}
