package axis

// resolve_test.go — Tests for Resolve: freezing, downgrade rules and the
// warnings contract.

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	cfg, warnings, err := Resolve(RawInput{Name: "Demo"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if cfg.Name() != "Demo" {
		t.Errorf("name = %q, want Demo", cfg.Name())
	}
	if cfg.Runtime() != RuntimeNet8 || cfg.Database() != DatabaseNone ||
		cfg.UI() != UIConsole || cfg.Pattern() != PatternMVP ||
		cfg.Topology() != TopologySingle {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.HasDatabase() {
		t.Error("HasDatabase() = true for database none")
	}
}

// TestResolveDowngradeLegacyRuntime covers the binding-heavy pattern
// against the legacy runtime: mvvm downgrades to mvp with the documented
// warning string appended.
func TestResolveDowngradeLegacyRuntime(t *testing.T) {
	cfg, warnings, err := Resolve(RawInput{Name: "Demo", Pattern: "mvvm", Runtime: "net48"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Pattern() != PatternMVP {
		t.Errorf("pattern = %q, want mvp after downgrade", cfg.Pattern())
	}
	if len(warnings) != 1 || warnings[0] != WarnMVVMLegacyRuntime {
		t.Errorf("warnings = %v, want [%q]", warnings, WarnMVVMLegacyRuntime)
	}
}

func TestResolveDowngradeWinForms(t *testing.T) {
	cfg, warnings, err := Resolve(RawInput{Name: "Demo", Pattern: "mvvm", UI: "winforms"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Pattern() != PatternMVP {
		t.Errorf("pattern = %q, want mvp after downgrade", cfg.Pattern())
	}
	if len(warnings) != 1 || warnings[0] != WarnMVVMWinForms {
		t.Errorf("warnings = %v, want [%q]", warnings, WarnMVVMWinForms)
	}
}

// TestResolveNoDowngradeForSupportedCombo guards against over-eager rules:
// mvvm on a modern runtime with wpf is supported and must survive intact.
func TestResolveNoDowngradeForSupportedCombo(t *testing.T) {
	cfg, warnings, err := Resolve(RawInput{Name: "Demo", Pattern: "mvvm", Runtime: "net8.0", UI: "wpf"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Pattern() != PatternMVVM {
		t.Errorf("pattern = %q, want mvvm untouched", cfg.Pattern())
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestResolveInvalidAxisFatal(t *testing.T) {
	_, _, err := Resolve(RawInput{Name: "Demo", Database: "mongodb"})
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
}

func TestResolveNameValidation(t *testing.T) {
	// Names must start with a letter: a leading '.', '_' or digit would
	// produce an invalid C# namespace root (or, for ".", scaffold into the
	// invoking directory itself).
	bad := []string{"", "  ", "1App", "My App", "app/x", "app-x", ".", "_", ".Shop", "_Shop"}
	for _, name := range bad {
		if _, _, err := Resolve(RawInput{Name: name}); err == nil {
			t.Errorf("Resolve accepted invalid name %q", name)
		}
	}
	good := []string{"App", "My.App", "my_app", "App2"}
	for _, name := range good {
		if _, _, err := Resolve(RawInput{Name: name}); err != nil {
			t.Errorf("Resolve rejected valid name %q: %v", name, err)
		}
	}
}

func TestSummaryContainsEveryAxis(t *testing.T) {
	cfg, _, err := Resolve(RawInput{Name: "Demo", Database: "sqlite", Topology: "multi"})
	if err != nil {
		t.Fatal(err)
	}
	summary := cfg.Summary()
	for _, want := range []string{"Demo", "net8.0", "sqlite", "console", "mvp", "multi"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}
