package axis

// axis_test.go — Tests for per-axis parsing: defaults, indexed selection,
// and the closed allow-lists.

import (
	"errors"
	"testing"
)

func TestParseRuntime(t *testing.T) {
	tests := []struct {
		input   string
		want    Runtime
		wantErr bool
	}{
		// Blank falls back to the documented default.
		{"", RuntimeNet8, false},
		// Exact values, case-insensitive, whitespace tolerated.
		{"net8.0", RuntimeNet8, false},
		{"NET6.0", RuntimeNet6, false},
		{"  net48  ", RuntimeNet48, false},
		// 1-based index into the allow-list.
		{"1", RuntimeNet8, false},
		{"3", RuntimeNet48, false},
		// Out-of-range index and unknown values are fatal.
		{"0", "", true},
		{"4", "", true},
		{"net5.0", "", true},
		{"latest", "", true},
	}
	for _, tc := range tests {
		got, err := ParseRuntime(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRuntime(%q) = %q, want error", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRuntime(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRuntime(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseDefaults(t *testing.T) {
	// The first entry of each allow-list is the blank-input default.
	if v, _ := ParseDatabase(""); v != DatabaseNone {
		t.Errorf("default database = %q, want %q", v, DatabaseNone)
	}
	if v, _ := ParseUIKit(""); v != UIConsole {
		t.Errorf("default ui = %q, want %q", v, UIConsole)
	}
	if v, _ := ParsePattern(""); v != PatternMVP {
		t.Errorf("default pattern = %q, want %q", v, PatternMVP)
	}
	if v, _ := ParseTopology(""); v != TopologySingle {
		t.Errorf("default topology = %q, want %q", v, TopologySingle)
	}
}

func TestParseInvalidIsConfigurationError(t *testing.T) {
	_, err := ParseDatabase("oracle")
	if err == nil {
		t.Fatal("expected error for unknown database")
	}
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigurationError, got %T", err)
	}
	if ce.Axis != "database" || ce.Value != "oracle" {
		t.Errorf("ConfigurationError = %+v, want axis=database value=oracle", ce)
	}
	if len(ce.Allowed) != len(Databases) {
		t.Errorf("allowed list has %d entries, want %d", len(ce.Allowed), len(Databases))
	}
}

func TestIndexedSelectionEveryAxis(t *testing.T) {
	// "2" selects the second entry of every allow-list.
	if v, _ := ParseDatabase("2"); v != DatabaseSqlite {
		t.Errorf("database index 2 = %q, want sqlite", v)
	}
	if v, _ := ParseUIKit("2"); v != UIWPF {
		t.Errorf("ui index 2 = %q, want wpf", v)
	}
	if v, _ := ParsePattern("2"); v != PatternMVVM {
		t.Errorf("pattern index 2 = %q, want mvvm", v)
	}
	if v, _ := ParseTopology("2"); v != TopologyMulti {
		t.Errorf("topology index 2 = %q, want multi", v)
	}
}
