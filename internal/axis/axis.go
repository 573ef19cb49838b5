// Package axis defines the closed configuration axes for a dotforge run.
//
// Every axis is a typed value parsed against an allow-list. Blank input
// falls back to the axis default; anything outside the allow-list is a
// *ConfigurationError, never a silent coercion. Inputs may also be given
// as a 1-based index into the allow-list, which is how the interactive
// prompts submit answers.
package axis

import (
	"fmt"
	"strconv"
	"strings"
)

// Runtime is the .NET target framework moniker for generated projects.
type Runtime string

const (
	RuntimeNet8  Runtime = "net8.0"
	RuntimeNet6  Runtime = "net6.0"
	RuntimeNet48 Runtime = "net48"
)

// Database selects the EF Core provider, or none.
type Database string

const (
	DatabaseNone      Database = "none"
	DatabaseSqlite    Database = "sqlite"
	DatabaseSqlServer Database = "sqlserver"
	DatabasePostgres  Database = "postgres"
)

// UIKit selects the UI surface of the generated program.
type UIKit string

const (
	UIConsole  UIKit = "console"
	UIWPF      UIKit = "wpf"
	UIWinForms UIKit = "winforms"
)

// Pattern selects the architecture pattern the skeleton is shaped around.
type Pattern string

const (
	PatternMVP  Pattern = "mvp"
	PatternMVVM Pattern = "mvvm"
)

// Topology selects single-project or layered multi-project output.
type Topology string

const (
	TopologySingle Topology = "single"
	TopologyMulti  Topology = "multi"
)

// Runtimes, Databases, UIKits, Patterns and Topologies are the allow-lists,
// in prompt display order. The first entry of each list is the default.
var (
	Runtimes   = []Runtime{RuntimeNet8, RuntimeNet6, RuntimeNet48}
	Databases  = []Database{DatabaseNone, DatabaseSqlite, DatabaseSqlServer, DatabasePostgres}
	UIKits     = []UIKit{UIConsole, UIWPF, UIWinForms}
	Patterns   = []Pattern{PatternMVP, PatternMVVM}
	Topologies = []Topology{TopologySingle, TopologyMulti}
)

// ConfigurationError reports an axis value outside its allow-list. It is
// fatal and raised before any mutation.
type ConfigurationError struct {
	Axis    string
	Value   string
	Allowed []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %q (allowed: %s)", e.Axis, e.Value, strings.Join(e.Allowed, ", "))
}

// parseAxis resolves raw against the allow-list: blank → default (first
// entry), a 1-based integer → that entry, otherwise a case-insensitive
// exact match. Anything else is a ConfigurationError.
func parseAxis(axisName, raw string, allowed []string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return allowed[0], nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		if n >= 1 && n <= len(allowed) {
			return allowed[n-1], nil
		}
		return "", &ConfigurationError{Axis: axisName, Value: raw, Allowed: allowed}
	}
	for _, a := range allowed {
		if v == a {
			return a, nil
		}
	}
	return "", &ConfigurationError{Axis: axisName, Value: raw, Allowed: allowed}
}

func strs[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// ParseRuntime resolves a raw runtime selection. Blank → net8.0.
func ParseRuntime(raw string) (Runtime, error) {
	v, err := parseAxis("runtime", raw, strs(Runtimes))
	return Runtime(v), err
}

// ParseDatabase resolves a raw database selection. Blank → none.
func ParseDatabase(raw string) (Database, error) {
	v, err := parseAxis("database", raw, strs(Databases))
	return Database(v), err
}

// ParseUIKit resolves a raw UI toolkit selection. Blank → console.
func ParseUIKit(raw string) (UIKit, error) {
	v, err := parseAxis("ui", raw, strs(UIKits))
	return UIKit(v), err
}

// ParsePattern resolves a raw pattern selection. Blank → mvp.
func ParsePattern(raw string) (Pattern, error) {
	v, err := parseAxis("pattern", raw, strs(Patterns))
	return Pattern(v), err
}

// ParseTopology resolves a raw topology selection. Blank → single.
func ParseTopology(raw string) (Topology, error) {
	v, err := parseAxis("topology", raw, strs(Topologies))
	return Topology(v), err
}
