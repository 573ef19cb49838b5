package axis

// resolve.go — turns raw per-axis selections into a frozen Configuration.
//
// Interactive and non-interactive entry points both funnel through Resolve;
// they only differ in how RawInput is collected. Unsupported cross-axis
// combinations are downgraded to the nearest supported option and recorded
// as warnings, never dropped silently.

import (
	"fmt"
	"strings"
)

// RawInput carries the unvalidated per-axis selections. String fields may be
// blank (use the default), an allow-list value, or a 1-based index.
type RawInput struct {
	Name      string
	Runtime   string
	Database  string
	UI        string
	Pattern   string
	Topology  string
	Tests     bool
	Standards bool
}

// Configuration is the frozen, validated set of choices for one run.
// Every represented combination is valid; downgrades happen in Resolve
// before the value is ever constructed.
type Configuration struct {
	name      string
	runtime   Runtime
	database  Database
	ui        UIKit
	pattern   Pattern
	topology  Topology
	tests     bool
	standards bool
}

func (c Configuration) Name() string       { return c.name }
func (c Configuration) Runtime() Runtime   { return c.runtime }
func (c Configuration) Database() Database { return c.database }
func (c Configuration) UI() UIKit          { return c.ui }
func (c Configuration) Pattern() Pattern   { return c.pattern }
func (c Configuration) Topology() Topology { return c.topology }
func (c Configuration) Tests() bool        { return c.tests }
func (c Configuration) Standards() bool    { return c.standards }

// HasDatabase reports whether a data-access layer is part of the output.
func (c Configuration) HasDatabase() bool { return c.database != DatabaseNone }

// Summary returns the human-readable confirmation text shown before
// generation begins.
func (c Configuration) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "project:   %s\n", c.name)
	fmt.Fprintf(&sb, "runtime:   %s\n", c.runtime)
	fmt.Fprintf(&sb, "database:  %s\n", c.database)
	fmt.Fprintf(&sb, "ui:        %s\n", c.ui)
	fmt.Fprintf(&sb, "pattern:   %s\n", c.pattern)
	fmt.Fprintf(&sb, "topology:  %s\n", c.topology)
	fmt.Fprintf(&sb, "tests:     %v\n", c.tests)
	fmt.Fprintf(&sb, "standards: %v\n", c.standards)
	return sb.String()
}

// Downgrade warning strings. These exact strings are part of the tool's
// user-facing contract; the prompts and docs reference them.
const (
	WarnMVVMLegacyRuntime = "pattern mvvm is not supported on net48; downgraded to mvp"
	WarnMVVMWinForms      = "pattern mvvm requires a XAML binding surface; downgraded to mvp for winforms"
)

// downgradeRule substitutes an unsupported combination with the nearest
// supported one. Rules run in order against the candidate configuration.
type downgradeRule struct {
	applies func(c *Configuration) bool
	apply   func(c *Configuration)
	warning string
}

var downgradeRules = []downgradeRule{
	{
		applies: func(c *Configuration) bool { return c.pattern == PatternMVVM && c.runtime == RuntimeNet48 },
		apply:   func(c *Configuration) { c.pattern = PatternMVP },
		warning: WarnMVVMLegacyRuntime,
	},
	{
		applies: func(c *Configuration) bool { return c.pattern == PatternMVVM && c.ui == UIWinForms },
		apply:   func(c *Configuration) { c.pattern = PatternMVP },
		warning: WarnMVVMWinForms,
	},
}

// Resolve validates raw input, applies the downgrade table and freezes the
// result. The returned warnings list carries one entry per downgrade; it is
// never fatal. Any invalid axis value aborts with a *ConfigurationError.
func Resolve(raw RawInput) (Configuration, []string, error) {
	name := strings.TrimSpace(raw.Name)
	if err := validateName(name); err != nil {
		return Configuration{}, nil, err
	}

	var c Configuration
	var err error
	c.name = name
	if c.runtime, err = ParseRuntime(raw.Runtime); err != nil {
		return Configuration{}, nil, err
	}
	if c.database, err = ParseDatabase(raw.Database); err != nil {
		return Configuration{}, nil, err
	}
	if c.ui, err = ParseUIKit(raw.UI); err != nil {
		return Configuration{}, nil, err
	}
	if c.pattern, err = ParsePattern(raw.Pattern); err != nil {
		return Configuration{}, nil, err
	}
	if c.topology, err = ParseTopology(raw.Topology); err != nil {
		return Configuration{}, nil, err
	}
	c.tests = raw.Tests
	c.standards = raw.Standards

	var warnings []string
	for _, rule := range downgradeRules {
		if rule.applies(&c) {
			rule.apply(&c)
			warnings = append(warnings, rule.warning)
		}
	}
	return c, warnings, nil
}

// validateName enforces that the project name is usable as a solution and
// C# namespace root: letters, digits, '.', '_', starting with a letter.
func validateName(name string) error {
	if name == "" {
		return &ConfigurationError{Axis: "name", Value: name, Allowed: []string{"a non-empty project name"}}
	}
	for i, r := range name {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(i > 0 && (r == '.' || r == '_' || (r >= '0' && r <= '9')))
		if !ok {
			return &ConfigurationError{
				Axis:    "name",
				Value:   name,
				Allowed: []string{"letters, digits, '.' and '_', starting with a letter"},
			}
		}
	}
	return nil
}
