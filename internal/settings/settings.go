// Package settings loads dotforge configuration from .dotforge/settings.yaml.
//
// The settings file supplies per-axis defaults applied to selections the
// caller leaves blank, and the location of the standards corpus consumed
// by the linker. A missing file is not an error; everything falls back to
// the built-in axis defaults.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dotforge/internal/axis"
)

// Defaults holds per-axis default selections. Values are validated the
// same way as direct input: an invalid default is a configuration error
// at resolve time, never a silent coercion.
type Defaults struct {
	Runtime  string `yaml:"runtime"`
	Database string `yaml:"database"`
	UI       string `yaml:"ui"`
	Pattern  string `yaml:"pattern"`
	Topology string `yaml:"topology"`
}

// Settings holds dotforge configuration from .dotforge/settings.yaml.
type Settings struct {
	Defaults Defaults `yaml:"defaults"`

	// StandardsRepo is the directory holding the advisory standards
	// corpus to attach to generated projects.
	StandardsRepo string `yaml:"standards_repo"`
}

// Load reads .dotforge/settings.yaml relative to root.
// Returns nil (not an error) if the file does not exist.
func Load(root string) (*Settings, error) {
	path := filepath.Join(root, ".dotforge", "settings.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &s, nil
}

// ApplyTo fills blank axis selections in raw from the settings defaults.
// Safe to call on a nil *Settings receiver.
func (s *Settings) ApplyTo(raw *axis.RawInput) {
	if s == nil {
		return
	}
	fill(&raw.Runtime, s.Defaults.Runtime)
	fill(&raw.Database, s.Defaults.Database)
	fill(&raw.UI, s.Defaults.UI)
	fill(&raw.Pattern, s.Defaults.Pattern)
	fill(&raw.Topology, s.Defaults.Topology)
}

// Standards returns the configured standards corpus directory, resolved
// against root when relative. Safe on a nil receiver.
func (s *Settings) Standards(root string) string {
	if s == nil || s.StandardsRepo == "" {
		return ""
	}
	if filepath.IsAbs(s.StandardsRepo) {
		return filepath.Clean(s.StandardsRepo)
	}
	return filepath.Clean(filepath.Join(root, s.StandardsRepo))
}

func fill(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
