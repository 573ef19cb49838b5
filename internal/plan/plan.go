// Package plan derives the immutable generation plan from a frozen
// configuration.
//
// A Plan enumerates the compilation units, their permitted dependency
// edges and the ordered list of file tasks. It is computed once per run
// and never mutated; a changed configuration requires a fresh Plan.
// Building the same configuration twice yields structurally identical
// plans.
package plan

import (
	"fmt"
	"path"

	"dotforge/internal/axis"
)

// Layer classifies a compilation unit for dependency validation.
type Layer string

const (
	LayerApp          Layer = "app" // single-topology catch-all unit
	LayerPresentation Layer = "presentation"
	LayerBusiness     Layer = "business"
	LayerDomain       Layer = "domain"
	LayerData         Layer = "data"
	LayerTest         Layer = "test"
)

// Unit is one independently buildable project in the generated solution.
type Unit struct {
	Name    string // project name, also the csproj base name
	Layer   Layer
	Dir     string   // directory relative to the target root ("." for single)
	Folders []string // conventional sub-folders created inside Dir
}

// Edge is a permitted project reference: From depends on To.
type Edge struct {
	From string
	To   string
}

// Plan is the derived, immutable generation artifact.
type Plan struct {
	Units []Unit
	Edges []Edge
	Tasks []FileTask
}

// Unit returns the unit with the given name, if present.
func (p *Plan) Unit(name string) (Unit, bool) {
	for _, u := range p.Units {
		if u.Name == name {
			return u, true
		}
	}
	return Unit{}, false
}

// presentationFolders returns the pattern-conditioned folder set for the
// unit that hosts the UI surface. A presenter-based pattern adds
// coordinator and view-contract folders; the binding-heavy pattern adds a
// view-model folder instead.
func presentationFolders(p axis.Pattern) []string {
	switch p {
	case axis.PatternMVVM:
		return []string{"Views", "ViewModels"}
	default:
		return []string{"Views", "ViewContracts", "Coordinators"}
	}
}

// Build derives the Plan for cfg. The returned edge set is validated to be
// acyclic and layer-respecting; a violation is an internal defect and
// surfaces as an error rather than an invalid plan.
func Build(cfg axis.Configuration) (*Plan, error) {
	var p Plan
	switch cfg.Topology() {
	case axis.TopologyMulti:
		buildMulti(cfg, &p)
	default:
		buildSingle(cfg, &p)
	}
	if cfg.Tests() {
		addTestUnit(cfg, &p)
	}
	if err := validateEdges(p.Units, p.Edges); err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	p.Tasks = buildTasks(cfg, &p)
	return &p, nil
}

// buildSingle emits exactly one unit holding all conventional sub-folders.
func buildSingle(cfg axis.Configuration, p *Plan) {
	folders := []string{"Models", "Services"}
	if cfg.HasDatabase() {
		folders = append(folders, "DataAccess")
	}
	folders = append(folders, "Presentation")
	for _, f := range presentationFolders(cfg.Pattern()) {
		if f == "Views" {
			continue // Presentation already hosts the views in single topology
		}
		folders = append(folders, f)
	}
	folders = append(folders, "Utilities")

	p.Units = []Unit{{
		Name:    cfg.Name(),
		Layer:   LayerApp,
		Dir:     ".",
		Folders: folders,
	}}
}

// buildMulti emits one unit per architectural layer plus the validated
// dependency edges between them.
func buildMulti(cfg axis.Configuration, p *Plan) {
	name := cfg.Name()
	domain := name + ".Domain"
	business := name + ".Business"
	presentation := name + ".Presentation"

	p.Units = append(p.Units,
		Unit{Name: presentation, Layer: LayerPresentation, Dir: presentation,
			Folders: presentationFolders(cfg.Pattern())},
		Unit{Name: business, Layer: LayerBusiness, Dir: business,
			Folders: []string{"Services"}},
		Unit{Name: domain, Layer: LayerDomain, Dir: domain,
			Folders: []string{"Models"}},
	)
	p.Edges = append(p.Edges,
		Edge{From: presentation, To: domain},
		Edge{From: presentation, To: business},
		Edge{From: business, To: domain},
	)
	if cfg.HasDatabase() {
		data := name + ".DataAccess"
		p.Units = append(p.Units, Unit{Name: data, Layer: LayerData, Dir: data,
			Folders: []string{"Repositories"}})
		p.Edges = append(p.Edges, Edge{From: data, To: domain})
	}
}

// addTestUnit appends the xUnit project. Tests may reference every
// application unit.
func addTestUnit(cfg axis.Configuration, p *Plan) {
	name := cfg.Name() + ".Tests"
	unit := Unit{Name: name, Layer: LayerTest, Dir: name}
	apps := make([]Edge, 0, len(p.Units))
	for _, u := range p.Units {
		apps = append(apps, Edge{From: name, To: u.Name})
	}
	p.Units = append(p.Units, unit)
	p.Edges = append(p.Edges, apps...)
}

// unitPath joins a unit-relative file path against the unit directory.
func unitPath(u Unit, parts ...string) string {
	return path.Join(append([]string{u.Dir}, parts...)...)
}
