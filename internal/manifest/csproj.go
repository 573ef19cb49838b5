package manifest

// csproj.go — SDK-style project file emission.
//
// One csproj per compilation unit. ProjectReference entries mirror the
// plan's validated edges exactly; package pins come from the tables in
// table.go. Output is deterministic for a given configuration.

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"dotforge/internal/axis"
	"dotforge/internal/plan"
)

var csprojTmpl = template.Must(template.New("csproj").Parse(`<Project Sdk="Microsoft.NET.Sdk">

  <PropertyGroup>
{{- if .OutputType}}
    <OutputType>{{.OutputType}}</OutputType>
{{- end}}
    <TargetFramework>{{.TargetFramework}}</TargetFramework>
    <RootNamespace>{{.RootNamespace}}</RootNamespace>
{{- if .UseWPF}}
    <UseWPF>true</UseWPF>
{{- end}}
{{- if .UseWinForms}}
    <UseWindowsForms>true</UseWindowsForms>
{{- end}}
{{- if .Modern}}
    <ImplicitUsings>enable</ImplicitUsings>
    <Nullable>enable</Nullable>
{{- end}}
{{- if .IsTest}}
    <IsPackable>false</IsPackable>
{{- end}}
  </PropertyGroup>
{{- if .Packages}}

  <ItemGroup>
{{- range .Packages}}
    <PackageReference Include="{{.ID}}" Version="{{.Version}}" />
{{- end}}
  </ItemGroup>
{{- end}}
{{- if .References}}

  <ItemGroup>
{{- range .References}}
    <ProjectReference Include="{{.}}" />
{{- end}}
  </ItemGroup>
{{- end}}

</Project>
`))

type csprojData struct {
	OutputType      string
	TargetFramework string
	RootNamespace   string
	UseWPF          bool
	UseWinForms     bool
	Modern          bool
	IsTest          bool
	Packages        []PackageRef
	References      []string
}

// Csproj renders the project manifest for one unit of the plan.
func Csproj(cfg axis.Configuration, p *plan.Plan, unit plan.Unit) ([]byte, error) {
	d := csprojData{
		TargetFramework: TargetFramework(cfg.Runtime(), cfg.UI()),
		RootNamespace:   unit.Name,
		Modern:          cfg.Runtime() != axis.RuntimeNet48,
		IsTest:          unit.Layer == plan.LayerTest,
	}

	entry := unit.Layer == plan.LayerApp || unit.Layer == plan.LayerPresentation
	if entry {
		if cfg.UI() == axis.UIWPF || cfg.UI() == axis.UIWinForms {
			d.OutputType = "WinExe"
		} else {
			d.OutputType = "Exe"
		}
		d.UseWPF = cfg.UI() == axis.UIWPF
		d.UseWinForms = cfg.UI() == axis.UIWinForms
		d.Packages = append(d.Packages, hostPackages[cfg.Runtime()]...)
	}

	// The EF provider lands where the DbContext lives: the data-access
	// unit in multi topology, the entry unit in single topology.
	if cfg.HasDatabase() {
		holdsContext := unit.Layer == plan.LayerData ||
			(unit.Layer == plan.LayerApp && cfg.Topology() == axis.TopologySingle)
		if holdsContext {
			if ref, ok := ProviderPackage(cfg.Database(), cfg.Runtime()); ok {
				d.Packages = append(d.Packages, ref)
			}
		}
	}
	if d.IsTest {
		d.Packages = append(d.Packages, testPackages...)
	}

	for _, e := range p.Edges {
		if e.From != unit.Name {
			continue
		}
		to, ok := p.Unit(e.To)
		if !ok {
			return nil, fmt.Errorf("manifest: edge to unknown unit %q", e.To)
		}
		d.References = append(d.References, referencePath(unit, to))
	}

	var buf bytes.Buffer
	if err := csprojTmpl.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("manifest: render %s.csproj: %w", unit.Name, err)
	}
	return buf.Bytes(), nil
}

// referencePath computes the ProjectReference path from one unit directory
// to another unit's csproj. Forward slashes; MSBuild normalizes.
func referencePath(from, to plan.Unit) string {
	target := to.Name + ".csproj"
	if to.Dir != "." {
		target = to.Dir + "/" + target
	}
	if from.Dir == "." {
		return target
	}
	depth := strings.Count(from.Dir, "/") + 1
	return strings.Repeat("../", depth) + target
}
