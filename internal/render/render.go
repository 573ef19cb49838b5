// Package render produces source artifacts by substituting resolved
// configuration into parameterized templates.
//
// Rendering is pure: identical configuration yields byte-identical output.
// The only value allowed to vary between runs is the CreatedAt field,
// which the caller records explicitly; nothing here reads the clock, the
// working directory or any other ambient state.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"dotforge/internal/axis"
	"dotforge/internal/manifest"
	"dotforge/internal/plan"
)

// providerShape holds the provider-specific code shapes: the DbContext
// registration call and the documented connection-string format. Adding a
// provider means adding a row here, not branches in the templates.
type providerShape struct {
	Call string
	Conn string // may contain {name}, replaced with the project name
}

var providerShapes = map[axis.Database]providerShape{
	axis.DatabaseSqlite: {
		Call: "UseSqlite",
		Conn: "Data Source={name}.db",
	},
	axis.DatabaseSqlServer: {
		Call: "UseSqlServer",
		Conn: "Server=localhost;Database={name};Trusted_Connection=True;TrustServerCertificate=True",
	},
	axis.DatabasePostgres: {
		Call: "UseNpgsql",
		Conn: "Host=localhost;Database={name};Username=postgres;Password=postgres",
	},
}

// launchLines maps the UI toolkit to the statement that hands control to
// the initial UI surface.
var launchLines = map[axis.UIKit]string{
	axis.UIConsole:  `System.Console.WriteLine("{name} ready.");`,
	axis.UIWPF:      `new System.Windows.Application().Run(new System.Windows.Window { Title = "{name}" });`,
	axis.UIWinForms: `System.Windows.Forms.Application.Run(new System.Windows.Forms.Form { Text = "{name}" });`,
}

// Renderer renders the file tasks of one plan.
type Renderer struct {
	cfg       axis.Configuration
	plan      *plan.Plan
	createdAt string
}

// New returns a Renderer. createdAt is the explicitly recorded creation
// timestamp written into the runtime configuration file.
func New(cfg axis.Configuration, p *plan.Plan, createdAt string) *Renderer {
	return &Renderer{cfg: cfg, plan: p, createdAt: createdAt}
}

// templateData carries every substitution any template may need.
type templateData struct {
	Namespace         string
	ContextNamespace  string
	TestNamespace     string
	ProviderCall      string
	ConnectionString  string
	RegisterDbContext bool
	SelfConfiguring   bool
	STAThread         bool
	HasDatabase       bool
	Launch            string
	CreatedAt         string
	Solution          string
	EntryProject      string
	EntryBinary       string
	DebugType         string
}

// Render produces the content for one render task.
func (r *Renderer) Render(t plan.FileTask) ([]byte, error) {
	if t.Strategy != plan.StrategyRender {
		return nil, fmt.Errorf("render: task %s has strategy %q", t.Path, t.Strategy)
	}
	name, err := r.templateName(t.Template)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, r.data()); err != nil {
		return nil, fmt.Errorf("render %s: %w", t.Path, err)
	}
	return bytes.TrimLeft(buf.Bytes(), "\n"), nil
}

// templateName resolves a task template identifier to the runtime-specific
// template variant.
func (r *Renderer) templateName(id string) (string, error) {
	variant := "modern"
	if r.cfg.Runtime() == axis.RuntimeNet48 {
		variant = "classic"
	}
	switch id {
	case plan.TemplateProgram:
		return "program-" + variant, nil
	case plan.TemplateDbContext:
		return "dbcontext-" + variant, nil
	case plan.TemplateTestClass:
		return "testclass-" + variant, nil
	case plan.TemplateAppSettings, plan.TemplateVSCodeTasks,
		plan.TemplateVSCodeLaunch, plan.TemplateGitignore:
		return id, nil
	default:
		return "", fmt.Errorf("render: unknown template %q", id)
	}
}

func (r *Renderer) data() templateData {
	cfg := r.cfg
	d := templateData{
		CreatedAt:   r.createdAt,
		HasDatabase: cfg.HasDatabase(),
		Solution:    cfg.Name() + ".sln",
		STAThread:   cfg.UI() == axis.UIWPF || cfg.UI() == axis.UIWinForms,
	}

	entry := r.entryUnit()
	d.Namespace = entry.Name
	d.TestNamespace = cfg.Name() + ".Tests"
	d.Launch = strings.ReplaceAll(launchLines[cfg.UI()], "{name}", cfg.Name())

	if entry.Dir == "." {
		d.EntryProject = entry.Name + ".csproj"
	} else {
		d.EntryProject = entry.Dir + "/" + entry.Name + ".csproj"
	}
	d.EntryBinary = entryBinaryPath(entry, manifest.TargetFramework(cfg.Runtime(), cfg.UI()))
	d.DebugType = "coreclr"
	if cfg.Runtime() == axis.RuntimeNet48 {
		d.DebugType = "clr"
	}

	if cfg.HasDatabase() {
		shape := providerShapes[cfg.Database()]
		d.ProviderCall = shape.Call
		d.ConnectionString = strings.ReplaceAll(shape.Conn, "{name}", cfg.Name())
		if cfg.Topology() == axis.TopologyMulti {
			// The context lives in the data-access unit, out of the entry
			// unit's reference set, so it configures itself.
			d.SelfConfiguring = true
			d.ContextNamespace = cfg.Name() + ".DataAccess"
		} else {
			d.RegisterDbContext = true
			d.ContextNamespace = cfg.Name() + ".DataAccess"
		}
	}
	return d
}

func (r *Renderer) entryUnit() plan.Unit {
	for _, u := range r.plan.Units {
		if u.Layer == plan.LayerPresentation {
			return u
		}
	}
	return r.plan.Units[0]
}

// entryBinaryPath is the debugger launch target for the entry project.
func entryBinaryPath(entry plan.Unit, tfm string) string {
	dir := "${workspaceFolder}"
	if entry.Dir != "." {
		dir += "/" + entry.Dir
	}
	if strings.HasPrefix(tfm, "net4") {
		return dir + "/bin/Debug/" + tfm + "/" + entry.Name + ".exe"
	}
	return dir + "/bin/Debug/" + tfm + "/" + entry.Name + ".dll"
}
