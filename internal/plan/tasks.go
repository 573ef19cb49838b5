package plan

// tasks.go — the ordered file-task list derived from the unit layout.
//
// Tasks are consumed once per run and discarded after commit. Each task
// carries an idempotency key; duplicate keys are dropped at build time so
// an update-style rerun cannot apply the same mutation twice.

// Strategy is the generation strategy for one file task.
type Strategy string

const (
	StrategyMkDir    Strategy = "mkdir"    // directory creation
	StrategyManifest Strategy = "manifest" // build manifest (sln / csproj)
	StrategyRender   Strategy = "render"   // template substitution
	StrategyCopy     Strategy = "copy"     // verbatim copy (advisory content)
)

// FileTask is one unit of generation work.
type FileTask struct {
	Path     string // relative to the target root, forward slashes
	Strategy Strategy
	Template string // render template identifier (StrategyRender only)
	Unit     string // owning unit name; empty for solution-level artifacts
}

// Key is the idempotency key preventing duplicate application on rerun.
func (t FileTask) Key() string {
	return string(t.Strategy) + ":" + t.Path
}

// Template identifiers understood by the renderer.
const (
	TemplateProgram      = "program"
	TemplateDbContext    = "dbcontext"
	TemplateAppSettings  = "appsettings"
	TemplateVSCodeTasks  = "vscode-tasks"
	TemplateVSCodeLaunch = "vscode-launch"
	TemplateGitignore    = "gitignore"
	TemplateTestClass    = "testclass"
)

// buildTasks derives the ordered task list: directories first (parents
// before children), then manifests, then rendered sources.
func buildTasks(cfg axisConfig, p *Plan) []FileTask {
	var tasks []FileTask
	add := func(t FileTask) { tasks = append(tasks, t) }

	// Directory tree.
	for _, u := range p.Units {
		if u.Dir != "." {
			add(FileTask{Path: u.Dir, Strategy: StrategyMkDir, Unit: u.Name})
		}
		for _, f := range u.Folders {
			add(FileTask{Path: unitPath(u, f), Strategy: StrategyMkDir, Unit: u.Name})
		}
	}
	add(FileTask{Path: ".vscode", Strategy: StrategyMkDir})

	// Build manifests.
	add(FileTask{Path: cfg.Name() + ".sln", Strategy: StrategyManifest})
	for _, u := range p.Units {
		add(FileTask{Path: unitPath(u, u.Name+".csproj"), Strategy: StrategyManifest, Unit: u.Name})
	}

	// Rendered sources.
	entry := entryUnit(p)
	add(FileTask{Path: unitPath(entry, "Program.cs"), Strategy: StrategyRender,
		Template: TemplateProgram, Unit: entry.Name})
	add(FileTask{Path: unitPath(entry, "appsettings.json"), Strategy: StrategyRender,
		Template: TemplateAppSettings, Unit: entry.Name})
	if cfg.HasDatabase() {
		owner, dir := dbContextHome(p)
		add(FileTask{Path: dir, Strategy: StrategyRender,
			Template: TemplateDbContext, Unit: owner})
	}
	if test, ok := testUnit(p); ok {
		add(FileTask{Path: unitPath(test, "SmokeTests.cs"), Strategy: StrategyRender,
			Template: TemplateTestClass, Unit: test.Name})
	}
	add(FileTask{Path: ".vscode/tasks.json", Strategy: StrategyRender, Template: TemplateVSCodeTasks})
	add(FileTask{Path: ".vscode/launch.json", Strategy: StrategyRender, Template: TemplateVSCodeLaunch})
	add(FileTask{Path: ".gitignore", Strategy: StrategyRender, Template: TemplateGitignore})

	return dedupe(tasks)
}

// axisConfig is the slice of axis.Configuration the task builder needs.
// Kept as an interface so tests can feed minimal fixtures.
type axisConfig interface {
	Name() string
	HasDatabase() bool
}

// entryUnit returns the unit that hosts the program entry point: the
// presentation unit in multi topology, the sole app unit otherwise.
func entryUnit(p *Plan) Unit {
	for _, u := range p.Units {
		if u.Layer == LayerPresentation {
			return u
		}
	}
	return p.Units[0]
}

// dbContextHome returns the owning unit name and target path for the
// data-access context stub.
func dbContextHome(p *Plan) (unit, path string) {
	for _, u := range p.Units {
		if u.Layer == LayerData {
			return u.Name, unitPath(u, "AppDbContext.cs")
		}
	}
	u := p.Units[0]
	return u.Name, unitPath(u, "DataAccess", "AppDbContext.cs")
}

func testUnit(p *Plan) (Unit, bool) {
	for _, u := range p.Units {
		if u.Layer == LayerTest {
			return u, true
		}
	}
	return Unit{}, false
}

// dedupe drops tasks whose idempotency key was already seen, preserving
// first-occurrence order.
func dedupe(tasks []FileTask) []FileTask {
	seen := make(map[string]bool, len(tasks))
	out := tasks[:0]
	for _, t := range tasks {
		if seen[t.Key()] {
			continue
		}
		seen[t.Key()] = true
		out = append(out, t)
	}
	return out
}
