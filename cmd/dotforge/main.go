package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dotforge/internal/axis"
	"dotforge/internal/generate"
	"dotforge/internal/linker"
	"dotforge/internal/settings"
)

// command describes a CLI subcommand.
type command struct {
	name  string
	short string
	usage string
	long  string
	run   func(args []string) error
}

var commands []command

func init() {
	commands = []command{
		{
			name:  "new",
			short: "Scaffold a new .NET solution",
			usage: "dotforge new [flags] <name>",
			long: `Scaffold a new .NET solution at ./<name> (or -out <dir>).

Axes not set by flags are collected through interactive prompts; pass
-no-input to run fully non-interactive with documented defaults.

Flags:
  -runtime    target runtime (net8.0, net6.0, net48)
  -db         database provider (none, sqlite, sqlserver, postgres)
  -ui         UI toolkit (console, wpf, winforms)
  -pattern    architecture pattern (mvp, mvvm)
  -topology   solution topology (single, multi)
  -tests      include an xUnit test project
  -standards  attach the standards corpus from .dotforge/settings.yaml
  -out        target directory (default ./<name>)
  -force      overwrite previously generated output
  -no-input   never prompt; use flags and defaults only
`,
			run: runNew,
		},
		{
			name:  "axes",
			short: "List the configuration axes and their allowed values",
			usage: "dotforge axes",
			long: `List every configuration axis with its allowed values.

The first value of each axis is the default used for blank input.
`,
			run: runAxes,
		},
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "dotforge — .NET solution scaffolding\n\n")
	fmt.Fprintf(w, "Usage:\n  dotforge <command> [arguments]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.short)
	}
	fmt.Fprintf(w, "\nRun 'dotforge help <command>' for details on a specific command.\n")
}

func printCommandHelp(w io.Writer, name string) {
	for _, cmd := range commands {
		if cmd.name == name {
			fmt.Fprintf(w, "Usage: %s\n\n%s", cmd.usage, cmd.long)
			return
		}
	}
	fmt.Fprintf(w, "dotforge: unknown command %q\n\nRun 'dotforge help' for usage.\n", name)
}

func dispatch(args []string) error {
	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		printUsage(os.Stdout)
		return nil
	}
	if args[0] == "help" {
		if len(args) >= 2 {
			printCommandHelp(os.Stdout, args[1])
		} else {
			printUsage(os.Stdout)
		}
		return nil
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(args[1:])
		}
	}
	return fmt.Errorf("unknown command %q\n\nRun 'dotforge help' for usage.", args[0])
}

// ---------------------------------------------------------------------------
// new
// ---------------------------------------------------------------------------

func runNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	runtime := fs.String("runtime", "", "target runtime")
	db := fs.String("db", "", "database provider")
	ui := fs.String("ui", "", "UI toolkit")
	pattern := fs.String("pattern", "", "architecture pattern")
	topology := fs.String("topology", "", "solution topology")
	tests := fs.Bool("tests", false, "include an xUnit test project")
	standards := fs.Bool("standards", false, "attach the standards corpus")
	out := fs.String("out", "", "target directory")
	force := fs.Bool("force", false, "overwrite previously generated output")
	noInput := fs.Bool("no-input", false, "never prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	cfg, err := settings.Load(cwd)
	if err != nil {
		return err
	}

	raw := axis.RawInput{
		Name:      fs.Arg(0),
		Runtime:   *runtime,
		Database:  *db,
		UI:        *ui,
		Pattern:   *pattern,
		Topology:  *topology,
		Tests:     *tests,
		Standards: *standards,
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	cfg.ApplyTo(&raw)

	if !*noInput {
		confirmed, err := promptMissing(&raw, set)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("cancelled")
			return nil
		}
	}
	if strings.TrimSpace(raw.Name) == "" {
		return fmt.Errorf("usage: %s", commands[0].usage)
	}

	target := *out
	if target == "" {
		target = filepath.Join(cwd, raw.Name)
	}

	standardsSrc := ""
	if raw.Standards {
		standardsSrc = cfg.Standards(cwd)
		if standardsSrc == "" {
			return fmt.Errorf("standards requested but standards_repo is not set in .dotforge/settings.yaml")
		}
	}

	opts := generate.Options{
		Raw:        raw,
		TargetRoot: target,
		Overwrite:  *force,
		Standards:  standardsSrc,
		Capability: linker.ProbeCapability(filepath.Dir(target)),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	report, err := generate.Run(opts)
	printReport(os.Stdout, report)
	return err
}

// ---------------------------------------------------------------------------
// axes
// ---------------------------------------------------------------------------

func runAxes(args []string) error {
	w := os.Stdout
	printAxis(w, "runtime", axisValues(axis.Runtimes))
	printAxis(w, "database", axisValues(axis.Databases))
	printAxis(w, "ui", axisValues(axis.UIKits))
	printAxis(w, "pattern", axisValues(axis.Patterns))
	printAxis(w, "topology", axisValues(axis.Topologies))
	return nil
}

func printAxis(w io.Writer, name string, values []string) {
	fmt.Fprintf(w, "%-10s %s (default %s)\n", name, strings.Join(values, ", "), values[0])
}

func axisValues[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

func main() {
	if err := dispatch(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
