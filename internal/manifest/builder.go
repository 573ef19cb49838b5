package manifest

// builder.go — target checking and task application.
//
// CheckTarget is the fail-fast conflict gate: it runs before any mutation
// and refuses to touch a root that already holds generated output unless
// the caller carries explicit overwrite intent. Silent overwrite is never
// the default.

import (
	"fmt"
	"os"
	"path/filepath"

	"dotforge/internal/axis"
	"dotforge/internal/plan"
	"dotforge/internal/txn"
)

// ConflictError reports that the target root already contains previously
// generated output. Fatal; raised before any mutation.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("target %s already contains generated output (pass -force to overwrite)", e.Path)
}

// CheckTarget reports a *ConflictError when root already holds a solution
// manifest for name. A missing or unrelated root is fine.
func CheckTarget(root, name string, overwrite bool) error {
	if overwrite {
		return nil
	}
	sentinel := filepath.Join(root, name+".sln")
	if _, err := os.Stat(sentinel); err == nil {
		return &ConflictError{Path: root}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("check target %s: %w", root, err)
	}
	return nil
}

// Builder applies directory and manifest tasks for one run.
type Builder struct {
	Root    string
	Config  axis.Configuration
	Plan    *plan.Plan
	Journal *txn.Journal
}

// Apply executes one mkdir or manifest task. Other strategies belong to
// the renderer and linker.
func (b *Builder) Apply(t plan.FileTask) error {
	dst := filepath.Join(b.Root, filepath.FromSlash(t.Path))
	switch t.Strategy {
	case plan.StrategyMkDir:
		return txn.MkDirAll(b.Journal, dst)
	case plan.StrategyManifest:
		content, err := b.content(t)
		if err != nil {
			return err
		}
		return txn.WriteFile(b.Journal, dst, content)
	default:
		return fmt.Errorf("manifest: unsupported strategy %q for %s", t.Strategy, t.Path)
	}
}

func (b *Builder) content(t plan.FileTask) ([]byte, error) {
	if t.Unit == "" {
		return Sln(b.Config.Name(), b.Plan), nil
	}
	unit, ok := b.Plan.Unit(t.Unit)
	if !ok {
		return nil, fmt.Errorf("manifest: task %s names unknown unit %q", t.Path, t.Unit)
	}
	return Csproj(b.Config, b.Plan, unit)
}
