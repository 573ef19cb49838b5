// Package generate runs the full scaffolding pipeline: resolve options,
// derive the plan, build directories and manifests, render sources and
// attach standards, all under the transaction guard.
//
// Execution is strictly sequential; each phase consumes the frozen output
// of the previous one. Concurrent invocations against the same target path
// are unsafe: the fail-fast conflict check is the only serialization.
package generate

import (
	"fmt"
	"path/filepath"

	"dotforge/internal/axis"
	"dotforge/internal/linker"
	"dotforge/internal/manifest"
	"dotforge/internal/plan"
	"dotforge/internal/render"
	"dotforge/internal/txn"
)

// GenerationError wraps an I/O or rendering failure that occurred after
// mutation began. Fatal; the guard rolls back before it is returned.
type GenerationError struct {
	Task string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Task, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Options configures one generation run.
type Options struct {
	Raw        axis.RawInput
	TargetRoot string
	Overwrite  bool   // explicit overwrite intent; silent overwrite is never the default
	Standards  string // standards corpus directory; empty leaves the attachment absent
	Capability linker.Capability
	CreatedAt  string // explicitly recorded creation timestamp
}

// Report is the single end-of-run report: every created path, every
// warning, and on failure every artifact that was rolled back. On-disk
// state is always fully knowable from it.
type Report struct {
	Config     axis.Configuration
	State      txn.State
	Created    []string
	Warnings   []string
	RolledBack []string
	Standards  linker.Mode
}

// Run executes one generation. On a fatal error after mutation began, the
// target path is restored to its pre-invocation state and the returned
// report lists the rolled-back artifacts alongside the error.
func Run(opts Options) (*Report, error) {
	run := txn.NewRun()
	report := &Report{Standards: linker.ModeAbsent}

	fail := func(j *txn.Journal, err error) (*Report, error) {
		from := run.State()
		_ = run.To(txn.StateFailed)
		if j != nil && txn.NeedsRollback(from) {
			report.RolledBack = j.Manifest()
			if rbErr := j.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback incomplete: %v)", err, rbErr)
			}
		}
		report.State = run.State()
		return report, err
	}

	// Validating: resolve and freeze the configuration. Nothing is
	// mutated yet, so failure here needs no rollback.
	if err := run.To(txn.StateValidating); err != nil {
		return nil, err
	}
	cfg, warnings, err := axis.Resolve(opts.Raw)
	if err != nil {
		return fail(nil, err)
	}
	report.Config = cfg
	report.Warnings = warnings

	// Planning: derive the immutable plan and run the conflict gate,
	// still before any mutation.
	if err := run.To(txn.StatePlanning); err != nil {
		return nil, err
	}
	p, err := plan.Build(cfg)
	if err != nil {
		return fail(nil, err)
	}
	if err := manifest.CheckTarget(opts.TargetRoot, cfg.Name(), opts.Overwrite); err != nil {
		return fail(nil, err)
	}

	// Generating: every mutation goes through the journal.
	if err := run.To(txn.StateGenerating); err != nil {
		return nil, err
	}
	j := &txn.Journal{}
	if err := txn.MkDirAll(j, opts.TargetRoot); err != nil {
		return fail(j, &GenerationError{Task: "target root", Err: err})
	}

	builder := &manifest.Builder{Root: opts.TargetRoot, Config: cfg, Plan: p, Journal: j}
	renderer := render.New(cfg, p, opts.CreatedAt)
	for _, t := range p.Tasks {
		if err := applyTask(builder, renderer, j, opts.TargetRoot, t); err != nil {
			return fail(j, &GenerationError{Task: t.Path, Err: err})
		}
	}

	if cfg.Standards() {
		res, err := linker.Attach(opts.TargetRoot, opts.Standards, opts.Capability, j)
		if err != nil {
			return fail(j, &GenerationError{Task: linker.StandardsDir, Err: err})
		}
		report.Standards = res.Mode
		if res.Warning != nil {
			report.Warnings = append(report.Warnings, res.Warning.Error())
		}
	}

	// Committing: leave the tree in place and surface the manifest.
	if err := run.To(txn.StateCommitting); err != nil {
		return nil, err
	}
	report.Created = j.Manifest()
	if err := run.To(txn.StateDone); err != nil {
		return nil, err
	}
	report.State = run.State()
	return report, nil
}

func applyTask(b *manifest.Builder, r *render.Renderer, j *txn.Journal, root string, t plan.FileTask) error {
	switch t.Strategy {
	case plan.StrategyMkDir, plan.StrategyManifest:
		return b.Apply(t)
	case plan.StrategyRender:
		content, err := r.Render(t)
		if err != nil {
			return err
		}
		return txn.WriteFile(j, taskPath(root, t), content)
	default:
		return fmt.Errorf("unsupported strategy %q", t.Strategy)
	}
}

func taskPath(root string, t plan.FileTask) string {
	return filepath.Join(root, filepath.FromSlash(t.Path))
}
