// Package linker attaches the external standards corpus to a generated
// project, as a nested Standards/ reference.
//
// The attachment prefers a symlink (auto-updating) when the executing
// environment can create one, and falls back to a one-time copy with an
// IntegrationWarning otherwise. Capability is injected by the caller, not
// probed mid-run, so the fallback and conflict rules are testable without
// an elevated process.
package linker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dotforge/internal/txn"
)

// StandardsDir is the attachment point inside the generated project.
const StandardsDir = "Standards"

// Mode describes how the standards corpus is attached.
type Mode string

const (
	ModeLinked Mode = "linked"
	ModeCopied Mode = "copied"
	ModeAbsent Mode = "absent"
)

// Capability is the environment's link capability, decided once per run
// and handed in.
type Capability struct {
	Symlink bool
}

// ProbeCapability checks whether the process can create symlinks by
// creating and removing one in dir. Call this from the CLI wiring only;
// the linker itself never probes.
func ProbeCapability(dir string) Capability {
	target := filepath.Join(dir, ".dotforge-linkprobe")
	if err := os.Symlink(dir, target); err != nil {
		return Capability{}
	}
	os.Remove(target)
	return Capability{Symlink: true}
}

// IntegrationWarning reports a degraded attachment strategy. Non-fatal:
// it is collected and surfaced in the final report, never aborting a run.
type IntegrationWarning struct {
	Msg string
}

func (w *IntegrationWarning) Error() string { return w.Msg }

// Result describes the attachment decision for the report.
type Result struct {
	Mode    Mode
	Path    string
	Warning *IntegrationWarning
}

// Attach materializes the standards attachment under targetRoot. Source is
// the standards corpus directory; an empty source leaves the attachment
// absent. Attach is idempotent: re-evaluating an existing attachment on a
// later run upgrades a stale copy to a link when capability allows, and
// otherwise leaves a correct attachment alone.
func Attach(targetRoot, source string, capability Capability, j *txn.Journal) (*Result, error) {
	if source == "" {
		return &Result{Mode: ModeAbsent}, nil
	}
	if _, err := os.Stat(source); err != nil {
		return nil, fmt.Errorf("linker: standards source %s: %w", source, err)
	}

	dst := filepath.Join(targetRoot, StandardsDir)
	info, err := os.Lstat(dst)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink != 0:
		// Already linked; the linked form is authoritative.
		return &Result{Mode: ModeLinked, Path: dst}, nil
	case err == nil && capability.Symlink:
		// A stale copy and link capability: retain only the link. The copy
		// is moved aside first so a failed link can put it back; it is
		// discarded only once the link exists.
		stale := dst + ".stale"
		if err := os.Rename(dst, stale); err != nil {
			return nil, fmt.Errorf("linker: move stale copy %s: %w", dst, err)
		}
		if err := txn.Symlink(j, source, dst); err != nil {
			if rerr := os.Rename(stale, dst); rerr != nil {
				return nil, fmt.Errorf("%w (restoring copy failed: %v)", err, rerr)
			}
			return nil, err
		}
		if err := os.RemoveAll(stale); err != nil {
			return nil, fmt.Errorf("linker: remove stale copy %s: %w", stale, err)
		}
		return &Result{Mode: ModeLinked, Path: dst}, nil
	case err == nil:
		// Copy already present and no link capability: keep it.
		return &Result{
			Mode: ModeCopied, Path: dst,
			Warning: copyWarning(),
		}, nil
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("linker: stat %s: %w", dst, err)
	}

	if capability.Symlink {
		if err := txn.Symlink(j, source, dst); err != nil {
			return nil, err
		}
		return &Result{Mode: ModeLinked, Path: dst}, nil
	}
	if err := copyDir(source, dst, j); err != nil {
		return nil, fmt.Errorf("linker: copy standards: %w", err)
	}
	return &Result{Mode: ModeCopied, Path: dst, Warning: copyWarning()}, nil
}

func copyWarning() *IntegrationWarning {
	return &IntegrationWarning{
		Msg: "standards were copied, not linked; the copy will not auto-update",
	}
}

// copyDir recursively copies src to dst, journaling every created path.
func copyDir(src, dst string, j *txn.Journal) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return txn.MkDirAll(j, target)
		}
		return copyFile(path, target, info.Mode(), j)
	})
}

// copyFile copies a single file, preserving permissions.
func copyFile(src, dst string, mode os.FileMode, j *txn.Journal) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	j.Record(dst)
	return nil
}
