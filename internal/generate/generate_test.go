package generate

// generate_test.go — End-to-end pipeline tests: the success report, the
// conflict law (a refused run changes no bytes), and the rollback law
// (a failed run leaves no net filesystem change).

import (
	"crypto/sha256"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"dotforge/internal/axis"
	"dotforge/internal/linker"
	"dotforge/internal/manifest"
	"dotforge/internal/txn"
)

const testCreatedAt = "2026-02-01T09:00:00Z"

func options(name, target string) Options {
	return Options{
		Raw:        axis.RawInput{Name: name},
		TargetRoot: target,
		CreatedAt:  testCreatedAt,
	}
}

// snapshot hashes every file under root, keyed by relative path.
// Directories appear with an empty hash so structure changes register too.
func snapshot(t *testing.T, root string) map[string][32]byte {
	t.Helper()
	out := map[string][32]byte{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			out[rel] = [32]byte{}
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = sha256.Sum256(data)
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("snapshot %s: %v", root, err)
	}
	return out
}

func sameSnapshot(a, b map[string][32]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// success path
// ---------------------------------------------------------------------------

func TestRunSingleTopology(t *testing.T) {
	target := filepath.Join(t.TempDir(), "Shop")
	opts := options("Shop", target)
	opts.Raw.Database = "sqlite"
	opts.Raw.Tests = true

	report, err := Run(opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.State != txn.StateDone {
		t.Errorf("state = %s, want done", report.State)
	}
	if len(report.Created) == 0 {
		t.Fatal("report lists no created paths")
	}
	if len(report.RolledBack) != 0 {
		t.Errorf("successful run reports rollback: %v", report.RolledBack)
	}

	for _, rel := range []string{
		"Shop.sln",
		"Shop.csproj",
		"Program.cs",
		"appsettings.json",
		"DataAccess/AppDbContext.cs",
		".gitignore",
		filepath.Join(".vscode", "tasks.json"),
		filepath.Join(".vscode", "launch.json"),
		filepath.Join("Shop.Tests", "Shop.Tests.csproj"),
		filepath.Join("Shop.Tests", "SmokeTests.cs"),
	} {
		if _, err := os.Stat(filepath.Join(target, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing artifact %s: %v", rel, err)
		}
	}
}

func TestRunMultiTopology(t *testing.T) {
	target := filepath.Join(t.TempDir(), "Shop")
	opts := options("Shop", target)
	opts.Raw.Topology = "multi"
	opts.Raw.Database = "postgres"

	report, err := Run(opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.State != txn.StateDone {
		t.Errorf("state = %s, want done", report.State)
	}
	for _, rel := range []string{
		filepath.Join("Shop.Presentation", "Shop.Presentation.csproj"),
		filepath.Join("Shop.Presentation", "Program.cs"),
		filepath.Join("Shop.Business", "Shop.Business.csproj"),
		filepath.Join("Shop.Domain", "Shop.Domain.csproj"),
		filepath.Join("Shop.DataAccess", "AppDbContext.cs"),
	} {
		if _, err := os.Stat(filepath.Join(target, rel)); err != nil {
			t.Errorf("missing artifact %s: %v", rel, err)
		}
	}
}

func TestRunSurfacesDowngradeWarnings(t *testing.T) {
	target := filepath.Join(t.TempDir(), "Shop")
	opts := options("Shop", target)
	opts.Raw.Pattern = "mvvm"
	opts.Raw.Runtime = "net48"

	report, err := Run(opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Warnings) != 1 || report.Warnings[0] != axis.WarnMVVMLegacyRuntime {
		t.Errorf("warnings = %v, want the downgrade warning", report.Warnings)
	}
	if report.Config.Pattern() != axis.PatternMVP {
		t.Errorf("pattern = %s, want mvp after downgrade", report.Config.Pattern())
	}
}

func TestRunDeterministicOutput(t *testing.T) {
	base := t.TempDir()
	a := filepath.Join(base, "a", "Shop")
	b := filepath.Join(base, "b", "Shop")
	opts := options("Shop", a)
	opts.Raw.Database = "sqlserver"
	opts.Raw.Topology = "multi"
	if _, err := Run(opts); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	opts.TargetRoot = b
	if _, err := Run(opts); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if !sameSnapshot(snapshot(t, a), snapshot(t, b)) {
		t.Error("identical configurations produced different trees")
	}
}

// ---------------------------------------------------------------------------
// conflict law
// ---------------------------------------------------------------------------

// TestRunConflictChangesNothing: a second run against the same target is
// refused before mutation, so the refused run changes zero bytes.
func TestRunConflictChangesNothing(t *testing.T) {
	target := filepath.Join(t.TempDir(), "Shop")
	opts := options("Shop", target)
	opts.Raw.Database = "sqlite"

	if _, err := Run(opts); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	before := snapshot(t, target)

	report, err := Run(opts)
	if err == nil {
		t.Fatal("second run against occupied target succeeded")
	}
	var ce *manifest.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *manifest.ConflictError, got %v", err)
	}
	if report.State != txn.StateFailed {
		t.Errorf("state = %s, want failed", report.State)
	}
	if len(report.Created) != 0 || len(report.RolledBack) != 0 {
		t.Errorf("refused run reports mutations: created=%v rolledback=%v",
			report.Created, report.RolledBack)
	}
	if !sameSnapshot(before, snapshot(t, target)) {
		t.Error("refused run changed bytes on disk")
	}
}

func TestRunOverwriteIntentBypassesConflict(t *testing.T) {
	target := filepath.Join(t.TempDir(), "Shop")
	opts := options("Shop", target)
	if _, err := Run(opts); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	opts.Overwrite = true
	if _, err := Run(opts); err != nil {
		t.Fatalf("overwrite Run: %v", err)
	}
}

// ---------------------------------------------------------------------------
// rollback law
// ---------------------------------------------------------------------------

// TestRunRollbackRestoresTarget: a run that fails mid-generation removes
// everything it created and spares what was already there.
func TestRunRollbackRestoresTarget(t *testing.T) {
	target := filepath.Join(t.TempDir(), "Shop")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}
	// A file squatting on a unit directory path makes MkDirAll fail after
	// earlier units were already created. No Shop.sln, so the conflict
	// gate passes and the failure lands mid-mutation.
	poison := filepath.Join(target, "Shop.Domain")
	if err := os.WriteFile(poison, []byte("squatter"), 0o644); err != nil {
		t.Fatal(err)
	}
	before := snapshot(t, target)

	opts := options("Shop", target)
	opts.Raw.Topology = "multi"
	report, err := Run(opts)
	if err == nil {
		t.Fatal("run against poisoned target succeeded")
	}
	var ge *GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *GenerationError, got %v", err)
	}
	if report.State != txn.StateFailed {
		t.Errorf("state = %s, want failed", report.State)
	}
	if len(report.RolledBack) == 0 {
		t.Error("report lists no rolled-back artifacts")
	}
	if !sameSnapshot(before, snapshot(t, target)) {
		t.Error("failed run left a net filesystem change")
	}
	if _, err := os.Stat(poison); err != nil {
		t.Errorf("rollback removed pre-existing file: %v", err)
	}
}

func TestRunInvalidInputFailsBeforeMutation(t *testing.T) {
	target := filepath.Join(t.TempDir(), "Shop")
	opts := options("Shop", target)
	opts.Raw.Database = "mongodb"

	report, err := Run(opts)
	if err == nil {
		t.Fatal("invalid database accepted")
	}
	var ce *axis.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *axis.ConfigurationError, got %v", err)
	}
	if report.State != txn.StateFailed {
		t.Errorf("state = %s, want failed", report.State)
	}
	if _, statErr := os.Stat(target); !os.IsNotExist(statErr) {
		t.Error("validation failure touched the target path")
	}
}

// ---------------------------------------------------------------------------
// standards attachment
// ---------------------------------------------------------------------------

func TestRunAttachesStandardsCopy(t *testing.T) {
	src := filepath.Join(t.TempDir(), "standards")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "README.md"), []byte("# s\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(t.TempDir(), "Shop")
	opts := options("Shop", target)
	opts.Raw.Standards = true
	opts.Standards = src
	// No link capability: the linker falls back to a copy and warns.
	report, err := Run(opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Standards != linker.ModeCopied {
		t.Errorf("standards mode = %s, want copied", report.Standards)
	}
	found := false
	for _, w := range report.Warnings {
		if w != "" {
			found = true
		}
	}
	if !found {
		t.Error("copy fallback produced no warning in the report")
	}
	if _, err := os.Stat(filepath.Join(target, linker.StandardsDir, "README.md")); err != nil {
		t.Errorf("standards copy missing: %v", err)
	}
}

func TestRunStandardsOffLeavesAbsent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "Shop")
	report, err := Run(options("Shop", target))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Standards != linker.ModeAbsent {
		t.Errorf("standards mode = %s, want absent", report.Standards)
	}
	if _, err := os.Stat(filepath.Join(target, linker.StandardsDir)); !os.IsNotExist(err) {
		t.Error("standards directory created without the option")
	}
}
