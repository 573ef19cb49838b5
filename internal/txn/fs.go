package txn

// fs.go — journal-aware filesystem mutations.
//
// All mutating phases create paths through these helpers so the journal
// sees every artifact. Paths that already existed before the run are never
// recorded: rollback must not remove what the run did not create.

import (
	"fmt"
	"os"
	"path/filepath"
)

// MkDirAll creates dir and any missing parents, recording each directory
// that did not exist beforehand.
func MkDirAll(j *Journal, dir string) error {
	var missing []string
	for p := dir; ; p = filepath.Dir(p) {
		if _, err := os.Stat(p); err == nil {
			break
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		missing = append(missing, p)
		if parent := filepath.Dir(p); parent == p {
			break
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	// Record outermost-first so rollback removes children before parents.
	for i := len(missing) - 1; i >= 0; i-- {
		j.Record(missing[i])
	}
	return nil
}

// WriteFile writes data to path, recording the path if it is new. An
// existing file is only overwritten when the run carries overwrite intent;
// its previous content is not journaled, which is why overwriting is never
// the default.
func WriteFile(j *Journal, path string, data []byte) error {
	_, err := os.Stat(path)
	existed := err == nil
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if !existed {
		j.Record(path)
	}
	return nil
}

// Symlink creates a symbolic link and records it.
func Symlink(j *Journal, oldname, newname string) error {
	if err := os.Symlink(oldname, newname); err != nil {
		return fmt.Errorf("symlink %s: %w", newname, err)
	}
	j.Record(newname)
	return nil
}
