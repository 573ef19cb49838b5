// Package txn guards the mutating phases of a generation run.
//
// The Journal records every path the run creates, in creation order.
// On failure the guard removes them newest-first, restoring the target
// to its exact pre-invocation state; on success it commits by leaving
// the tree in place and handing the caller a manifest of created paths.
package txn

import (
	"fmt"
	"os"
	"sort"
)

// Journal accumulates created paths for one run.
type Journal struct {
	created []string
}

// Record notes a path created by this run. Paths must be recorded in
// creation order (parents before children) so rollback can remove them
// in reverse.
func (j *Journal) Record(path string) {
	j.created = append(j.created, path)
}

// Len returns the number of recorded paths.
func (j *Journal) Len() int { return len(j.created) }

// Manifest returns the created paths sorted for the end-of-run report.
func (j *Journal) Manifest() []string {
	out := make([]string, len(j.created))
	copy(out, j.created)
	sort.Strings(out)
	return out
}

// Rollback removes every recorded path, newest-first. Directories are
// removed with their remaining contents; a path that is already gone is
// not an error. The journal is drained so a second Rollback is a no-op.
func (j *Journal) Rollback() error {
	var firstErr error
	for i := len(j.created) - 1; i >= 0; i-- {
		p := j.created[i]
		if err := os.RemoveAll(p); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("rollback %s: %w", p, err)
		}
	}
	j.created = nil
	return firstErr
}
