package txn

// state.go — the single-run state machine.
//
//	Idle → Validating → Planning → Generating → Committing → Done
//
// Failed is reachable from Validating, Planning and Generating. Entering
// Failed from Planning or Generating triggers rollback; failing during
// Validating mutated nothing, so there is nothing to undo.

import "fmt"

// State is a phase of one generation run.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StatePlanning   State = "planning"
	StateGenerating State = "generating"
	StateCommitting State = "committing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

var transitions = map[State][]State{
	StateIdle:       {StateValidating},
	StateValidating: {StatePlanning, StateFailed},
	StatePlanning:   {StateGenerating, StateFailed},
	StateGenerating: {StateCommitting, StateFailed},
	StateCommitting: {StateDone},
	StateDone:       {},
	StateFailed:     {},
}

// Run tracks the current phase of one generation and validates every
// transition. A disallowed transition is a programmer error.
type Run struct {
	state State
}

// NewRun starts a run in the Idle state.
func NewRun() *Run { return &Run{state: StateIdle} }

// State returns the current phase.
func (r *Run) State() State { return r.state }

// To advances the run to the next phase. Disallowed transitions return an
// error and leave the state unchanged.
func (r *Run) To(next State) error {
	for _, allowed := range transitions[r.state] {
		if allowed == next {
			r.state = next
			return nil
		}
	}
	return fmt.Errorf("txn: invalid transition %s -> %s", r.state, next)
}

// NeedsRollback reports whether failing in the given phase requires the
// journal to be rolled back.
func NeedsRollback(failedFrom State) bool {
	return failedFrom == StatePlanning || failedFrom == StateGenerating
}
