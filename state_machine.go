package artily

import (
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// Phase is the client session phase.
type Phase string

const (
	// PhaseAnonymous means no member is signed in.
	PhaseAnonymous Phase = "anonymous"
	// PhaseAuthenticating means a login or signup attempt is in flight.
	PhaseAuthenticating Phase = "authenticating"
	// PhaseAuthenticated means a member profile occupies the session cell.
	PhaseAuthenticated Phase = "authenticated"
)

// ErrInvalidPhaseTransition is returned when a session phase change is not
// allowed, which points at a lifecycle bug in the caller.
var ErrInvalidPhaseTransition = goerrors.New("invalid session phase transition", goerrors.CategoryOperation).
	WithTextCode("INVALID_PHASE_TRANSITION").
	WithCode(goerrors.CodeConflict)

// phaseMachine tracks the session phase. Logout (back to anonymous) is
// reachable from every phase; everything else must follow the allowed map.
type phaseMachine struct {
	mu          sync.Mutex
	current     Phase
	transitions map[Phase]map[Phase]struct{}
}

func newPhaseMachine() *phaseMachine {
	return &phaseMachine{
		current: PhaseAnonymous,
		transitions: map[Phase]map[Phase]struct{}{
			PhaseAnonymous: {
				PhaseAuthenticating: {},
			},
			PhaseAuthenticating: {
				PhaseAuthenticated: {},
				PhaseAnonymous:     {},
			},
			PhaseAuthenticated: {
				PhaseAnonymous: {},
			},
		},
	}
}

// Current returns the phase at the time of the call.
func (m *phaseMachine) Current() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Transition moves to the target phase if the transition map allows it.
// Moving to the current phase is a no-op.
func (m *phaseMachine) Transition(target Phase) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == target {
		return nil
	}

	if allowed, ok := m.transitions[m.current]; ok {
		if _, ok := allowed[target]; ok {
			m.current = target
			return nil
		}
	}

	return ErrInvalidPhaseTransition.WithMetadata(map[string]any{
		"from": m.current,
		"to":   target,
	})
}

// Reset drops back to anonymous unconditionally. Every failure path and
// logout lands here.
func (m *phaseMachine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = PhaseAnonymous
}

// force bypasses the transition map. Used when the session is re-derived
// from outside the normal login path: restoring a stored token on startup or
// following another process's session change.
func (m *phaseMachine) force(target Phase) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = target
}
