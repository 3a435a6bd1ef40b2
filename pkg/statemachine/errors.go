package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition     = errors.New("statemachine.invalid_transition")
	ErrInvalidEvent          = errors.New("statemachine.invalid_event")
	ErrInvalidInitialState   = errors.New("statemachine.invalid_initial_state")
	ErrNoTransitionAvailable = errors.New("statemachine.no_transition_available")
	ErrTransitionRejected    = errors.New("statemachine.transition_rejected")
	ErrActionFailed          = errors.New("statemachine.action_failed")
)

// TransitionError reports why Fire did not move the machine.
type TransitionError struct {
	State  string
	Event  string
	Reason error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: state %q, event %q", e.Reason, e.State, e.Event)
}

func (e *TransitionError) Unwrap() error { return e.Reason }

// IsNoTransitionAvailableError reports whether the event is not defined for
// the current state.
func IsNoTransitionAvailableError(err error) bool {
	return errors.Is(err, ErrNoTransitionAvailable)
}

// IsTransitionRejectedError reports whether every candidate transition was
// vetoed by a guard.
func IsTransitionRejectedError(err error) bool {
	return errors.Is(err, ErrTransitionRejected)
}
