// Package statemachine implements small finite state machines.
//
// Transitions are declared with options and may carry guards, which pick
// among several transitions for the same state and event, and actions,
// which run before the state changes. Observers see every completed
// transition.
//
//	const (
//		Idle       = statemachine.StringState("idle")
//		Submitting = statemachine.StringState("submitting")
//		Submit     = statemachine.StringEvent("submit")
//		Settle     = statemachine.StringEvent("settle")
//	)
//
//	m := statemachine.MustNew(Idle,
//		statemachine.WithTransition(Idle, Submitting, Submit, statemachine.WithGuard(ready)),
//		statemachine.WithTransition(Submitting, Idle, Settle),
//	)
//
// Fire returns a *TransitionError wrapping ErrNoTransitionAvailable when the
// event is not defined for the current state and ErrTransitionRejected when
// guards veto every candidate.
package statemachine
