package statemachine

import "context"

// State is a node of the machine.
type State interface {
	Name() string
}

// Event triggers transitions.
type Event interface {
	Name() string
}

// Action runs during a transition, before the state changes. An error
// aborts the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Guard allows or vetoes a transition.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Observer is notified after every completed transition.
type Observer func(ctx context.Context, from, to State, event Event)

// Transition is a state change triggered by an event.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard
	Actions []Action
}

// StateMachine is a finite state machine safe for concurrent use.
type StateMachine interface {
	Current() State
	Is(state State) bool
	AddTransition(from, to State, event Event, guards []Guard, actions []Action) error
	Fire(ctx context.Context, event Event, data any) error
	CanFire(ctx context.Context, event Event, data any) bool
	Reset() error
}

// StringState is a State named by its value.
type StringState string

func (s StringState) Name() string { return string(s) }

// StringEvent is an Event named by its value.
type StringEvent string

func (e StringEvent) Name() string { return string(e) }
