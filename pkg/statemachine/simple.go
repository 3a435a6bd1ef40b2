package statemachine

import (
	"context"
	"errors"
	"sync"
)

// SimpleStateMachine keeps transitions in memory, indexed by
// [from][event]. Fire holds the lock while guards and actions run, so
// actions must not call back into the machine.
type SimpleStateMachine struct {
	mu          sync.RWMutex
	initial     State
	current     State
	transitions map[string]map[string][]Transition
	observers   []Observer
}

func newSimpleStateMachine(initial State) *SimpleStateMachine {
	return &SimpleStateMachine{
		initial:     initial,
		current:     initial,
		transitions: make(map[string]map[string][]Transition),
	}
}

func (sm *SimpleStateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

// Is reports whether the machine is in state.
func (sm *SimpleStateMachine) Is(state State) bool {
	if state == nil {
		return false
	}
	return sm.Current().Name() == state.Name()
}

func (sm *SimpleStateMachine) AddTransition(from, to State, event Event, guards []Guard, actions []Action) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	byEvent, ok := sm.transitions[from.Name()]
	if !ok {
		byEvent = make(map[string][]Transition)
		sm.transitions[from.Name()] = byEvent
	}
	// Several transitions per from/event are tried in insertion order.
	byEvent[event.Name()] = append(byEvent[event.Name()], Transition{
		From:    from,
		To:      to,
		Event:   event,
		Guards:  guards,
		Actions: actions,
	})
	return nil
}

// match returns the first transition whose guards all pass. Callers hold
// the lock.
func (sm *SimpleStateMachine) match(ctx context.Context, event Event, data any) (*Transition, error) {
	candidates := sm.transitions[sm.current.Name()][event.Name()]
	if len(candidates) == 0 {
		return nil, &TransitionError{State: sm.current.Name(), Event: event.Name(), Reason: ErrNoTransitionAvailable}
	}

	for i := range candidates {
		if guardsPass(ctx, candidates[i].Guards, sm.current, event, data) {
			return &candidates[i], nil
		}
	}
	return nil, &TransitionError{State: sm.current.Name(), Event: event.Name(), Reason: ErrTransitionRejected}
}

func guardsPass(ctx context.Context, guards []Guard, from State, event Event, data any) bool {
	for _, g := range guards {
		if g != nil && !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}

func (sm *SimpleStateMachine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	sm.mu.Lock()
	from := sm.current
	t, err := sm.match(ctx, event, data)
	if err != nil {
		sm.mu.Unlock()
		return err
	}

	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, from, t.To, event, data); err != nil {
			sm.mu.Unlock()
			return errors.Join(ErrActionFailed, err)
		}
	}
	sm.current = t.To
	observers := sm.observers
	sm.mu.Unlock()

	for _, o := range observers {
		o(ctx, from, t.To, event)
	}
	return nil
}

func (sm *SimpleStateMachine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == nil {
		return false
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()
	_, err := sm.match(ctx, event, data)
	return err == nil
}

func (sm *SimpleStateMachine) Reset() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.current = sm.initial
	return nil
}
