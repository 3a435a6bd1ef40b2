package dispatcher

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Outcome is the settled result shown to the user.
type Outcome struct {
	Success bool
	Message string
}

// Presenter renders form state. Calls happen on the submitting goroutine.
type Presenter interface {
	// Busy disables the control and shows label.
	Busy(label string)
	// Ready re-enables the control and shows label.
	Ready(label string)
	// Overlay shows the outcome for d.
	Overlay(o Outcome, d time.Duration)
	// Reset clears the form fields.
	Reset()
}

// TerminalPresenter prints state changes as lines.
type TerminalPresenter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminalPresenter(w io.Writer) *TerminalPresenter {
	return &TerminalPresenter{w: w}
}

func (p *TerminalPresenter) Busy(label string) {
	p.printf("[%s]\n", label)
}

func (p *TerminalPresenter) Ready(label string) {
	p.printf("[%s]\n", label)
}

func (p *TerminalPresenter) Overlay(o Outcome, _ time.Duration) {
	mark := "✖"
	if o.Success {
		mark = "✔"
	}
	p.printf("%s %s\n", mark, o.Message)
}

func (p *TerminalPresenter) Reset() {}

func (p *TerminalPresenter) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format, args...)
}

// Event is one recorded Presenter call.
type Event struct {
	Kind     string
	Label    string
	Outcome  Outcome
	Duration time.Duration
}

// Recorder is a Presenter that keeps every call, for tests and headless
// use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Busy(label string) { r.add(Event{Kind: "busy", Label: label}) }

func (r *Recorder) Ready(label string) { r.add(Event{Kind: "ready", Label: label}) }

func (r *Recorder) Overlay(o Outcome, d time.Duration) {
	r.add(Event{Kind: "overlay", Outcome: o, Duration: d})
}

func (r *Recorder) Reset() { r.add(Event{Kind: "reset"}) }

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded calls.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Kinds returns the recorded call kinds in order.
func (r *Recorder) Kinds() []string {
	events := r.Events()
	kinds := make([]string, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}
