package dispatcher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/boubliclub/formrelay/pkg/logger"
	"github.com/boubliclub/formrelay/pkg/statemachine"
)

// Form states and events.
const (
	StateIdle       = statemachine.StringState("idle")
	StateSubmitting = statemachine.StringState("submitting")

	EventSubmit = statemachine.StringEvent("submit")
	EventSettle = statemachine.StringEvent("settle")
)

// DefaultOverlayDuration is how long outcomes stay visible.
const DefaultOverlayDuration = 5 * time.Second

// Precheck refuses a payload locally. A non-nil error is shown as the
// overlay message; return a *PrecheckError to control the text.
type Precheck func(p Payload) error

// Form is a single form instance. Forms are independent of each other.
type Form struct {
	name      string
	transport Transport
	presenter Presenter
	precheck  Precheck
	labels    Labels
	messages  Messages
	overlay   time.Duration
	log       *slog.Logger
	machine   statemachine.StateMachine
}

// Option configures a Form.
type Option func(*Form)

// WithPrecheck sets the local check run before any network call.
func WithPrecheck(fn Precheck) Option {
	return func(f *Form) { f.precheck = fn }
}

// WithLabels sets the control captions.
func WithLabels(l Labels) Option {
	return func(f *Form) { f.labels = l }
}

// WithMessages sets the overlay texts.
func WithMessages(m Messages) Option {
	return func(f *Form) { f.messages = m }
}

// WithOverlayDuration sets how long outcomes stay visible.
func WithOverlayDuration(d time.Duration) Option {
	return func(f *Form) {
		if d > 0 {
			f.overlay = d
		}
	}
}

// WithLogger sets the logger for transitions and transport errors.
func WithLogger(log *slog.Logger) Option {
	return func(f *Form) {
		if log != nil {
			f.log = log
		}
	}
}

// attempt is the data carried through the submit transition.
type attempt struct {
	payload Payload
	checked bool
	err     error
}

func (a *attempt) check(fn Precheck) error {
	if !a.checked {
		a.checked = true
		if fn != nil {
			a.err = fn(a.payload)
		}
	}
	return a.err
}

// NewForm builds an idle form.
func NewForm(name string, transport Transport, presenter Presenter, opts ...Option) *Form {
	f := &Form{
		name:      name,
		transport: transport,
		presenter: presenter,
		labels:    DefaultLabels,
		messages:  DefaultMessages,
		overlay:   DefaultOverlayDuration,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}

	passes := func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
		a, ok := data.(*attempt)
		return ok && a.check(f.precheck) == nil
	}
	fails := func(ctx context.Context, s statemachine.State, e statemachine.Event, data any) bool {
		_, ok := data.(*attempt)
		return ok && !passes(ctx, s, e, data)
	}

	f.machine = statemachine.MustNew(StateIdle,
		statemachine.WithTransition(StateIdle, StateSubmitting, EventSubmit,
			statemachine.WithGuard(passes),
			statemachine.WithAction(f.onSubmit),
		),
		statemachine.WithTransition(StateIdle, StateIdle, EventSubmit,
			statemachine.WithGuard(fails),
			statemachine.WithAction(f.onRefused),
		),
		statemachine.WithTransition(StateSubmitting, StateIdle, EventSettle,
			statemachine.WithAction(f.onSettle),
		),
		statemachine.WithObserver(func(ctx context.Context, from, to statemachine.State, e statemachine.Event) {
			f.log.DebugContext(ctx, "form transition",
				logger.Component("dispatcher"),
				slog.String("form", f.name),
				slog.String("from", from.Name()),
				slog.String("to", to.Name()),
				logger.Event(e.Name()),
			)
		}),
	)
	return f
}

// Name returns the form name.
func (f *Form) Name() string { return f.name }

// Busy reports whether a submission is in flight.
func (f *Form) Busy() bool { return f.machine.Is(StateSubmitting) }

func (f *Form) onSubmit(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
	f.presenter.Busy(f.labels.Busy)
	return nil
}

func (f *Form) onRefused(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	a := data.(*attempt)
	f.presenter.Overlay(Outcome{Success: false, Message: precheckMessage(a.err)}, f.overlay)
	return nil
}

func (f *Form) onSettle(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	o, _ := data.(Outcome)
	f.presenter.Ready(f.labels.Idle)
	f.presenter.Overlay(o, f.overlay)
	if o.Success {
		f.presenter.Reset()
	}
	return nil
}

func precheckMessage(err error) string {
	var pe *PrecheckError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}

// Submit runs one submission to completion. It returns ErrBusy while
// another submission of this form is in flight, an error wrapping
// ErrPrecheckFailed when the precheck refuses the payload, and an error
// wrapping ErrSendFailed when the transport fails. The returned Outcome is
// what the presenter showed.
func (f *Form) Submit(ctx context.Context, p Payload) (Outcome, error) {
	a := &attempt{payload: p}
	if err := f.machine.Fire(ctx, EventSubmit, a); err != nil {
		if statemachine.IsNoTransitionAvailableError(err) {
			return Outcome{}, ErrBusy
		}
		return Outcome{}, err
	}
	if a.err != nil {
		return Outcome{Success: false, Message: precheckMessage(a.err)}, errors.Join(ErrPrecheckFailed, a.err)
	}

	sendErr := f.transport.Send(ctx, p)
	outcome := f.outcome(sendErr)
	if sendErr != nil {
		f.log.ErrorContext(ctx, "form submission failed",
			logger.Component("dispatcher"),
			slog.String("form", f.name),
			logger.Error(sendErr),
		)
	}

	if err := f.machine.Fire(context.WithoutCancel(ctx), EventSettle, outcome); err != nil {
		return outcome, err
	}
	if sendErr != nil {
		return outcome, errors.Join(ErrSendFailed, sendErr)
	}
	return outcome, nil
}

func (f *Form) outcome(err error) Outcome {
	if err == nil {
		return Outcome{Success: true, Message: f.messages.Success}
	}
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return Outcome{Success: false, Message: re.Message}
	}
	return Outcome{Success: false, Message: f.messages.Failure}
}
