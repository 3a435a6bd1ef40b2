package recruitment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/boubliclub/formrelay/pkg/dispatcher"
	"github.com/boubliclub/formrelay/pkg/i18n"
	"github.com/boubliclub/formrelay/pkg/validator"
)

// DefaultInterestMessage is shown when no interest is selected.
const DefaultInterestMessage = "Veuillez sélectionner au moins un centre d'intérêt."

// RequireInterest refuses payloads without interests.
func RequireInterest(message string) dispatcher.Precheck {
	if message == "" {
		message = DefaultInterestMessage
	}
	return func(p dispatcher.Payload) error {
		joined, _ := p["interests"].(string)
		if err := validator.Apply(validator.RequiredSlice("interests", strings.Split(joined, ", "))); err != nil {
			return errors.Join(ErrNoInterest, &dispatcher.PrecheckError{Message: message})
		}
		return nil
	}
}

// Form is the recruitment form.
type Form struct {
	form     *dispatcher.Form
	loc      *time.Location
	now      func() time.Time
	dispOpts []dispatcher.Option
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithClock replaces time.Now for the payload timestamp.
func WithClock(now func() time.Time) FormOption {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// WithDispatcherOptions appends options to the underlying dispatcher.Form,
// after the ones derived from the catalog.
func WithDispatcherOptions(opts ...dispatcher.Option) FormOption {
	return func(f *Form) {
		f.dispOpts = append(f.dispOpts, opts...)
	}
}

// NewForm builds the recruitment form over transport. tr may be nil, in
// which case built-in French texts are used.
func NewForm(cfg Config, dcfg dispatcher.Config, transport dispatcher.Transport, presenter dispatcher.Presenter, tr *i18n.Translator, opts ...FormOption) (*Form, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("timezone %q: %w", cfg.Timezone, err))
	}

	base := []dispatcher.Option{
		dispatcher.WithOverlayDuration(dcfg.OverlayDuration),
		dispatcher.WithPrecheck(RequireInterest("")),
	}
	if tr != nil {
		base = append(base,
			dispatcher.WithLabels(dispatcher.LabelsFrom(tr, dcfg.LabelLanguage)),
			dispatcher.WithMessages(dispatcher.MessagesFrom(tr, dcfg.MessageLanguage, "recruitment")),
			dispatcher.WithPrecheck(RequireInterest(tr.Td(dcfg.MessageLanguage, "recruitment.interests.required_choice", DefaultInterestMessage))),
		)
	} else {
		base = append(base, dispatcher.WithMessages(dispatcher.Messages{
			Success: "Merci pour votre candidature ! Nous vous recontacterons très bientôt.",
			Failure: "Une erreur est survenue lors de l'envoi de votre candidature. Veuillez réessayer.",
		}))
	}

	f := &Form{loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	f.form = dispatcher.NewForm("recruitment", transport, presenter, append(base, f.dispOpts...)...)
	return f, nil
}

// Submit sends app through the dispatcher.
func (f *Form) Submit(ctx context.Context, app Application) (dispatcher.Outcome, error) {
	return f.form.Submit(ctx, Payload(app, f.now().In(f.loc)))
}

// Busy reports whether a submission is in flight.
func (f *Form) Busy() bool {
	return f.form.Busy()
}
