package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/boubliclub/formrelay/handler"
	"github.com/boubliclub/formrelay/pkg/binder"
	"github.com/boubliclub/formrelay/pkg/clientip"
	"github.com/boubliclub/formrelay/pkg/i18n"
	"github.com/boubliclub/formrelay/pkg/logger"
	"github.com/boubliclub/formrelay/pkg/validator"
)

// French fallbacks for a translator without the contact catalog.
var defaultMessages = map[string]string{
	"method_not_allowed": "Méthode non autorisée.",
	"bot_detected":       "Soumission invalide détectée.",
	"rate_limited":       "Veuillez attendre %{seconds} secondes avant de renvoyer le formulaire.",
	"success":            "Merci pour votre message ! Nous vous répondrons dans les plus brefs délais.",
	"delivery_failed":    "Une erreur est survenue lors de l'envoi. Veuillez réessayer plus tard ou nous contacter directement.",
	"bad_request":        "Requête invalide.",
	"internal_error":     "Une erreur interne est survenue. Veuillez réessayer plus tard.",
}

// Service processes contact submissions.
type Service struct {
	guard        *Guard
	validator    *Validator
	composer     *Composer
	relay        *Relay
	tr           *i18n.Translator
	lang         string
	loc          *time.Location
	log          *slog.Logger
	now          func() time.Time
	errorHandler handler.ErrorHandler[handler.Context]
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock replaces time.Now for the submission timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithErrorHandler replaces the JSON error handler built from the catalog.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// NewService wires the contact pipeline. guard may be nil to accept every
// submission.
func NewService(cfg Config, guard *Guard, v *Validator, c *Composer, r *Relay, tr *i18n.Translator, opts ...Option) (*Service, error) {
	if v == nil || c == nil || r == nil {
		return nil, fmt.Errorf("%w: validator, composer and relay are required", ErrInvalidConfig)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if guard == nil {
		guard = NewGuard()
	}

	s := &Service{
		guard:     guard,
		validator: v,
		composer:  c,
		relay:     r,
		tr:        tr,
		lang:      cfg.language(),
		loc:       loc,
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
			BadRequestMessage:    s.Message("bad_request"),
			InternalErrorMessage: s.Message("internal_error"),
		})
	}
	return s, nil
}

// Message returns the localized contact message for key.
func (s *Service) Message(key string, args ...string) string {
	if s.tr == nil {
		return i18n.Substitute(defaultMessages[key], args...)
	}
	return s.tr.Td(s.lang, "contact."+key, defaultMessages[key], args...)
}

// Submit sanitizes, validates, composes and delivers sub. It does not run
// the guard. The result is nil, validator.ValidationErrors or
// ErrDeliveryFailed.
func (s *Service) Submit(ctx context.Context, sub Submission, meta Meta) error {
	fields := Sanitize(sub)
	if err := s.validator.Validate(ctx, fields); err != nil {
		return err
	}

	msg, err := s.composer.Compose(ctx, fields, meta)
	if err != nil {
		return fmt.Errorf("compose contact email: %w", err)
	}

	if !s.relay.Deliver(ctx, msg) {
		return ErrDeliveryFailed
	}
	return nil
}

// HandlerFunc returns the POST handler. Form and JSON bodies are accepted.
func (s *Service) HandlerFunc() http.HandlerFunc {
	return handler.Wrap(s.submit,
		handler.WithBinders[handler.Context, Submission](binder.Form(), binder.JSON()),
		handler.WithDecorators(s.guard.Decorator(s.respond)),
		handler.WithErrorHandler[handler.Context, Submission](s.errorHandler),
	)
}

func (s *Service) submit(ctx handler.Context, req Submission) handler.Response {
	return s.respond(ctx, s.Submit(ctx, req, s.meta(ctx.Request())))
}

func (s *Service) meta(r *http.Request) Meta {
	ip := clientip.FromContext(r.Context())
	if ip == "" {
		ip = r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}
	}
	return Meta{
		ClientIP:    ip,
		SubmittedAt: s.now().In(s.loc),
		Host:        r.Host,
	}
}

func (s *Service) respond(ctx handler.Context, err error) handler.Response {
	var limited *RateLimitError
	switch {
	case err == nil:
		return handler.Success(s.Message("success"))

	case errors.Is(err, ErrBotDetected):
		s.reject(ctx, "bot_detected", err)
		return handler.Failure(http.StatusBadRequest, s.Message("bot_detected"))

	case errors.As(err, &limited):
		s.reject(ctx, "rate_limited", err)
		return handler.Failure(http.StatusTooManyRequests,
			s.Message("rate_limited", "seconds", strconv.Itoa(seconds(limited.Interval))),
			handler.WithJSONHeader("Retry-After", strconv.Itoa(seconds(limited.RetryAfter))),
		)

	case validator.IsValidationError(err):
		return handler.Failure(http.StatusUnprocessableEntity, validator.ExtractValidationErrors(err).Join(" "))

	case errors.Is(err, ErrDeliveryFailed):
		return handler.Failure(http.StatusBadGateway, s.Message("delivery_failed"))

	default:
		return handler.Error(err)
	}
}

func (s *Service) reject(ctx context.Context, event string, err error) {
	s.log.InfoContext(ctx, "contact submission rejected",
		logger.Component("contact"),
		logger.Event(event),
		logger.Error(err),
	)
}

// seconds rounds d up to whole seconds, with a minimum of one.
func seconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}
