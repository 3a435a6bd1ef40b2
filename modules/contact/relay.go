package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/boubliclub/formrelay/pkg/email"
	"github.com/boubliclub/formrelay/pkg/logger"
)

// Journal records delivery outcomes by submitter address.
type Journal interface {
	Success(sender string) error
	Failure(sender string) error
}

// Relay hands composed messages to a mail transport.
type Relay struct {
	sender  email.Sender
	journal Journal
	log     *slog.Logger
}

func NewRelay(sender email.Sender, journal Journal, log *slog.Logger) *Relay {
	if log == nil {
		log = slog.Default()
	}
	return &Relay{sender: sender, journal: journal, log: log}
}

// Deliver makes exactly one send attempt and journals the outcome under
// the message's Reply-To address. Transport errors are only logged.
func (r *Relay) Deliver(ctx context.Context, msg email.Message) bool {
	start := time.Now()
	err := r.sender.Send(ctx, msg)

	attrs := []slog.Attr{
		logger.Component("contact_relay"),
		logger.Email(msg.ReplyTo),
		logger.Duration(time.Since(start)),
	}

	if err != nil {
		r.log.LogAttrs(ctx, slog.LevelError, "contact email delivery failed",
			append(attrs, logger.Event("delivery_failed"), logger.Error(err))...)
		r.record(ctx, false, msg.ReplyTo)
		return false
	}

	r.log.LogAttrs(ctx, slog.LevelInfo, "contact email delivered",
		append(attrs, logger.Event("delivered"))...)
	r.record(ctx, true, msg.ReplyTo)
	return true
}

func (r *Relay) record(ctx context.Context, delivered bool, sender string) {
	if r.journal == nil {
		return
	}
	write := r.journal.Failure
	if delivered {
		write = r.journal.Success
	}
	if err := write(sender); err != nil {
		r.log.WarnContext(ctx, "journal write failed",
			logger.Component("contact_relay"),
			logger.Error(err),
		)
	}
}
