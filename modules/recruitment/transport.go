package recruitment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/boubliclub/formrelay/pkg/dispatcher"
	"github.com/boubliclub/formrelay/pkg/logger"
	"github.com/boubliclub/formrelay/pkg/webhook"
)

// WebhookTransport posts payloads as JSON. Any HTTP answer counts as
// delivered; only transport errors fail.
type WebhookTransport struct {
	sender *webhook.Sender
	cfg    Config
	log    *slog.Logger
}

// NewWebhookTransport validates cfg. A nil sender uses webhook.NewSender.
func NewWebhookTransport(cfg Config, sender *webhook.Sender, log *slog.Logger) (*WebhookTransport, error) {
	if cfg.WebhookURL == "" {
		return nil, fmt.Errorf("%w: webhook url is required", ErrInvalidConfig)
	}
	if sender == nil {
		sender = webhook.NewSender()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &WebhookTransport{sender: sender, cfg: cfg, log: log}, nil
}

func (t *WebhookTransport) Send(ctx context.Context, p dispatcher.Payload) error {
	_, err := t.sender.Send(ctx, t.cfg.WebhookURL, p,
		webhook.WithIgnoreStatus(),
		webhook.WithTimeout(t.cfg.Timeout),
		webhook.WithSignature(t.cfg.Secret),
		webhook.WithOnDelivery(func(r webhook.DeliveryResult) {
			t.log.DebugContext(ctx, "recruitment webhook delivery",
				logger.Component("recruitment"),
				slog.Int("status_code", r.StatusCode),
				logger.Duration(r.Duration),
			)
		}),
	)
	return err
}
