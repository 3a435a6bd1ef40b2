package email

import (
	"context"
	"fmt"
	"strings"
)

// NewFromConfig builds the Sender selected by cfg.Driver.
func NewFromConfig(ctx context.Context, cfg Config) (Sender, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverDev:
		return NewDevSender(cfg.DevDir), nil
	case DriverSMTP:
		return NewSMTPSender(SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			Security:  cfg.SMTPSecurity,
			Timeout:   cfg.SMTPTimeout,
			LocalName: cfg.SMTPLocalName,
		})
	case DriverPostmark:
		return NewPostmarkSender(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	case DriverSES:
		return NewSESSender(ctx, SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
			Endpoint:        cfg.SESEndpoint,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
