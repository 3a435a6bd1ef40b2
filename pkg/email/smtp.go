package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// SMTP connection security modes.
const (
	SecurityStartTLS = "starttls"
	SecurityTLS      = "tls"
	SecurityPlain    = "plain"
)

// SMTPConfig configures SMTPSender.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Security  string
	Timeout   time.Duration
	LocalName string
	TLSConfig *tls.Config
}

// SMTPSender delivers over SMTP with optional SASL PLAIN authentication.
// Each Send opens a fresh connection.
type SMTPSender struct {
	cfg  SMTPConfig
	addr string
	now  func() time.Time
}

// NewSMTPSender validates cfg and returns a sender.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: SMTP host is required", ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: invalid SMTP port %d", ErrInvalidConfig, cfg.Port)
	}
	cfg.Security = strings.ToLower(strings.TrimSpace(cfg.Security))
	switch cfg.Security {
	case "":
		cfg.Security = SecurityStartTLS
	case SecurityStartTLS, SecurityTLS, SecurityPlain:
	default:
		return nil, fmt.Errorf("%w: unknown SMTP security %q", ErrInvalidConfig, cfg.Security)
	}
	if (cfg.Username == "") != (cfg.Password == "") {
		return nil, fmt.Errorf("%w: SMTP username and password go together", ErrInvalidConfig)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.TLSConfig == nil {
		cfg.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	}

	return &SMTPSender{
		cfg:  cfg,
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		now:  time.Now,
	}, nil
}

func (s *SMTPSender) dial() (*smtp.Client, error) {
	switch s.cfg.Security {
	case SecurityTLS:
		return smtp.DialTLS(s.addr, s.cfg.TLSConfig)
	case SecurityPlain:
		return smtp.Dial(s.addr)
	default:
		return smtp.DialStartTLS(s.addr, s.cfg.TLSConfig)
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	from, err := envelopeAddress(msg.From)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	to, err := envelopeAddress(msg.To)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	raw, err := msg.Bytes(s.now())
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	c, err := s.dial()
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("dial %s: %w", s.addr, err))
	}
	defer c.Close()

	c.CommandTimeout = s.cfg.Timeout
	c.SubmissionTimeout = s.cfg.Timeout

	if s.cfg.LocalName != "" {
		if err := c.Hello(s.cfg.LocalName); err != nil {
			return errors.Join(ErrFailedToSendEmail, err)
		}
	}
	if s.cfg.Username != "" {
		if err := c.Auth(sasl.NewPlainClient("", s.cfg.Username, s.cfg.Password)); err != nil {
			return errors.Join(ErrFailedToSendEmail, fmt.Errorf("auth: %w", err))
		}
	}
	if err := c.SendMail(from, []string{to}, bytes.NewReader(raw)); err != nil {
		var smtpErr *smtp.SMTPError
		if errors.As(err, &smtpErr) && smtpErr.Code >= 500 {
			return errors.Join(ErrFailedToSendEmail, ErrRejected, err)
		}
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return c.Quit()
}
