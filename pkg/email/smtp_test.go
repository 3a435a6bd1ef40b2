package email_test

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"sync"
	"testing"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boubliclub/formrelay/pkg/email"
)

type received struct {
	from string
	to   []string
	data string
	user string
}

type smtpBackend struct {
	mu       sync.Mutex
	messages []received
	rejectTo string
}

func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{backend: b}, nil
}

func (b *smtpBackend) all() []received {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]received(nil), b.messages...)
}

type smtpSession struct {
	backend *smtpBackend
	cur     received
}

func (s *smtpSession) AuthMechanisms() []string {
	return []string{sasl.Plain}
}

func (s *smtpSession) Auth(mech string) (sasl.Server, error) {
	return sasl.NewPlainServer(func(identity, username, password string) error {
		if username != "relay" || password != "secret" {
			return errors.New("invalid credentials")
		}
		s.cur.user = username
		return nil
	}), nil
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.cur.from = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	if to == s.backend.rejectTo {
		return &smtp.SMTPError{Code: 550, EnhancedCode: smtp.EnhancedCode{5, 1, 1}, Message: "mailbox unavailable"}
	}
	s.cur.to = append(s.cur.to, to)
	return nil
}

func (s *smtpSession) Data(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.cur.data = string(b)
	s.backend.mu.Lock()
	s.backend.messages = append(s.backend.messages, s.cur)
	s.backend.mu.Unlock()
	return nil
}

func (s *smtpSession) Reset() {
	user := s.cur.user
	s.cur = received{user: user}
}

func (s *smtpSession) Logout() error { return nil }

func startSMTPServer(t *testing.T, be *smtpBackend) (string, int) {
	t.Helper()

	srv := smtp.NewServer(be)
	srv.Domain = "localhost"
	srv.AllowInsecureAuth = true

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Close() })

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return host, p
}

func TestSMTPSender(t *testing.T) {
	t.Parallel()

	t.Run("delivers with authentication", func(t *testing.T) {
		t.Parallel()

		be := &smtpBackend{}
		host, port := startSMTPServer(t, be)

		sender, err := email.NewSMTPSender(email.SMTPConfig{
			Host:     host,
			Port:     port,
			Security: email.SecurityPlain,
			Username: "relay",
			Password: "secret",
		})
		require.NoError(t, err)
		require.NoError(t, sender.Send(context.Background(), validMessage()))

		msgs := be.all()
		require.Len(t, msgs, 1)
		assert.Equal(t, "relay", msgs[0].user)
		assert.Equal(t, "noreply@boubliclub.example", msgs[0].from)
		assert.Equal(t, []string{"contact@boubliclub.example"}, msgs[0].to)
		assert.Contains(t, msgs[0].data, "X-Priority: 1")
		assert.Contains(t, msgs[0].data, "<p>Salut</p>")
	})

	t.Run("wrong credentials", func(t *testing.T) {
		t.Parallel()

		be := &smtpBackend{}
		host, port := startSMTPServer(t, be)

		sender, err := email.NewSMTPSender(email.SMTPConfig{
			Host: host, Port: port, Security: email.SecurityPlain,
			Username: "relay", Password: "wrong",
		})
		require.NoError(t, err)

		err = sender.Send(context.Background(), validMessage())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Empty(t, be.all())
	})

	t.Run("permanent recipient rejection", func(t *testing.T) {
		t.Parallel()

		be := &smtpBackend{rejectTo: "contact@boubliclub.example"}
		host, port := startSMTPServer(t, be)

		sender, err := email.NewSMTPSender(email.SMTPConfig{Host: host, Port: port, Security: email.SecurityPlain})
		require.NoError(t, err)

		err = sender.Send(context.Background(), validMessage())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.ErrorIs(t, err, email.ErrRejected)
	})

	t.Run("server unreachable", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := ln.Addr().(*net.TCPAddr)
		require.NoError(t, ln.Close())

		sender, err := email.NewSMTPSender(email.SMTPConfig{Host: "127.0.0.1", Port: addr.Port, Security: email.SecurityPlain})
		require.NoError(t, err)

		err = sender.Send(context.Background(), validMessage())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	})
}

func TestNewSMTPSenderConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  email.SMTPConfig
	}{
		{name: "missing host", cfg: email.SMTPConfig{Port: 25}},
		{name: "bad port", cfg: email.SMTPConfig{Host: "localhost", Port: 0}},
		{name: "unknown security", cfg: email.SMTPConfig{Host: "localhost", Port: 25, Security: "ssl3"}},
		{name: "username without password", cfg: email.SMTPConfig{Host: "localhost", Port: 25, Username: "u"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := email.NewSMTPSender(tt.cfg)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
		})
	}
}
