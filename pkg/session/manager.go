package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/boubliclub/formrelay/pkg/cookie"
)

// Manager issues and resolves sessions.
type Manager struct {
	codec     *cookie.Manager
	transport Transport
	lifetime  time.Duration
	now       func() time.Time
	onError   func(w http.ResponseWriter, r *http.Request, err error)
}

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithTransport sets the token transport.
func WithTransport(t Transport) Option {
	return func(m *Manager) {
		m.transport = t
	}
}

// WithLifetime sets how long a session lives after creation.
func WithLifetime(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.lifetime = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithErrorHandler sets the response written when EnsureSession fails.
func WithErrorHandler(fn func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(m *Manager) {
		if fn != nil {
			m.onError = fn
		}
	}
}

// New creates a Manager sealing tokens with codec. Without WithTransport
// the token travels in a "sid" cookie.
func New(codec *cookie.Manager, opts ...Option) *Manager {
	m := &Manager{
		codec:    codec,
		lifetime: 24 * time.Hour,
		now:      time.Now,
		onError: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.transport == nil {
		m.transport = NewCookieTransport(codec, "sid")
	}
	return m
}

// NewFromConfig wires cookie and header transports from cfg.
func NewFromConfig(cfg Config, codec *cookie.Manager, opts ...Option) *Manager {
	transports := []Transport{NewCookieTransport(codec, cfg.CookieName)}
	if cfg.HeaderName != "" {
		transports = append(transports, NewHeaderTransport(cfg.HeaderName))
	}
	base := []Option{
		WithTransport(NewCompositeTransport(transports...)),
		WithLifetime(cfg.MaxLifetime),
	}
	return New(codec, append(base, opts...)...)
}

// Lifetime returns the configured session lifetime.
func (m *Manager) Lifetime() time.Duration {
	return m.lifetime
}

// Get resolves the session carried by r.
func (m *Manager) Get(r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}

	plain, err := m.codec.Open(token)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	var s Session
	if err := json.Unmarshal([]byte(plain), &s); err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if s.IsExpired(m.now()) {
		return nil, ErrSessionExpired
	}
	return &s, nil
}

// Ensure returns the request's session, issuing a new one when it is
// missing, invalid or expired.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if s, err := m.Get(r); err == nil {
		return s, nil
	}

	s := newSession(m.now(), m.lifetime)
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	token, err := m.codec.Seal(string(raw))
	if err != nil {
		return nil, err
	}
	if err := m.transport.SetToken(w, token, m.lifetime); err != nil {
		return nil, err
	}
	return s, nil
}

// Destroy clears the token on the client.
func (m *Manager) Destroy(w http.ResponseWriter) error {
	return m.transport.ClearToken(w)
}
