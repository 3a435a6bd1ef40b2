package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/boubliclub/formrelay/pkg/cookie"
)

// Transport moves opaque session tokens between client and server.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
	ClearToken(w http.ResponseWriter) error
}

// CookieTransport carries the token in a cookie.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
	options []cookie.Option
}

// NewCookieTransport stores tokens in the cookie name. opts override the
// manager defaults.
func NewCookieTransport(cookies *cookie.Manager, name string, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{cookies: cookies, name: name, options: opts}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookies.Get(r, t.name)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := append([]cookie.Option{cookie.WithMaxAge(int(ttl.Seconds()))}, t.options...)
	t.cookies.Set(w, t.name, token, opts...)
	return nil
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookies.Delete(w, t.name)
	return nil
}

// HeaderTransport carries the token in a header, optionally prefixed.
type HeaderTransport struct {
	headerName string
	prefix     string
}

// HeaderOption is a functional option for HeaderTransport.
type HeaderOption func(*HeaderTransport)

// WithHeaderPrefix sets a prefix such as "Bearer " for the header value.
func WithHeaderPrefix(prefix string) HeaderOption {
	return func(t *HeaderTransport) {
		t.prefix = prefix
	}
}

func NewHeaderTransport(headerName string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{headerName: headerName}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := strings.TrimSpace(strings.TrimPrefix(r.Header.Get(t.headerName), t.prefix))
	if value == "" {
		return "", ErrSessionNotFound
	}
	return value, nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	w.Header().Set(t.headerName, t.prefix+token)
	if ttl > 0 {
		w.Header().Set(t.headerName+"-Expires", time.Now().Add(ttl).UTC().Format(time.RFC3339))
	}
	return nil
}

func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del(t.headerName)
	w.Header().Del(t.headerName + "-Expires")
	return nil
}

// CompositeTransport reads from the first transport that has a token and
// writes to all of them.
type CompositeTransport struct {
	transports []Transport
}

func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{transports: transports}
}

func (t *CompositeTransport) GetToken(r *http.Request) (string, error) {
	for _, tr := range t.transports {
		if token, err := tr.GetToken(r); err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrSessionNotFound
}

func (t *CompositeTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	for _, tr := range t.transports {
		if err := tr.SetToken(w, token, ttl); err != nil {
			return err
		}
	}
	return nil
}

func (t *CompositeTransport) ClearToken(w http.ResponseWriter) error {
	for _, tr := range t.transports {
		if err := tr.ClearToken(w); err != nil {
			return err
		}
	}
	return nil
}
