// Package clientip resolves the originating client address of an HTTP
// request, honouring proxy headers only when the deployment says they are
// set by a trusted proxy.
package clientip

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders is the lookup order used behind Cloudflare, DigitalOcean
// App Platform and nginx.
var DefaultHeaders = []string{"CF-Connecting-IP", "DO-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Config controls proxy header handling.
type Config struct {
	TrustProxyHeaders bool     `env:"CLIENTIP_TRUST_PROXY" envDefault:"false"`
	Headers           []string `env:"CLIENTIP_HEADERS" envSeparator:","`
}

// Resolver extracts client addresses.
type Resolver struct {
	headers []string
}

// New returns a resolver that reads the given headers in order before
// falling back to RemoteAddr. No headers means RemoteAddr only.
func New(headers ...string) *Resolver {
	return &Resolver{headers: headers}
}

// NewFromConfig builds a resolver from cfg.
func NewFromConfig(cfg Config) *Resolver {
	if !cfg.TrustProxyHeaders {
		return New()
	}
	if len(cfg.Headers) > 0 {
		return New(cfg.Headers...)
	}
	return New(DefaultHeaders...)
}

// IP returns the normalized client address or "" when none is valid.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		// X-Forwarded-For style lists: the left-most valid entry is the client.
		for part := range strings.SplitSeq(v, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// Middleware stores the resolved address in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.IP(r))))
	})
}

func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().String()
}

type contextKey struct{}

// WithContext stores ip in ctx.
func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// FromContext returns the address stored by Middleware, or "".
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}
