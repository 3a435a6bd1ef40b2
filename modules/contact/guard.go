package contact

import (
	"context"
	"fmt"
	"net"

	"github.com/boubliclub/formrelay/handler"
	"github.com/boubliclub/formrelay/pkg/clientip"
	"github.com/boubliclub/formrelay/pkg/ratelimiter"
	"github.com/boubliclub/formrelay/pkg/session"
)

// Check inspects a raw submission before any other processing.
type Check func(ctx context.Context, s Submission) error

// Honeypot rejects submissions with a filled website field. Whitespace
// counts as filled.
func Honeypot() Check {
	return func(_ context.Context, s Submission) error {
		if s.Website != "" {
			return ErrBotDetected
		}
		return nil
	}
}

// KeyFunc derives the cooldown key from the request context.
type KeyFunc func(ctx context.Context) string

// SessionKey keys on the session id, falling back to the client IP for
// requests that carry no session.
func SessionKey(ctx context.Context) string {
	if key := session.KeyFromContext(ctx); key != "" {
		return key
	}
	return IPKey(ctx)
}

// IPKey keys on the client IP, or returns "" when none is known.
func IPKey(ctx context.Context) string {
	if ip := clientIP(ctx); ip != "" {
		return "ip:" + ip
	}
	return ""
}

func clientIP(ctx context.Context) string {
	if ip := clientip.FromContext(ctx); ip != "" {
		return ip
	}
	hc, ok := ctx.(handler.Context)
	if !ok || hc.Request() == nil {
		return ""
	}
	if host, _, err := net.SplitHostPort(hc.Request().RemoteAddr); err == nil {
		return host
	}
	return hc.Request().RemoteAddr
}

// Cooldown accepts one submission per key every cd.Interval(). The first
// submission for a key is always accepted and recorded.
func Cooldown(cd *ratelimiter.Cooldown, key KeyFunc) Check {
	if key == nil {
		key = SessionKey
	}
	return func(ctx context.Context, _ Submission) error {
		res, err := cd.Allow(ctx, key(ctx))
		if err != nil {
			return fmt.Errorf("contact cooldown: %w", err)
		}
		if !res.Allowed {
			return &RateLimitError{Interval: cd.Interval(), RetryAfter: res.RetryAfter}
		}
		return nil
	}
}

// IPLimit caps submissions per client IP across sessions with b. Requests
// without a known IP are not limited.
func IPLimit(b *ratelimiter.Bucket) Check {
	return func(ctx context.Context, _ Submission) error {
		key := IPKey(ctx)
		if key == "" {
			return nil
		}
		res, err := b.Allow(ctx, key)
		if err != nil {
			return fmt.Errorf("contact ip limit: %w", err)
		}
		if !res.Allowed() {
			wait := res.RetryAfter()
			return &RateLimitError{Interval: wait, RetryAfter: wait}
		}
		return nil
	}
}

// Guard runs checks in order and stops at the first failure.
type Guard struct {
	checks []Check
}

func NewGuard(checks ...Check) *Guard {
	return &Guard{checks: checks}
}

func (g *Guard) Check(ctx context.Context, s Submission) error {
	for _, check := range g.checks {
		if err := check(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Decorator short-circuits the wrapped handler with reject(err) when a
// check fails.
func (g *Guard) Decorator(reject func(ctx handler.Context, err error) handler.Response) handler.Decorator[handler.Context, Submission] {
	return func(next handler.HandlerFunc[handler.Context, Submission]) handler.HandlerFunc[handler.Context, Submission] {
		return func(ctx handler.Context, req Submission) handler.Response {
			if err := g.Check(ctx, req); err != nil {
				return reject(ctx, err)
			}
			return next(ctx, req)
		}
	}
}
