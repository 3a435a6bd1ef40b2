// Package mxcheck answers whether a mail domain publishes MX records.
//
// The contact form rejects addresses whose domain cannot receive mail.
// NetResolver asks DNS, Cached memoizes definitive answers and Static
// serves fixed answers for tests or offline deployments.
package mxcheck

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/boubliclub/formrelay/pkg/cache"
)

var (
	ErrEmptyDomain  = errors.New("mxcheck.empty_domain")
	ErrLookupFailed = errors.New("mxcheck.lookup_failed")
)

// Resolver reports whether domain has at least one MX record.
// A missing domain is (false, nil); transient failures return an error.
type Resolver interface {
	HasMX(ctx context.Context, domain string) (bool, error)
}

// NetResolver queries DNS through net.Resolver.
type NetResolver struct {
	resolver *net.Resolver
	timeout  time.Duration
}

// NewNetResolver uses net.DefaultResolver when r is nil. A positive timeout
// bounds each lookup.
func NewNetResolver(r *net.Resolver, timeout time.Duration) *NetResolver {
	if r == nil {
		r = net.DefaultResolver
	}
	return &NetResolver{resolver: r, timeout: timeout}
}

func (n *NetResolver) HasMX(ctx context.Context, domain string) (bool, error) {
	domain = normalize(domain)
	if domain == "" {
		return false, ErrEmptyDomain
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	records, err := n.resolver.LookupMX(ctx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return false, nil
		}
		return false, errors.Join(ErrLookupFailed, err)
	}
	return len(records) > 0, nil
}

// Cached memoizes answers of another Resolver. Errors are not cached.
type Cached struct {
	next  Resolver
	cache *cache.LRU[string, bool]
}

// NewCached keeps up to size answers for ttl.
func NewCached(next Resolver, size int, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		cache: cache.NewLRU[string, bool](size, cache.WithTTL[string, bool](ttl)),
	}
}

func (c *Cached) HasMX(ctx context.Context, domain string) (bool, error) {
	domain = normalize(domain)
	if ok, found := c.cache.Get(domain); found {
		return ok, nil
	}

	ok, err := c.next.HasMX(ctx, domain)
	if err != nil {
		return false, err
	}
	c.cache.Put(domain, ok)
	return ok, nil
}

// Static answers from a fixed set of domains. Domains not listed get
// Default.
type Static struct {
	Domains map[string]bool
	Default bool
}

func (s Static) HasMX(_ context.Context, domain string) (bool, error) {
	domain = normalize(domain)
	if domain == "" {
		return false, ErrEmptyDomain
	}
	if ok, found := s.Domains[domain]; found {
		return ok, nil
	}
	return s.Default, nil
}

func normalize(domain string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
}
