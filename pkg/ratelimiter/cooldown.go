package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

const cooldownStripes = 64

// CooldownConfig configures a Cooldown.
type CooldownConfig struct {
	Interval time.Duration `env:"CONTACT_COOLDOWN" envDefault:"30s"`
	// TTL is how long the last accepted time is remembered. It should match
	// the session lifetime; zero means Interval.
	TTL time.Duration `env:"CONTACT_COOLDOWN_TTL" envDefault:"24h"`
}

// CooldownResult is the outcome of Cooldown.Allow.
type CooldownResult struct {
	Allowed    bool
	Last       time.Time     // previous accepted time, zero on first use
	RetryAfter time.Duration // zero when allowed
}

// Cooldown accepts an action for a key only when Interval has elapsed since
// the previously accepted one. The check and the update are serialized per
// key inside the process.
type Cooldown struct {
	store    CooldownStore
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
	stripes  [cooldownStripes]sync.Mutex
}

// CooldownOption configures a Cooldown.
type CooldownOption func(*Cooldown)

// WithCooldownClock replaces time.Now.
func WithCooldownClock(now func() time.Time) CooldownOption {
	return func(c *Cooldown) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCooldown validates cfg and creates a Cooldown.
func NewCooldown(store CooldownStore, cfg CooldownConfig, opts ...CooldownOption) (*Cooldown, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil store", ErrInvalidConfig)
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidConfig, cfg.Interval)
	}
	ttl := max(cfg.TTL, cfg.Interval)

	c := &Cooldown{store: store, interval: cfg.Interval, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Interval returns the configured minimum spacing.
func (c *Cooldown) Interval() time.Duration {
	return c.interval
}

// Allow reports whether an action for key may proceed now. An allowed
// action records the current time; a rejected one leaves the stored time
// untouched.
func (c *Cooldown) Allow(ctx context.Context, key string) (CooldownResult, error) {
	if key == "" {
		return CooldownResult{}, ErrEmptyKey
	}

	mu := c.stripe(key)
	mu.Lock()
	defer mu.Unlock()

	now := c.now()
	last, found, err := c.store.Last(ctx, key)
	if err != nil {
		return CooldownResult{}, errors.Join(ErrStoreUnavailable, err)
	}

	if found {
		if elapsed := now.Sub(last); elapsed < c.interval {
			return CooldownResult{Last: last, RetryAfter: c.interval - elapsed}, nil
		}
	}

	if err := c.store.Record(ctx, key, now, c.ttl); err != nil {
		return CooldownResult{}, errors.Join(ErrStoreUnavailable, err)
	}
	return CooldownResult{Allowed: true, Last: last}, nil
}

func (c *Cooldown) stripe(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &c.stripes[h.Sum32()%cooldownStripes]
}
