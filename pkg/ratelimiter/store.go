package ratelimiter

import (
	"context"
	"time"
)

// Store holds token bucket state.
type Store interface {
	// ConsumeTokens refills the bucket for key and takes tokens from it.
	// A negative remaining count means the request must be denied.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// CooldownStore holds the time of the last accepted action per key.
type CooldownStore interface {
	// Last returns the stored time and whether one exists.
	Last(ctx context.Context, key string) (time.Time, bool, error)
	// Record stores at for key, keeping it for at least ttl.
	Record(ctx context.Context, key string, at time.Time, ttl time.Duration) error
}
