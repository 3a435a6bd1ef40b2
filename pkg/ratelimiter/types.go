package ratelimiter

import "time"

// Result contains the result of a rate limit check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // negative when the request was denied
	ResetAt   time.Time // next refill
}

// Allowed reports whether the request fit in the bucket.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next request, or 0.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Config defines the token bucket configuration.
type Config struct {
	Capacity       int           `env:"CONTACT_IP_BURST" envDefault:"10"`
	RefillRate     int           `env:"CONTACT_IP_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"CONTACT_IP_REFILL" envDefault:"1m"`
}
