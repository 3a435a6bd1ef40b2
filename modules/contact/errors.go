package contact

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBotDetected    = errors.New("contact.bot_detected")
	ErrRateLimited    = errors.New("contact.rate_limited")
	ErrDeliveryFailed = errors.New("contact.delivery_failed")
	ErrInvalidConfig  = errors.New("contact.invalid_config")
)

// RateLimitError reports a submission refused by the cooldown or the
// per-IP limit. Interval is the wait quoted to the visitor.
type RateLimitError struct {
	Interval   time.Duration
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: retry in %s", ErrRateLimited, e.RetryAfter.Round(time.Second))
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
