// Package ratelimiter throttles requests per key.
//
// Two limiters are provided:
//
//   - Bucket is a token bucket (burst capacity refilled at a fixed rate),
//     backed by a Store. The contact form uses it per client IP.
//   - Cooldown enforces a minimum interval between accepted actions for
//     the same key, backed by a CooldownStore. The contact form uses it
//     per session: the first submission is always accepted, later ones
//     only once the interval has elapsed since the last accepted one.
//
// Memory stores run a cleanup goroutine that Close stops. The Redis
// cooldown store lets several relay instances share state.
package ratelimiter
