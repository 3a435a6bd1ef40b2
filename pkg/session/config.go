package session

import "time"

// Config holds session configuration.
type Config struct {
	CookieName  string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	HeaderName  string        `env:"SESSION_HEADER_NAME" envDefault:"X-Session-Token"`
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"24h"`
}
