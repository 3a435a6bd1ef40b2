package mxcheck

import "time"

type Config struct {
	Enabled   bool          `env:"CONTACT_MX_CHECK" envDefault:"true"`
	Timeout   time.Duration `env:"CONTACT_MX_TIMEOUT" envDefault:"3s"`
	CacheSize int           `env:"CONTACT_MX_CACHE_SIZE" envDefault:"1024"`
	CacheTTL  time.Duration `env:"CONTACT_MX_CACHE_TTL" envDefault:"10m"`
}

// NewFromConfig builds a cached DNS resolver, or a resolver accepting every
// domain when the check is disabled.
func NewFromConfig(cfg Config) Resolver {
	if !cfg.Enabled {
		return Static{Default: true}
	}
	var r Resolver = NewNetResolver(nil, cfg.Timeout)
	if cfg.CacheSize > 0 && cfg.CacheTTL > 0 {
		r = NewCached(r, cfg.CacheSize, cfg.CacheTTL)
	}
	return r
}
