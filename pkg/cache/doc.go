// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
//	c := cache.NewLRU[string, bool](1024, cache.WithTTL[string, bool](10*time.Minute))
//	c.Put("example.com", true)
//	ok, found := c.Get("example.com")
//
// Expired entries are dropped lazily on access and count towards capacity
// until then.
package cache
