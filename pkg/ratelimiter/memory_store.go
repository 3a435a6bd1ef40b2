package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type bucketState struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

type cooldownEntry struct {
	at        time.Time
	expiresAt time.Time
}

// MemoryStore keeps token buckets and cooldown timestamps in process
// memory. It implements both Store and CooldownStore.
type MemoryStore struct {
	mu        sync.Mutex
	buckets   map[string]*bucketState
	cooldowns map[string]cooldownEntry

	now             func() time.Time
	staleAfter      time.Duration
	cleanupInterval time.Duration
	stop            chan struct{}
	closeOnce       sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often stale entries are purged.
// Zero disables the cleanup goroutine.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithStaleAfter sets how long an untouched bucket is kept.
func WithStaleAfter(d time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if d > 0 {
			ms.staleAfter = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		buckets:         make(map[string]*bucketState),
		cooldowns:       make(map[string]cooldownEntry),
		now:             time.Now,
		staleAfter:      time.Hour,
		cleanupInterval: 5 * time.Minute,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ms)
	}

	if ms.cleanupInterval > 0 {
		go ms.cleanup()
	}
	return ms
}

func (ms *MemoryStore) ConsumeTokens(_ context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &bucketState{tokens: config.Capacity, lastRefill: now}
		ms.buckets[key] = b
	}

	// Cap elapsed intervals so the multiplication cannot overflow.
	maxIntervals := int64(config.Capacity/config.RefillRate + 1)
	intervals := int(min(int64(now.Sub(b.lastRefill)/config.RefillInterval), maxIntervals))
	if intervals > 0 {
		b.tokens = min(b.tokens+intervals*config.RefillRate, config.Capacity)
		b.lastRefill = now
	}

	// Denied requests do not consume tokens.
	remaining := b.tokens - tokens
	if remaining >= 0 {
		b.tokens = remaining
	}
	b.lastAccess = now

	return remaining, b.lastRefill.Add(config.RefillInterval), nil
}

func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.buckets, key)
	delete(ms.cooldowns, key)
	return nil
}

func (ms *MemoryStore) Last(_ context.Context, key string) (time.Time, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	e, ok := ms.cooldowns[key]
	if !ok || !ms.now().Before(e.expiresAt) {
		return time.Time{}, false, nil
	}
	return e.at, true, nil
}

func (ms *MemoryStore) Record(_ context.Context, key string, at time.Time, ttl time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.cooldowns[key] = cooldownEntry{at: at, expiresAt: ms.now().Add(ttl)}
	return nil
}

// Len returns the number of tracked buckets and cooldown keys.
func (ms *MemoryStore) Len() (buckets, cooldowns int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.buckets), len(ms.cooldowns)
}

func (ms *MemoryStore) cleanup() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.RemoveStale()
		case <-ms.stop:
			return
		}
	}
}

// RemoveStale drops idle buckets and expired cooldowns.
func (ms *MemoryStore) RemoveStale() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for key, b := range ms.buckets {
		if now.Sub(b.lastAccess) > ms.staleAfter {
			delete(ms.buckets, key)
		}
	}
	for key, e := range ms.cooldowns {
		if !now.Before(e.expiresAt) {
			delete(ms.cooldowns, key)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (ms *MemoryStore) Close() {
	ms.closeOnce.Do(func() { close(ms.stop) })
}
