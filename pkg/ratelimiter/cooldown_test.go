package ratelimiter_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boubliclub/formrelay/pkg/ratelimiter"
)

func newCooldown(t *testing.T, clk *clock) (*ratelimiter.Cooldown, *ratelimiter.MemoryStore) {
	t.Helper()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0), ratelimiter.WithClock(clk.Now))
	t.Cleanup(store.Close)

	cd, err := ratelimiter.NewCooldown(store,
		ratelimiter.CooldownConfig{Interval: 30 * time.Second, TTL: time.Hour},
		ratelimiter.WithCooldownClock(clk.Now),
	)
	require.NoError(t, err)
	return cd, store
}

func TestCooldown(t *testing.T) {
	t.Parallel()

	t.Run("first submission allowed and recorded", func(t *testing.T) {
		t.Parallel()
		clk := newClock()
		cd, store := newCooldown(t, clk)

		res, err := cd.Allow(context.Background(), "sess")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.True(t, res.Last.IsZero())

		last, ok, err := store.Last(context.Background(), "sess")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, clk.Now(), last)
	})

	t.Run("rejected within interval keeps timestamp", func(t *testing.T) {
		t.Parallel()
		clk := newClock()
		cd, store := newCooldown(t, clk)
		ctx := context.Background()
		start := clk.Now()

		_, err := cd.Allow(ctx, "sess")
		require.NoError(t, err)

		clk.Advance(29 * time.Second)
		res, err := cd.Allow(ctx, "sess")
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Equal(t, time.Second, res.RetryAfter)

		last, _, _ := store.Last(ctx, "sess")
		assert.Equal(t, start, last, "rejection must not move the timestamp")
	})

	t.Run("allowed after interval advances timestamp", func(t *testing.T) {
		t.Parallel()
		clk := newClock()
		cd, store := newCooldown(t, clk)
		ctx := context.Background()

		_, err := cd.Allow(ctx, "sess")
		require.NoError(t, err)

		clk.Advance(30 * time.Second)
		res, err := cd.Allow(ctx, "sess")
		require.NoError(t, err)
		assert.True(t, res.Allowed)

		last, _, _ := store.Last(ctx, "sess")
		assert.Equal(t, clk.Now(), last)
	})

	t.Run("sessions are independent", func(t *testing.T) {
		t.Parallel()
		clk := newClock()
		cd, _ := newCooldown(t, clk)
		ctx := context.Background()

		_, _ = cd.Allow(ctx, "a")
		res, err := cd.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})

	t.Run("expired entry behaves like first submission", func(t *testing.T) {
		t.Parallel()
		clk := newClock()
		cd, store := newCooldown(t, clk)
		ctx := context.Background()

		_, _ = cd.Allow(ctx, "sess")
		clk.Advance(2 * time.Hour)
		store.RemoveStale()
		_, cooldowns := store.Len()
		assert.Zero(t, cooldowns)

		res, err := cd.Allow(ctx, "sess")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()
		cd, _ := newCooldown(t, newClock())
		_, err := cd.Allow(context.Background(), "")
		assert.ErrorIs(t, err, ratelimiter.ErrEmptyKey)
	})

	t.Run("concurrent submissions accept exactly one", func(t *testing.T) {
		t.Parallel()
		cd, _ := newCooldown(t, newClock())

		var allowed atomic.Int32
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if res, err := cd.Allow(context.Background(), "sess"); err == nil && res.Allowed {
					allowed.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.EqualValues(t, 1, allowed.Load())
	})
}

type failingStore struct{}

func (failingStore) Last(context.Context, string) (time.Time, bool, error) {
	return time.Time{}, false, errors.New("down")
}

func (failingStore) Record(context.Context, string, time.Time, time.Duration) error {
	return errors.New("down")
}

func TestCooldownStoreErrors(t *testing.T) {
	t.Parallel()

	cd, err := ratelimiter.NewCooldown(failingStore{}, ratelimiter.CooldownConfig{Interval: time.Second})
	require.NoError(t, err)

	_, err = cd.Allow(context.Background(), "sess")
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)

	_, err = ratelimiter.NewCooldown(nil, ratelimiter.CooldownConfig{Interval: time.Second})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	_, err = ratelimiter.NewCooldown(failingStore{}, ratelimiter.CooldownConfig{})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestRedisCooldownStoreKey(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewRedisCooldownStore(nil, "formrelay:")
	assert.Equal(t, "formrelay:cooldown:sess-1", store.Key("sess-1"))
}

func TestRedisCooldownStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := ratelimiter.NewRedisCooldownStore(client, "formrelay-test:")
	key := "sess-" + time.Now().Format("150405.000000000")

	_, ok, err := store.Last(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Unix(1_700_000_000, 123)
	require.NoError(t, store.Record(ctx, key, at, time.Minute))

	got, ok, err := store.Last(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, at.Equal(got))

	n, err := client.Exists(ctx, "formrelay-test:cooldown:"+key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
