package ratelimiter

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCooldownStore keeps cooldown timestamps in Redis so that several
// relay instances share them. Values are Unix nanoseconds stored with an
// expiry equal to the ttl passed to Record.
type RedisCooldownStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCooldownStore stores key under prefix + "cooldown:" + key.
func NewRedisCooldownStore(client redis.UniversalClient, prefix string) *RedisCooldownStore {
	return &RedisCooldownStore{client: client, prefix: prefix + "cooldown:"}
}

// Key returns the Redis key holding the timestamp for key.
func (s *RedisCooldownStore) Key(key string) string {
	return s.prefix + key
}

func (s *RedisCooldownStore) Last(ctx context.Context, key string) (time.Time, bool, error) {
	raw, err := s.client.Get(ctx, s.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	ns, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// A corrupt value must not lock the key out forever.
		return time.Time{}, false, nil
	}
	return time.Unix(0, ns), true, nil
}

func (s *RedisCooldownStore) Record(ctx context.Context, key string, at time.Time, ttl time.Duration) error {
	return s.client.Set(ctx, s.Key(key), strconv.FormatInt(at.UnixNano(), 10), ttl).Err()
}
