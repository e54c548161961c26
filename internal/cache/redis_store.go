package cache

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tickerlens/backend/pkg/redis"
)

// RedisStore backs the cache with Redis. The fast path for multi-instance
// deployments.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get retrieves the raw entry bytes.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if !s.client.Enabled() {
		return nil, ErrNotFound
	}

	data, err := s.client.Redis().Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return data, nil
}

// Set stores the raw entry bytes with a hard expiry.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if !s.client.Enabled() {
		return nil
	}

	return s.client.Redis().Set(ctx, key, data, ttl).Err()
}

// Delete removes the entry.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if !s.client.Enabled() {
		return nil
	}

	return s.client.Redis().Del(ctx, key).Err()
}
