package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tickerlens/backend/pkg/config"
)

// Client owns the Redis connection.
//
// A disabled client is a valid state, not an error: when REDIS_ENABLED is
// false every caller sees Enabled() == false and the cache layer treats the
// store as an always-miss. That keeps the redis backend selectable by config
// without the rest of the code branching on connectivity.
type Client struct {
	rdb     *redis.Client
	enabled bool
}

// New connects to Redis, or returns a disabled client when Redis is turned
// off in config.
func New(cfg *config.Config) (*Client, error) {
	if !cfg.Redis.Enabled {
		return &Client{enabled: false}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Fail at startup rather than on the first cache read.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Client{
		rdb:     rdb,
		enabled: true,
	}, nil
}

// Close closes the connection. Safe on a disabled client.
func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// Enabled reports whether a live connection exists.
func (c *Client) Enabled() bool {
	return c.enabled
}

// Redis exposes the underlying client to the cache store.
func (c *Client) Redis() *redis.Client {
	return c.rdb
}
