package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tickerlens/backend/pkg/logger"
)

// ErrNotFound is the typed miss a Store returns when a key has no entry.
var ErrNotFound = errors.New("cache entry not found")

// Store is the underlying key-value boundary. ttl is a garbage-collection
// hint; backends without native expiry may ignore it because freshness is
// decided by the Cache at read time, not by the store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Entry is the durable cache record: one whole serialized response per
// ticker, replaced atomically on every write. Never partially updated.
type Entry struct {
	Ticker    string          `json:"ticker"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
	Source    string          `json:"source"`
}

// Cache is a read-through TTL cache keyed by ticker. Staleness is evaluated
// lazily against entry age at read time, so no background eviction sweep is
// needed; a stale entry simply reads as a miss.
type Cache struct {
	store  Store
	ttl    time.Duration
	prefix string
	source string
	logger *logger.Logger
}

// New creates a cache over the given store.
func New(store Store, ttl time.Duration, prefix string, log *logger.Logger) *Cache {
	return &Cache{
		store:  store,
		ttl:    ttl,
		prefix: prefix,
		source: "tickerlens",
		logger: log.WithField("module", "cache"),
	}
}

func (c *Cache) key(ticker string) string {
	return fmt.Sprintf("%s:analysis:%s", c.prefix, ticker)
}

// Get reports whether a fresh entry exists for the ticker and, if so,
// unmarshals the cached response into dest. Store and decode failures
// degrade to a miss: the cache is an optimization, never a dependency.
func (c *Cache) Get(ctx context.Context, ticker string, dest interface{}) (bool, error) {
	data, err := c.store.Get(ctx, c.key(ticker))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.WithError(err).WithField("ticker", ticker).Warn("Cache read failed, treating as miss")
		}
		return false, nil
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Corrupt cache entry, treating as miss")
		return false, nil
	}

	if time.Since(entry.UpdatedAt) > c.ttl {
		return false, nil
	}

	if err := json.Unmarshal(entry.Data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Put writes the whole response as one atomic record, replacing any prior
// entry for the ticker.
func (c *Cache) Put(ctx context.Context, ticker string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	entry := Entry{
		Ticker:    ticker,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
		Source:    c.source,
	}

	blob, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache entry marshal failed: %w", err)
	}

	// Stores with native expiry get double the freshness window so stale
	// entries are eventually collected; the lazy age check governs hits.
	return c.store.Set(ctx, c.key(ticker), blob, 2*c.ttl)
}

// Invalidate removes the entry for the ticker, forcing the next request to
// refetch.
func (c *Cache) Invalidate(ctx context.Context, ticker string) error {
	return c.store.Delete(ctx, c.key(ticker))
}
