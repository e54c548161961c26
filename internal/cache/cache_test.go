package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerlens/backend/pkg/logger"
)

type payload struct {
	Ticker string  `json:"ticker"`
	Grade  string  `json:"grade"`
	Score  float64 `json:"score"`
}

func newTestCache(store Store, ttl time.Duration) *Cache {
	return New(store, ttl, "test", logger.NewNop())
}

func TestCache_PutThenGet(t *testing.T) {
	store := NewMemoryStore()
	c := newTestCache(store, 15*time.Minute)
	ctx := context.Background()

	in := payload{Ticker: "AAPL", Grade: "A", Score: 4.2}
	require.NoError(t, c.Put(ctx, "AAPL", in))

	var out payload
	hit, err := c.Get(ctx, "AAPL", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out)
}

func TestCache_MissOnUnknownTicker(t *testing.T) {
	c := newTestCache(NewMemoryStore(), 15*time.Minute)

	var out payload
	hit, err := c.Get(context.Background(), "MSFT", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_StaleEntryReadsAsMiss(t *testing.T) {
	store := NewMemoryStore()
	c := newTestCache(store, 15*time.Minute)
	ctx := context.Background()

	// Plant an entry whose age exceeds the TTL. The record stays in the
	// store; only the read path decides it is no longer servable.
	data, err := json.Marshal(payload{Ticker: "AAPL", Grade: "B"})
	require.NoError(t, err)
	entry := Entry{
		Ticker:    "AAPL",
		Data:      data,
		UpdatedAt: time.Now().UTC().Add(-time.Hour),
		Source:    "tickerlens",
	}
	blob, err := json.Marshal(entry)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "test:analysis:AAPL", blob, 0))

	var out payload
	hit, err := c.Get(ctx, "AAPL", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	_, err = store.Get(ctx, "test:analysis:AAPL")
	assert.NoError(t, err, "stale record still exists until overwritten")
}

func TestCache_FreshEntryJustInsideTTL(t *testing.T) {
	store := NewMemoryStore()
	c := newTestCache(store, 15*time.Minute)
	ctx := context.Background()

	data, err := json.Marshal(payload{Ticker: "AAPL", Grade: "A"})
	require.NoError(t, err)
	entry := Entry{
		Ticker:    "AAPL",
		Data:      data,
		UpdatedAt: time.Now().UTC().Add(-14 * time.Minute),
	}
	blob, err := json.Marshal(entry)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "test:analysis:AAPL", blob, 0))

	var out payload
	hit, err := c.Get(ctx, "AAPL", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "A", out.Grade)
}

func TestCache_Invalidate(t *testing.T) {
	c := newTestCache(NewMemoryStore(), 15*time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "AAPL", payload{Ticker: "AAPL"}))
	require.NoError(t, c.Invalidate(ctx, "AAPL"))

	var out payload
	hit, err := c.Get(ctx, "AAPL", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_CorruptEntryReadsAsMiss(t *testing.T) {
	store := NewMemoryStore()
	c := newTestCache(store, 15*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "test:analysis:AAPL", []byte("not json"), 0))

	var out payload
	hit, err := c.Get(ctx, "AAPL", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

// failingStore errors on every operation.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("store down")
}
func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}
func (failingStore) Delete(context.Context, string) error {
	return errors.New("store down")
}

func TestCache_StoreFailureDegradesToMiss(t *testing.T) {
	c := newTestCache(failingStore{}, 15*time.Minute)

	var out payload
	hit, err := c.Get(context.Background(), "AAPL", &out)
	require.NoError(t, err, "a broken store must read as a miss, not an error")
	assert.False(t, hit)
}

func TestCache_PutReturnsStoreError(t *testing.T) {
	c := newTestCache(failingStore{}, 15*time.Minute)

	err := c.Put(context.Background(), "AAPL", payload{Ticker: "AAPL"})
	assert.Error(t, err)
}

func TestMemoryStore_DefensiveCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte(`{"a":1}`)
	require.NoError(t, store.Set(ctx, "k", data, 0))
	data[0] = 'X'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)
}
