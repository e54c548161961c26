package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerlens/backend/internal/cache"
	"github.com/tickerlens/backend/internal/provider"
	"github.com/tickerlens/backend/pkg/logger"
)

func newTestAnalyzer(fake *fakeProvider, ttl time.Duration) *Analyzer {
	log := logger.NewNop()
	c := cache.New(cache.NewMemoryStore(), ttl, "test", log)
	return NewAnalyzer(newTestOrchestrator(fake), newTestAssembler(), c, fake, log)
}

func TestAnalyze_ServesSecondRequestFromCache(t *testing.T) {
	fake := newFakeProvider()
	a := newTestAnalyzer(fake, 15*time.Minute)
	ctx := context.Background()

	first, err := a.Analyze(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, "TEST", first.Ticker, "ticker is normalized to upper case")
	assert.Equal(t, 1, fake.called("profile"))

	second, err := a.Analyze(ctx, "TEST")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.called("profile"), "cache hit must not refetch")
	assert.Equal(t, first.Ticker, second.Ticker)
	assert.Equal(t, first.Scores.Piotroski.Score, second.Scores.Piotroski.Score)
}

func TestAnalyze_NotFoundIsNotCached(t *testing.T) {
	fake := newFakeProvider()
	fake.fail("profile", provider.ErrNotFound)
	a := newTestAnalyzer(fake, 15*time.Minute)
	ctx := context.Background()

	_, err := a.Analyze(ctx, "NOPE")
	require.ErrorIs(t, err, provider.ErrNotFound)

	_, err = a.Analyze(ctx, "NOPE")
	require.ErrorIs(t, err, provider.ErrNotFound)
	assert.Equal(t, 2, fake.called("profile"), "failures must not be cached")
}

func TestRefresh_BypassesCache(t *testing.T) {
	fake := newFakeProvider()
	a := newTestAnalyzer(fake, 15*time.Minute)
	ctx := context.Background()

	_, err := a.Analyze(ctx, "TEST")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.called("profile"))

	_, err = a.Refresh(ctx, "TEST")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.called("profile"), "refresh must refetch")

	_, err = a.Analyze(ctx, "TEST")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.called("profile"), "refreshed entry serves later reads")
}

func TestSearch_ProxiesToProvider(t *testing.T) {
	fake := newFakeProvider()
	a := newTestAnalyzer(fake, 15*time.Minute)

	results, err := a.Search(context.Background(), "test", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "TEST", results[0].Ticker)
}
