package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FMP_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "test-key", cfg.Provider.APIKey)
	assert.Equal(t, "https://financialmodelingprep.com/api/v3", cfg.Provider.BaseURL)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "tickerlens", cfg.Cache.KeyPrefix)
	assert.False(t, cfg.Watchlist.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FMP_API_KEY", "test-key")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("FMP_RATE_PER_SEC", "5")
	t.Setenv("WATCHLIST_TICKERS", "aapl, msft,, googl ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 5, cfg.Provider.RatePerSec)
	assert.Equal(t, []string{"AAPL", "MSFT", "GOOGL"}, cfg.Watchlist.Tickers)
}

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("FMP_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FMP_API_KEY")
}

func TestLoad_RejectsUnknownEnv(t *testing.T) {
	t.Setenv("FMP_API_KEY", "test-key")
	t.Setenv("ENV", "sandbox")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV")
}

func TestLoad_RejectsUnknownCacheBackend(t *testing.T) {
	t.Setenv("FMP_API_KEY", "test-key")
	t.Setenv("CACHE_BACKEND", "dynamo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_BACKEND")
}

func TestLoad_PostgresBackendNeedsDatabaseURL(t *testing.T) {
	t.Setenv("FMP_API_KEY", "test-key")
	t.Setenv("CACHE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("FMP_API_KEY", "test-key")
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
}
