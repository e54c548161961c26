package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (durable cache store)
	Database DatabaseConfig

	// Redis (fast cache store)
	Redis RedisConfig

	// Upstream data provider
	Provider ProviderConfig

	// Response cache
	Cache CacheConfig

	// Watchlist warming
	Watchlist WatchlistConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// ProviderConfig holds the financial data provider configuration.
type ProviderConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	RatePerSec int // request budget against the provider
	Periods    int // financial statement periods to request
}

// CacheConfig holds response cache configuration.
//
// TTL applies to the whole assembled response. The provider documents
// separate refresh horizons for quotes and fundamentals, but the cache
// stores one record per ticker, so a single TTL governs both.
type CacheConfig struct {
	Backend   string // redis, postgres, memory
	TTL       time.Duration
	KeyPrefix string
}

// WatchlistConfig holds the scheduled cache-warming configuration.
type WatchlistConfig struct {
	Tickers  []string
	CronSpec string
	Enabled  bool
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		Provider: ProviderConfig{
			APIKey:     getEnv("FMP_API_KEY", ""),
			BaseURL:    getEnv("FMP_BASE_URL", "https://financialmodelingprep.com/api/v3"),
			Timeout:    getEnvAsDuration("FMP_TIMEOUT", "15s"),
			RatePerSec: getEnvAsInt("FMP_RATE_PER_SEC", 10),
			Periods:    getEnvAsInt("FMP_STATEMENT_PERIODS", 2),
		},

		Cache: CacheConfig{
			Backend:   getEnv("CACHE_BACKEND", "redis"),
			TTL:       getEnvAsDuration("CACHE_TTL", "15m"),
			KeyPrefix: getEnv("CACHE_KEY_PREFIX", "tickerlens"),
		},

		Watchlist: WatchlistConfig{
			Tickers:  getEnvAsList("WATCHLIST_TICKERS"),
			CronSpec: getEnv("WATCHLIST_CRON", "0 */30 * * * *"),
			Enabled:  getEnvAsBool("WATCHLIST_ENABLED", false),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Provider.APIKey == "" {
		return fmt.Errorf("FMP_API_KEY is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Cache.Backend {
	case "redis", "postgres", "memory":
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: redis, postgres, memory")
	}

	// The postgres store needs a connection string; the others don't.
	if c.Cache.Backend == "postgres" && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when CACHE_BACKEND=postgres")
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
