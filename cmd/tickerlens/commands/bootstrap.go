package commands

import (
	"context"
	"fmt"

	"github.com/tickerlens/backend/internal/analysis"
	"github.com/tickerlens/backend/internal/cache"
	"github.com/tickerlens/backend/internal/provider/fmp"
	"github.com/tickerlens/backend/internal/signals"
	"github.com/tickerlens/backend/pkg/config"
	"github.com/tickerlens/backend/pkg/database"
	"github.com/tickerlens/backend/pkg/httputil"
	"github.com/tickerlens/backend/pkg/logger"
	"github.com/tickerlens/backend/pkg/redis"
)

// app holds the wired analysis pipeline shared by all CLI commands.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	analyzer *analysis.Analyzer
	closers  []func()
}

// newApp loads config and wires the full pipeline. Every command goes
// through here so the stack is assembled in exactly one place.
func newApp() (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	a := &app{cfg: cfg, log: log}

	// 3. Select cache backend
	store, err := a.newCacheStore()
	if err != nil {
		a.Close()
		return nil, err
	}

	analysisCache := cache.New(store, cfg.Cache.TTL, cfg.Cache.KeyPrefix, log)

	// 4. Create HTTP client and provider
	httpClient := httputil.New(log, cfg.Provider.Timeout)
	fmpClient := fmp.NewClient(cfg, httpClient, log)

	// 5. Create pipeline components
	orchestrator := analysis.NewOrchestrator(fmpClient, cfg.Provider.Periods, log)
	engine := signals.NewEngine(log)
	assembler := analysis.NewAssembler(engine)

	a.analyzer = analysis.NewAnalyzer(orchestrator, assembler, analysisCache, fmpClient, log)
	return a, nil
}

// newCacheStore builds the store named by CACHE_BACKEND.
func (a *app) newCacheStore() (cache.Store, error) {
	switch a.cfg.Cache.Backend {
	case "redis":
		client, err := redis.New(a.cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { client.Close() })
		a.log.Info("Using redis cache backend")
		return cache.NewRedisStore(client), nil

	case "postgres":
		db, err := database.New(a.cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		store := cache.NewPostgresStore(db.Pool)
		if err := store.EnsureSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("ensure cache schema: %w", err)
		}
		a.log.Info("Using postgres cache backend")
		return store, nil

	case "memory":
		a.log.Info("Using in-memory cache backend")
		return cache.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown cache backend: %s", a.cfg.Cache.Backend)
	}
}

// Close releases connections in reverse acquisition order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
