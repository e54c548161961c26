package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/tickerlens/backend/internal/cache"
	"github.com/tickerlens/backend/internal/provider"
	"github.com/tickerlens/backend/pkg/logger"
)

// Analyzer runs the full per-ticker pipeline: cache lookup, phased fetch,
// scoring, signal generation, assembly, cache write-through.
type Analyzer struct {
	orchestrator *Orchestrator
	assembler    *Assembler
	cache        *cache.Cache
	provider     provider.Provider
	logger       *logger.Logger
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(orchestrator *Orchestrator, assembler *Assembler, c *cache.Cache, p provider.Provider, log *logger.Logger) *Analyzer {
	return &Analyzer{
		orchestrator: orchestrator,
		assembler:    assembler,
		cache:        c,
		provider:     p,
		logger:       log.WithField("module", "analyzer"),
	}
}

// Analyze returns the assembled analysis for a ticker, serving from cache
// when a fresh entry exists. The returned record is always complete and
// internally consistent; on failure a single cause comes back instead.
func (a *Analyzer) Analyze(ctx context.Context, ticker string) (*Analysis, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	var cached Analysis
	if hit, err := a.cache.Get(ctx, ticker, &cached); err == nil && hit {
		a.logger.WithField("ticker", ticker).Debug("Serving analysis from cache")
		return &cached, nil
	}

	start := time.Now()

	raw, err := a.orchestrator.Fetch(ctx, ticker)
	if err != nil {
		return nil, err
	}

	result := a.assembler.Assemble(raw)

	a.logger.WithFields(map[string]interface{}{
		"ticker":     ticker,
		"asset_type": result.AssetType,
		"signals":    len(result.Signals),
		"duration":   time.Since(start),
	}).Info("Analysis assembled")

	// Caching is a performance optimization, not a correctness dependency.
	if err := a.cache.Put(ctx, ticker, result); err != nil {
		a.logger.WithError(err).WithField("ticker", ticker).Warn("Cache write failed")
	}

	return result, nil
}

// Refresh drops the cached entry and rebuilds the analysis.
func (a *Analyzer) Refresh(ctx context.Context, ticker string) (*Analysis, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	if err := a.cache.Invalidate(ctx, ticker); err != nil {
		a.logger.WithError(err).WithField("ticker", ticker).Warn("Cache invalidation failed")
	}

	return a.Analyze(ctx, ticker)
}

// Search proxies ticker search to the provider.
func (a *Analyzer) Search(ctx context.Context, query string, limit int) ([]provider.SearchResult, error) {
	return a.provider.Search(ctx, query, limit)
}
