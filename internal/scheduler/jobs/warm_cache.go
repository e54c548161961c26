package jobs

import (
	"context"
	"fmt"

	"github.com/tickerlens/backend/internal/analysis"
	"github.com/tickerlens/backend/pkg/config"
	"github.com/tickerlens/backend/pkg/logger"
)

// WarmCacheJob refreshes the analysis for every watchlist ticker so the
// first request of the day hits a warm cache.
type WarmCacheJob struct {
	analyzer *analysis.Analyzer
	config   *config.Config
	logger   *logger.Logger
}

// NewWarmCacheJob creates a new cache warming job
func NewWarmCacheJob(analyzer *analysis.Analyzer, cfg *config.Config, log *logger.Logger) *WarmCacheJob {
	return &WarmCacheJob{
		analyzer: analyzer,
		config:   cfg,
		logger:   log,
	}
}

// Name returns the job name
func (j *WarmCacheJob) Name() string {
	return "warm_cache"
}

// Schedule returns the cron schedule expression
func (j *WarmCacheJob) Schedule() string {
	return j.config.Watchlist.CronSpec
}

// Run refreshes each watchlist ticker sequentially. A single bad ticker
// does not stop the rest; the job fails only if every ticker fails.
func (j *WarmCacheJob) Run(ctx context.Context) error {
	tickers := j.config.Watchlist.Tickers
	if len(tickers) == 0 {
		j.logger.Warn("Watchlist is empty, nothing to warm")
		return nil
	}

	j.logger.WithField("tickers", len(tickers)).Info("Warming analysis cache")

	failed := 0
	for _, ticker := range tickers {
		if _, err := j.analyzer.Refresh(ctx, ticker); err != nil {
			failed++
			j.logger.WithError(err).WithField("ticker", ticker).Warn("Cache warm failed for ticker")
		}
	}

	if failed == len(tickers) {
		return fmt.Errorf("cache warm failed for all %d tickers", failed)
	}

	j.logger.WithFields(map[string]interface{}{
		"warmed": len(tickers) - failed,
		"failed": failed,
	}).Info("Cache warm completed")

	return nil
}
