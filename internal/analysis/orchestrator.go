package analysis

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tickerlens/backend/internal/provider"
	"github.com/tickerlens/backend/pkg/logger"
)

const insiderTradesLimit = 50

// Orchestrator populates a RawData aggregate from the provider boundary in
// dependency-ordered phases. Identity and pricing are required; every other
// fetch degrades to its zero value on failure.
type Orchestrator struct {
	provider provider.Provider
	periods  int
	logger   *logger.Logger
}

// NewOrchestrator creates an orchestrator. periods is how many fiscal years
// of statements to request; the scores need at most two.
func NewOrchestrator(p provider.Provider, periods int, log *logger.Logger) *Orchestrator {
	if periods < 2 {
		periods = 2
	}
	return &Orchestrator{
		provider: p,
		periods:  periods,
		logger:   log.WithField("module", "orchestrator"),
	}
}

// Fetch runs the phased fan-out for one ticker.
//
// Phase 1 has no internal dependencies and runs fully in parallel. A failure
// of either required fetch (profile, quote) cancels its siblings and aborts
// the request. Phase 2 needs the quote price, phase 3 the company sector and
// the phase-2 ratios, so each phase starts only after the previous one has
// fully joined. ETFs skip phases 2 and 3 and fetch ETF data instead.
func (o *Orchestrator) Fetch(ctx context.Context, ticker string) (*RawData, error) {
	raw := &RawData{}

	// Phase 1: identity, pricing, and independent enrichment.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := o.provider.Profile(gctx, ticker)
		if err != nil {
			if errors.Is(err, provider.ErrNotFound) {
				return fmt.Errorf("%s: %w", ticker, provider.ErrNotFound)
			}
			return fmt.Errorf("fetch profile for %s: %w", ticker, err)
		}
		raw.Profile = p
		return nil
	})

	g.Go(func() error {
		q, err := o.provider.Quote(gctx, ticker)
		if err != nil {
			if errors.Is(err, provider.ErrNotFound) {
				return fmt.Errorf("%s: %w", ticker, provider.ErrNotFound)
			}
			return fmt.Errorf("fetch quote for %s: %w", ticker, err)
		}
		raw.Quote = q
		return nil
	})

	g.Go(o.optional(gctx, ticker, "statements", func(ctx context.Context) error {
		statements, err := o.provider.FinancialStatements(ctx, ticker, o.periods)
		if err != nil {
			return err
		}
		raw.Statements = statements
		return nil
	}))

	g.Go(o.optional(gctx, ticker, "holdings", func(ctx context.Context) error {
		holdings, err := o.provider.Holdings(ctx, ticker)
		if err != nil {
			return err
		}
		raw.Holdings = holdings
		return nil
	}))

	g.Go(o.optional(gctx, ticker, "insider_trades", func(ctx context.Context) error {
		trades, err := o.provider.InsiderTrades(ctx, ticker, insiderTradesLimit)
		if err != nil {
			return err
		}
		raw.InsiderTrades = trades
		return nil
	}))

	g.Go(o.optional(gctx, ticker, "insider_activity", func(ctx context.Context) error {
		activity, err := o.provider.InsiderActivity(ctx, ticker)
		if err != nil {
			return err
		}
		raw.InsiderActivity = activity
		return nil
	}))

	g.Go(o.optional(gctx, ticker, "dcf", func(ctx context.Context) error {
		dcf, err := o.provider.DCF(ctx, ticker)
		if err != nil {
			return err
		}
		raw.DCF = dcf
		return nil
	}))

	g.Go(o.optional(gctx, ticker, "technicals", func(ctx context.Context) error {
		technicals, err := o.provider.TechnicalMetrics(ctx, ticker)
		if err != nil {
			return err
		}
		raw.Technicals = technicals
		return nil
	}))

	g.Go(o.optional(gctx, ticker, "short_interest", func(ctx context.Context) error {
		short, err := o.provider.ShortInterest(ctx, ticker)
		if err != nil {
			return err
		}
		raw.ShortInterest = short
		return nil
	}))

	g.Go(o.optional(gctx, ticker, "analyst_estimates", func(ctx context.Context) error {
		estimates, err := o.provider.AnalystEstimates(ctx, ticker)
		if err != nil {
			return err
		}
		raw.Estimates = estimates
		return nil
	}))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// ETFs have no fundamental statements to rank; fetch the ETF block and
	// stop here.
	if raw.Profile.IsETF {
		g, gctx = errgroup.WithContext(ctx)
		g.Go(o.optional(gctx, ticker, "etf_data", func(ctx context.Context) error {
			etf, err := o.provider.ETFData(ctx, ticker)
			if err != nil {
				return err
			}
			raw.ETF = etf
			return nil
		}))
		_ = g.Wait()
		return raw, nil
	}

	// Phase 2: price-anchored metrics. All optional.
	g, gctx = errgroup.WithContext(ctx)

	g.Go(o.optional(gctx, ticker, "valuation", func(ctx context.Context) error {
		valuation, err := o.provider.ValuationMetrics(ctx, ticker, raw.Quote.Price)
		if err != nil {
			return err
		}
		raw.Valuation = valuation
		return nil
	}))

	g.Go(o.optional(gctx, ticker, "performance", func(ctx context.Context) error {
		performance, err := o.provider.PricePerformance(ctx, ticker)
		if err != nil {
			return err
		}
		raw.Performance = performance
		return nil
	}))

	g.Go(o.optional(gctx, ticker, "key_financials", func(ctx context.Context) error {
		financials, err := o.provider.KeyFinancials(ctx, ticker)
		if err != nil {
			return err
		}
		raw.Financials = financials
		return nil
	}))

	_ = g.Wait()

	// Phase 3: sector-relative metrics. All optional.
	sector := raw.Profile.Sector
	g, gctx = errgroup.WithContext(ctx)

	g.Go(o.optional(gctx, ticker, "profitability", func(ctx context.Context) error {
		profitability, err := o.provider.ProfitabilityMetrics(ctx, ticker, sector)
		if err != nil {
			return err
		}
		raw.Profitability = profitability
		return nil
	}))

	g.Go(o.optional(gctx, ticker, "health", func(ctx context.Context) error {
		health, err := o.provider.HealthMetrics(ctx, ticker, sector)
		if err != nil {
			return err
		}
		raw.Health = health
		return nil
	}))

	g.Go(o.optional(gctx, ticker, "growth", func(ctx context.Context) error {
		growth, err := o.provider.GrowthMetrics(ctx, ticker, sector)
		if err != nil {
			return err
		}
		raw.Growth = growth
		return nil
	}))

	g.Go(o.optional(gctx, ticker, "earnings_quality", func(ctx context.Context) error {
		quality, err := o.provider.EarningsQuality(ctx, ticker, sector)
		if err != nil {
			return err
		}
		raw.EarningsQuality = quality
		return nil
	}))

	_ = g.Wait()

	return raw, nil
}

// optional wraps a fetch so its failure degrades to a logged warning and a
// zero-valued field instead of aborting the request. Optional failures never
// cancel sibling fetches.
func (o *Orchestrator) optional(ctx context.Context, ticker, op string, fn func(context.Context) error) func() error {
	return func() error {
		if err := fn(ctx); err != nil {
			o.logger.WithError(err).WithFields(map[string]interface{}{
				"ticker":    ticker,
				"operation": op,
			}).Warn("Optional fetch failed, using default")
		}
		return nil
	}
}
