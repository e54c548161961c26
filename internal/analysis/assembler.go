package analysis

import (
	"time"

	"github.com/tickerlens/backend/internal/provider"
	"github.com/tickerlens/backend/internal/scoring"
	"github.com/tickerlens/backend/internal/signals"
)

// Assembler combines orchestrator output, derived scores and generated
// signals into the final Analysis record.
type Assembler struct {
	engine *signals.Engine
}

// NewAssembler creates an assembler.
func NewAssembler(engine *signals.Engine) *Assembler {
	return &Assembler{engine: engine}
}

// Assemble builds the output record from a populated aggregate. Enrichment
// blocks are carried over as-is: a nil block stays absent. Scores are
// computed only when at least one statement period is available; signal
// rules that depend on missing blocks drop out on their own.
func (a *Assembler) Assemble(raw *RawData) *Analysis {
	out := &Analysis{
		Ticker:      raw.Profile.Ticker,
		AssetType:   AssetStock,
		GeneratedAt: time.Now().UTC(),

		Profile:     raw.Profile,
		Quote:       raw.Quote,
		Performance: raw.Performance,

		Valuation:        raw.Valuation,
		Holdings:         raw.Holdings,
		InsiderTrades:    raw.InsiderTrades,
		InsiderActivity:  raw.InsiderActivity,
		Financials:       raw.Financials,
		FinancialHistory: raw.Statements,
		Profitability:    raw.Profitability,
		Health:           raw.Health,
		Growth:           raw.Growth,
		EarningsQuality:  raw.EarningsQuality,
		Technicals:       raw.Technicals,
		ShortInterest:    raw.ShortInterest,
		Estimates:        raw.Estimates,

		Signals: []signals.Signal{},
	}

	// ETFs carry no fundamental statements; no scores, no signals.
	if raw.Profile.IsETF {
		out.AssetType = AssetETF
		out.ETF = raw.ETF
		return out
	}

	rctx := &signals.RuleContext{
		Financials:      raw.Financials,
		InsiderActivity: raw.InsiderActivity,
		ShortInterest:   raw.ShortInterest,
		DCF:             raw.DCF,
		Price:           raw.Quote.Price,
	}

	if len(raw.Statements) > 0 {
		current := raw.Statements[0]
		// Statement rows carry fiscal-year-end figures; anchor valuation
		// inputs to the live quote so the Z-Score reflects today's price.
		current.MarketCap = raw.Quote.MarketCap
		current.StockPrice = raw.Quote.Price

		var prior provider.FinancialPeriod
		if len(raw.Statements) > 1 {
			prior = raw.Statements[1]
		}

		piotroski := scoring.CalculatePiotroskiScore(current, prior)
		altman := scoring.CalculateAltmanZScore(current)
		ruleOf40 := scoring.CalculateRuleOf40WithGrowth(current, prior)

		out.Scores = &ScoreBlock{
			Piotroski:    piotroski,
			AltmanZ:      altman,
			RuleOf40:     ruleOf40,
			DCF:          raw.DCF,
			OverallGrade: scoring.CalculateOverallGrade(piotroski, ruleOf40, altman),
		}

		rctx.Piotroski = &piotroski
		rctx.Altman = &altman
	}

	out.Signals = a.engine.GenerateAll(rctx)

	return out
}
