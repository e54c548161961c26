package analysis

import (
	"time"

	"github.com/tickerlens/backend/internal/provider"
	"github.com/tickerlens/backend/internal/scoring"
	"github.com/tickerlens/backend/internal/signals"
)

// AssetType discriminates the analyzed asset.
type AssetType string

const (
	AssetStock AssetType = "stock"
	AssetETF   AssetType = "etf"
)

// RawData is the transient aggregate the orchestrator populates per request.
// Each fetch task writes exactly one field, so concurrent tasks within a
// phase never contend and the struct needs no locking. Nil fields mean the
// corresponding optional fetch failed or returned nothing.
type RawData struct {
	// Required. Always set on success.
	Profile *provider.CompanyProfile
	Quote   *provider.Quote

	// Phase 1 optional.
	Statements      []provider.FinancialPeriod
	Holdings        []provider.InstitutionalHolder
	InsiderTrades   []provider.InsiderTrade
	InsiderActivity *provider.InsiderActivity
	DCF             *provider.DCFValuation
	Technicals      *provider.TechnicalMetrics
	ShortInterest   *provider.ShortInterest
	Estimates       *provider.AnalystEstimates

	// Phase 2 optional (needs quote price / skipped for ETFs).
	Valuation   *provider.ValuationMetrics
	Performance *provider.PricePerformance
	Financials  *provider.KeyFinancials

	// Phase 3 optional (needs sector, skipped for ETFs).
	Profitability   *provider.ProfitabilityMetrics
	Health          *provider.HealthMetrics
	Growth          *provider.GrowthMetrics
	EarningsQuality *provider.EarningsQuality

	// ETF path.
	ETF *provider.ETFData
}

// ScoreBlock groups the derived fundamental-health scores.
type ScoreBlock struct {
	Piotroski    scoring.PiotroskiResult `json:"piotroski"`
	AltmanZ      scoring.AltmanZResult   `json:"altman_z"`
	RuleOf40     scoring.RuleOf40Result  `json:"rule_of_40"`
	DCF          *provider.DCFValuation  `json:"dcf,omitempty"`
	OverallGrade string                  `json:"overall_grade"`
}

// Analysis is the final assembled output record for one ticker. Enrichment
// blocks are present exactly when their fetch succeeded with data. The whole
// record is what gets cached, always as one atomic unit.
type Analysis struct {
	Ticker      string    `json:"ticker"`
	AssetType   AssetType `json:"asset_type"`
	GeneratedAt time.Time `json:"generated_at"`

	Profile     *provider.CompanyProfile   `json:"profile"`
	Quote       *provider.Quote            `json:"quote"`
	Performance *provider.PricePerformance `json:"performance,omitempty"`

	Scores  *ScoreBlock      `json:"scores,omitempty"`
	Signals []signals.Signal `json:"signals"`

	Valuation        *provider.ValuationMetrics     `json:"valuation,omitempty"`
	Holdings         []provider.InstitutionalHolder `json:"holdings,omitempty"`
	InsiderTrades    []provider.InsiderTrade        `json:"insider_trades,omitempty"`
	InsiderActivity  *provider.InsiderActivity      `json:"insider_activity,omitempty"`
	Financials       *provider.KeyFinancials        `json:"financials,omitempty"`
	FinancialHistory []provider.FinancialPeriod     `json:"financial_history,omitempty"`
	Profitability    *provider.ProfitabilityMetrics `json:"profitability,omitempty"`
	Health           *provider.HealthMetrics        `json:"health,omitempty"`
	Growth           *provider.GrowthMetrics        `json:"growth,omitempty"`
	EarningsQuality  *provider.EarningsQuality      `json:"earnings_quality,omitempty"`
	Technicals       *provider.TechnicalMetrics     `json:"technicals,omitempty"`
	ShortInterest    *provider.ShortInterest        `json:"short_interest,omitempty"`
	Estimates        *provider.AnalystEstimates     `json:"analyst_estimates,omitempty"`
	ETF              *provider.ETFData              `json:"etf,omitempty"`
}
