package provider

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when the provider has no record of a ticker.
// Callers distinguish this from transient upstream failures.
var ErrNotFound = errors.New("ticker not found")

// Provider is the upstream financial data boundary. Every method may fail;
// the orchestrator decides which failures are fatal and which degrade.
type Provider interface {
	// Identity and pricing. Load-bearing for everything downstream.
	Profile(ctx context.Context, ticker string) (*CompanyProfile, error)
	Quote(ctx context.Context, ticker string) (*Quote, error)

	// Statement history, newest first.
	FinancialStatements(ctx context.Context, ticker string, limit int) ([]FinancialPeriod, error)

	// Independent enrichment data.
	Holdings(ctx context.Context, ticker string) ([]InstitutionalHolder, error)
	InsiderTrades(ctx context.Context, ticker string, limit int) ([]InsiderTrade, error)
	InsiderActivity(ctx context.Context, ticker string) (*InsiderActivity, error)
	DCF(ctx context.Context, ticker string) (*DCFValuation, error)
	TechnicalMetrics(ctx context.Context, ticker string) (*TechnicalMetrics, error)
	ShortInterest(ctx context.Context, ticker string) (*ShortInterest, error)
	AnalystEstimates(ctx context.Context, ticker string) (*AnalystEstimates, error)

	// Price- and sector-dependent metrics.
	ValuationMetrics(ctx context.Context, ticker string, price float64) (*ValuationMetrics, error)
	PricePerformance(ctx context.Context, ticker string) (*PricePerformance, error)
	KeyFinancials(ctx context.Context, ticker string) (*KeyFinancials, error)

	// Sector-relative metrics, compared against the company's sector.
	ProfitabilityMetrics(ctx context.Context, ticker, sector string) (*ProfitabilityMetrics, error)
	HealthMetrics(ctx context.Context, ticker, sector string) (*HealthMetrics, error)
	GrowthMetrics(ctx context.Context, ticker, sector string) (*GrowthMetrics, error)
	EarningsQuality(ctx context.Context, ticker, sector string) (*EarningsQuality, error)

	// Discovery and ETF support.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
	ETFData(ctx context.Context, ticker string) (*ETFData, error)
}

// CompanyProfile identifies a listed asset.
type CompanyProfile struct {
	Ticker      string  `json:"ticker"`
	Name        string  `json:"name"`
	Exchange    string  `json:"exchange"`
	Sector      string  `json:"sector"`
	Industry    string  `json:"industry"`
	Description string  `json:"description,omitempty"`
	Website     string  `json:"website,omitempty"`
	MarketCap   float64 `json:"market_cap"`
	IsETF       bool    `json:"is_etf"`
}

// Quote is a point-in-time price snapshot.
type Quote struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	DayLow        float64 `json:"day_low"`
	DayHigh       float64 `json:"day_high"`
	YearLow       float64 `json:"year_low"`
	YearHigh      float64 `json:"year_high"`
	Volume        int64   `json:"volume"`
	AvgVolume     int64   `json:"avg_volume"`
	MarketCap     float64 `json:"market_cap"`
	EPS           float64 `json:"eps"`
	PE            float64 `json:"pe"`
}

// FinancialPeriod holds one fiscal period's statement data, merged from the
// income statement, balance sheet and cash flow statement. Immutable once
// fetched. The zero value serves as the "no prior period" default.
type FinancialPeriod struct {
	FiscalYear         int     `json:"fiscal_year"`
	Revenue            float64 `json:"revenue"`
	GrossProfit        float64 `json:"gross_profit"`
	OperatingIncome    float64 `json:"operating_income"`
	NetIncome          float64 `json:"net_income"`
	EBIT               float64 `json:"ebit"`
	EPS                float64 `json:"eps"`
	TotalAssets        float64 `json:"total_assets"`
	TotalLiabilities   float64 `json:"total_liabilities"`
	CurrentAssets      float64 `json:"current_assets"`
	CurrentLiabilities float64 `json:"current_liabilities"`
	LongTermDebt       float64 `json:"long_term_debt"`
	RetainedEarnings   float64 `json:"retained_earnings"`
	ShareholdersEquity float64 `json:"shareholders_equity"`
	OperatingCashFlow  float64 `json:"operating_cash_flow"`
	FreeCashFlow       float64 `json:"free_cash_flow"`
	SharesOutstanding  float64 `json:"shares_outstanding"`
	MarketCap          float64 `json:"market_cap"`
	StockPrice         float64 `json:"stock_price"`
}

// IsZero reports whether the period carries no data.
func (p FinancialPeriod) IsZero() bool {
	return p == FinancialPeriod{}
}

// InstitutionalHolder is one entry of the institutional ownership list.
type InstitutionalHolder struct {
	Holder        string    `json:"holder"`
	Shares        int64     `json:"shares"`
	Value         float64   `json:"value"`
	ChangePercent float64   `json:"change_percent"`
	DateReported  time.Time `json:"date_reported"`
}

// InsiderTrade is a single reported insider transaction.
type InsiderTrade struct {
	Name            string    `json:"name"`
	Title           string    `json:"title"`
	TransactionType string    `json:"transaction_type"` // "buy" or "sell"
	Shares          int64     `json:"shares"`
	Price           float64   `json:"price"`
	Value           float64   `json:"value"`
	Date            time.Time `json:"date"`
}

// InsiderActivity aggregates insider trades over a trailing window.
type InsiderActivity struct {
	BuyCount   int     `json:"buy_count"`
	SellCount  int     `json:"sell_count"`
	NetValue   float64 `json:"net_value"` // buys minus sells, in dollars
	WindowDays int     `json:"window_days"`
}

// DCFValuation is the provider's discounted-cash-flow estimate.
type DCFValuation struct {
	Value      float64   `json:"value"`
	StockPrice float64   `json:"stock_price"`
	Date       time.Time `json:"date"`
}

// TechnicalMetrics holds price-action derived indicators.
type TechnicalMetrics struct {
	Beta          float64 `json:"beta"`
	RSI14         float64 `json:"rsi_14"`
	SMA50         float64 `json:"sma_50"`
	SMA200        float64 `json:"sma_200"`
	Volatility30D float64 `json:"volatility_30d"`
}

// ShortInterest holds the latest short-interest report.
type ShortInterest struct {
	SharesShort    int64   `json:"shares_short"`
	PercentOfFloat float64 `json:"percent_of_float"`
	DaysToCover    float64 `json:"days_to_cover"`
}

// ValuationMetrics holds price multiples.
type ValuationMetrics struct {
	PE            float64 `json:"pe"`
	PB            float64 `json:"pb"`
	PS            float64 `json:"ps"`
	PEG           float64 `json:"peg"`
	EVToEBITDA    float64 `json:"ev_to_ebitda"`
	PriceToFCF    float64 `json:"price_to_fcf"`
	DividendYield float64 `json:"dividend_yield"`
	EarningsYield float64 `json:"earnings_yield"`
}

// PricePerformance holds returns over standard horizons, in percent.
type PricePerformance struct {
	Day5   float64 `json:"day_5"`
	Month1 float64 `json:"month_1"`
	Month3 float64 `json:"month_3"`
	Month6 float64 `json:"month_6"`
	YTD    float64 `json:"ytd"`
	Year1  float64 `json:"year_1"`
	Year3  float64 `json:"year_3"`
	Year5  float64 `json:"year_5"`
}

// KeyFinancials holds the ratio-derived figures the rule engine consults.
type KeyFinancials struct {
	RevenueGrowth   float64 `json:"revenue_growth"`   // year over year, percent
	OperatingMargin float64 `json:"operating_margin"` // percent
	DebtToEquity    float64 `json:"debt_to_equity"`
	ROIC            float64 `json:"roic"` // percent
}

// ProfitabilityMetrics compares margins against the sector.
type ProfitabilityMetrics struct {
	GrossMargin       float64 `json:"gross_margin"`
	OperatingMargin   float64 `json:"operating_margin"`
	NetMargin         float64 `json:"net_margin"`
	ROE               float64 `json:"roe"`
	ROA               float64 `json:"roa"`
	SectorGrossMargin float64 `json:"sector_gross_margin"`
	SectorNetMargin   float64 `json:"sector_net_margin"`
}

// HealthMetrics compares balance-sheet strength against the sector.
type HealthMetrics struct {
	CurrentRatio       float64 `json:"current_ratio"`
	QuickRatio         float64 `json:"quick_ratio"`
	DebtToEquity       float64 `json:"debt_to_equity"`
	InterestCoverage   float64 `json:"interest_coverage"`
	SectorCurrentRatio float64 `json:"sector_current_ratio"`
	SectorDebtToEquity float64 `json:"sector_debt_to_equity"`
}

// GrowthMetrics compares growth rates against the sector, in percent.
type GrowthMetrics struct {
	RevenueGrowth       float64 `json:"revenue_growth"`
	EPSGrowth           float64 `json:"eps_growth"`
	FCFGrowth           float64 `json:"fcf_growth"`
	SectorRevenueGrowth float64 `json:"sector_revenue_growth"`
	SectorEPSGrowth     float64 `json:"sector_eps_growth"`
}

// EarningsQuality holds accrual and cash-conversion measures.
type EarningsQuality struct {
	AccrualRatio     float64 `json:"accrual_ratio"`
	CashConversion   float64 `json:"cash_conversion"` // OCF / net income
	SectorConversion float64 `json:"sector_conversion"`
}

// AnalystEstimates holds consensus forward estimates.
type AnalystEstimates struct {
	EPSAvg       float64 `json:"eps_avg"`
	EPSHigh      float64 `json:"eps_high"`
	EPSLow       float64 `json:"eps_low"`
	RevenueAvg   float64 `json:"revenue_avg"`
	TargetPrice  float64 `json:"target_price"`
	AnalystCount int     `json:"analyst_count"`
}

// SearchResult is one match from a ticker search.
type SearchResult struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// ETFData holds ETF-specific enrichment.
type ETFData struct {
	ExpenseRatio float64        `json:"expense_ratio"`
	AUM          float64        `json:"aum"`
	NAV          float64        `json:"nav"`
	Holdings     []ETFHolding   `json:"holdings,omitempty"`
	Sectors      []SectorWeight `json:"sectors,omitempty"`
}

// ETFHolding is one constituent of an ETF.
type ETFHolding struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	WeightPercent float64 `json:"weight_percent"`
}

// SectorWeight is an ETF's exposure to one sector.
type SectorWeight struct {
	Sector        string  `json:"sector"`
	WeightPercent float64 `json:"weight_percent"`
}
