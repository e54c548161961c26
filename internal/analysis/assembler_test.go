package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerlens/backend/internal/provider"
	"github.com/tickerlens/backend/internal/signals"
	"github.com/tickerlens/backend/pkg/logger"
)

func newTestAssembler() *Assembler {
	return NewAssembler(signals.NewEngine(logger.NewNop()))
}

func stockRawData() *RawData {
	return &RawData{
		Profile: &provider.CompanyProfile{Ticker: "TEST", Name: "Test Corp", Sector: "Technology"},
		Quote:   &provider.Quote{Ticker: "TEST", Price: 100, MarketCap: 1200},
		Statements: []provider.FinancialPeriod{
			{
				FiscalYear:         2025,
				Revenue:            800,
				GrossProfit:        400,
				OperatingIncome:    180,
				NetIncome:          100,
				EBIT:               150,
				TotalAssets:        1000,
				TotalLiabilities:   400,
				CurrentAssets:      500,
				CurrentLiabilities: 200,
				LongTermDebt:       100,
				RetainedEarnings:   400,
				OperatingCashFlow:  150,
				SharesOutstanding:  100,
			},
			{
				FiscalYear:         2024,
				Revenue:            600,
				GrossProfit:        280,
				OperatingIncome:    120,
				NetIncome:          50,
				TotalAssets:        1000,
				CurrentAssets:      400,
				CurrentLiabilities: 200,
				LongTermDebt:       150,
				OperatingCashFlow:  80,
				SharesOutstanding:  100,
			},
		},
	}
}

func TestAssemble_StockWithFullHistory(t *testing.T) {
	a := newTestAssembler()

	out := a.Assemble(stockRawData())

	assert.Equal(t, "TEST", out.Ticker)
	assert.Equal(t, AssetStock, out.AssetType)
	assert.False(t, out.GeneratedAt.IsZero())

	require.NotNil(t, out.Scores)
	assert.Equal(t, 9, out.Scores.Piotroski.Score)
	// Market cap comes from the live quote, not the statement row.
	// 1.2*0.3 + 1.4*0.4 + 3.3*0.15 + 0.6*(1200/400) + 1.0*0.8
	assert.InDelta(t, 4.015, out.Scores.AltmanZ.Score, 0.001)
	// 33.3% growth + 22.5% margin
	assert.True(t, out.Scores.RuleOf40.Passed)
	assert.Equal(t, "A", out.Scores.OverallGrade)

	// Strong Piotroski and strongly safe Altman both fire.
	require.NotEmpty(t, out.Signals)
	for _, s := range out.Signals {
		assert.Equal(t, signals.TypeBullish, s.Type)
	}
}

func TestAssemble_SinglePeriodDegrades(t *testing.T) {
	a := newTestAssembler()

	raw := stockRawData()
	raw.Statements = raw.Statements[:1]

	out := a.Assemble(raw)

	require.NotNil(t, out.Scores)
	assert.LessOrEqual(t, out.Scores.Piotroski.Score, 3)
	assert.Equal(t, 0.0, out.Scores.RuleOf40.RevenueGrowth)
}

func TestAssemble_NoStatements(t *testing.T) {
	a := newTestAssembler()

	raw := stockRawData()
	raw.Statements = nil

	out := a.Assemble(raw)

	// No history means no scores, and no score-based signals either; a
	// missing fetch must not read as a zero score.
	assert.Nil(t, out.Scores)
	assert.NotNil(t, out.Signals)
	assert.Empty(t, out.Signals)
}

func TestAssemble_ETF(t *testing.T) {
	a := newTestAssembler()

	raw := &RawData{
		Profile: &provider.CompanyProfile{Ticker: "SPY", Name: "Test ETF", IsETF: true},
		Quote:   &provider.Quote{Ticker: "SPY", Price: 500},
		ETF:     &provider.ETFData{ExpenseRatio: 0.09},
	}

	out := a.Assemble(raw)

	assert.Equal(t, AssetETF, out.AssetType)
	require.NotNil(t, out.ETF)
	assert.Equal(t, 0.09, out.ETF.ExpenseRatio)
	assert.Nil(t, out.Scores)
	assert.NotNil(t, out.Signals)
	assert.Empty(t, out.Signals)
}

func TestAssemble_CarriesEnrichmentBlocks(t *testing.T) {
	a := newTestAssembler()

	raw := stockRawData()
	raw.Valuation = &provider.ValuationMetrics{PE: 20}
	raw.Holdings = []provider.InstitutionalHolder{{Holder: "Big Fund"}}
	raw.Technicals = &provider.TechnicalMetrics{Beta: 1.2}
	raw.Estimates = &provider.AnalystEstimates{TargetPrice: 130}

	out := a.Assemble(raw)

	assert.Equal(t, raw.Valuation, out.Valuation)
	assert.Equal(t, raw.Holdings, out.Holdings)
	assert.Equal(t, raw.Technicals, out.Technicals)
	assert.Equal(t, raw.Estimates, out.Estimates)
	assert.Len(t, out.FinancialHistory, 2)
}
