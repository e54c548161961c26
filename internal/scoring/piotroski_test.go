package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tickerlens/backend/internal/provider"
)

func strongCurrent() provider.FinancialPeriod {
	return provider.FinancialPeriod{
		FiscalYear:         2025,
		Revenue:            800,
		GrossProfit:        400,
		OperatingIncome:    180,
		NetIncome:          100,
		TotalAssets:        1000,
		CurrentAssets:      500,
		CurrentLiabilities: 200,
		LongTermDebt:       100,
		OperatingCashFlow:  150,
		SharesOutstanding:  100,
	}
}

func strongPrior() provider.FinancialPeriod {
	return provider.FinancialPeriod{
		FiscalYear:         2024,
		Revenue:            700,
		GrossProfit:        300,
		OperatingIncome:    120,
		NetIncome:          50,
		TotalAssets:        1000,
		CurrentAssets:      400,
		CurrentLiabilities: 200,
		LongTermDebt:       150,
		OperatingCashFlow:  80,
		SharesOutstanding:  100,
	}
}

func TestCalculatePiotroskiScore_AllTestsPass(t *testing.T) {
	result := CalculatePiotroskiScore(strongCurrent(), strongPrior())

	assert.Equal(t, 9, result.Score)
	assert.True(t, result.PositiveNetIncome)
	assert.True(t, result.PositiveCashFlow)
	assert.True(t, result.ImprovingROA)
	assert.True(t, result.CashFlowExceedsIncome)
	assert.True(t, result.DecreasingLeverage)
	assert.True(t, result.ImprovingCurrentRatio)
	assert.True(t, result.NoDilution)
	assert.True(t, result.ImprovingGrossMargin)
	assert.True(t, result.ImprovingAssetTurnover)
}

func TestCalculatePiotroskiScore_AllTestsFail(t *testing.T) {
	current := provider.FinancialPeriod{
		FiscalYear:         2025,
		Revenue:            500,
		GrossProfit:        100,
		NetIncome:          -50,
		TotalAssets:        1000,
		CurrentAssets:      200,
		CurrentLiabilities: 300,
		LongTermDebt:       300,
		OperatingCashFlow:  -60,
		SharesOutstanding:  120,
	}
	prior := provider.FinancialPeriod{
		FiscalYear:         2024,
		Revenue:            600,
		GrossProfit:        200,
		NetIncome:          -10,
		TotalAssets:        1000,
		CurrentAssets:      300,
		CurrentLiabilities: 300,
		LongTermDebt:       200,
		OperatingCashFlow:  5,
		SharesOutstanding:  100,
	}

	result := CalculatePiotroskiScore(current, prior)

	assert.Equal(t, 0, result.Score)
}

func TestCalculatePiotroskiScore_SinglePeriodDegrades(t *testing.T) {
	// With no prior period the delta tests must fail, capping the score
	// at the three standalone profitability tests.
	result := CalculatePiotroskiScore(strongCurrent(), provider.FinancialPeriod{})

	assert.Equal(t, 3, result.Score)
	assert.True(t, result.PositiveNetIncome)
	assert.True(t, result.PositiveCashFlow)
	assert.True(t, result.CashFlowExceedsIncome)
	assert.False(t, result.ImprovingROA)
	assert.False(t, result.DecreasingLeverage)
	assert.False(t, result.ImprovingCurrentRatio)
	assert.False(t, result.NoDilution)
	assert.False(t, result.ImprovingGrossMargin)
	assert.False(t, result.ImprovingAssetTurnover)
}

func TestCalculatePiotroskiScore_ZeroDenominators(t *testing.T) {
	// Zero assets, revenue and liabilities must not panic or push the
	// score out of range.
	current := provider.FinancialPeriod{NetIncome: 10, OperatingCashFlow: 20}
	prior := provider.FinancialPeriod{NetIncome: 5}

	result := CalculatePiotroskiScore(current, prior)

	assert.GreaterOrEqual(t, result.Score, 0)
	assert.LessOrEqual(t, result.Score, 9)
}

func TestCalculatePiotroskiScore_DilutionFails(t *testing.T) {
	current := strongCurrent()
	current.SharesOutstanding = 110

	result := CalculatePiotroskiScore(current, strongPrior())

	assert.False(t, result.NoDilution)
	assert.Equal(t, 8, result.Score)
}

func TestSafeRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"normal division", 10, 4, 2.5},
		{"zero denominator", 10, 0, 0},
		{"zero numerator", 0, 5, 0},
		{"negative values", -10, 4, -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeRatio(tt.a, tt.b))
		})
	}
}
