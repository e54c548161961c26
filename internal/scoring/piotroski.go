package scoring

import "github.com/tickerlens/backend/internal/provider"

// PiotroskiResult holds the 9-point fundamental checklist outcome.
// Score is always in [0, 9]; higher is stronger. The per-test booleans are
// retained so callers can show which tests passed.
type PiotroskiResult struct {
	Score int `json:"score"`

	// Profitability
	PositiveNetIncome     bool `json:"positive_net_income"`
	PositiveCashFlow      bool `json:"positive_cash_flow"`
	ImprovingROA          bool `json:"improving_roa"`
	CashFlowExceedsIncome bool `json:"cash_flow_exceeds_income"`

	// Leverage and liquidity
	DecreasingLeverage    bool `json:"decreasing_leverage"`
	ImprovingCurrentRatio bool `json:"improving_current_ratio"`
	NoDilution            bool `json:"no_dilution"`

	// Operating efficiency
	ImprovingGrossMargin   bool `json:"improving_gross_margin"`
	ImprovingAssetTurnover bool `json:"improving_asset_turnover"`
}

// CalculatePiotroskiScore computes the Piotroski F-Score from the current
// fiscal period and the one before it. When prior is the zero value (only
// one period available) every test that needs a baseline fails rather than
// erroring, so the score degrades to at most 3.
func CalculatePiotroskiScore(current, prior provider.FinancialPeriod) PiotroskiResult {
	hasPrior := !prior.IsZero()

	result := PiotroskiResult{
		PositiveNetIncome:     current.NetIncome > 0,
		PositiveCashFlow:      current.OperatingCashFlow > 0,
		CashFlowExceedsIncome: current.OperatingCashFlow > current.NetIncome,
	}

	if hasPrior {
		result.ImprovingROA = safeRatio(current.NetIncome, current.TotalAssets) >
			safeRatio(prior.NetIncome, prior.TotalAssets)

		result.DecreasingLeverage = safeRatio(current.LongTermDebt, current.TotalAssets) <
			safeRatio(prior.LongTermDebt, prior.TotalAssets)

		result.ImprovingCurrentRatio = safeRatio(current.CurrentAssets, current.CurrentLiabilities) >
			safeRatio(prior.CurrentAssets, prior.CurrentLiabilities)

		result.NoDilution = prior.SharesOutstanding > 0 &&
			current.SharesOutstanding <= prior.SharesOutstanding

		result.ImprovingGrossMargin = safeRatio(current.GrossProfit, current.Revenue) >
			safeRatio(prior.GrossProfit, prior.Revenue)

		result.ImprovingAssetTurnover = safeRatio(current.Revenue, current.TotalAssets) >
			safeRatio(prior.Revenue, prior.TotalAssets)
	}

	for _, passed := range []bool{
		result.PositiveNetIncome,
		result.PositiveCashFlow,
		result.ImprovingROA,
		result.CashFlowExceedsIncome,
		result.DecreasingLeverage,
		result.ImprovingCurrentRatio,
		result.NoDilution,
		result.ImprovingGrossMargin,
		result.ImprovingAssetTurnover,
	} {
		if passed {
			result.Score++
		}
	}

	return result
}

// safeRatio divides a by b, treating a zero denominator as zero.
func safeRatio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
