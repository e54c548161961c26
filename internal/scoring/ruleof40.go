package scoring

import "github.com/tickerlens/backend/internal/provider"

// ruleOf40Threshold is the composite score a growth company should clear.
const ruleOf40Threshold = 40.0

// RuleOf40Result holds the growth-plus-margin composite. The growth and
// margin components are retained individually for display.
type RuleOf40Result struct {
	Score         float64 `json:"score"`
	RevenueGrowth float64 `json:"revenue_growth"` // percent, year over year
	ProfitMargin  float64 `json:"profit_margin"`  // operating margin, percent
	Passed        bool    `json:"passed"`
}

// CalculateRuleOf40 computes the composite with no growth history. The
// growth term is taken as zero, so the score is just the operating margin.
func CalculateRuleOf40(current provider.FinancialPeriod) RuleOf40Result {
	return CalculateRuleOf40WithGrowth(current, provider.FinancialPeriod{})
}

// CalculateRuleOf40WithGrowth computes revenue growth from the prior period
// and adds the current operating margin. A zero-value prior period degrades
// the growth term to zero instead of erroring.
func CalculateRuleOf40WithGrowth(current, prior provider.FinancialPeriod) RuleOf40Result {
	growth := 0.0
	if prior.Revenue > 0 {
		growth = (current.Revenue - prior.Revenue) / prior.Revenue * 100
	}

	margin := safeRatio(current.OperatingIncome, current.Revenue) * 100

	score := growth + margin
	return RuleOf40Result{
		Score:         score,
		RevenueGrowth: growth,
		ProfitMargin:  margin,
		Passed:        score >= ruleOf40Threshold,
	}
}
