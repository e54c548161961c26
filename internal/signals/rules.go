package signals

import (
	"fmt"

	"github.com/tickerlens/backend/internal/scoring"
)

// RuleFunc adapts a plain function to the Rule interface. The rule set is
// closed, so a fixed-order table of functions is all the dispatch needed.
type RuleFunc func(ctx *RuleContext) *Signal

// Evaluate implements Rule.
func (f RuleFunc) Evaluate(ctx *RuleContext) *Signal {
	return f(ctx)
}

// Threshold constants. These boundaries are contractual: tests and cached
// output depend on them.
const (
	piotroskiBullishMin = 7
	piotroskiBearishMax = 3

	altmanStrongSafeScore = 4.0

	insiderBuyCountMin  = 3
	insiderBuyValueMin  = 100_000
	insiderSellCountMin = 5
	insiderSellValueMax = -500_000

	revenueGrowthBullishPct = 20.0
	debtToEquityWarning     = 2.0
	roicBullishPct          = 20.0

	shortFloatLowPct      = 5.0
	shortFloatElevatedPct = 10.0
	shortFloatHighPct     = 20.0

	daysToCoverLow      = 2.0
	daysToCoverElevated = 5.0
	daysToCoverHigh     = 10.0

	dcfDiscountRatio = 1.2
)

// defaultRules returns the rule table in registration order. Registration
// order is the tie-break for equal-priority signals, so it is part of the
// output contract.
func defaultRules() []Rule {
	return []Rule{
		RuleFunc(piotroskiStrongRule),
		RuleFunc(piotroskiWeakRule),
		RuleFunc(altmanDistressRule),
		RuleFunc(altmanSafeRule),
		RuleFunc(insiderBuyingRule),
		RuleFunc(insiderSellingRule),
		RuleFunc(revenueGrowthRule),
		RuleFunc(negativeMarginRule),
		RuleFunc(highLeverageRule),
		RuleFunc(strongROICRule),
		RuleFunc(shortInterestLowRule),
		RuleFunc(shortInterestElevatedRule),
		RuleFunc(shortInterestHighRule),
		RuleFunc(daysToCoverLowRule),
		RuleFunc(daysToCoverElevatedRule),
		RuleFunc(daysToCoverHighRule),
		RuleFunc(dcfUndervaluedRule),
	}
}

func piotroskiStrongRule(ctx *RuleContext) *Signal {
	if ctx.Piotroski == nil || ctx.Piotroski.Score < piotroskiBullishMin {
		return nil
	}
	return &Signal{
		Type:     TypeBullish,
		Category: CategoryFundamental,
		Message:  fmt.Sprintf("Strong fundamentals: Piotroski F-Score of %d/9", ctx.Piotroski.Score),
		Priority: 4,
		Data:     map[string]interface{}{"score": ctx.Piotroski.Score},
	}
}

func piotroskiWeakRule(ctx *RuleContext) *Signal {
	if ctx.Piotroski == nil || ctx.Piotroski.Score > piotroskiBearishMax {
		return nil
	}
	return &Signal{
		Type:     TypeBearish,
		Category: CategoryFundamental,
		Message:  fmt.Sprintf("Weak fundamentals: Piotroski F-Score of %d/9", ctx.Piotroski.Score),
		Priority: 4,
		Data:     map[string]interface{}{"score": ctx.Piotroski.Score},
	}
}

func altmanDistressRule(ctx *RuleContext) *Signal {
	if ctx.Altman == nil || ctx.Altman.Zone != scoring.ZoneDistress {
		return nil
	}
	return &Signal{
		Type:     TypeWarning,
		Category: CategoryFundamental,
		Message:  fmt.Sprintf("Bankruptcy risk: Altman Z-Score of %.2f is in the distress zone", ctx.Altman.Score),
		Priority: 5,
		Data:     map[string]interface{}{"zone": "distress", "score": ctx.Altman.Score},
	}
}

func altmanSafeRule(ctx *RuleContext) *Signal {
	if ctx.Altman == nil || ctx.Altman.Zone != scoring.ZoneSafe || ctx.Altman.Score <= altmanStrongSafeScore {
		return nil
	}
	return &Signal{
		Type:     TypeBullish,
		Category: CategoryFundamental,
		Message:  fmt.Sprintf("Financially sound: Altman Z-Score of %.2f is well inside the safe zone", ctx.Altman.Score),
		Priority: 3,
		Data:     map[string]interface{}{"zone": "safe", "score": ctx.Altman.Score},
	}
}

func insiderBuyingRule(ctx *RuleContext) *Signal {
	ia := ctx.InsiderActivity
	if ia == nil || ia.BuyCount < insiderBuyCountMin || ia.NetValue <= insiderBuyValueMin {
		return nil
	}
	return &Signal{
		Type:     TypeBullish,
		Category: CategoryInsider,
		Message:  fmt.Sprintf("Insider accumulation: %d buys totaling a net $%.0f over %d days", ia.BuyCount, ia.NetValue, ia.WindowDays),
		Priority: 4,
		Data:     map[string]interface{}{"buy_count": ia.BuyCount, "net_value": ia.NetValue},
	}
}

func insiderSellingRule(ctx *RuleContext) *Signal {
	ia := ctx.InsiderActivity
	if ia == nil || ia.SellCount < insiderSellCountMin || ia.NetValue >= insiderSellValueMax {
		return nil
	}
	return &Signal{
		Type:     TypeWarning,
		Category: CategoryInsider,
		Message:  fmt.Sprintf("Insider distribution: %d sells totaling a net $%.0f over %d days", ia.SellCount, ia.NetValue, ia.WindowDays),
		Priority: 3,
		Data:     map[string]interface{}{"sell_count": ia.SellCount, "net_value": ia.NetValue},
	}
}

func revenueGrowthRule(ctx *RuleContext) *Signal {
	f := ctx.Financials
	if f == nil || f.RevenueGrowth <= revenueGrowthBullishPct {
		return nil
	}
	return &Signal{
		Type:     TypeBullish,
		Category: CategoryFundamental,
		Message:  fmt.Sprintf("Revenue growing %.1f%% year over year", f.RevenueGrowth),
		Priority: 3,
		Data:     map[string]interface{}{"revenue_growth": f.RevenueGrowth},
	}
}

func negativeMarginRule(ctx *RuleContext) *Signal {
	f := ctx.Financials
	if f == nil || f.OperatingMargin >= 0 {
		return nil
	}
	return &Signal{
		Type:     TypeWarning,
		Category: CategoryFundamental,
		Message:  fmt.Sprintf("Operating at a loss: %.1f%% operating margin", f.OperatingMargin),
		Priority: 4,
		Data:     map[string]interface{}{"operating_margin": f.OperatingMargin},
	}
}

func highLeverageRule(ctx *RuleContext) *Signal {
	f := ctx.Financials
	if f == nil || f.DebtToEquity <= debtToEquityWarning {
		return nil
	}
	return &Signal{
		Type:     TypeWarning,
		Category: CategoryFundamental,
		Message:  fmt.Sprintf("High leverage: debt/equity of %.2f", f.DebtToEquity),
		Priority: 3,
		Data:     map[string]interface{}{"debt_to_equity": f.DebtToEquity},
	}
}

func strongROICRule(ctx *RuleContext) *Signal {
	f := ctx.Financials
	if f == nil || f.ROIC <= roicBullishPct {
		return nil
	}
	return &Signal{
		Type:     TypeBullish,
		Category: CategoryFundamental,
		Message:  fmt.Sprintf("Efficient capital allocation: ROIC of %.1f%%", f.ROIC),
		Priority: 3,
		Data:     map[string]interface{}{"roic": f.ROIC},
	}
}

func shortInterestLowRule(ctx *RuleContext) *Signal {
	si := ctx.ShortInterest
	if si == nil || si.PercentOfFloat <= 0 || si.PercentOfFloat >= shortFloatLowPct {
		return nil
	}
	return &Signal{
		Type:     TypeBullish,
		Category: CategoryTechnical,
		Message:  fmt.Sprintf("Low short interest: %.1f%% of float", si.PercentOfFloat),
		Priority: 2,
		Data:     map[string]interface{}{"percent_of_float": si.PercentOfFloat},
	}
}

func shortInterestElevatedRule(ctx *RuleContext) *Signal {
	si := ctx.ShortInterest
	if si == nil || si.PercentOfFloat < shortFloatElevatedPct || si.PercentOfFloat >= shortFloatHighPct {
		return nil
	}
	return &Signal{
		Type:     TypeBearish,
		Category: CategoryTechnical,
		Message:  fmt.Sprintf("Elevated short interest: %.1f%% of float", si.PercentOfFloat),
		Priority: 3,
		Data:     map[string]interface{}{"percent_of_float": si.PercentOfFloat},
	}
}

func shortInterestHighRule(ctx *RuleContext) *Signal {
	si := ctx.ShortInterest
	if si == nil || si.PercentOfFloat < shortFloatHighPct {
		return nil
	}
	return &Signal{
		Type:     TypeWarning,
		Category: CategoryTechnical,
		Message:  fmt.Sprintf("Heavy short interest: %.1f%% of float, squeeze and distress risk", si.PercentOfFloat),
		Priority: 4,
		Data:     map[string]interface{}{"percent_of_float": si.PercentOfFloat},
	}
}

func daysToCoverLowRule(ctx *RuleContext) *Signal {
	si := ctx.ShortInterest
	if si == nil || si.DaysToCover <= 0 || si.DaysToCover >= daysToCoverLow {
		return nil
	}
	return &Signal{
		Type:     TypeBullish,
		Category: CategoryTechnical,
		Message:  fmt.Sprintf("Shorts can exit quickly: %.1f days to cover", si.DaysToCover),
		Priority: 2,
		Data:     map[string]interface{}{"days_to_cover": si.DaysToCover},
	}
}

func daysToCoverElevatedRule(ctx *RuleContext) *Signal {
	si := ctx.ShortInterest
	if si == nil || si.DaysToCover < daysToCoverElevated || si.DaysToCover >= daysToCoverHigh {
		return nil
	}
	return &Signal{
		Type:     TypeBearish,
		Category: CategoryTechnical,
		Message:  fmt.Sprintf("Elevated days to cover: %.1f", si.DaysToCover),
		Priority: 3,
		Data:     map[string]interface{}{"days_to_cover": si.DaysToCover},
	}
}

func daysToCoverHighRule(ctx *RuleContext) *Signal {
	si := ctx.ShortInterest
	if si == nil || si.DaysToCover < daysToCoverHigh {
		return nil
	}
	return &Signal{
		Type:     TypeWarning,
		Category: CategoryTechnical,
		Message:  fmt.Sprintf("Crowded short: %.1f days to cover", si.DaysToCover),
		Priority: 4,
		Data:     map[string]interface{}{"days_to_cover": si.DaysToCover},
	}
}

func dcfUndervaluedRule(ctx *RuleContext) *Signal {
	dcf := ctx.DCF
	if dcf == nil || ctx.Price <= 0 || dcf.Value < ctx.Price*dcfDiscountRatio {
		return nil
	}
	return &Signal{
		Type:     TypeBullish,
		Category: CategoryFundamental,
		Message:  fmt.Sprintf("Trading below intrinsic value: DCF of $%.2f vs price of $%.2f", dcf.Value, ctx.Price),
		Priority: 2,
		Data:     map[string]interface{}{"dcf": dcf.Value, "price": ctx.Price},
	}
}
