package scoring

import "github.com/tickerlens/backend/internal/provider"

// AltmanZone classifies an Altman Z-Score into a bankruptcy-risk bucket.
type AltmanZone string

const (
	ZoneSafe     AltmanZone = "safe"
	ZoneGray     AltmanZone = "gray"
	ZoneDistress AltmanZone = "distress"
)

// Published zone thresholds for the original Z-Score model.
const (
	altmanSafeThreshold = 2.99
	altmanGrayThreshold = 1.81
)

// Published coefficients for the original Z-Score model.
const (
	altmanWeightWorkingCapital   = 1.2
	altmanWeightRetainedEarnings = 1.4
	altmanWeightEBIT             = 3.3
	altmanWeightMarketCap        = 0.6
	altmanWeightRevenue          = 1.0
)

// AltmanZResult holds the Z-Score and its zone.
type AltmanZResult struct {
	Score float64    `json:"score"`
	Zone  AltmanZone `json:"zone"`
}

// CalculateAltmanZScore computes the Altman Z-Score from one fiscal period.
// A zero denominator in any ratio contributes zero rather than faulting, so
// the function is total over its domain.
func CalculateAltmanZScore(period provider.FinancialPeriod) AltmanZResult {
	workingCapital := period.CurrentAssets - period.CurrentLiabilities

	score := altmanWeightWorkingCapital*safeRatio(workingCapital, period.TotalAssets) +
		altmanWeightRetainedEarnings*safeRatio(period.RetainedEarnings, period.TotalAssets) +
		altmanWeightEBIT*safeRatio(period.EBIT, period.TotalAssets) +
		altmanWeightMarketCap*safeRatio(period.MarketCap, period.TotalLiabilities) +
		altmanWeightRevenue*safeRatio(period.Revenue, period.TotalAssets)

	return AltmanZResult{
		Score: score,
		Zone:  zoneForScore(score),
	}
}

// zoneForScore maps a Z-Score to its zone: above 2.99 is safe, 1.81 to 2.99
// is gray, below 1.81 is distress.
func zoneForScore(score float64) AltmanZone {
	switch {
	case score > altmanSafeThreshold:
		return ZoneSafe
	case score >= altmanGrayThreshold:
		return ZoneGray
	default:
		return ZoneDistress
	}
}
