package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tickerlens/backend/internal/provider"
)

func TestCalculateAltmanZScore_SafeZone(t *testing.T) {
	period := provider.FinancialPeriod{
		Revenue:            800,
		EBIT:               150,
		TotalAssets:        1000,
		TotalLiabilities:   400,
		CurrentAssets:      500,
		CurrentLiabilities: 200,
		RetainedEarnings:   400,
		MarketCap:          1200,
	}

	result := CalculateAltmanZScore(period)

	// 1.2*0.3 + 1.4*0.4 + 3.3*0.15 + 0.6*3.0 + 1.0*0.8
	assert.InDelta(t, 4.015, result.Score, 0.001)
	assert.Equal(t, ZoneSafe, result.Zone)
}

func TestCalculateAltmanZScore_GrayZone(t *testing.T) {
	period := provider.FinancialPeriod{
		Revenue:            600,
		EBIT:               100,
		TotalAssets:        1000,
		TotalLiabilities:   500,
		CurrentAssets:      400,
		CurrentLiabilities: 200,
		RetainedEarnings:   200,
		MarketCap:          500,
	}

	result := CalculateAltmanZScore(period)

	assert.InDelta(t, 2.05, result.Score, 0.001)
	assert.Equal(t, ZoneGray, result.Zone)
}

func TestCalculateAltmanZScore_DistressZone(t *testing.T) {
	period := provider.FinancialPeriod{
		Revenue:            600,
		EBIT:               20,
		TotalAssets:        1000,
		TotalLiabilities:   800,
		CurrentAssets:      200,
		CurrentLiabilities: 500,
		RetainedEarnings:   -100,
		MarketCap:          100,
	}

	result := CalculateAltmanZScore(period)

	assert.InDelta(t, 0.241, result.Score, 0.001)
	assert.Equal(t, ZoneDistress, result.Zone)
}

func TestCalculateAltmanZScore_ZeroPeriod(t *testing.T) {
	result := CalculateAltmanZScore(provider.FinancialPeriod{})

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, ZoneDistress, result.Zone)
}

func TestZoneForScore_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  AltmanZone
	}{
		{3.00, ZoneSafe},
		{2.99, ZoneGray}, // safe zone is strictly above 2.99
		{2.00, ZoneGray},
		{1.81, ZoneGray}, // gray zone includes its lower bound
		{1.80, ZoneDistress},
		{-1.0, ZoneDistress},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, zoneForScore(tt.score), "score %.2f", tt.score)
	}
}
