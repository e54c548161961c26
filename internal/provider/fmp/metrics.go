package fmp

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tickerlens/backend/internal/provider"
)

// ValuationMetrics fetches price multiples. The quote price anchors the
// multiples to the same snapshot the rest of the analysis uses; the upstream
// recomputes price-dependent ratios when a price is supplied.
func (c *Client) ValuationMetrics(ctx context.Context, ticker string, price float64) (*provider.ValuationMetrics, error) {
	params := url.Values{}
	if price > 0 {
		params.Set("price", formatFloat(price))
	}

	var raw []ratiosResponse
	if err := c.getJSON(ctx, "/ratios-ttm/"+url.PathEscape(ticker), params, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	r := raw[0]
	m := &provider.ValuationMetrics{
		PE:            r.PERatioTTM,
		PB:            r.PriceToBookTTM,
		PS:            r.PriceToSalesTTM,
		PEG:           r.PEGRatioTTM,
		EVToEBITDA:    r.EVToEBITDATTM,
		PriceToFCF:    r.PriceToFCFTTM,
		DividendYield: r.DividendYieldTTM,
	}
	if m.PE != 0 {
		m.EarningsYield = 100 / m.PE
	}
	return m, nil
}

// PricePerformance fetches returns over standard horizons.
func (c *Client) PricePerformance(ctx context.Context, ticker string) (*provider.PricePerformance, error) {
	var raw []performanceResponse
	if err := c.getJSON(ctx, "/stock-price-change/"+url.PathEscape(ticker), nil, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	p := raw[0]
	return &provider.PricePerformance{
		Day5:   p.Day5,
		Month1: p.Month1,
		Month3: p.Month3,
		Month6: p.Month6,
		YTD:    p.YTD,
		Year1:  p.Year1,
		Year3:  p.Year3,
		Year5:  p.Year5,
	}, nil
}

// KeyFinancials fetches the ratio-derived figures consumed by the rule engine.
func (c *Client) KeyFinancials(ctx context.Context, ticker string) (*provider.KeyFinancials, error) {
	var raw []keyMetricsResponse
	if err := c.getJSON(ctx, "/key-metrics-ttm/"+url.PathEscape(ticker), nil, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	k := raw[0]
	return &provider.KeyFinancials{
		RevenueGrowth:   k.RevenueGrowthTTM * 100,
		OperatingMargin: k.OperatingMarginTTM * 100,
		DebtToEquity:    k.DebtToEquityTTM,
		ROIC:            k.ROICTTM * 100,
	}, nil
}

// ProfitabilityMetrics fetches margins alongside the sector averages.
func (c *Client) ProfitabilityMetrics(ctx context.Context, ticker, sector string) (*provider.ProfitabilityMetrics, error) {
	var raw []profitabilityResponse
	if err := c.getJSON(ctx, "/profitability/"+url.PathEscape(ticker), sectorParams(sector), &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	p := raw[0]
	return &provider.ProfitabilityMetrics{
		GrossMargin:       p.GrossMargin,
		OperatingMargin:   p.OperatingMargin,
		NetMargin:         p.NetMargin,
		ROE:               p.ROE,
		ROA:               p.ROA,
		SectorGrossMargin: p.SectorGrossMargin,
		SectorNetMargin:   p.SectorNetMargin,
	}, nil
}

// HealthMetrics fetches balance-sheet strength alongside the sector averages.
func (c *Client) HealthMetrics(ctx context.Context, ticker, sector string) (*provider.HealthMetrics, error) {
	var raw []healthResponse
	if err := c.getJSON(ctx, "/financial-health/"+url.PathEscape(ticker), sectorParams(sector), &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	h := raw[0]
	return &provider.HealthMetrics{
		CurrentRatio:       h.CurrentRatio,
		QuickRatio:         h.QuickRatio,
		DebtToEquity:       h.DebtToEquity,
		InterestCoverage:   h.InterestCoverage,
		SectorCurrentRatio: h.SectorCurrentRatio,
		SectorDebtToEquity: h.SectorDebtToEquity,
	}, nil
}

// GrowthMetrics fetches growth rates alongside the sector averages.
func (c *Client) GrowthMetrics(ctx context.Context, ticker, sector string) (*provider.GrowthMetrics, error) {
	var raw []growthResponse
	if err := c.getJSON(ctx, "/financial-growth/"+url.PathEscape(ticker), sectorParams(sector), &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	g := raw[0]
	return &provider.GrowthMetrics{
		RevenueGrowth:       g.RevenueGrowth * 100,
		EPSGrowth:           g.EPSGrowth * 100,
		FCFGrowth:           g.FCFGrowth * 100,
		SectorRevenueGrowth: g.SectorRevenueGrowth * 100,
		SectorEPSGrowth:     g.SectorEPSGrowth * 100,
	}, nil
}

// EarningsQuality fetches accrual and cash-conversion measures.
func (c *Client) EarningsQuality(ctx context.Context, ticker, sector string) (*provider.EarningsQuality, error) {
	var raw []earningsQualityResponse
	if err := c.getJSON(ctx, "/earnings-quality/"+url.PathEscape(ticker), sectorParams(sector), &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	q := raw[0]
	return &provider.EarningsQuality{
		AccrualRatio:     q.AccrualRatio,
		CashConversion:   q.CashConversion,
		SectorConversion: q.SectorConversion,
	}, nil
}

func sectorParams(sector string) url.Values {
	params := url.Values{}
	if sector != "" {
		params.Set("sector", sector)
	}
	return params
}

func formatFloat(f float64) string {
	// Two decimals is plenty for a price query parameter.
	return strconv.FormatFloat(f, 'f', 2, 64)
}

type ratiosResponse struct {
	PERatioTTM       float64 `json:"peRatioTTM"`
	PriceToBookTTM   float64 `json:"priceToBookRatioTTM"`
	PriceToSalesTTM  float64 `json:"priceToSalesRatioTTM"`
	PEGRatioTTM      float64 `json:"pegRatioTTM"`
	EVToEBITDATTM    float64 `json:"enterpriseValueMultipleTTM"`
	PriceToFCFTTM    float64 `json:"priceToFreeCashFlowsRatioTTM"`
	DividendYieldTTM float64 `json:"dividendYieldTTM"`
}

type performanceResponse struct {
	Day5   float64 `json:"5D"`
	Month1 float64 `json:"1M"`
	Month3 float64 `json:"3M"`
	Month6 float64 `json:"6M"`
	YTD    float64 `json:"ytd"`
	Year1  float64 `json:"1Y"`
	Year3  float64 `json:"3Y"`
	Year5  float64 `json:"5Y"`
}

type keyMetricsResponse struct {
	RevenueGrowthTTM   float64 `json:"revenueGrowthTTM"`
	OperatingMarginTTM float64 `json:"operatingProfitMarginTTM"`
	DebtToEquityTTM    float64 `json:"debtToEquityTTM"`
	ROICTTM            float64 `json:"roicTTM"`
}

type profitabilityResponse struct {
	GrossMargin       float64 `json:"grossMargin"`
	OperatingMargin   float64 `json:"operatingMargin"`
	NetMargin         float64 `json:"netMargin"`
	ROE               float64 `json:"roe"`
	ROA               float64 `json:"roa"`
	SectorGrossMargin float64 `json:"sectorGrossMargin"`
	SectorNetMargin   float64 `json:"sectorNetMargin"`
}

type healthResponse struct {
	CurrentRatio       float64 `json:"currentRatio"`
	QuickRatio         float64 `json:"quickRatio"`
	DebtToEquity       float64 `json:"debtToEquity"`
	InterestCoverage   float64 `json:"interestCoverage"`
	SectorCurrentRatio float64 `json:"sectorCurrentRatio"`
	SectorDebtToEquity float64 `json:"sectorDebtToEquity"`
}

type growthResponse struct {
	RevenueGrowth       float64 `json:"revenueGrowth"`
	EPSGrowth           float64 `json:"epsgrowth"`
	FCFGrowth           float64 `json:"freeCashFlowGrowth"`
	SectorRevenueGrowth float64 `json:"sectorRevenueGrowth"`
	SectorEPSGrowth     float64 `json:"sectorEpsGrowth"`
}

type earningsQualityResponse struct {
	AccrualRatio     float64 `json:"accrualRatio"`
	CashConversion   float64 `json:"cashConversion"`
	SectorConversion float64 `json:"sectorConversion"`
}
