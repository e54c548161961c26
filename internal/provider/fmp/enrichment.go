package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tickerlens/backend/internal/provider"
)

const insiderWindowDays = 90

// Holdings fetches the institutional ownership list.
func (c *Client) Holdings(ctx context.Context, ticker string) ([]provider.InstitutionalHolder, error) {
	var raw []holderResponse
	if err := c.getJSON(ctx, "/institutional-holder/"+url.PathEscape(ticker), nil, &raw); err != nil {
		return nil, err
	}

	holders := make([]provider.InstitutionalHolder, len(raw))
	for i, h := range raw {
		holders[i] = provider.InstitutionalHolder{
			Holder:        h.Holder,
			Shares:        h.Shares,
			Value:         h.Value,
			ChangePercent: h.Change,
			DateReported:  parseDate(h.DateReported),
		}
	}
	return holders, nil
}

// InsiderTrades fetches the most recent insider transactions.
func (c *Client) InsiderTrades(ctx context.Context, ticker string, limit int) ([]provider.InsiderTrade, error) {
	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var raw []insiderTradeResponse
	if err := c.getJSON(ctx, "/insider-trading", params, &raw); err != nil {
		return nil, err
	}

	trades := make([]provider.InsiderTrade, len(raw))
	for i, t := range raw {
		trades[i] = provider.InsiderTrade{
			Name:            t.ReportingName,
			Title:           t.TypeOfOwner,
			TransactionType: normalizeTransactionType(t.AcquistionOrDisposition),
			Shares:          t.SecuritiesTransacted,
			Price:           t.Price,
			Value:           t.Price * float64(t.SecuritiesTransacted),
			Date:            parseDate(t.TransactionDate),
		}
	}
	return trades, nil
}

// InsiderActivity aggregates insider trades over the trailing 90 days.
// The upstream has no aggregate endpoint, so the aggregation happens here.
func (c *Client) InsiderActivity(ctx context.Context, ticker string) (*provider.InsiderActivity, error) {
	trades, err := c.InsiderTrades(ctx, ticker, 100)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -insiderWindowDays)
	activity := &provider.InsiderActivity{WindowDays: insiderWindowDays}

	for _, t := range trades {
		if t.Date.Before(cutoff) {
			continue
		}
		switch t.TransactionType {
		case "buy":
			activity.BuyCount++
			activity.NetValue += t.Value
		case "sell":
			activity.SellCount++
			activity.NetValue -= t.Value
		}
	}

	return activity, nil
}

// DCF fetches the discounted-cash-flow valuation.
func (c *Client) DCF(ctx context.Context, ticker string) (*provider.DCFValuation, error) {
	var raw []dcfResponse
	if err := c.getJSON(ctx, "/discounted-cash-flow/"+url.PathEscape(ticker), nil, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	d := raw[0]
	return &provider.DCFValuation{
		Value:      d.DCF,
		StockPrice: d.StockPrice,
		Date:       parseDate(d.Date),
	}, nil
}

// TechnicalMetrics fetches price-action indicators.
func (c *Client) TechnicalMetrics(ctx context.Context, ticker string) (*provider.TechnicalMetrics, error) {
	var raw []technicalResponse
	if err := c.getJSON(ctx, "/technical-metrics/"+url.PathEscape(ticker), nil, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	t := raw[0]
	return &provider.TechnicalMetrics{
		Beta:          t.Beta,
		RSI14:         t.RSI,
		SMA50:         t.SMA50,
		SMA200:        t.SMA200,
		Volatility30D: t.Volatility,
	}, nil
}

// ShortInterest fetches the latest short-interest report.
func (c *Client) ShortInterest(ctx context.Context, ticker string) (*provider.ShortInterest, error) {
	var raw []shortInterestResponse
	if err := c.getJSON(ctx, "/short-interest/"+url.PathEscape(ticker), nil, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	s := raw[0]
	return &provider.ShortInterest{
		SharesShort:    s.SharesShort,
		PercentOfFloat: s.ShortPercentOfFloat,
		DaysToCover:    s.DaysToCover,
	}, nil
}

// AnalystEstimates fetches consensus forward estimates.
func (c *Client) AnalystEstimates(ctx context.Context, ticker string) (*provider.AnalystEstimates, error) {
	var raw []estimatesResponse
	if err := c.getJSON(ctx, "/analyst-estimates/"+url.PathEscape(ticker), nil, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	e := raw[0]
	return &provider.AnalystEstimates{
		EPSAvg:       e.EstimatedEPSAvg,
		EPSHigh:      e.EstimatedEPSHigh,
		EPSLow:       e.EstimatedEPSLow,
		RevenueAvg:   e.EstimatedRevenueAvg,
		TargetPrice:  e.TargetPrice,
		AnalystCount: e.NumberAnalystsEPS,
	}, nil
}

// ETFData fetches ETF-specific enrichment.
func (c *Client) ETFData(ctx context.Context, ticker string) (*provider.ETFData, error) {
	var info etfInfoResponse
	if err := c.getJSON(ctx, "/etf-info/"+url.PathEscape(ticker), nil, &info); err != nil {
		return nil, err
	}

	data := &provider.ETFData{
		ExpenseRatio: info.ExpenseRatio,
		AUM:          info.AUM,
		NAV:          info.NAV,
	}

	var holdings []etfHoldingResponse
	if err := c.getJSON(ctx, "/etf-holder/"+url.PathEscape(ticker), nil, &holdings); err == nil {
		for _, h := range holdings {
			data.Holdings = append(data.Holdings, provider.ETFHolding{
				Ticker:        h.Asset,
				Name:          h.Name,
				WeightPercent: h.WeightPercentage,
			})
		}
	}

	var sectors []etfSectorResponse
	if err := c.getJSON(ctx, "/etf-sector-weightings/"+url.PathEscape(ticker), nil, &sectors); err == nil {
		for _, s := range sectors {
			data.Sectors = append(data.Sectors, provider.SectorWeight{
				Sector:        s.Sector,
				WeightPercent: s.WeightPercentage,
			})
		}
	}

	return data, nil
}

func normalizeTransactionType(code string) string {
	switch strings.ToUpper(code) {
	case "A", "BUY", "P":
		return "buy"
	case "D", "SELL", "S":
		return "sell"
	default:
		return "other"
	}
}

func parseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

type holderResponse struct {
	Holder       string  `json:"holder"`
	Shares       int64   `json:"shares"`
	Value        float64 `json:"value"`
	Change       float64 `json:"change"`
	DateReported string  `json:"dateReported"`
}

type insiderTradeResponse struct {
	ReportingName           string  `json:"reportingName"`
	TypeOfOwner             string  `json:"typeOfOwner"`
	AcquistionOrDisposition string  `json:"acquistionOrDisposition"`
	SecuritiesTransacted    int64   `json:"securitiesTransacted"`
	Price                   float64 `json:"price"`
	TransactionDate         string  `json:"transactionDate"`
}

type dcfResponse struct {
	DCF        float64 `json:"dcf"`
	StockPrice float64 `json:"Stock Price"`
	Date       string  `json:"date"`
}

type technicalResponse struct {
	Beta       float64 `json:"beta"`
	RSI        float64 `json:"rsi"`
	SMA50      float64 `json:"sma50"`
	SMA200     float64 `json:"sma200"`
	Volatility float64 `json:"volatility"`
}

type shortInterestResponse struct {
	SharesShort         int64   `json:"sharesShort"`
	ShortPercentOfFloat float64 `json:"shortPercentOfFloat"`
	DaysToCover         float64 `json:"daysToCover"`
}

type estimatesResponse struct {
	EstimatedEPSAvg     float64 `json:"estimatedEpsAvg"`
	EstimatedEPSHigh    float64 `json:"estimatedEpsHigh"`
	EstimatedEPSLow     float64 `json:"estimatedEpsLow"`
	EstimatedRevenueAvg float64 `json:"estimatedRevenueAvg"`
	TargetPrice         float64 `json:"targetPrice"`
	NumberAnalystsEPS   int     `json:"numberAnalystEstimatedEps"`
}

type etfInfoResponse struct {
	ExpenseRatio float64 `json:"expenseRatio"`
	AUM          float64 `json:"aum"`
	NAV          float64 `json:"nav"`
}

type etfHoldingResponse struct {
	Asset            string  `json:"asset"`
	Name             string  `json:"name"`
	WeightPercentage float64 `json:"weightPercentage"`
}

type etfSectorResponse struct {
	Sector           string  `json:"sector"`
	WeightPercentage float64 `json:"weightPercentage"`
}
