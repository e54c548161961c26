package fmp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tickerlens/backend/internal/provider"
)

// FinancialStatements fetches and merges income, balance-sheet and cash-flow
// statements into per-year FinancialPeriod records, newest first. The three
// statements are separate endpoints upstream; rows are joined on fiscal year.
func (c *Client) FinancialStatements(ctx context.Context, ticker string, limit int) ([]provider.FinancialPeriod, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("period", "annual")

	var income []incomeStatementResponse
	if err := c.getJSON(ctx, "/income-statement/"+url.PathEscape(ticker), params, &income); err != nil {
		return nil, err
	}
	if len(income) == 0 {
		return nil, provider.ErrNotFound
	}

	var balance []balanceSheetResponse
	if err := c.getJSON(ctx, "/balance-sheet-statement/"+url.PathEscape(ticker), params, &balance); err != nil {
		return nil, err
	}

	var cashflow []cashFlowResponse
	if err := c.getJSON(ctx, "/cash-flow-statement/"+url.PathEscape(ticker), params, &cashflow); err != nil {
		return nil, err
	}

	balanceByYear := make(map[int]balanceSheetResponse, len(balance))
	for _, b := range balance {
		balanceByYear[b.CalendarYear] = b
	}
	cashflowByYear := make(map[int]cashFlowResponse, len(cashflow))
	for _, f := range cashflow {
		cashflowByYear[f.CalendarYear] = f
	}

	periods := make([]provider.FinancialPeriod, 0, len(income))
	for _, inc := range income {
		p := provider.FinancialPeriod{
			FiscalYear:        inc.CalendarYear,
			Revenue:           inc.Revenue,
			GrossProfit:       inc.GrossProfit,
			OperatingIncome:   inc.OperatingIncome,
			NetIncome:         inc.NetIncome,
			EBIT:              inc.OperatingIncome + inc.OtherIncome,
			EPS:               inc.EPS,
			SharesOutstanding: inc.WeightedAverageShares,
		}

		if b, ok := balanceByYear[inc.CalendarYear]; ok {
			p.TotalAssets = b.TotalAssets
			p.TotalLiabilities = b.TotalLiabilities
			p.CurrentAssets = b.TotalCurrentAssets
			p.CurrentLiabilities = b.TotalCurrentLiabilities
			p.LongTermDebt = b.LongTermDebt
			p.RetainedEarnings = b.RetainedEarnings
			p.ShareholdersEquity = b.TotalStockholdersEquity
		}

		if f, ok := cashflowByYear[inc.CalendarYear]; ok {
			p.OperatingCashFlow = f.OperatingCashFlow
			p.FreeCashFlow = f.FreeCashFlow
		}

		periods = append(periods, p)
	}

	return periods, nil
}

type incomeStatementResponse struct {
	CalendarYear          int     `json:"calendarYear,string"`
	Revenue               float64 `json:"revenue"`
	GrossProfit           float64 `json:"grossProfit"`
	OperatingIncome       float64 `json:"operatingIncome"`
	OtherIncome           float64 `json:"totalOtherIncomeExpensesNet"`
	NetIncome             float64 `json:"netIncome"`
	EPS                   float64 `json:"eps"`
	WeightedAverageShares float64 `json:"weightedAverageShsOut"`
}

type balanceSheetResponse struct {
	CalendarYear            int     `json:"calendarYear,string"`
	TotalAssets             float64 `json:"totalAssets"`
	TotalLiabilities        float64 `json:"totalLiabilities"`
	TotalCurrentAssets      float64 `json:"totalCurrentAssets"`
	TotalCurrentLiabilities float64 `json:"totalCurrentLiabilities"`
	LongTermDebt            float64 `json:"longTermDebt"`
	RetainedEarnings        float64 `json:"retainedEarnings"`
	TotalStockholdersEquity float64 `json:"totalStockholdersEquity"`
}

type cashFlowResponse struct {
	CalendarYear      int     `json:"calendarYear,string"`
	OperatingCashFlow float64 `json:"operatingCashFlow"`
	FreeCashFlow      float64 `json:"freeCashFlow"`
}
