package fmp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerlens/backend/internal/provider"
	"github.com/tickerlens/backend/pkg/config"
	"github.com/tickerlens/backend/pkg/httputil"
	"github.com/tickerlens/backend/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Provider: config.ProviderConfig{
			APIKey:     "test-key",
			BaseURL:    srv.URL,
			Timeout:    5 * time.Second,
			RatePerSec: 100,
		},
	}

	log := logger.NewNop()
	httpClient := httputil.New(log, cfg.Provider.Timeout)
	httpClient.DisableRetry()

	return NewClient(cfg, httpClient, log)
}

func TestProfile(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/profile/AAPL", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Write([]byte(`[{
			"symbol": "AAPL",
			"companyName": "Apple Inc.",
			"exchangeShortName": "NASDAQ",
			"sector": "Technology",
			"industry": "Consumer Electronics",
			"mktCap": 3000000000000,
			"isEtf": false
		}]`))
	}))

	p, err := client.Profile(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", p.Ticker)
	assert.Equal(t, "Apple Inc.", p.Name)
	assert.Equal(t, "Technology", p.Sector)
	assert.Equal(t, 3_000_000_000_000.0, p.MarketCap)
	assert.False(t, p.IsETF)
}

func TestProfile_EmptyResultIsNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	_, err := client.Profile(context.Background(), "NOPE")
	assert.ErrorIs(t, err, provider.ErrNotFound)
}

func TestQuote(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote/AAPL", r.URL.Path)
		w.Write([]byte(`[{
			"symbol": "AAPL",
			"price": 185.5,
			"change": 1.25,
			"changesPercentage": 0.68,
			"volume": 52000000,
			"marketCap": 2900000000000,
			"eps": 6.12,
			"pe": 30.3
		}]`))
	}))

	q, err := client.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, 185.5, q.Price)
	assert.Equal(t, int64(52_000_000), q.Volume)
	assert.Equal(t, 30.3, q.PE)
}

func TestQuote_UpstreamErrorIsWrapped(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.NotErrorIs(t, err, provider.ErrNotFound)
	assert.Contains(t, err.Error(), "/quote/AAPL")
}

func TestFinancialStatements_MergesByYear(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/income-statement/AAPL":
			assert.Equal(t, "annual", r.URL.Query().Get("period"))
			w.Write([]byte(`[
				{"calendarYear": "2025", "revenue": 800, "grossProfit": 400, "operatingIncome": 180, "netIncome": 100, "eps": 1.0, "weightedAverageShsOut": 100},
				{"calendarYear": "2024", "revenue": 700, "grossProfit": 300, "operatingIncome": 120, "netIncome": 50, "eps": 0.5, "weightedAverageShsOut": 100}
			]`))
		case "/balance-sheet-statement/AAPL":
			w.Write([]byte(`[
				{"calendarYear": "2025", "totalAssets": 1000, "totalLiabilities": 400, "totalCurrentAssets": 500, "totalCurrentLiabilities": 200, "longTermDebt": 100, "retainedEarnings": 400},
				{"calendarYear": "2024", "totalAssets": 900, "totalLiabilities": 450, "totalCurrentAssets": 400, "totalCurrentLiabilities": 200, "longTermDebt": 150, "retainedEarnings": 350}
			]`))
		case "/cash-flow-statement/AAPL":
			w.Write([]byte(`[
				{"calendarYear": "2025", "operatingCashFlow": 150, "freeCashFlow": 120},
				{"calendarYear": "2024", "operatingCashFlow": 80, "freeCashFlow": 60}
			]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	periods, err := client.FinancialStatements(context.Background(), "AAPL", 2)
	require.NoError(t, err)
	require.Len(t, periods, 2)

	current := periods[0]
	assert.Equal(t, 2025, current.FiscalYear)
	assert.Equal(t, 800.0, current.Revenue)
	assert.Equal(t, 1000.0, current.TotalAssets)
	assert.Equal(t, 400.0, current.RetainedEarnings)
	assert.Equal(t, 150.0, current.OperatingCashFlow)

	prior := periods[1]
	assert.Equal(t, 2024, prior.FiscalYear)
	assert.Equal(t, 900.0, prior.TotalAssets)
}

func TestFinancialStatements_NoIncomeIsNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	_, err := client.FinancialStatements(context.Background(), "NOPE", 2)
	assert.ErrorIs(t, err, provider.ErrNotFound)
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "apple", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`[
			{"symbol": "AAPL", "name": "Apple Inc.", "exchangeShortName": "NASDAQ"},
			{"symbol": "APLE", "name": "Apple Hospitality REIT", "exchangeShortName": "NYSE"}
		]`))
	}))

	results, err := client.Search(context.Background(), "apple", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "AAPL", results[0].Ticker)
	assert.Equal(t, "NASDAQ", results[0].Exchange)
}
