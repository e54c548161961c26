package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/tickerlens/backend/internal/provider"
	"github.com/tickerlens/backend/pkg/config"
	"github.com/tickerlens/backend/pkg/httputil"
	"github.com/tickerlens/backend/pkg/logger"
)

// Client implements provider.Provider against the Financial Modeling Prep
// REST API. All calls to the provider go through this client.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

// NewClient creates a new FMP client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	perSec := cfg.Provider.RatePerSec
	if perSec <= 0 {
		perSec = 10
	}

	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "fmp"),
		baseURL:    strings.TrimRight(cfg.Provider.BaseURL, "/"),
		apiKey:     cfg.Provider.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(perSec), perSec),
	}
}

// getJSON waits for rate-limit headroom, then fetches and decodes one endpoint.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)

	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	if err := c.httpClient.GetJSON(ctx, fullURL, dest); err != nil {
		return fmt.Errorf("fmp %s: %w", path, err)
	}

	return nil
}

// Profile fetches the company profile. An empty result means the ticker
// does not exist, which is reported as provider.ErrNotFound.
func (c *Client) Profile(ctx context.Context, ticker string) (*provider.CompanyProfile, error) {
	var raw []profileResponse
	if err := c.getJSON(ctx, "/profile/"+url.PathEscape(ticker), nil, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	p := raw[0]
	return &provider.CompanyProfile{
		Ticker:      p.Symbol,
		Name:        p.CompanyName,
		Exchange:    p.Exchange,
		Sector:      p.Sector,
		Industry:    p.Industry,
		Description: p.Description,
		Website:     p.Website,
		MarketCap:   p.MktCap,
		IsETF:       p.IsEtf,
	}, nil
}

// Quote fetches the latest quote.
func (c *Client) Quote(ctx context.Context, ticker string) (*provider.Quote, error) {
	var raw []quoteResponse
	if err := c.getJSON(ctx, "/quote/"+url.PathEscape(ticker), nil, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, provider.ErrNotFound
	}

	q := raw[0]
	return &provider.Quote{
		Ticker:        q.Symbol,
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangesPercentage,
		DayLow:        q.DayLow,
		DayHigh:       q.DayHigh,
		YearLow:       q.YearLow,
		YearHigh:      q.YearHigh,
		Volume:        q.Volume,
		AvgVolume:     q.AvgVolume,
		MarketCap:     q.MarketCap,
		EPS:           q.EPS,
		PE:            q.PE,
	}, nil
}

// Search looks up tickers matching a free-text query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]provider.SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var raw []searchResponse
	if err := c.getJSON(ctx, "/search", params, &raw); err != nil {
		return nil, err
	}

	results := make([]provider.SearchResult, len(raw))
	for i, r := range raw {
		results[i] = provider.SearchResult{
			Ticker:   r.Symbol,
			Name:     r.Name,
			Exchange: r.ExchangeShortName,
		}
	}
	return results, nil
}

// profileResponse mirrors the FMP /profile payload.
type profileResponse struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"companyName"`
	Exchange    string  `json:"exchangeShortName"`
	Sector      string  `json:"sector"`
	Industry    string  `json:"industry"`
	Description string  `json:"description"`
	Website     string  `json:"website"`
	MktCap      float64 `json:"mktCap"`
	IsEtf       bool    `json:"isEtf"`
}

// quoteResponse mirrors the FMP /quote payload.
type quoteResponse struct {
	Symbol            string  `json:"symbol"`
	Price             float64 `json:"price"`
	Change            float64 `json:"change"`
	ChangesPercentage float64 `json:"changesPercentage"`
	DayLow            float64 `json:"dayLow"`
	DayHigh           float64 `json:"dayHigh"`
	YearLow           float64 `json:"yearLow"`
	YearHigh          float64 `json:"yearHigh"`
	Volume            int64   `json:"volume"`
	AvgVolume         int64   `json:"avgVolume"`
	MarketCap         float64 `json:"marketCap"`
	EPS               float64 `json:"eps"`
	PE                float64 `json:"pe"`
}

type searchResponse struct {
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	ExchangeShortName string `json:"exchangeShortName"`
}
