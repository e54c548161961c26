package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tickerlens/backend/internal/analysis"
	"github.com/tickerlens/backend/internal/provider"
	"github.com/tickerlens/backend/pkg/logger"
)

// AnalysisHandler handles the per-ticker analysis endpoints.
type AnalysisHandler struct {
	analyzer *analysis.Analyzer
	logger   *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(analyzer *analysis.Analyzer, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
		logger:   log,
	}
}

// GetAnalysis returns the assembled analysis for a ticker.
// GET /api/analysis/{ticker}
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	result, err := h.analyzer.Analyze(ctx, ticker)
	if err != nil {
		h.respondAnalysisError(w, ticker, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// RefreshAnalysis drops the cached entry and rebuilds the analysis.
// DELETE /api/analysis/{ticker}/cache
func (h *AnalysisHandler) RefreshAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	result, err := h.analyzer.Refresh(ctx, ticker)
	if err != nil {
		h.respondAnalysisError(w, ticker, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// Search looks up tickers matching a query.
// GET /api/search?q=apple&limit=10
func (h *AnalysisHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 50 {
			limit = l
		}
	}

	results, err := h.analyzer.Search(ctx, query, limit)
	if err != nil {
		h.logger.WithError(err).WithField("query", query).Error("Search failed")
		respondError(w, http.StatusBadGateway, "search failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    results,
	})
}

func (h *AnalysisHandler) respondAnalysisError(w http.ResponseWriter, ticker string, err error) {
	if errors.Is(err, provider.ErrNotFound) {
		respondError(w, http.StatusNotFound, "ticker not found")
		return
	}

	h.logger.WithError(err).WithField("ticker", ticker).Error("Analysis failed")
	respondError(w, http.StatusBadGateway, "upstream data fetch failed")
}
