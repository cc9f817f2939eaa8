package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/service"
)

// AnalyticsHandler serves the read-only views derived from replaying the ledger.
// Every response uses the AnalysisResponse envelope.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	snapshotService  *service.SnapshotService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, snapshotService *service.SnapshotService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		snapshotService:  snapshotService,
	}
}

// Dashboard handles GET requests for the portfolio overview.
//
// Endpoint: GET /api/analytics/dashboard?range={months|all}
// Response: 200 OK with AnalysisResponse[Dashboard]
// Error: 400 Bad Request if range is invalid
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	months, err := request.ParseDashboardRange(r.URL.Query().Get("range"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid range", err.Error())
		return
	}

	a, err := h.analyticsService.Dashboard(r.Context(), months)
	respondAnalysis(w, a, err)
}

// PnL handles GET requests for realized trades.
//
// Endpoint: GET /api/analytics/pnl?from={YYYY-MM-DD}&to={YYYY-MM-DD}&stock={text}
// Response: 200 OK with AnalysisResponse[PnL]
// Error: 400 Bad Request if a date is invalid or to is before from
func (h *AnalyticsHandler) PnL(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := request.ParseTradeFilter(q.Get("from"), q.Get("to"), q.Get("stock"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	a, err := h.analyticsService.PnL(r.Context(), filter)
	respondAnalysis(w, a, err)
}

// Holdings handles GET /api/analytics/holdings.
func (h *AnalyticsHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	a, err := h.analyticsService.Holdings(r.Context())
	respondAnalysis(w, a, err)
}

// Insights handles GET /api/analytics/insights.
func (h *AnalyticsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	a, err := h.analyticsService.Insights(r.Context())
	respondAnalysis(w, a, err)
}

// Quality handles GET /api/analytics/quality.
func (h *AnalyticsHandler) Quality(w http.ResponseWriter, r *http.Request) {
	a, err := h.analyticsService.Quality(r.Context())
	respondAnalysis(w, a, err)
}

// Cycles handles GET /api/analytics/cycles.
func (h *AnalyticsHandler) Cycles(w http.ResponseWriter, r *http.Request) {
	a, err := h.analyticsService.Cycles(r.Context())
	respondAnalysis(w, a, err)
}

// Losses handles GET /api/analytics/losses.
func (h *AnalyticsHandler) Losses(w http.ResponseWriter, r *http.Request) {
	a, err := h.analyticsService.Losses(r.Context())
	respondAnalysis(w, a, err)
}

// Benchmark handles GET /api/analytics/benchmark.
func (h *AnalyticsHandler) Benchmark(w http.ResponseWriter, r *http.Request) {
	a, err := h.analyticsService.Benchmark(r.Context())
	respondAnalysis(w, a, err)
}

// Exit handles GET requests to preview a partial sale of an active holding.
//
// Endpoint: GET /api/analytics/exit?stock={symbol}&qty={qty}&price={price}
// Response: 200 OK with AnalysisResponse[ExitSimulation]
// Error: 400 Bad Request if a parameter is missing or out of range
// Error: 404 Not Found if the stock has no active holding
func (h *AnalyticsHandler) Exit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := request.ParseExitRequest(q.Get("stock"), q.Get("qty"), q.Get("price"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid exit request", err.Error())
		return
	}

	a, err := h.analyticsService.SimulateExit(r.Context(), req.Stock, req.Qty, req.Price)
	respondAnalysis(w, a, err)
}

// Snapshots handles GET requests for the stored daily summaries.
//
// Endpoint: GET /api/analytics/snapshots?start_date={YYYY-MM-DD}&end_date={YYYY-MM-DD}
// Response: 200 OK with AnalysisResponse of an array of Snapshot, oldest first
// Error: 400 Bad Request if a date is invalid or the range is reversed
// Error: 500 Internal Server Error if retrieval fails
func (h *AnalyticsHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end, err := request.ParseSnapshotRange(q.Get("start_date"), q.Get("end_date"), h.analyticsService.Today())
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date range", err.Error())
		return
	}

	snapshots, err := h.snapshotService.GetSnapshots(r.Context(), start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidDateRange) {
			response.RespondError(w, http.StatusBadRequest, "invalid date range", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	respondAnalysis(w, service.Analysis[[]model.Snapshot]{Data: snapshots}, nil)
}

// TakeSnapshot handles POST requests to store today's summary on demand.
// The scheduled job runs the same code path.
//
// Endpoint: POST /api/analytics/snapshots
// Response: 204 No Content
// Error: 500 Internal Server Error if the snapshot fails
func (h *AnalyticsHandler) TakeSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.snapshotService.TakeSnapshot(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to take snapshot", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
