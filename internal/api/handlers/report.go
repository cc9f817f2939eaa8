package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves downloadable reports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// XLSX handles GET requests for the workbook of realized trades, holdings and
// monthly results.
//
// Endpoint: GET /api/report/xlsx
// Response: 200 OK with the workbook as an attachment
// Error: 404 Not Found if the ledger is empty
// Error: 422 Unprocessable Entity if the stored settings are invalid
// Error: 500 Internal Server Error if generation fails
func (h *ReportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	out, err := h.reportService.GenerateXLSX(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNoTransactions):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNoTransactions.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidSettings):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidSettings.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGenerateReport.Error(), err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "equity-ledger.xlsx"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		slog.ErrorContext(r.Context(), "failed to write report", slog.Any("error", err))
	}
}
