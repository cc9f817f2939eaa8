package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/service"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/validation"
)

// maxBodyBytes bounds request bodies. A large batch import fits comfortably.
const maxBodyBytes = 4 << 20

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON", slog.Any("error", err))
		}
	}
}

// parseJSON decodes the request body into T. Unknown fields are rejected so typos in
// field names do not silently fall back to defaults.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("failed to decode request body: %w", err)
	}
	return v, nil
}

// Analysis states.
const (
	StateOK    = "ok"
	StateEmpty = "empty"
)

// AnalysisResponse is the envelope of every analytics endpoint. An empty ledger is a
// normal state, not an error, and carries no data.
type AnalysisResponse[T any] struct {
	State    string               `json:"state"`
	Data     *T                   `json:"data"`
	Warnings []accounting.Warning `json:"warnings"`
}

// respondAnalysis renders the result of an analytics service call. Empty ledgers
// become state "empty"; invalid settings are 422; any other error is 500.
func respondAnalysis[T any](w http.ResponseWriter, a service.Analysis[T], err error) {
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNoTransactions):
			respondJSON(w, http.StatusOK, AnalysisResponse[T]{
				State:    StateEmpty,
				Warnings: []accounting.Warning{},
			})
		case errors.Is(err, apperrors.ErrInvalidSettings):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidSettings.Error(), err.Error())
		case errors.Is(err, apperrors.ErrHoldingNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidInput):
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		}
		return
	}

	warnings := a.Warnings
	if warnings == nil {
		warnings = []accounting.Warning{}
	}
	respondJSON(w, http.StatusOK, AnalysisResponse[T]{
		State:    StateOK,
		Data:     &a.Data,
		Warnings: warnings,
	})
}

// respondValidation sends a 400 with the per-field messages when err is a
// validation.Error.
func respondValidation(w http.ResponseWriter, err error) {
	var fieldErr *validation.Error
	if errors.As(err, &fieldErr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", fieldErr.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}
