package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/service"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/validation"
)

// SettingsHandler handles HTTP requests for the brokerage and advisor settings.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings returns the stored settings.
//
// Endpoint: GET /api/settings
// Response: 200 OK with Settings
// Error: 500 Internal Server Error if retrieval fails
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings replaces every setting. The body must carry the complete set.
//
// Endpoint: PUT /api/settings
// Request Body: Settings
// Response: 200 OK with the stored Settings
// Error: 400 Bad Request if the body is invalid
// Error: 422 Unprocessable Entity with a field map if a field is missing or out of range
// Error: 500 Internal Server Error if saving fails
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateSettingsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	update, err := validation.ValidateUpdateSettings(req)
	if err != nil {
		var missing *validation.Error
		if errors.As(err, &missing) {
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidSettings.Error(), missing.Fields)
			return
		}
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(r.Context(), update)
	if err != nil {
		var fieldErr *model.SettingsError
		if errors.As(err, &fieldErr) {
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInvalidSettings.Error(), fieldErr.Fields)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update settings", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}
