package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/repository"
)

// SettingsService reads and replaces the single settings row.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings returns the stored settings.
func (s *SettingsService) GetSettings(ctx context.Context) (model.Settings, error) {
	return s.settingsRepo.GetSettings(ctx)
}

// UpdateSettings validates and stores settings. Invalid settings are rejected with
// ErrInvalidSettings wrapping the *model.SettingsError field map.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings model.Settings) (model.Settings, error) {
	if err := settings.Validate(); err != nil {
		return model.Settings{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidSettings, err)
	}

	if err := s.settingsRepo.SaveSettings(ctx, settings); err != nil {
		return model.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	slog.InfoContext(ctx, "settings updated")
	return settings, nil
}
