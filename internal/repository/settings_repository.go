package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// SettingsRepository provides access to the single-row settings table.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the provided database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings reads the stored settings.
// Returns ErrSettingsNotFound if the row is missing.
func (r *SettingsRepository) GetSettings(ctx context.Context) (model.Settings, error) {
	query := `
		SELECT brokerage_buy_pct, brokerage_sell_pct, dp_charge, portfolio_size,
		       max_allocation_pct, avg_level1_pct, avg_level2_pct, sell_target_pct,
		       stop_loss_pct, min_hold_days_trim, fd_rate_pct, inflation_rate_pct
		FROM settings
		WHERE id = 1
	`

	var s model.Settings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.BrokerageBuyPct,
		&s.BrokerageSellPct,
		&s.DPCharge,
		&s.PortfolioSize,
		&s.MaxAllocationPct,
		&s.AvgLevel1Pct,
		&s.AvgLevel2Pct,
		&s.SellTargetPct,
		&s.StopLossPct,
		&s.MinHoldDaysTrim,
		&s.FDRatePct,
		&s.InflationRatePct,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Settings{}, apperrors.ErrSettingsNotFound
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to scan settings: %w", err)
	}
	return s, nil
}

// SaveSettings replaces the stored settings.
func (r *SettingsRepository) SaveSettings(ctx context.Context, s model.Settings) error {
	query := `
		INSERT INTO settings (
			id, brokerage_buy_pct, brokerage_sell_pct, dp_charge, portfolio_size,
			max_allocation_pct, avg_level1_pct, avg_level2_pct, sell_target_pct,
			stop_loss_pct, min_hold_days_trim, fd_rate_pct, inflation_rate_pct, updated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			brokerage_buy_pct = excluded.brokerage_buy_pct,
			brokerage_sell_pct = excluded.brokerage_sell_pct,
			dp_charge = excluded.dp_charge,
			portfolio_size = excluded.portfolio_size,
			max_allocation_pct = excluded.max_allocation_pct,
			avg_level1_pct = excluded.avg_level1_pct,
			avg_level2_pct = excluded.avg_level2_pct,
			sell_target_pct = excluded.sell_target_pct,
			stop_loss_pct = excluded.stop_loss_pct,
			min_hold_days_trim = excluded.min_hold_days_trim,
			fd_rate_pct = excluded.fd_rate_pct,
			inflation_rate_pct = excluded.inflation_rate_pct,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		s.BrokerageBuyPct,
		s.BrokerageSellPct,
		s.DPCharge,
		s.PortfolioSize,
		s.MaxAllocationPct,
		s.AvgLevel1Pct,
		s.AvgLevel2Pct,
		s.SellTargetPct,
		s.StopLossPct,
		s.MinHoldDaysTrim,
		s.FDRatePct,
		s.InflationRatePct,
		formatDatetime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
