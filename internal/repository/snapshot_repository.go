package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the snapshot table, which holds
// one pre-calculated ledger summary per day.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new repository instance.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshot stores s, replacing any snapshot of the same date. A new ID is
// generated when s.ID is empty.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, s *model.Snapshot) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	query := `
		INSERT INTO snapshot (id, date, invested, realized_net, active_holdings,
		                      realized_trades, warnings, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			invested = excluded.invested,
			realized_net = excluded.realized_net,
			active_holdings = excluded.active_holdings,
			realized_trades = excluded.realized_trades,
			warnings = excluded.warnings,
			calculated_at = excluded.calculated_at
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		s.ID,
		formatDate(s.Date),
		s.Invested,
		s.RealizedNet,
		s.ActiveHoldings,
		s.RealizedTrades,
		s.Warnings,
		formatDatetime(s.CalculatedAt),
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

// GetSnapshots returns the snapshots within [startDate, endDate], oldest first.
func (r *SnapshotRepository) GetSnapshots(ctx context.Context, startDate, endDate time.Time) ([]model.Snapshot, error) {
	query := `
		SELECT id, date, invested, realized_net, active_holdings, realized_trades,
		       warnings, calculated_at
		FROM snapshot
		WHERE date >= ?
		AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, formatDate(startDate), formatDate(endDate))
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.Snapshot{}
	for rows.Next() {
		var s model.Snapshot
		var dateStr, calculatedAtStr string

		if err := rows.Scan(
			&s.ID,
			&dateStr,
			&s.Invested,
			&s.RealizedNet,
			&s.ActiveHoldings,
			&s.RealizedTrades,
			&s.Warnings,
			&calculatedAtStr,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot table results: %w", err)
		}

		if s.Date, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		if s.CalculatedAt, err = ParseTime(calculatedAtStr); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot table: %w", err)
	}

	return snapshots, nil
}
