package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/repository"
)

// SnapshotService writes and reads the daily ledger summaries.
type SnapshotService struct {
	analyticsService *AnalyticsService
	snapshotRepo     *repository.SnapshotRepository
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(analyticsService *AnalyticsService, snapshotRepo *repository.SnapshotRepository) *SnapshotService {
	return &SnapshotService{
		analyticsService: analyticsService,
		snapshotRepo:     snapshotRepo,
	}
}

// TakeSnapshot replays the ledger and stores today's summary, replacing an earlier
// snapshot of the same day. An empty ledger is skipped without error.
func (s *SnapshotService) TakeSnapshot(ctx context.Context) error {
	snapshot, err := s.analyticsService.Summary(ctx)
	if errors.Is(err, apperrors.ErrNoTransactions) {
		slog.InfoContext(ctx, "snapshot skipped", slog.String("reason", err.Error()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to compute snapshot: %w", err)
	}

	if err := s.snapshotRepo.UpsertSnapshot(ctx, &snapshot); err != nil {
		return err
	}

	slog.InfoContext(ctx, "snapshot stored",
		slog.String("date", snapshot.Date.Format(time.DateOnly)),
		slog.String("invested", snapshot.Invested.StringFixed(2)),
		slog.String("realizedNet", snapshot.RealizedNet.StringFixed(2)),
	)
	return nil
}

// GetSnapshots returns the snapshots within [startDate, endDate], oldest first.
func (s *SnapshotService) GetSnapshots(ctx context.Context, startDate, endDate time.Time) ([]model.Snapshot, error) {
	if endDate.Before(startDate) {
		return nil, apperrors.ErrInvalidDateRange
	}
	snapshots, err := s.snapshotRepo.GetSnapshots(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSnapshots, err)
	}
	return snapshots, nil
}
