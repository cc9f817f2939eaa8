package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/repository"
)

// Analysis is one analytics view together with the data-integrity warnings raised
// while replaying the ledger that produced it.
type Analysis[T any] struct {
	Data     T                    `json:"data"`
	Warnings []accounting.Warning `json:"warnings"`
}

// AnalyticsService replays the stored ledger and derives every analytics view from
// the replay. Each call reads the full ledger and settings; no replay state is kept
// between calls.
//
// An empty ledger is reported as apperrors.ErrNoTransactions so callers can render an
// empty state; any other error is a real failure.
type AnalyticsService struct {
	transactionRepo *repository.TransactionRepository
	settingsRepo    *repository.SettingsRepository
	loc             *time.Location
	now             func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService. Calendar "today" is taken in loc.
func NewAnalyticsService(
	transactionRepo *repository.TransactionRepository,
	settingsRepo *repository.SettingsRepository,
	loc *time.Location,
) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{
		transactionRepo: transactionRepo,
		settingsRepo:    settingsRepo,
		loc:             loc,
		now:             time.Now,
	}
}

// WithClock returns a copy of the service that reads the current time from now.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	c := *s
	c.now = now
	return &c
}

// Today returns the current calendar day at UTC midnight.
func (s *AnalyticsService) Today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// replayState is the outcome of one replay plus the inputs it ran on.
type replayState struct {
	settings model.Settings
	result   *accounting.Result
	asOf     time.Time
}

// load fetches the ledger and the settings concurrently.
func (s *AnalyticsService) load(ctx context.Context) ([]model.Transaction, model.Settings, error) {
	var (
		txns     []model.Transaction
		settings model.Settings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.transactionRepo.GetTransactions(gctx)
		if err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = s.settingsRepo.GetSettings(gctx)
		if err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveSettings, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, model.Settings{}, err
	}

	if len(txns) == 0 {
		return nil, settings, apperrors.ErrNoTransactions
	}
	return txns, settings, nil
}

// replay loads the ledger and runs one full replay with the given aggregators attached.
func (s *AnalyticsService) replay(ctx context.Context, op string, aggs ...accounting.Aggregator) (*replayState, error) {
	return s.replayWith(ctx, op, func(model.Settings) []accounting.Aggregator { return aggs })
}

// replayWith is replay for aggregators that need the stored settings to be built.
func (s *AnalyticsService) replayWith(ctx context.Context, op string, build func(model.Settings) []accounting.Aggregator) (*replayState, error) {
	txns, settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	result, err := accounting.Run(txns, settings, build(settings)...)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidSettings) {
			err = fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeAnalytics, err)
		}
		slog.ErrorContext(ctx, "ledger replay failed", slog.String("op", op), slog.Any("error", err))
		return nil, err
	}

	for _, w := range result.Warnings {
		slog.WarnContext(ctx, "ledger integrity warning",
			slog.String("op", op),
			slog.String("kind", w.Kind),
			slog.Int64("txnId", w.TxnID),
			slog.String("stock", w.Stock),
			slog.String("message", w.Message),
		)
	}

	return &replayState{settings: settings, result: result, asOf: s.Today()}, nil
}

func analysis[T any](st *replayState, data T) Analysis[T] {
	warnings := st.result.Warnings
	if warnings == nil {
		warnings = []accounting.Warning{}
	}
	return Analysis[T]{Data: data, Warnings: warnings}
}
