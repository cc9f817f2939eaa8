package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/testutil"
)

func TestSettingsRepository(t *testing.T) {
	t.Run("seeded defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingsRepository(db)

		got, err := repo.GetSettings(context.Background())
		if err != nil {
			t.Fatalf("GetSettings() returned unexpected error: %v", err)
		}
		testutil.AssertDecimal(t, "sell pct", got.BrokerageSellPct, "0.15")
		testutil.AssertDecimal(t, "portfolio size", got.PortfolioSize, "100000")
		testutil.AssertDecimal(t, "inflation", got.InflationRatePct, "6")
	})

	t.Run("save replaces the single row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingsRepository(db)
		ctx := context.Background()

		testutil.NewSettings().WithLevels("5", "10").Build(t, db)
		testutil.NewSettings().WithLevels("8", "16").Build(t, db)

		got, err := repo.GetSettings(ctx)
		if err != nil {
			t.Fatalf("GetSettings() returned unexpected error: %v", err)
		}
		testutil.AssertDecimal(t, "level 1", got.AvgLevel1Pct, "8")
		testutil.AssertDecimal(t, "level 2", got.AvgLevel2Pct, "16")
		testutil.AssertRowCount(t, db, "settings", 1)
	})

	t.Run("missing row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingsRepository(db)

		if _, err := db.Exec("DELETE FROM settings"); err != nil {
			t.Fatalf("Failed to delete settings: %v", err)
		}

		_, err := repo.GetSettings(context.Background())
		if !errors.Is(err, apperrors.ErrSettingsNotFound) {
			t.Errorf("Expected ErrSettingsNotFound, got %v", err)
		}
	})
}
