package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/testutil"
)

// TestTransactionRepository_GetTransactions tests the replay order of the ledger.
//
// WHY: FIFO matching depends on the stored order. Trades are returned by date, and
// trades on the same date keep their insertion order.
func TestTransactionRepository_GetTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("empty ledger", func(t *testing.T) {
		got, err := repo.GetTransactions(ctx)
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Expected an empty non-nil slice, got %v", got)
		}
	})

	t.Run("ordered by date then id", func(t *testing.T) {
		late := testutil.NewSell("INFY", "2024-02-01", "5", "1600").Build(t, db)
		first := testutil.NewBuy("INFY", "2024-01-01", "10", "1500").Build(t, db)
		second := testutil.NewBuy("INFY", "2024-01-01", "3", "1490").Build(t, db)

		got, err := repo.GetTransactions(ctx)
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		want := []int64{first.ID, second.ID, late.ID}
		if len(got) != len(want) {
			t.Fatalf("Expected %d transactions, got %d", len(want), len(got))
		}
		for i, id := range want {
			if got[i].ID != id {
				t.Errorf("Position %d: expected ID %d, got %d", i, id, got[i].ID)
			}
		}
	})
}

func TestTransactionRepository_InsertTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("round trips decimals exactly", func(t *testing.T) {
		txn := testutil.NewBuy("TCS", "2024-01-02", "2.5", "3500.05").WithBrokerage("12.345").WithReason("Breakout").Value()
		if err := repo.InsertTransaction(ctx, &txn); err != nil {
			t.Fatalf("InsertTransaction() returned unexpected error: %v", err)
		}
		if txn.ID == 0 || txn.CreatedAt.IsZero() {
			t.Errorf("Expected ID and CreatedAt to be set, got %+v", txn)
		}

		got, err := repo.GetTransaction(ctx, txn.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		testutil.AssertDecimal(t, "qty", got.Qty, "2.5")
		testutil.AssertDecimal(t, "price", got.Price, "3500.05")
		if !got.Brokerage.Valid {
			t.Fatal("Expected brokerage to be set")
		}
		testutil.AssertDecimal(t, "brokerage", got.Brokerage.Decimal, "12.345")
		if got.Type != model.TransactionBuy || got.Reason != "Breakout" {
			t.Errorf("Unexpected type/reason %s/%q", got.Type, got.Reason)
		}
	})

	t.Run("null brokerage", func(t *testing.T) {
		txn := testutil.NewSell("TCS", "2024-01-03", "1", "3600").Value()
		if err := repo.InsertTransaction(ctx, &txn); err != nil {
			t.Fatalf("InsertTransaction() returned unexpected error: %v", err)
		}

		got, err := repo.GetTransaction(ctx, txn.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if got.Brokerage.Valid {
			t.Errorf("Expected null brokerage, got %s", got.Brokerage.Decimal)
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		txn := testutil.NewBuy("TCS", "2024-01-03", "1", "3600").WithType("HOLD").Value()
		if err := repo.InsertTransaction(ctx, &txn); err == nil {
			t.Error("Expected CHECK constraint error for unknown type")
		}
	})
}

func TestTransactionRepository_WithTx(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx() returned unexpected error: %v", err)
	}

	txn := testutil.NewBuy("INFY", "2024-01-01", "10", "1500").Value()
	if err := repo.WithTx(tx).InsertTransaction(ctx, &txn); err != nil {
		t.Fatalf("InsertTransaction() returned unexpected error: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() returned unexpected error: %v", err)
	}

	testutil.AssertRowCount(t, db, `"transaction"`, 0)
}

func TestTransactionRepository_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"get", func() error {
			_, err := repo.GetTransaction(ctx, 42)
			return err
		}},
		{"update", func() error {
			txn := testutil.NewBuy("INFY", "2024-01-01", "1", "1").WithID(42).Value()
			return repo.UpdateTransaction(ctx, txn)
		}},
		{"delete", func() error {
			return repo.DeleteTransaction(ctx, 42)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, apperrors.ErrTransactionNotFound) {
				t.Errorf("Expected ErrTransactionNotFound, got %v", err)
			}
		})
	}
}
