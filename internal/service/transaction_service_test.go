package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/testutil"
)

func createRequest(date, stock, txType, qty, price string) request.CreateTransactionRequest {
	return request.CreateTransactionRequest{
		Date:  date,
		Stock: stock,
		Type:  txType,
		Qty:   testutil.Dec(qty),
		Price: testutil.Dec(price),
	}
}

func TestTransactionService_CreateTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	ctx := context.Background()

	t.Run("normalizes stock and type", func(t *testing.T) {
		got, err := svc.CreateTransaction(ctx, createRequest("2024-01-01", "  infy ", "buy", "10", "1500"))
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		if got.ID == 0 {
			t.Error("Expected a generated ID")
		}
		if got.Stock != "INFY" || got.Type != model.TransactionBuy {
			t.Errorf("Expected INFY/BUY, got %s/%s", got.Stock, got.Type)
		}
		if got.Brokerage.Valid {
			t.Error("Expected brokerage to stay unset")
		}

		stored, err := svc.GetTransaction(ctx, got.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		testutil.AssertDecimal(t, "qty", stored.Qty, "10")
		if !stored.Date.Equal(testutil.Date("2024-01-01")) {
			t.Errorf("Expected date 2024-01-01, got %v", stored.Date)
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := svc.CreateTransaction(ctx, createRequest("2024-01-01", "INFY", "HOLD", "10", "1500"))
		if err == nil {
			t.Error("Expected error for unknown type")
		}
	})
}

// TestTransactionService_CreateTransactions tests batch creation.
//
// WHY: A half-imported batch leaves sells without their buys, which the replay would
// report as over-sells. A batch is stored completely or not at all.
func TestTransactionService_CreateTransactions(t *testing.T) {
	t.Run("stores every trade in order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		got, err := svc.CreateTransactions(context.Background(), []request.CreateTransactionRequest{
			createRequest("2024-01-01", "INFY", "BUY", "10", "1500"),
			createRequest("2024-02-01", "INFY", "SELL", "10", "1600"),
		})
		if err != nil {
			t.Fatalf("CreateTransactions() returned unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].ID >= got[1].ID {
			t.Errorf("Expected two trades with ascending IDs, got %+v", got)
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 2)
	})

	t.Run("stores nothing when one trade is invalid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.CreateTransactions(context.Background(), []request.CreateTransactionRequest{
			createRequest("2024-01-01", "INFY", "BUY", "10", "1500"),
			createRequest("not-a-date", "INFY", "SELL", "10", "1600"),
		})
		if err == nil {
			t.Fatal("Expected error for invalid batch")
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 0)
	})
}

func TestTransactionService_UpdateTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	ctx := context.Background()

	existing := testutil.NewBuy("INFY", "2024-01-01", "10", "1500").WithBrokerage("20").Build(t, db)

	t.Run("applies only the given fields", func(t *testing.T) {
		price := testutil.Dec("1450")
		reason := "Dip buy"
		got, err := svc.UpdateTransaction(ctx, existing.ID, request.UpdateTransactionRequest{
			Price:  &price,
			Reason: &reason,
		})
		if err != nil {
			t.Fatalf("UpdateTransaction() returned unexpected error: %v", err)
		}
		testutil.AssertDecimal(t, "price", got.Price, "1450")
		testutil.AssertDecimal(t, "qty", got.Qty, "10")
		if got.Reason != reason {
			t.Errorf("Expected reason %q, got %q", reason, got.Reason)
		}
		if !got.Brokerage.Valid {
			t.Error("Expected brokerage to be kept")
		}
	})

	// WHY: Every write path leaves an audit line; an edited trade changes realized
	// P/L just as much as a new one.
	t.Run("logs the update", func(t *testing.T) {
		logs := testutil.CaptureLogs(t)

		qty := testutil.Dec("12")
		if _, err := svc.UpdateTransaction(ctx, existing.ID, request.UpdateTransactionRequest{Qty: &qty}); err != nil {
			t.Fatalf("UpdateTransaction() returned unexpected error: %v", err)
		}

		out := logs.String()
		if !strings.Contains(out, `"msg":"transaction updated"`) || !strings.Contains(out, `"stock":"INFY"`) {
			t.Errorf("Expected a transaction updated log line, got %q", out)
		}
	})

	t.Run("clears brokerage", func(t *testing.T) {
		cleared := decimal.NullDecimal{}
		if _, err := svc.UpdateTransaction(ctx, existing.ID, request.UpdateTransactionRequest{Brokerage: &cleared}); err != nil {
			t.Fatalf("UpdateTransaction() returned unexpected error: %v", err)
		}

		stored, err := svc.GetTransaction(ctx, existing.ID)
		if err != nil {
			t.Fatalf("GetTransaction() returned unexpected error: %v", err)
		}
		if stored.Brokerage.Valid {
			t.Errorf("Expected brokerage to be cleared, got %s", stored.Brokerage.Decimal)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.UpdateTransaction(ctx, 9999, request.UpdateTransactionRequest{})
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestTransactionService_DeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)
	ctx := context.Background()

	existing := testutil.NewBuy("INFY", "2024-01-01", "10", "1500").Build(t, db)

	if err := svc.DeleteTransaction(ctx, existing.ID); err != nil {
		t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
	}
	testutil.AssertRowCount(t, db, `"transaction"`, 0)

	if err := svc.DeleteTransaction(ctx, existing.ID); !errors.Is(err, apperrors.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound on second delete, got %v", err)
	}
}

func TestTransactionService_GetStocks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestTransactionService(t, db)

	testutil.NewBuy("TCS", "2024-01-01", "1", "3500").Build(t, db)
	testutil.NewBuy("INFY", "2024-01-02", "1", "1500").Build(t, db)
	testutil.NewSell("TCS", "2024-01-03", "1", "3600").Build(t, db)

	got, err := svc.GetStocks(context.Background())
	if err != nil {
		t.Fatalf("GetStocks() returned unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "INFY" || got[1] != "TCS" {
		t.Errorf("Expected [INFY TCS], got %v", got)
	}
}
