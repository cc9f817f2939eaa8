package accounting_test

import (
	"testing"
	"time"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/testutil"
)

// TestFilterTrades tests windowing after replay.
//
// WHY: A date or stock window must narrow the realized list without changing any
// lot matching; the sale that closes an early buy still uses that buy's cost.
func TestFilterTrades(t *testing.T) {
	res := run(t, mixedLedger(), model.DefaultSettings())
	all := res.Realization.Trades()

	t.Run("zero filter keeps everything", func(t *testing.T) {
		got := accounting.FilterTrades(all, accounting.TradeFilter{})
		if len(got) != len(all) {
			t.Errorf("Expected %d trades, got %d", len(all), len(got))
		}
	})

	t.Run("date window is inclusive", func(t *testing.T) {
		got := accounting.FilterTrades(all, accounting.TradeFilter{
			From: testutil.Date("2024-02-28"),
			To:   testutil.Date("2024-04-10"),
		})
		if len(got) != 3 {
			t.Fatalf("Expected 3 trades, got %d", len(got))
		}
		if got[0].Stock != "TCS" || got[2].Stock != "HDFC" {
			t.Errorf("Unexpected trades: %s .. %s", got[0].Stock, got[2].Stock)
		}
	})

	t.Run("stock filter is a case-insensitive substring", func(t *testing.T) {
		got := accounting.FilterTrades(all, accounting.TradeFilter{Stock: " inf "})
		if len(got) != 2 {
			t.Fatalf("Expected 2 INFY trades, got %d", len(got))
		}
		for _, tr := range got {
			if tr.Stock != "INFY" {
				t.Errorf("Unexpected stock %s", tr.Stock)
			}
		}
	})

	t.Run("window keeps full-history cost basis", func(t *testing.T) {
		got := accounting.FilterTrades(all, accounting.TradeFilter{From: testutil.Date("2024-03-01"), Stock: "INFY"})
		if len(got) != 1 {
			t.Fatalf("Expected 1 trade, got %d", len(got))
		}
		// 5 units left of the 2024-01-15 lot at 1400
		testutil.AssertDecimal(t, "buyCost", got[0].BuyCost, "7000")
	})

	t.Run("SumTrades over the window", func(t *testing.T) {
		got := accounting.FilterTrades(all, accounting.TradeFilter{Stock: "TCS"})
		totals := accounting.SumTrades(got)
		if totals.Trades != 2 {
			t.Errorf("Expected 2 trades, got %d", totals.Trades)
		}
		net := got[0].Net.Add(got[1].Net)
		if !totals.Net.Equal(net) {
			t.Errorf("net = %s, want %s", totals.Net, net)
		}
	})
}

func TestMonthsSince(t *testing.T) {
	monthly := []accounting.MonthlyNet{
		{Month: "2024-01", Net: testutil.Dec("10")},
		{Month: "2024-02", Net: testutil.Dec("-5")},
		{Month: "2024-04", Net: testutil.Dec("7")},
	}

	if got := accounting.MonthsSince(monthly, time.Time{}); len(got) != 3 {
		t.Errorf("Expected zero cutoff to keep 3 months, got %d", len(got))
	}

	got := accounting.MonthsSince(monthly, testutil.Date("2024-02-20"))
	if len(got) != 2 || got[0].Month != "2024-02" {
		t.Errorf("Expected months from 2024-02, got %+v", got)
	}
}
