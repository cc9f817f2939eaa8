package accounting_test

import (
	"testing"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/testutil"
)

func lot(id int64, qty, price, brokerage, date string) accounting.Lot {
	return accounting.Lot{
		TxnID:     id,
		Qty:       testutil.Dec(qty),
		Price:     testutil.Dec(price),
		Brokerage: testutil.Dec(brokerage),
		Date:      testutil.Date(date),
	}
}

// TestLotQueue_Consume tests FIFO consumption.
//
// WHY: The oldest open lot must always be consumed first; any other order changes
// realized P/L and holding periods.
func TestLotQueue_Consume(t *testing.T) {
	t.Run("consumes oldest lot first and spans lots", func(t *testing.T) {
		var q accounting.LotQueue
		q.Push(lot(1, "50", "100", "5", "2024-01-01"))
		q.Push(lot(2, "50", "90", "10", "2024-01-11"))
		q.Push(lot(3, "10", "80", "0", "2024-01-21"))

		m := q.Consume(testutil.Dec("60"), testutil.Date("2024-01-31"))

		testutil.AssertDecimal(t, "matched", m.MatchedQty, "60")
		testutil.AssertDecimal(t, "buyCost", m.BuyCost, "5900")
		testutil.AssertDecimal(t, "buyBrokerage", m.BuyBrokerage, "7")
		testutil.AssertDecimal(t, "holdDaysAccum", m.HoldDaysAccum, "1700")

		if len(m.Fills) != 2 {
			t.Fatalf("Expected 2 fills, got %d", len(m.Fills))
		}
		if m.Fills[0].BuyTxnID != 1 || m.Fills[1].BuyTxnID != 2 {
			t.Errorf("Expected fills from lots 1 then 2, got %d then %d", m.Fills[0].BuyTxnID, m.Fills[1].BuyTxnID)
		}
		if m.Fills[0].HoldDays != 30 || m.Fills[1].HoldDays != 20 {
			t.Errorf("Unexpected fill hold days: %d, %d", m.Fills[0].HoldDays, m.Fills[1].HoldDays)
		}

		if q.Len() != 2 {
			t.Fatalf("Expected exhausted lot to be removed, %d lots left", q.Len())
		}
		lots := q.Lots()
		if lots[0].TxnID != 2 {
			t.Errorf("Expected lot 2 at the front, got %d", lots[0].TxnID)
		}
		testutil.AssertDecimal(t, "front lot qty", lots[0].Qty, "40")
		testutil.AssertDecimal(t, "queue qty", q.Qty(), "50")
		testutil.AssertDecimal(t, "queue invested", q.Invested(), "4408")
	})

	t.Run("stops when queue empties", func(t *testing.T) {
		var q accounting.LotQueue
		q.Push(lot(1, "10", "100", "0", "2024-01-01"))

		m := q.Consume(testutil.Dec("15"), testutil.Date("2024-01-02"))

		testutil.AssertDecimal(t, "matched", m.MatchedQty, "10")
		if !q.Empty() {
			t.Error("Expected empty queue")
		}
	})

	t.Run("empty queue matches nothing", func(t *testing.T) {
		var q accounting.LotQueue

		m := q.Consume(testutil.Dec("5"), testutil.Date("2024-01-02"))

		testutil.AssertDecimal(t, "matched", m.MatchedQty, "0")
		testutil.AssertDecimal(t, "buyCost", m.BuyCost, "0")
		if len(m.Fills) != 0 {
			t.Errorf("Expected no fills, got %d", len(m.Fills))
		}
	})

	t.Run("emptying fill takes the remaining brokerage", func(t *testing.T) {
		var q accounting.LotQueue
		q.Push(lot(1, "3", "100", "10", "2024-01-01"))

		first := q.Consume(testutil.Dec("1"), testutil.Date("2024-01-02"))
		testutil.AssertDecimal(t, "remaining invested", q.Invested(), first.BuyBrokerage.Neg().Add(testutil.Dec("210")).String())

		second := q.Consume(testutil.Dec("2"), testutil.Date("2024-01-03"))
		testutil.AssertDecimal(t, "booked brokerage", first.BuyBrokerage.Add(second.BuyBrokerage), "10")
		if !q.Empty() {
			t.Error("Expected empty queue")
		}
	})

	t.Run("sale dated before the lot holds zero days", func(t *testing.T) {
		var q accounting.LotQueue
		q.Push(lot(1, "10", "100", "0", "2024-03-01"))

		m := q.Consume(testutil.Dec("10"), testutil.Date("2024-02-01"))

		if m.Fills[0].HoldDays != 0 {
			t.Errorf("Expected 0 hold days, got %d", m.Fills[0].HoldDays)
		}
	})
}
