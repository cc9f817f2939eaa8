package accounting

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot is an unconsumed (or partially consumed) purchase. Brokerage is the buy
// brokerage not yet charged to a sale; it reaches zero exactly when Qty does.
type Lot struct {
	TxnID     int64           `json:"txnId"`
	Qty       decimal.Decimal `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Brokerage decimal.Decimal `json:"brokerage"`
	Date      time.Time       `json:"date"`
	Reason    string          `json:"reason,omitempty"`
}

// Invested returns qty * price plus the remaining brokerage.
func (l Lot) Invested() decimal.Decimal {
	return l.Qty.Mul(l.Price).Add(l.Brokerage)
}

// LotFill records how much of one lot a sale consumed.
type LotFill struct {
	BuyTxnID  int64           `json:"buyTxnId"`
	Qty       decimal.Decimal `json:"qty"`
	BuyPrice  decimal.Decimal `json:"buyPrice"`
	Brokerage decimal.Decimal `json:"brokerage"`
	BuyDate   time.Time       `json:"buyDate"`
	HoldDays  int             `json:"holdDays"`
	Reason    string          `json:"reason,omitempty"`
}

// Invested returns the capital (price plus buy brokerage) tied up in the filled quantity.
func (f LotFill) Invested() decimal.Decimal {
	return f.Qty.Mul(f.BuyPrice).Add(f.Brokerage)
}

// Match is the result of consuming lots for one sale.
type Match struct {
	Fills        []LotFill
	MatchedQty   decimal.Decimal
	BuyCost      decimal.Decimal
	BuyBrokerage decimal.Decimal
	// HoldDaysAccum is the sum of filledQty * holdDays over all fills.
	HoldDaysAccum decimal.Decimal
}

// LotQueue is the FIFO queue of open lots for one stock, oldest first.
// The zero value is an empty queue.
type LotQueue struct {
	lots []Lot
}

// Push appends a new lot at the back of the queue.
func (q *LotQueue) Push(l Lot) {
	q.lots = append(q.lots, l)
}

// Consume removes up to qty units from the front of the queue. When the queue holds
// less than qty the returned MatchedQty is smaller than qty; the shortfall is left to
// the caller to report.
//
// A partial fill charges used/lot.Qty of the lot's remaining brokerage. The fill that
// empties a lot charges whatever remains, so a fully sold lot books its buy brokerage
// exactly.
func (q *LotQueue) Consume(qty decimal.Decimal, sellDate time.Time) Match {
	m := Match{
		MatchedQty:    decimal.Zero,
		BuyCost:       decimal.Zero,
		BuyBrokerage:  decimal.Zero,
		HoldDaysAccum: decimal.Zero,
	}

	remaining := qty
	for remaining.IsPositive() && len(q.lots) > 0 {
		lot := &q.lots[0]
		used := decimal.Min(lot.Qty, remaining)
		days := HoldDays(lot.Date, sellDate)

		brokerage := lot.Brokerage
		if used.LessThan(lot.Qty) {
			brokerage = lot.Brokerage.Mul(used).Div(lot.Qty)
		}

		m.Fills = append(m.Fills, LotFill{
			BuyTxnID:  lot.TxnID,
			Qty:       used,
			BuyPrice:  lot.Price,
			Brokerage: brokerage,
			BuyDate:   lot.Date,
			HoldDays:  days,
			Reason:    lot.Reason,
		})
		m.MatchedQty = m.MatchedQty.Add(used)
		m.BuyCost = m.BuyCost.Add(used.Mul(lot.Price))
		m.BuyBrokerage = m.BuyBrokerage.Add(brokerage)
		m.HoldDaysAccum = m.HoldDaysAccum.Add(used.Mul(decimal.NewFromInt(int64(days))))

		lot.Qty = lot.Qty.Sub(used)
		lot.Brokerage = lot.Brokerage.Sub(brokerage)
		remaining = remaining.Sub(used)
		if !lot.Qty.IsPositive() {
			q.lots = q.lots[1:]
		}
	}

	return m
}

// Empty reports whether no lot remains.
func (q *LotQueue) Empty() bool {
	return len(q.lots) == 0
}

// Len returns the number of open lots.
func (q *LotQueue) Len() int {
	return len(q.lots)
}

// Qty returns the total remaining quantity.
func (q *LotQueue) Qty() decimal.Decimal {
	total := decimal.Zero
	for _, l := range q.lots {
		total = total.Add(l.Qty)
	}
	return total
}

// Invested returns the capital tied up in the remaining lots.
func (q *LotQueue) Invested() decimal.Decimal {
	total := decimal.Zero
	for _, l := range q.lots {
		total = total.Add(l.Invested())
	}
	return total
}

// Lots returns a copy of the remaining lots, oldest first.
func (q *LotQueue) Lots() []Lot {
	out := make([]Lot, len(q.lots))
	copy(out, q.lots)
	return out
}
