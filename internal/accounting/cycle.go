package accounting

import (
	"time"

	"github.com/shopspring/decimal"
)

// CycleBuy is one purchase inside a cycle.
type CycleBuy struct {
	TxnID     int64           `json:"txnId"`
	Date      time.Time       `json:"date"`
	Price     decimal.Decimal `json:"price"`
	Qty       decimal.Decimal `json:"qty"`
	Brokerage decimal.Decimal `json:"brokerage"`
}

// Cycle spans from a position opening (queue goes from empty to non-empty) until the
// queue is next emptied. A zero Cycle is "unset".
type Cycle struct {
	FirstBuyPrice decimal.Decimal `json:"firstBuyPrice"`
	FirstBuyDate  time.Time       `json:"firstBuyDate"`
	Buys          []CycleBuy      `json:"buys"`
	// RealizedNet sums the net of every sale booked while this cycle was open.
	RealizedNet decimal.Decimal `json:"realizedNet"`
	// LastTxnPrice and LastTxnDate track the latest transaction of the cycle, buy or sell.
	LastTxnPrice decimal.Decimal `json:"lastTxnPrice"`
	LastTxnDate  time.Time       `json:"lastTxnDate"`
}

// Open reports whether the cycle has at least one buy.
func (c Cycle) Open() bool {
	return len(c.Buys) > 0
}

// BoughtQty returns the total quantity bought in the cycle.
func (c Cycle) BoughtQty() decimal.Decimal {
	total := decimal.Zero
	for _, b := range c.Buys {
		total = total.Add(b.Qty)
	}
	return total
}

// AvgBuyCost returns the brokerage-inclusive average purchase price of the cycle.
func (c Cycle) AvgBuyCost() decimal.Decimal {
	qty := c.BoughtQty()
	if !qty.IsPositive() {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, b := range c.Buys {
		total = total.Add(b.Qty.Mul(b.Price).Add(b.Brokerage))
	}
	return total.Div(qty)
}

func (c Cycle) clone() Cycle {
	out := c
	out.Buys = make([]CycleBuy, len(c.Buys))
	copy(out.Buys, c.Buys)
	return out
}
