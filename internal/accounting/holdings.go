package accounting

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// Holding is the open position of one stock at the end of a replay.
type Holding struct {
	Stock    string          `json:"stock"`
	Lots     []Lot           `json:"lots"`
	Qty      decimal.Decimal `json:"qty"`
	Invested decimal.Decimal `json:"invested"`
	// AvgCost is Invested / Qty, brokerage included.
	AvgCost decimal.Decimal `json:"avgCost"`
	Cycle   Cycle           `json:"cycle"`
	// LastPrice is the price of the stock's latest transaction, buy or sell.
	LastPrice decimal.Decimal `json:"lastPrice"`
}

// Active reports whether any lot still holds quantity.
func (h Holding) Active() bool {
	return h.Qty.IsPositive()
}

// Holdings maps stock to its terminal position, including closed positions.
type Holdings map[string]Holding

func projectHoldings(positions map[string]*position) Holdings {
	out := make(Holdings, len(positions))
	for stock, p := range positions {
		h := Holding{
			Stock:     stock,
			Lots:      p.queue.Lots(),
			Qty:       p.queue.Qty(),
			Invested:  p.queue.Invested(),
			AvgCost:   decimal.Zero,
			Cycle:     p.cycle.clone(),
			LastPrice: p.lastPrice,
		}
		if h.Qty.IsPositive() {
			h.AvgCost = h.Invested.Div(h.Qty)
		}
		out[stock] = h
	}
	return out
}

// Active returns the active holdings, largest invested capital first.
func (hs Holdings) Active() []Holding {
	out := make([]Holding, 0, len(hs))
	for _, h := range hs {
		if h.Active() {
			out = append(out, h)
		}
	}
	slices.SortFunc(out, func(a, b Holding) int {
		if c := b.Invested.Cmp(a.Invested); c != 0 {
			return c
		}
		return cmp.Compare(a.Stock, b.Stock)
	})
	return out
}

// TotalInvested sums the invested capital of every active holding.
func (hs Holdings) TotalInvested() decimal.Decimal {
	total := decimal.Zero
	for _, h := range hs {
		if h.Active() {
			total = total.Add(h.Invested)
		}
	}
	return total
}

// Get returns the active holding of stock.
func (hs Holdings) Get(stock string) (Holding, bool) {
	h, ok := hs[stock]
	if !ok || !h.Active() {
		return Holding{}, false
	}
	return h, true
}
