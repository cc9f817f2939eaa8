package advisor

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
)

// StockLoss lists the losing sales of one stock with the lots each consumed.
type StockLoss struct {
	Stock  string                     `json:"stock"`
	Loss   decimal.Decimal            `json:"loss"`
	Trades []accounting.RealizedTrade `json:"trades"`
}

// LossSummary is the realized loss history of the ledger.
type LossSummary struct {
	// TotalLoss is the sum of all negative sale nets; it is zero or negative.
	TotalLoss decimal.Decimal `json:"totalLoss"`
	Stocks    []StockLoss     `json:"stocks"`
}

// LossReport collects losing sales per stock, largest loss first.
func LossReport(trades []accounting.RealizedTrade) LossSummary {
	byStock := make(map[string]*StockLoss)
	total := zero
	for _, tr := range trades {
		if !tr.Net.IsNegative() {
			continue
		}
		s, ok := byStock[tr.Stock]
		if !ok {
			s = &StockLoss{Stock: tr.Stock, Loss: zero}
			byStock[tr.Stock] = s
		}
		s.Loss = s.Loss.Add(tr.Net)
		s.Trades = append(s.Trades, tr)
		total = total.Add(tr.Net)
	}

	out := LossSummary{TotalLoss: total, Stocks: make([]StockLoss, 0, len(byStock))}
	for _, s := range byStock {
		out.Stocks = append(out.Stocks, *s)
	}
	slices.SortFunc(out.Stocks, func(a, b StockLoss) int {
		if c := a.Loss.Cmp(b.Loss); c != 0 {
			return c
		}
		return cmp.Compare(a.Stock, b.Stock)
	})
	return out
}
