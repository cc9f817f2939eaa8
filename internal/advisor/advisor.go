// Package advisor derives advice and discipline signals from a ledger replay.
//
// Everything here reads accounting results: the Holdings and realized trades of a
// Run, or the events of the same Run through an accounting.Aggregator. Nothing
// re-matches lots on its own.
package advisor

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// pct returns part / whole * 100, or zero when whole is not positive.
func pct(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return zero
	}
	return part.Div(whole).Mul(hundred)
}

// clamp100 limits v to [0, 100].
func clamp100(v decimal.Decimal) decimal.Decimal {
	return decimal.Max(zero, decimal.Min(hundred, v))
}

// below returns price * (1 - pctOff/100).
func below(price, pctOff decimal.Decimal) decimal.Decimal {
	return price.Mul(hundred.Sub(pctOff)).Div(hundred)
}

func ratio(wins, total int) decimal.Decimal {
	return pct(decimal.NewFromInt(int64(wins)), decimal.NewFromInt(int64(total)))
}
