package accounting

import (
	"strings"
	"time"
)

// TradeFilter narrows realized trades after a replay. Zero fields match everything.
type TradeFilter struct {
	From  time.Time
	To    time.Time
	Stock string
}

// FilterTrades returns the trades whose sale date lies within [From, To] and whose
// stock contains Stock, case-insensitively.
func FilterTrades(trades []RealizedTrade, f TradeFilter) []RealizedTrade {
	needle := strings.ToUpper(strings.TrimSpace(f.Stock))
	from, to := f.From, f.To
	if !from.IsZero() {
		from = calendarDay(from)
	}
	if !to.IsZero() {
		to = calendarDay(to)
	}

	out := make([]RealizedTrade, 0, len(trades))
	for _, t := range trades {
		if !from.IsZero() && t.Date.Before(from) {
			continue
		}
		if !to.IsZero() && t.Date.After(to) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToUpper(t.Stock), needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// MonthsSince keeps the monthly rows at or after the month of cutoff. A zero cutoff
// keeps everything.
func MonthsSince(monthly []MonthlyNet, cutoff time.Time) []MonthlyNet {
	if cutoff.IsZero() {
		return monthly
	}
	key := MonthKey(cutoff)
	out := make([]MonthlyNet, 0, len(monthly))
	for _, m := range monthly {
		if m.Month >= key {
			out = append(out, m)
		}
	}
	return out
}

// SumTrades recomputes Totals over a subset of trades, such as a FilterTrades result.
func SumTrades(trades []RealizedTrade) Totals {
	var t Totals
	for _, tr := range trades {
		t.Net = t.Net.Add(tr.Net)
		t.Trades++
		t.Brokerage = t.Brokerage.Add(tr.BuyBrokerage).Add(tr.SellBrokerage)
		if tr.Win() {
			t.Wins++
		} else {
			t.Losses++
			t.Loss = t.Loss.Add(tr.Net)
		}
	}
	t.WinRate = winRate(t.Wins, t.Trades)
	return t
}
