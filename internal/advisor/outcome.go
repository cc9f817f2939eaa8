package advisor

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
)

// UnspecifiedReason groups buys recorded without a reason.
const UnspecifiedReason = "Unspecified"

// fillOutcome books one consumed lot of a sale on its own: the lot's invested capital
// against its share of the sale value, with sell brokerage apportioned by quantity.
func fillOutcome(tr accounting.RealizedTrade, f accounting.LotFill) (invested, net decimal.Decimal) {
	invested = f.Invested()
	sellBrokerage := zero
	if tr.Qty.IsPositive() {
		sellBrokerage = tr.SellBrokerage.Mul(f.Qty).Div(tr.Qty)
	}
	net = f.Qty.Mul(tr.SellPrice).Sub(invested).Sub(sellBrokerage)
	return invested, net
}

// EdgeBucket is the realized outcome of all lots held for a given range of days.
type EdgeBucket struct {
	Label     string          `json:"label"`
	MaxDays   int             `json:"-"`
	Trades    int             `json:"trades"`
	Wins      int             `json:"wins"`
	Losses    int             `json:"losses"`
	Invested  decimal.Decimal `json:"invested"`
	Net       decimal.Decimal `json:"net"`
	DaysTotal int             `json:"daysTotal"`
	ReturnPct decimal.Decimal `json:"returnPct"`
	WinRate   decimal.Decimal `json:"winRate"`
	AvgDays   decimal.Decimal `json:"avgDays"`
}

func edgeBuckets() []*EdgeBucket {
	return []*EdgeBucket{
		{Label: "0-7d", MaxDays: 7},
		{Label: "8-15d", MaxDays: 15},
		{Label: "16-30d", MaxDays: 30},
		{Label: "31-60d", MaxDays: 60},
		{Label: "61-90d", MaxDays: 90},
		{Label: "90d+", MaxDays: -1},
	}
}

// HoldingEdge buckets every consumed lot by holding period and returns the non-empty
// buckets, best return first.
func HoldingEdge(trades []accounting.RealizedTrade) []EdgeBucket {
	buckets := edgeBuckets()
	for _, tr := range trades {
		for _, f := range tr.Fills {
			b := buckets[len(buckets)-1]
			for _, candidate := range buckets {
				if candidate.MaxDays >= 0 && f.HoldDays <= candidate.MaxDays {
					b = candidate
					break
				}
			}

			invested, net := fillOutcome(tr, f)
			b.Trades++
			b.Invested = b.Invested.Add(invested)
			b.Net = b.Net.Add(net)
			b.DaysTotal += f.HoldDays
			if net.IsNegative() {
				b.Losses++
			} else {
				b.Wins++
			}
		}
	}

	out := make([]EdgeBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.Trades == 0 {
			continue
		}
		b.ReturnPct = pct(b.Net, b.Invested)
		b.WinRate = ratio(b.Wins, b.Trades)
		b.AvgDays = decimal.NewFromInt(int64(b.DaysTotal)).Div(decimal.NewFromInt(int64(b.Trades)))
		out = append(out, *b)
	}
	slices.SortStableFunc(out, func(a, b EdgeBucket) int { return b.ReturnPct.Cmp(a.ReturnPct) })
	return out
}

// ReasonRow is the realized outcome of all lots bought for one reason.
type ReasonRow struct {
	Reason      string          `json:"reason"`
	Occurrences int             `json:"occurrences"`
	Wins        int             `json:"wins"`
	Losses      int             `json:"losses"`
	Invested    decimal.Decimal `json:"invested"`
	Net         decimal.Decimal `json:"net"`
	ReturnPct   decimal.Decimal `json:"returnPct"`
	WinRate     decimal.Decimal `json:"winRate"`
	Within30    int             `json:"within30"`
	Within60    int             `json:"within60"`
	Within90    int             `json:"within90"`
	Over90      int             `json:"over90"`
}

// ReasonOutcome groups every consumed lot by the reason recorded on its buy, best
// return first.
func ReasonOutcome(trades []accounting.RealizedTrade) []ReasonRow {
	byReason := make(map[string]*ReasonRow)
	for _, tr := range trades {
		for _, f := range tr.Fills {
			reason := strings.TrimSpace(f.Reason)
			if reason == "" {
				reason = UnspecifiedReason
			}
			r, ok := byReason[reason]
			if !ok {
				r = &ReasonRow{Reason: reason}
				byReason[reason] = r
			}

			invested, net := fillOutcome(tr, f)
			r.Occurrences++
			r.Invested = r.Invested.Add(invested)
			r.Net = r.Net.Add(net)
			if net.IsNegative() {
				r.Losses++
			} else {
				r.Wins++
			}

			switch {
			case f.HoldDays <= 30:
				r.Within30++
			case f.HoldDays <= 60:
				r.Within60++
			case f.HoldDays <= 90:
				r.Within90++
			default:
				r.Over90++
			}
		}
	}

	out := make([]ReasonRow, 0, len(byReason))
	for _, r := range byReason {
		r.ReturnPct = pct(r.Net, r.Invested)
		r.WinRate = ratio(r.Wins, r.Occurrences)
		out = append(out, *r)
	}
	slices.SortFunc(out, func(a, b ReasonRow) int {
		if c := b.ReturnPct.Cmp(a.ReturnPct); c != 0 {
			return c
		}
		return cmp.Compare(a.Reason, b.Reason)
	})
	return out
}
