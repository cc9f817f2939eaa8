package advisor

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// Efficiency status labels.
const (
	EfficiencyEfficient   = "Efficient"
	EfficiencyWatch       = "Watch"
	EfficiencyInefficient = "Inefficient"
)

var (
	efficientScore = decimal.NewFromInt(75)
	watchScore     = decimal.NewFromInt(55)
	fullDecayDays  = decimal.NewFromInt(180)
	slowReturnPct  = decimal.NewFromInt(5)
)

// EfficiencyRow ranks how well one active holding uses its capital. The reference
// price is the stock's last recorded transaction price.
type EfficiencyRow struct {
	Stock           string          `json:"stock"`
	Qty             decimal.Decimal `json:"qty"`
	Invested        decimal.Decimal `json:"invested"`
	DaysHeld        int             `json:"daysHeld"`
	ReferencePrice  decimal.Decimal `json:"referencePrice"`
	Unrealized      decimal.Decimal `json:"unrealized"`
	ReturnPct       decimal.Decimal `json:"returnPct"`
	CapitalSharePct decimal.Decimal `json:"capitalSharePct"`
	Score           decimal.Decimal `json:"score"`
	Status          string          `json:"status"`
	Note            string          `json:"note"`
}

// RankEfficiency scores every active holding, best first.
//
// score = 0.5*clamp((return+10)*4) + 0.25*clamp(100 - days/180*100) + 0.25*clamp(share/maxAlloc*100)
func RankEfficiency(hs accounting.Holdings, settings model.Settings, asOf time.Time) []EfficiencyRow {
	total := hs.TotalInvested()
	maxAlloc := decimal.Max(decimal.NewFromInt(1), settings.MaxAllocationPct)

	active := hs.Active()
	rows := make([]EfficiencyRow, 0, len(active))
	for _, h := range active {
		r := EfficiencyRow{
			Stock:           h.Stock,
			Qty:             h.Qty,
			Invested:        h.Invested,
			DaysHeld:        accounting.HoldDays(h.Cycle.FirstBuyDate, asOf),
			ReferencePrice:  h.LastPrice,
			CapitalSharePct: pct(h.Invested, total),
		}
		r.Unrealized = h.Qty.Mul(h.LastPrice).Sub(h.Invested)
		r.ReturnPct = pct(r.Unrealized, h.Invested)

		days := decimal.NewFromInt(int64(r.DaysHeld))
		returnScore := clamp100(r.ReturnPct.Add(decimal.NewFromInt(10)).Mul(decimal.NewFromInt(4)))
		daysScore := clamp100(hundred.Sub(days.Div(fullDecayDays).Mul(hundred)))
		capitalScore := clamp100(r.CapitalSharePct.Div(maxAlloc).Mul(hundred))
		r.Score = returnScore.Mul(decimal.RequireFromString("0.5")).
			Add(daysScore.Mul(decimal.RequireFromString("0.25"))).
			Add(capitalScore.Mul(decimal.RequireFromString("0.25")))

		switch {
		case r.Score.GreaterThanOrEqual(efficientScore):
			r.Status = EfficiencyEfficient
		case r.Score.GreaterThanOrEqual(watchScore):
			r.Status = EfficiencyWatch
		default:
			r.Status = EfficiencyInefficient
		}

		switch {
		case r.ReturnPct.IsNegative():
			r.Note = "Negative return. Avoid new averaging unless zone and allocation rules align."
		case r.DaysHeld > 90 && r.ReturnPct.LessThan(slowReturnPct):
			r.Note = "Capital tied up with slow return. Reassess conviction and opportunity cost."
		case r.CapitalSharePct.GreaterThan(maxAlloc):
			r.Note = "Allocation above configured limit. Prefer trim on strength over fresh buys."
		default:
			r.Note = "Maintain discipline and track next add or trim decision."
		}

		rows = append(rows, r)
	}

	slices.SortStableFunc(rows, func(a, b EfficiencyRow) int {
		if c := b.Score.Cmp(a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Stock, b.Stock)
	})
	return rows
}
