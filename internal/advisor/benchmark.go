package advisor

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

var daysPerYear = decimal.NewFromInt(365)

// BenchmarkRow compares one realized sale with a fixed deposit and with inflation
// over the same holding period.
type BenchmarkRow struct {
	TxnID    int64           `json:"txnId"`
	Stock    string          `json:"stock"`
	Date     time.Time       `json:"date"`
	Qty      decimal.Decimal `json:"qty"`
	Invested decimal.Decimal `json:"invested"`
	HoldDays decimal.Decimal `json:"holdDays"`
	Net      decimal.Decimal `json:"net"`
	// FDReturn is what the buy cost would have earned at fdRatePct over HoldDays.
	FDReturn decimal.Decimal `json:"fdReturn"`
	// InflationLoss is the purchasing power the buy cost lost over HoldDays.
	InflationLoss  decimal.Decimal `json:"inflationLoss"`
	BeatsFD        bool            `json:"beatsFd"`
	BeatsInflation bool            `json:"beatsInflation"`
}

// BenchmarkSummary totals the benchmark rows.
type BenchmarkSummary struct {
	Rows               []BenchmarkRow  `json:"rows"`
	Net                decimal.Decimal `json:"net"`
	FDReturn           decimal.Decimal `json:"fdReturn"`
	InflationLoss      decimal.Decimal `json:"inflationLoss"`
	BeatFDCount        int             `json:"beatFdCount"`
	BeatInflationCount int             `json:"beatInflationCount"`
}

// Benchmark compares every realized trade with a fixed deposit and with inflation:
// buyCost * rate/100 * holdDays/365, using the trade's weighted hold days.
func Benchmark(trades []accounting.RealizedTrade, settings model.Settings) BenchmarkSummary {
	out := BenchmarkSummary{
		Rows:          make([]BenchmarkRow, 0, len(trades)),
		Net:           zero,
		FDReturn:      zero,
		InflationLoss: zero,
	}
	for _, tr := range trades {
		years := tr.HoldDays.Div(daysPerYear)
		r := BenchmarkRow{
			TxnID:         tr.TxnID,
			Stock:         tr.Stock,
			Date:          tr.Date,
			Qty:           tr.Qty,
			Invested:      tr.BuyCost,
			HoldDays:      tr.HoldDays,
			Net:           tr.Net,
			FDReturn:      tr.BuyCost.Mul(settings.FDRatePct).Div(hundred).Mul(years),
			InflationLoss: tr.BuyCost.Mul(settings.InflationRatePct).Div(hundred).Mul(years),
		}
		r.BeatsFD = r.Net.GreaterThan(r.FDReturn)
		r.BeatsInflation = r.Net.GreaterThan(r.InflationLoss)

		out.Rows = append(out.Rows, r)
		out.Net = out.Net.Add(r.Net)
		out.FDReturn = out.FDReturn.Add(r.FDReturn)
		out.InflationLoss = out.InflationLoss.Add(r.InflationLoss)
		if r.BeatsFD {
			out.BeatFDCount++
		}
		if r.BeatsInflation {
			out.BeatInflationCount++
		}
	}
	return out
}
