package advisor

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// Cycle suggestions.
const (
	SuggestNoCycles  = "No cycles yet"
	SuggestReinvest  = "Consider re-invest"
	SuggestAvoidBuys = "Avoid new buys"
)

// ClosedCycle is a completed position, from the buy that opened it to the sale that
// emptied it.
type ClosedCycle struct {
	FirstBuyDate time.Time       `json:"firstBuyDate"`
	EndDate      time.Time       `json:"endDate"`
	RealizedNet  decimal.Decimal `json:"realizedNet"`
	AvgBuyCost   decimal.Decimal `json:"avgBuyCost"`
	BoughtQty    decimal.Decimal `json:"boughtQty"`
	Buys         int             `json:"buys"`
	DaysHeld     int             `json:"daysHeld"`
}

// Win reports whether the cycle closed at or above break-even.
func (c ClosedCycle) Win() bool {
	return !c.RealizedNet.IsNegative()
}

// CycleTracker collects closed cycles while a replay runs. Attach it to accounting.Run.
type CycleTracker struct {
	byStock map[string][]ClosedCycle
}

// NewCycleTracker returns an empty tracker.
func NewCycleTracker() *CycleTracker {
	return &CycleTracker{byStock: make(map[string][]ClosedCycle)}
}

// Observe implements accounting.Aggregator.
func (ct *CycleTracker) Observe(e accounting.Event) {
	ev, ok := e.(accounting.CycleClosedEvent)
	if !ok {
		return
	}
	c := ev.Cycle
	ct.byStock[ev.Stock] = append(ct.byStock[ev.Stock], ClosedCycle{
		FirstBuyDate: c.FirstBuyDate,
		EndDate:      ev.EndDate,
		RealizedNet:  c.RealizedNet,
		AvgBuyCost:   c.AvgBuyCost(),
		BoughtQty:    c.BoughtQty(),
		Buys:         len(c.Buys),
		DaysHeld:     accounting.HoldDays(c.FirstBuyDate, ev.EndDate),
	})
}

// Cycles returns the closed cycles of stock, oldest first.
func (ct *CycleTracker) Cycles(stock string) []ClosedCycle {
	return slices.Clone(ct.byStock[stock])
}

// StockCycles summarizes the closed cycles of one stock alongside its open position.
type StockCycles struct {
	Stock           string          `json:"stock"`
	Cycles          []ClosedCycle   `json:"cycles"`
	Wins            int             `json:"wins"`
	Losses          int             `json:"losses"`
	AvgPnL          decimal.Decimal `json:"avgPnl"`
	AvgHoldDays     decimal.Decimal `json:"avgHoldDays"`
	WorstLoss       decimal.Decimal `json:"worstLoss"`
	CurrentInvested decimal.Decimal `json:"currentInvested"`
	ReferencePrice  decimal.Decimal `json:"referencePrice"`
	Suggestion      string          `json:"suggestion"`
	OverBudget      bool            `json:"overBudget"`
	TrimAmount      decimal.Decimal `json:"trimAmount"`
	TrimQty         int64           `json:"trimQty"`
}

// CycleReport summarizes every stock of the ledger, alphabetically.
func CycleReport(ct *CycleTracker, hs accounting.Holdings, settings model.Settings) []StockCycles {
	budget := settings.PortfolioSize.Mul(settings.MaxAllocationPct).Div(hundred)

	out := make([]StockCycles, 0, len(hs))
	for stock, h := range hs {
		cycles := ct.Cycles(stock)
		if cycles == nil {
			cycles = []ClosedCycle{}
		}
		sc := StockCycles{
			Stock:           stock,
			Cycles:          cycles,
			AvgPnL:          zero,
			AvgHoldDays:     zero,
			WorstLoss:       zero,
			CurrentInvested: h.Invested,
			ReferencePrice:  h.LastPrice,
			TrimAmount:      zero,
		}

		netSum, daysSum := zero, 0
		for _, c := range cycles {
			if c.Win() {
				sc.Wins++
			} else {
				sc.Losses++
				sc.WorstLoss = decimal.Min(sc.WorstLoss, c.RealizedNet)
			}
			netSum = netSum.Add(c.RealizedNet)
			daysSum += c.DaysHeld
		}
		if n := len(cycles); n > 0 {
			count := decimal.NewFromInt(int64(n))
			sc.AvgPnL = netSum.Div(count)
			sc.AvgHoldDays = decimal.NewFromInt(int64(daysSum)).Div(count)
		}

		switch {
		case len(cycles) == 0:
			sc.Suggestion = SuggestNoCycles
		case sc.Wins > sc.Losses:
			sc.Suggestion = SuggestReinvest
		default:
			sc.Suggestion = SuggestAvoidBuys
		}

		if budget.IsPositive() && h.Invested.GreaterThan(budget) {
			sc.OverBudget = true
			sc.TrimAmount = h.Invested.Sub(budget)
			if h.LastPrice.IsPositive() {
				sc.TrimQty = sc.TrimAmount.Div(h.LastPrice).Ceil().IntPart()
			}
		}

		out = append(out, sc)
	}

	slices.SortFunc(out, func(a, b StockCycles) int { return cmp.Compare(a.Stock, b.Stock) })
	return out
}
