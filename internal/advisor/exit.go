package advisor

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

var reentryDiscountPct = decimal.NewFromInt(5)

// ExitSimulation is the outcome of a hypothetical partial sale of an active holding,
// matched FIFO against its open lots like a real sale.
type ExitSimulation struct {
	Stock             string                   `json:"stock"`
	SellQty           decimal.Decimal          `json:"sellQty"`
	SellPrice         decimal.Decimal          `json:"sellPrice"`
	Trade             accounting.RealizedTrade `json:"trade"`
	HeldQty           decimal.Decimal          `json:"heldQty"`
	RemainingQty      decimal.Decimal          `json:"remainingQty"`
	Invested          decimal.Decimal          `json:"invested"`
	RemainingInvested decimal.Decimal          `json:"remainingInvested"`
	OldAvg            decimal.Decimal          `json:"oldAvg"`
	NewAvg            decimal.Decimal          `json:"newAvg"`
	AvgImprovement    decimal.Decimal          `json:"avgImprovement"`
	Reentry           Reentry                  `json:"reentry"`
}

// Reentry suggests where to buy back what a partial exit sold.
type Reentry struct {
	Level1         decimal.Decimal `json:"level1"`
	Level2         decimal.Decimal `json:"level2"`
	SuggestedPrice decimal.Decimal `json:"suggestedPrice"`
	SuggestedQty   decimal.Decimal `json:"suggestedQty"`
	NewAvg         decimal.Decimal `json:"newAvg"`
	AvgImprovement decimal.Decimal `json:"avgImprovement"`
	Hint           string          `json:"hint"`
}

// SimulateExit sells qty at price from h without touching the ledger.
// The suggested re-entry is the sale price less 5%, kept between the L2 and L1 levels
// of the open cycle.
func SimulateExit(h accounting.Holding, qty, price decimal.Decimal, settings model.Settings, asOf time.Time) (ExitSimulation, error) {
	if !h.Active() {
		return ExitSimulation{}, apperrors.ErrHoldingNotFound
	}
	if !qty.IsPositive() || qty.GreaterThan(h.Qty) {
		return ExitSimulation{}, fmt.Errorf("%w: sell quantity must be between 0 and %s", apperrors.ErrInvalidInput, h.Qty)
	}
	if !price.IsPositive() {
		return ExitSimulation{}, fmt.Errorf("%w: sell price must be positive", apperrors.ErrInvalidInput)
	}

	var q accounting.LotQueue
	for _, l := range h.Lots {
		q.Push(l)
	}
	txn := model.Transaction{
		Date:  asOf,
		Stock: h.Stock,
		Type:  model.TransactionSell,
		Qty:   qty,
		Price: price,
	}
	trade := accounting.NewRealizedTrade(txn, asOf, accounting.ResolveBrokerage(txn, settings), q.Consume(qty, asOf))

	sim := ExitSimulation{
		Stock:             h.Stock,
		SellQty:           qty,
		SellPrice:         price,
		Trade:             trade,
		HeldQty:           h.Qty,
		RemainingQty:      q.Qty(),
		Invested:          h.Invested,
		RemainingInvested: q.Invested(),
		OldAvg:            h.AvgCost,
		NewAvg:            zero,
	}
	if sim.RemainingQty.IsPositive() {
		sim.NewAvg = sim.RemainingInvested.Div(sim.RemainingQty)
	}
	sim.AvgImprovement = sim.OldAvg.Sub(sim.NewAvg)

	l1 := below(h.Cycle.FirstBuyPrice, settings.AvgLevel1Pct)
	l2 := below(h.Cycle.FirstBuyPrice, settings.AvgLevel2Pct)
	re := Reentry{
		Level1:         l1,
		Level2:         l2,
		SuggestedPrice: decimal.Max(l2, decimal.Min(l1, below(price, reentryDiscountPct))),
		SuggestedQty:   qty,
	}
	totalQty := sim.RemainingQty.Add(qty)
	re.NewAvg = sim.RemainingInvested.Add(qty.Mul(re.SuggestedPrice)).Div(totalQty)
	re.AvgImprovement = sim.OldAvg.Sub(re.NewAvg)
	if re.AvgImprovement.IsPositive() {
		re.Hint = fmt.Sprintf("Re-buy at %s to improve the average.", re.SuggestedPrice.StringFixed(2))
	} else {
		re.Hint = fmt.Sprintf("Wait for a pullback into L1 (%s) or L2 (%s). Avoid chasing above L1.",
			l1.StringFixed(2), l2.StringFixed(2))
	}
	sim.Reentry = re

	return sim, nil
}
