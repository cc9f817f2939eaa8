package accounting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// Event is one step of a replay. The concrete types are BuyEvent, SellEvent and
// CycleClosedEvent.
type Event interface {
	isEvent()
}

// BuyEvent is emitted after a BUY has been pushed onto its stock's queue.
type BuyEvent struct {
	Txn       model.Transaction
	Brokerage decimal.Decimal
	Lot       Lot
	// OpenedCycle is true when the queue was empty before this buy.
	OpenedCycle bool
	// PrevBuy is the previous buy of the same open cycle, nil for the opening buy.
	PrevBuy *CycleBuy
	// Cycle is the state of the open cycle including this buy.
	Cycle Cycle
	// OpenQty, StockInvested and PortfolioInvested describe the state right after the buy.
	OpenQty           decimal.Decimal
	StockInvested     decimal.Decimal
	PortfolioInvested decimal.Decimal
}

// SellEvent is emitted after a SELL has consumed lots from its stock's queue.
type SellEvent struct {
	Txn               model.Transaction
	Trade             RealizedTrade
	OpenQty           decimal.Decimal
	StockInvested     decimal.Decimal
	PortfolioInvested decimal.Decimal
}

// CycleClosedEvent is emitted when a sale empties a stock's queue. Cycle holds the
// state of the cycle that just ended.
type CycleClosedEvent struct {
	Stock   string
	Cycle   Cycle
	EndDate time.Time
}

func (BuyEvent) isEvent()         {}
func (SellEvent) isEvent()        {}
func (CycleClosedEvent) isEvent() {}

// Aggregator consumes replay events in ledger order.
type Aggregator interface {
	Observe(Event)
}

// AggregatorFunc adapts a plain function to Aggregator.
type AggregatorFunc func(Event)

// Observe calls f(e).
func (f AggregatorFunc) Observe(e Event) {
	f(e)
}
