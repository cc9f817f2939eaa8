package accounting

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// WarningOversell marks a SELL whose quantity exceeded the open lots of its stock.
const WarningOversell = "oversell"

// Warning is a data-integrity finding that did not stop the replay.
type Warning struct {
	Kind    string          `json:"kind"`
	TxnID   int64           `json:"txnId"`
	Stock   string          `json:"stock"`
	Date    time.Time       `json:"date"`
	Qty     decimal.Decimal `json:"qty"`
	Message string          `json:"message"`
}

// Result is the outcome of one full replay.
type Result struct {
	Realization *Realization
	Holdings    Holdings
	Warnings    []Warning
}

// position is the per-stock replay state.
type position struct {
	queue     LotQueue
	cycle     Cycle
	lastPrice decimal.Decimal
}

// SortLedger returns a copy of txns in canonical replay order: ascending date, ties
// broken by insertion order (ID), then by original slice position.
func SortLedger(txns []model.Transaction) []model.Transaction {
	out := slices.Clone(txns)
	slices.SortStableFunc(out, func(a, b model.Transaction) int {
		if c := calendarDay(a.Date).Compare(calendarDay(b.Date)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// checkOrder verifies the replay precondition. Transactions without an ID (not yet
// stored) only need to be in date order.
func checkOrder(txns []model.Transaction) error {
	for i := 1; i < len(txns); i++ {
		prev, cur := txns[i-1], txns[i]
		c := calendarDay(cur.Date).Compare(calendarDay(prev.Date))
		if c < 0 || (c == 0 && cur.ID != 0 && prev.ID > cur.ID) {
			return fmt.Errorf("%w: transaction %d (%s) follows %d (%s)", apperrors.ErrUnsortedLedger,
				cur.ID, cur.Date.Format(time.DateOnly), prev.ID, prev.Date.Format(time.DateOnly))
		}
	}
	return nil
}

func checkTransaction(t model.Transaction) error {
	switch {
	case t.Stock == "":
		return fmt.Errorf("%w: transaction %d has no stock", apperrors.ErrInvalidInput, t.ID)
	case t.Date.IsZero():
		return fmt.Errorf("%w: transaction %d has no date", apperrors.ErrInvalidInput, t.ID)
	case t.Type != model.TransactionBuy && t.Type != model.TransactionSell:
		return fmt.Errorf("%w: transaction %d has type %q", apperrors.ErrInvalidInput, t.ID, t.Type)
	case !t.Qty.IsPositive():
		return fmt.Errorf("%w: transaction %d has qty %s", apperrors.ErrInvalidInput, t.ID, t.Qty)
	case !t.Price.IsPositive():
		return fmt.Errorf("%w: transaction %d has price %s", apperrors.ErrInvalidInput, t.ID, t.Price)
	case t.Brokerage.Valid && t.Brokerage.Decimal.IsNegative():
		return fmt.Errorf("%w: transaction %d has negative brokerage", apperrors.ErrInvalidInput, t.ID)
	}
	return nil
}

// Run replays the complete ledger and returns realized trades, summaries and the
// terminal holdings. Extra aggregators observe every event of the same replay.
//
// txns must be the full history in the order produced by SortLedger; partial or
// windowed input would consume the wrong lots, so filter the Result instead.
func Run(txns []model.Transaction, settings model.Settings, aggregators ...Aggregator) (*Result, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidSettings, err)
	}
	if err := checkOrder(txns); err != nil {
		return nil, err
	}
	for _, t := range txns {
		if err := checkTransaction(t); err != nil {
			return nil, err
		}
	}

	realization := NewRealization()
	observers := append([]Aggregator{realization}, aggregators...)
	emit := func(e Event) {
		for _, o := range observers {
			o.Observe(e)
		}
	}

	positions := make(map[string]*position)
	portfolioInvested := decimal.Zero
	var warnings []Warning

	for _, t := range txns {
		p, ok := positions[t.Stock]
		if !ok {
			p = &position{}
			positions[t.Stock] = p
		}
		p.lastPrice = t.Price
		brokerage := ResolveBrokerage(t, settings)

		if t.IsBuy() {
			lot := Lot{
				TxnID:     t.ID,
				Qty:       t.Qty,
				Price:     t.Price,
				Brokerage: brokerage,
				Date:      calendarDay(t.Date),
				Reason:    t.Reason,
			}

			opened := p.queue.Empty()
			if opened {
				p.cycle = Cycle{FirstBuyPrice: t.Price, FirstBuyDate: lot.Date}
			}
			var prev *CycleBuy
			if n := len(p.cycle.Buys); n > 0 {
				b := p.cycle.Buys[n-1]
				prev = &b
			}
			p.cycle.Buys = append(p.cycle.Buys, CycleBuy{
				TxnID:     t.ID,
				Date:      lot.Date,
				Price:     t.Price,
				Qty:       t.Qty,
				Brokerage: brokerage,
			})
			p.cycle.LastTxnPrice = t.Price
			p.cycle.LastTxnDate = lot.Date

			p.queue.Push(lot)
			portfolioInvested = portfolioInvested.Add(lot.Invested())

			emit(BuyEvent{
				Txn:               t,
				Brokerage:         brokerage,
				Lot:               lot,
				OpenedCycle:       opened,
				PrevBuy:           prev,
				Cycle:             p.cycle.clone(),
				OpenQty:           p.queue.Qty(),
				StockInvested:     p.queue.Invested(),
				PortfolioInvested: portfolioInvested,
			})
			continue
		}

		sellDate := calendarDay(t.Date)
		m := p.queue.Consume(t.Qty, sellDate)
		trade := NewRealizedTrade(t, sellDate, brokerage, m)
		portfolioInvested = portfolioInvested.Sub(trade.InvestedAmount)

		if trade.UnmatchedQty.IsPositive() {
			warnings = append(warnings, Warning{
				Kind:  WarningOversell,
				TxnID: t.ID,
				Stock: t.Stock,
				Date:  sellDate,
				Qty:   trade.UnmatchedQty,
				Message: fmt.Sprintf("sell of %s %s exceeds open quantity by %s; unmatched units carry no buy cost",
					t.Qty, t.Stock, trade.UnmatchedQty),
			})
		}

		if p.cycle.Open() {
			p.cycle.RealizedNet = p.cycle.RealizedNet.Add(trade.Net)
			p.cycle.LastTxnPrice = t.Price
			p.cycle.LastTxnDate = sellDate
		}

		emit(SellEvent{
			Txn:               t,
			Trade:             trade,
			OpenQty:           p.queue.Qty(),
			StockInvested:     p.queue.Invested(),
			PortfolioInvested: portfolioInvested,
		})

		if p.queue.Empty() && p.cycle.Open() {
			closed := p.cycle.clone()
			p.cycle = Cycle{}
			emit(CycleClosedEvent{Stock: t.Stock, Cycle: closed, EndDate: sellDate})
		}
	}

	return &Result{
		Realization: realization,
		Holdings:    projectHoldings(positions),
		Warnings:    warnings,
	}, nil
}
