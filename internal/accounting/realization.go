package accounting

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// RealizedTrade is the outcome of one SELL.
type RealizedTrade struct {
	TxnID         int64           `json:"txnId"`
	Stock         string          `json:"stock"`
	Date          time.Time       `json:"date"`
	Qty           decimal.Decimal `json:"qty"`
	MatchedQty    decimal.Decimal `json:"matchedQty"`
	UnmatchedQty  decimal.Decimal `json:"unmatchedQty"`
	SellPrice     decimal.Decimal `json:"sellPrice"`
	SellValue     decimal.Decimal `json:"sellValue"`
	BuyCost       decimal.Decimal `json:"buyCost"`
	BuyBrokerage  decimal.Decimal `json:"buyBrokerage"`
	SellBrokerage decimal.Decimal `json:"sellBrokerage"`
	Net           decimal.Decimal `json:"net"`
	// InvestedAmount is buyCost + buyBrokerage of the matched lots.
	InvestedAmount decimal.Decimal `json:"investedAmount"`
	// HoldDays is the quantity-weighted holding period of the matched lots.
	HoldDays  decimal.Decimal `json:"holdDays"`
	ReturnPct decimal.Decimal `json:"returnPct"`
	Reason    string          `json:"reason,omitempty"`
	Fills     []LotFill       `json:"fills"`
}

// Win reports whether the trade counts as a win. Break-even trades are wins.
func (t RealizedTrade) Win() bool {
	return !t.Net.IsNegative()
}

// NewRealizedTrade books the sale t against the lots it consumed.
func NewRealizedTrade(t model.Transaction, sellDate time.Time, sellBrokerage decimal.Decimal, m Match) RealizedTrade {
	sellValue := t.TradeValue()
	net := sellValue.Sub(m.BuyCost).Sub(m.BuyBrokerage).Sub(sellBrokerage)
	invested := m.BuyCost.Add(m.BuyBrokerage)

	holdDays := decimal.Zero
	if m.MatchedQty.IsPositive() {
		holdDays = m.HoldDaysAccum.Div(m.MatchedQty)
	}
	returnPct := decimal.Zero
	if invested.IsPositive() {
		returnPct = net.Div(invested).Mul(hundred)
	}

	return RealizedTrade{
		TxnID:          t.ID,
		Stock:          t.Stock,
		Date:           sellDate,
		Qty:            t.Qty,
		MatchedQty:     m.MatchedQty,
		UnmatchedQty:   t.Qty.Sub(m.MatchedQty),
		SellPrice:      t.Price,
		SellValue:      sellValue,
		BuyCost:        m.BuyCost,
		BuyBrokerage:   m.BuyBrokerage,
		SellBrokerage:  sellBrokerage,
		Net:            net,
		InvestedAmount: invested,
		HoldDays:       holdDays,
		ReturnPct:      returnPct,
		Reason:         t.Reason,
		Fills:          m.Fills,
	}
}

// StockSummary accumulates realized results for one stock.
type StockSummary struct {
	Stock    string          `json:"stock"`
	PnL      decimal.Decimal `json:"pnl"`
	Trades   int             `json:"trades"`
	Wins     int             `json:"wins"`
	Losses   int             `json:"losses"`
	Invested decimal.Decimal `json:"invested"`
	// InvestedHoldDays is the sum of investedAmount * holdDays over the stock's sales.
	InvestedHoldDays decimal.Decimal `json:"investedHoldDays"`
}

// AvgHoldDays returns the invested-weighted average holding period.
func (s StockSummary) AvgHoldDays() decimal.Decimal {
	if !s.Invested.IsPositive() {
		return decimal.Zero
	}
	return s.InvestedHoldDays.Div(s.Invested)
}

// WinRate returns wins / trades * 100.
func (s StockSummary) WinRate() decimal.Decimal {
	return winRate(s.Wins, s.Trades)
}

// MonthlyNet is the realized net of one calendar month.
type MonthlyNet struct {
	Month string          `json:"month"`
	Net   decimal.Decimal `json:"net"`
}

// BrokerageSplit is the resolved brokerage paid on one stock.
type BrokerageSplit struct {
	Stock string          `json:"stock"`
	Buy   decimal.Decimal `json:"buy"`
	Sell  decimal.Decimal `json:"sell"`
}

// Total returns buy + sell brokerage.
func (b BrokerageSplit) Total() decimal.Decimal {
	return b.Buy.Add(b.Sell)
}

// Totals is the portfolio-wide realized summary.
type Totals struct {
	Net       decimal.Decimal `json:"net"`
	Loss      decimal.Decimal `json:"loss"`
	Trades    int             `json:"trades"`
	Wins      int             `json:"wins"`
	Losses    int             `json:"losses"`
	WinRate   decimal.Decimal `json:"winRate"`
	Brokerage decimal.Decimal `json:"brokerage"`
}

// Realization is the aggregator that books every SellEvent into realized trades,
// per-stock summaries and monthly net. Run always attaches one.
type Realization struct {
	trades    []RealizedTrade
	byStock   map[string]*StockSummary
	monthly   map[string]decimal.Decimal
	brokerage map[string]*BrokerageSplit
	totals    Totals
}

// NewRealization returns an empty Realization.
func NewRealization() *Realization {
	return &Realization{
		byStock:   make(map[string]*StockSummary),
		monthly:   make(map[string]decimal.Decimal),
		brokerage: make(map[string]*BrokerageSplit),
	}
}

// Observe implements Aggregator.
func (r *Realization) Observe(e Event) {
	switch ev := e.(type) {
	case BuyEvent:
		b := r.brokerageFor(ev.Txn.Stock)
		b.Buy = b.Buy.Add(ev.Brokerage)
		r.totals.Brokerage = r.totals.Brokerage.Add(ev.Brokerage)
	case SellEvent:
		r.book(ev.Trade)
	}
}

func (r *Realization) brokerageFor(stock string) *BrokerageSplit {
	b, ok := r.brokerage[stock]
	if !ok {
		b = &BrokerageSplit{Stock: stock}
		r.brokerage[stock] = b
	}
	return b
}

func (r *Realization) book(t RealizedTrade) {
	r.trades = append(r.trades, t)

	s, ok := r.byStock[t.Stock]
	if !ok {
		s = &StockSummary{Stock: t.Stock}
		r.byStock[t.Stock] = s
	}
	s.PnL = s.PnL.Add(t.Net)
	s.Trades++
	s.Invested = s.Invested.Add(t.InvestedAmount)
	s.InvestedHoldDays = s.InvestedHoldDays.Add(t.InvestedAmount.Mul(t.HoldDays))

	r.totals.Net = r.totals.Net.Add(t.Net)
	r.totals.Trades++
	if t.Win() {
		s.Wins++
		r.totals.Wins++
	} else {
		s.Losses++
		r.totals.Losses++
		r.totals.Loss = r.totals.Loss.Add(t.Net)
	}

	key := MonthKey(t.Date)
	r.monthly[key] = r.monthly[key].Add(t.Net)

	b := r.brokerageFor(t.Stock)
	b.Sell = b.Sell.Add(t.SellBrokerage)
	r.totals.Brokerage = r.totals.Brokerage.Add(t.SellBrokerage)
}

// Trades returns the realized trades in ledger order.
func (r *Realization) Trades() []RealizedTrade {
	return slices.Clone(r.trades)
}

// Stocks returns the per-stock summaries, best P/L first.
func (r *Realization) Stocks() []StockSummary {
	out := make([]StockSummary, 0, len(r.byStock))
	for _, s := range r.byStock {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b StockSummary) int {
		if c := b.PnL.Cmp(a.PnL); c != 0 {
			return c
		}
		return cmp.Compare(a.Stock, b.Stock)
	})
	return out
}

// Stock returns the summary of one stock.
func (r *Realization) Stock(stock string) (StockSummary, bool) {
	s, ok := r.byStock[stock]
	if !ok {
		return StockSummary{}, false
	}
	return *s, true
}

// Monthly returns realized net per month in chronological order.
func (r *Realization) Monthly() []MonthlyNet {
	out := make([]MonthlyNet, 0, len(r.monthly))
	for k, v := range r.monthly {
		out = append(out, MonthlyNet{Month: k, Net: v})
	}
	slices.SortFunc(out, func(a, b MonthlyNet) int { return cmp.Compare(a.Month, b.Month) })
	return out
}

// Brokerage returns brokerage paid per stock, largest total first. Stocks that paid
// nothing are omitted.
func (r *Realization) Brokerage() []BrokerageSplit {
	out := make([]BrokerageSplit, 0, len(r.brokerage))
	for _, b := range r.brokerage {
		if b.Total().IsPositive() {
			out = append(out, *b)
		}
	}
	slices.SortFunc(out, func(a, b BrokerageSplit) int {
		if c := b.Total().Cmp(a.Total()); c != 0 {
			return c
		}
		return cmp.Compare(a.Stock, b.Stock)
	})
	return out
}

// Totals returns the portfolio-wide summary.
func (r *Realization) Totals() Totals {
	t := r.totals
	t.WinRate = winRate(t.Wins, t.Trades)
	return t
}

func winRate(wins, trades int) decimal.Decimal {
	if trades == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(wins)).Div(decimal.NewFromInt(int64(trades))).Mul(hundred)
}
