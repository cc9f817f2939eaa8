package advisor

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// Mistake categories.
const (
	CategoryChaseBuy     = "Chase Buy"
	CategoryWeakDropBuy  = "Weak Drop Buy"
	CategoryOverAllocBuy = "Over Allocation Buy"
	CategoryPanicSell    = "Panic Sell"
)

// Score weights per mistake.
const (
	chasePenalty     = 8
	weakDropPenalty  = 12
	overAllocPenalty = 15
	panicPenalty     = 10
)

// panicHoldDays is the longest weighted holding period for a losing sale to count
// as a panic sell.
var panicHoldDays = decimal.NewFromInt(15)

// QualityCounts tallies trades and mistakes for one stock or month.
type QualityCounts struct {
	Buys      int `json:"buys"`
	Sells     int `json:"sells"`
	Chase     int `json:"chaseBuys"`
	WeakDrop  int `json:"weakDropBuys"`
	OverAlloc int `json:"overAllocBuys"`
	Panic     int `json:"panicSells"`
}

// Score returns max(0, 100 - 8*chase - 12*weakDrop - 15*overAlloc - 10*panic).
func (c QualityCounts) Score() int {
	s := 100 - chasePenalty*c.Chase - weakDropPenalty*c.WeakDrop - overAllocPenalty*c.OverAlloc - panicPenalty*c.Panic
	return max(0, s)
}

// Mistakes returns the number of flagged trades.
func (c QualityCounts) Mistakes() int {
	return c.Chase + c.WeakDrop + c.OverAlloc + c.Panic
}

// QualityDetail describes one flagged trade.
type QualityDetail struct {
	TxnID    int64                 `json:"txnId"`
	Date     time.Time             `json:"date"`
	Stock    string                `json:"stock"`
	Type     model.TransactionType `json:"type"`
	Category string                `json:"category"`
	Message  string                `json:"message"`
}

// StockQuality is the score of one stock.
type StockQuality struct {
	Stock string `json:"stock"`
	QualityCounts
	Score   int             `json:"score"`
	Details []QualityDetail `json:"details"`
}

// MonthQuality is the score of one calendar month.
type MonthQuality struct {
	Month string `json:"month"`
	QualityCounts
	Score int `json:"score"`
}

// QualityReport is the decision-quality summary of a replay.
type QualityReport struct {
	Overall QualityCounts  `json:"overall"`
	Score   int            `json:"score"`
	Stocks  []StockQuality `json:"stocks"`
	Months  []MonthQuality `json:"months"`
}

// QualityScorer tags buys and sells with mistake categories while a replay runs.
// Attach it to accounting.Run.
type QualityScorer struct {
	settings model.Settings
	overall  QualityCounts
	byStock  map[string]*QualityCounts
	byMonth  map[string]*QualityCounts
	details  map[string][]QualityDetail
}

// NewQualityScorer returns a scorer using the given settings' thresholds.
func NewQualityScorer(settings model.Settings) *QualityScorer {
	return &QualityScorer{
		settings: settings,
		byStock:  make(map[string]*QualityCounts),
		byMonth:  make(map[string]*QualityCounts),
		details:  make(map[string][]QualityDetail),
	}
}

func (q *QualityScorer) counters(stock string, date time.Time) []*QualityCounts {
	s, ok := q.byStock[stock]
	if !ok {
		s = &QualityCounts{}
		q.byStock[stock] = s
	}
	key := accounting.MonthKey(date)
	m, ok := q.byMonth[key]
	if !ok {
		m = &QualityCounts{}
		q.byMonth[key] = m
	}
	return []*QualityCounts{&q.overall, s, m}
}

func (q *QualityScorer) flag(txn model.Transaction, category, message string, bump func(*QualityCounts)) {
	for _, c := range q.counters(txn.Stock, txn.Date) {
		bump(c)
	}
	q.details[txn.Stock] = append(q.details[txn.Stock], QualityDetail{
		TxnID:    txn.ID,
		Date:     txn.Date,
		Stock:    txn.Stock,
		Type:     txn.Type,
		Category: category,
		Message:  message,
	})
}

// Observe implements accounting.Aggregator.
func (q *QualityScorer) Observe(e accounting.Event) {
	switch ev := e.(type) {
	case accounting.BuyEvent:
		q.observeBuy(ev)
	case accounting.SellEvent:
		q.observeSell(ev)
	}
}

func (q *QualityScorer) observeBuy(ev accounting.BuyEvent) {
	t := ev.Txn
	for _, c := range q.counters(t.Stock, t.Date) {
		c.Buys++
	}

	if prev := ev.PrevBuy; prev != nil {
		if t.Price.GreaterThan(prev.Price) {
			q.flag(t, CategoryChaseBuy,
				fmt.Sprintf("Bought at %s above previous buy %s.", t.Price.StringFixed(2), prev.Price.StringFixed(2)),
				func(c *QualityCounts) { c.Chase++ })
		} else if drop := pct(prev.Price.Sub(t.Price), prev.Price); drop.LessThan(q.settings.AvgLevel1Pct) {
			q.flag(t, CategoryWeakDropBuy,
				fmt.Sprintf("Drop %s%% from previous buy is below L1 rule %s%%.", drop.StringFixed(2), q.settings.AvgLevel1Pct.StringFixed(2)),
				func(c *QualityCounts) { c.WeakDrop++ })
		}
	}

	if alloc := pct(ev.StockInvested, ev.PortfolioInvested); alloc.GreaterThan(q.settings.MaxAllocationPct) {
		q.flag(t, CategoryOverAllocBuy,
			fmt.Sprintf("Post-buy allocation %s%% exceeded max %s%%.", alloc.StringFixed(2), q.settings.MaxAllocationPct.StringFixed(2)),
			func(c *QualityCounts) { c.OverAlloc++ })
	}
}

func (q *QualityScorer) observeSell(ev accounting.SellEvent) {
	t := ev.Txn
	for _, c := range q.counters(t.Stock, t.Date) {
		c.Sells++
	}

	tr := ev.Trade
	if tr.Net.IsNegative() && tr.HoldDays.LessThanOrEqual(panicHoldDays) {
		q.flag(t, CategoryPanicSell,
			fmt.Sprintf("Loss sell %s within %s hold days.", tr.Net.StringFixed(2), tr.HoldDays.StringFixed(0)),
			func(c *QualityCounts) { c.Panic++ })
	}
}

// Report returns the scores. Stocks are ordered worst score first, months chronologically.
func (q *QualityScorer) Report() QualityReport {
	r := QualityReport{
		Overall: q.overall,
		Score:   q.overall.Score(),
		Stocks:  make([]StockQuality, 0, len(q.byStock)),
		Months:  make([]MonthQuality, 0, len(q.byMonth)),
	}

	for stock, c := range q.byStock {
		details := slices.Clone(q.details[stock])
		if details == nil {
			details = []QualityDetail{}
		}
		r.Stocks = append(r.Stocks, StockQuality{
			Stock:         stock,
			QualityCounts: *c,
			Score:         c.Score(),
			Details:       details,
		})
	}
	slices.SortFunc(r.Stocks, func(a, b StockQuality) int {
		if c := cmp.Compare(a.Score, b.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Stock, b.Stock)
	})

	for month, c := range q.byMonth {
		r.Months = append(r.Months, MonthQuality{Month: month, QualityCounts: *c, Score: c.Score()})
	}
	slices.SortFunc(r.Months, func(a, b MonthQuality) int { return cmp.Compare(a.Month, b.Month) })

	return r
}
