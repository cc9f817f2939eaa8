package advisor

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// Allocation status labels.
const (
	AllocationBalanced = "Balanced"
	AllocationModerate = "Moderate"
	AllocationWarning  = "Warning"
)

// Allocation risk labels.
const (
	RiskHealthy   = "Healthy"
	RiskNearLimit = "Near limit"
	RiskOverLimit = "Over limit"
)

// Hold horizon labels.
const (
	HorizonJustNow   = "Just now"
	HorizonShortTerm = "Short term hold"
	HorizonLongTerm  = "Long term hold"
)

// Per-buy classification labels.
const (
	BuyBase         = "Base buy"
	BuyGoodFollowUp = "Good follow-up"
	BuyWeakDrop     = "Weak drop"
	BuySlightChase  = "Slight chase"
	BuyHighChase    = "High chase"
)

// Buy zone labels.
const (
	ZoneL2    = "L2 zone"
	ZoneL1    = "L1 zone"
	ZoneAbove = "Above zones"
)

var (
	moderateAllocationPct = decimal.NewFromInt(15)
	nearLimitRatio        = decimal.RequireFromString("0.85")
	slightChasePct        = decimal.NewFromInt(2)
)

// Level is one averaging-down price level of the open cycle.
type Level struct {
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
	Hit   bool            `json:"hit"`
	// HitBuy is the 1-based number of the cycle buy that reached the level, 0 when not hit.
	HitBuy       int                 `json:"hitBuy"`
	SuggestedQty int64               `json:"suggestedQty"`
	ProjectedAvg decimal.NullDecimal `json:"projectedAvg"`
}

// BuyTag classifies one buy of the open cycle against the one before it.
type BuyTag struct {
	TxnID   int64           `json:"txnId"`
	Date    time.Time       `json:"date"`
	Price   decimal.Decimal `json:"price"`
	Qty     decimal.Decimal `json:"qty"`
	Tag     string          `json:"tag"`
	Zone    string          `json:"zone"`
	DiffPct decimal.Decimal `json:"diffPct"`
	// ExtraPerShare is what was paid above one L1 step below the previous buy.
	ExtraPerShare decimal.Decimal `json:"extraPerShare"`
	ExtraTotal    decimal.Decimal `json:"extraTotal"`
}

// ExitLevels are the sell-side reference prices of a holding.
type ExitLevels struct {
	Target       decimal.Decimal `json:"target"`
	StopLoss     decimal.Decimal `json:"stopLoss"`
	TrimAllowed  bool            `json:"trimAllowed"`
	TrimFromDate time.Time       `json:"trimFromDate"`
}

// Advice is the averaging-down and allocation view of one active holding.
type Advice struct {
	Stock            string          `json:"stock"`
	Qty              decimal.Decimal `json:"qty"`
	Invested         decimal.Decimal `json:"invested"`
	AvgCost          decimal.Decimal `json:"avgCost"`
	FirstBuyPrice    decimal.Decimal `json:"firstBuyPrice"`
	FirstBuyDate     time.Time       `json:"firstBuyDate"`
	DaysHeld         int             `json:"daysHeld"`
	Horizon          string          `json:"horizon"`
	AllocationPct    decimal.Decimal `json:"allocationPct"`
	AllocationStatus string          `json:"allocationStatus"`
	AllocationRisk   string          `json:"allocationRisk"`
	MaxStockBudget   decimal.Decimal `json:"maxStockBudget"`
	RemainingBudget  decimal.Decimal `json:"remainingBudget"`
	PerLevelBudget   decimal.Decimal `json:"perLevelBudget"`
	Levels           []Level         `json:"levels"`
	NextStep         string          `json:"nextStep"`
	Buys             []BuyTag        `json:"buys"`
	Exit             ExitLevels      `json:"exit"`
}

// Advise builds the advice for one active holding. totalInvested is the invested
// capital of all active holdings and is the allocation base; portfolioSize only sets
// the per-stock budget.
func Advise(h accounting.Holding, settings model.Settings, totalInvested decimal.Decimal, asOf time.Time) Advice {
	c := h.Cycle
	a := Advice{
		Stock:         h.Stock,
		Qty:           h.Qty,
		Invested:      h.Invested,
		AvgCost:       h.AvgCost,
		FirstBuyPrice: c.FirstBuyPrice,
		FirstBuyDate:  c.FirstBuyDate,
		DaysHeld:      accounting.HoldDays(c.FirstBuyDate, asOf),
		AllocationPct: pct(h.Invested, totalInvested),
	}
	a.Horizon = horizon(a.DaysHeld)
	a.AllocationStatus, a.AllocationRisk = allocationStatus(a.AllocationPct, settings.MaxAllocationPct)

	l1 := below(c.FirstBuyPrice, settings.AvgLevel1Pct)
	l2 := below(c.FirstBuyPrice, settings.AvgLevel2Pct)
	a.Levels = []Level{
		levelHit("L1", l1, c.Buys),
		levelHit("L2", l2, c.Buys),
	}

	a.MaxStockBudget = settings.PortfolioSize.Mul(settings.MaxAllocationPct).Div(hundred)
	a.RemainingBudget = decimal.Max(zero, a.MaxStockBudget.Sub(h.Invested))

	pending := 0
	for _, l := range a.Levels {
		if !l.Hit {
			pending++
		}
	}
	if pending > 0 {
		a.PerLevelBudget = a.RemainingBudget.Div(decimal.NewFromInt(int64(pending)))
	}
	for i := range a.Levels {
		l := &a.Levels[i]
		if l.Hit || !l.Price.IsPositive() {
			continue
		}
		l.SuggestedQty = a.PerLevelBudget.Div(l.Price).Floor().IntPart()
		if l.SuggestedQty > 0 {
			q := decimal.NewFromInt(l.SuggestedQty)
			l.ProjectedAvg = decimal.NewNullDecimal(h.Invested.Add(q.Mul(l.Price)).Div(h.Qty.Add(q)))
		}
	}

	a.NextStep = nextStep(a.Levels)
	a.Buys = tagBuys(c.Buys, l1, l2, settings.AvgLevel1Pct)
	a.Exit = exitLevels(h.AvgCost, c.FirstBuyDate, a.DaysHeld, settings)
	return a
}

// AdviseAll advises every active holding, largest invested capital first.
func AdviseAll(hs accounting.Holdings, settings model.Settings, asOf time.Time) []Advice {
	total := hs.TotalInvested()
	active := hs.Active()
	out := make([]Advice, 0, len(active))
	for _, h := range active {
		out = append(out, Advise(h, settings, total, asOf))
	}
	return out
}

func horizon(days int) string {
	switch {
	case days > 90:
		return HorizonLongTerm
	case days >= 30:
		return HorizonShortTerm
	default:
		return HorizonJustNow
	}
}

func allocationStatus(allocPct, maxPct decimal.Decimal) (status, risk string) {
	switch {
	case allocPct.GreaterThan(maxPct):
		status = AllocationWarning
	case allocPct.GreaterThan(moderateAllocationPct):
		status = AllocationModerate
	default:
		status = AllocationBalanced
	}

	switch {
	case allocPct.GreaterThan(maxPct):
		risk = RiskOverLimit
	case allocPct.GreaterThan(maxPct.Mul(nearLimitRatio)):
		risk = RiskNearLimit
	default:
		risk = RiskHealthy
	}
	return status, risk
}

// levelHit finds the first buy after the opening one priced at or below price.
func levelHit(label string, price decimal.Decimal, buys []accounting.CycleBuy) Level {
	l := Level{Label: label, Price: price}
	for i := 1; i < len(buys); i++ {
		if buys[i].Price.LessThanOrEqual(price) {
			l.Hit = true
			l.HitBuy = i + 1
			break
		}
	}
	return l
}

func nextStep(levels []Level) string {
	l1, l2 := levels[0], levels[1]
	switch {
	case !l1.Hit:
		return fmt.Sprintf("Wait for L1 zone near %s. Avoid chasing above last buy price unless conviction is strong.", l1.Price.StringFixed(2))
	case !l2.Hit:
		return fmt.Sprintf("L1 is done. Next disciplined buy zone is L2 near %s.", l2.Price.StringFixed(2))
	default:
		return "L1 and L2 completed. Pause averaging and focus on risk control and allocation discipline."
	}
}

func tagBuys(buys []accounting.CycleBuy, l1, l2, l1Pct decimal.Decimal) []BuyTag {
	out := make([]BuyTag, 0, len(buys))
	for i, b := range buys {
		t := BuyTag{
			TxnID:         b.TxnID,
			Date:          b.Date,
			Price:         b.Price,
			Qty:           b.Qty,
			Tag:           BuyBase,
			Zone:          buyZone(b.Price, l1, l2),
			DiffPct:       zero,
			ExtraPerShare: zero,
			ExtraTotal:    zero,
		}
		if i > 0 {
			prev := buys[i-1].Price
			t.DiffPct = pct(b.Price.Sub(prev), prev)
			t.ExtraPerShare = b.Price.Sub(below(prev, l1Pct))
			if t.ExtraPerShare.IsPositive() {
				t.ExtraTotal = t.ExtraPerShare.Mul(b.Qty)
			}

			switch dropPct := t.DiffPct.Neg(); {
			case b.Price.LessThanOrEqual(prev) && dropPct.GreaterThanOrEqual(l1Pct):
				t.Tag = BuyGoodFollowUp
			case b.Price.LessThanOrEqual(prev):
				t.Tag = BuyWeakDrop
			case t.DiffPct.LessThanOrEqual(slightChasePct):
				t.Tag = BuySlightChase
			default:
				t.Tag = BuyHighChase
			}
		}
		out = append(out, t)
	}
	return out
}

func buyZone(price, l1, l2 decimal.Decimal) string {
	switch {
	case price.LessThanOrEqual(l2):
		return ZoneL2
	case price.LessThanOrEqual(l1):
		return ZoneL1
	default:
		return ZoneAbove
	}
}

func exitLevels(avgCost decimal.Decimal, firstBuy time.Time, daysHeld int, settings model.Settings) ExitLevels {
	return ExitLevels{
		Target:       avgCost.Mul(hundred.Add(settings.SellTargetPct)).Div(hundred),
		StopLoss:     below(avgCost, settings.StopLossPct),
		TrimAllowed:  daysHeld >= settings.MinHoldDaysTrim,
		TrimFromDate: firstBuy.AddDate(0, 0, settings.MinHoldDaysTrim),
	}
}
