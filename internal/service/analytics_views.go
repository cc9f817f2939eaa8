package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/advisor"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// Dashboard is the portfolio overview. Invested, holdings and totals always cover the
// full history; the monthly series is limited to the requested range.
type Dashboard struct {
	Invested       decimal.Decimal             `json:"invested"`
	ActiveHoldings int                         `json:"activeHoldings"`
	Totals         accounting.Totals           `json:"totals"`
	RangeMonths    int                         `json:"rangeMonths"`
	Monthly        []accounting.MonthlyNet     `json:"monthly"`
	Stocks         []accounting.StockSummary   `json:"stocks"`
	Best           *accounting.StockSummary    `json:"best,omitempty"`
	Worst          *accounting.StockSummary    `json:"worst,omitempty"`
	Brokerage      []accounting.BrokerageSplit `json:"brokerage"`
}

// Dashboard returns the overview. rangeMonths counts calendar months including the
// current one, so 1 shows only this month; 0 shows every month.
func (s *AnalyticsService) Dashboard(ctx context.Context, rangeMonths int) (Analysis[Dashboard], error) {
	st, err := s.replay(ctx, "dashboard")
	if err != nil {
		return Analysis[Dashboard]{}, err
	}
	r := st.result.Realization

	var cutoff time.Time
	if rangeMonths > 0 {
		cutoff = time.Date(st.asOf.Year(), st.asOf.Month()-time.Month(rangeMonths-1), 1, 0, 0, 0, 0, time.UTC)
	}

	d := Dashboard{
		Invested:       st.result.Holdings.TotalInvested(),
		ActiveHoldings: len(st.result.Holdings.Active()),
		Totals:         r.Totals(),
		RangeMonths:    rangeMonths,
		Monthly:        accounting.MonthsSince(r.Monthly(), cutoff),
		Stocks:         r.Stocks(),
		Brokerage:      r.Brokerage(),
	}
	if n := len(d.Stocks); n > 0 {
		best, worst := d.Stocks[0], d.Stocks[n-1]
		d.Best, d.Worst = &best, &worst
	}
	return analysis(st, d), nil
}

// PnL is the realized trade list for a filter, with totals over the filtered trades.
type PnL struct {
	Trades []accounting.RealizedTrade `json:"trades"`
	Totals accounting.Totals          `json:"totals"`
}

// PnL returns the realized trades matching f. The filter is applied after the full
// replay so lots bought before the window still match sales inside it.
func (s *AnalyticsService) PnL(ctx context.Context, f accounting.TradeFilter) (Analysis[PnL], error) {
	st, err := s.replay(ctx, "pnl")
	if err != nil {
		return Analysis[PnL]{}, err
	}

	trades := accounting.FilterTrades(st.result.Realization.Trades(), f)
	return analysis(st, PnL{Trades: trades, Totals: accounting.SumTrades(trades)}), nil
}

// HoldingsView lists the active holdings, largest invested capital first.
type HoldingsView struct {
	TotalInvested decimal.Decimal      `json:"totalInvested"`
	Holdings      []accounting.Holding `json:"holdings"`
}

// Holdings returns the open positions.
func (s *AnalyticsService) Holdings(ctx context.Context) (Analysis[HoldingsView], error) {
	st, err := s.replay(ctx, "holdings")
	if err != nil {
		return Analysis[HoldingsView]{}, err
	}

	hs := st.result.Holdings
	return analysis(st, HoldingsView{TotalInvested: hs.TotalInvested(), Holdings: hs.Active()}), nil
}

// Insights gathers the per-holding advice and the realized-outcome breakdowns.
type Insights struct {
	Advice      []advisor.Advice        `json:"advice"`
	Efficiency  []advisor.EfficiencyRow `json:"efficiency"`
	HoldingEdge []advisor.EdgeBucket    `json:"holdingEdge"`
	Reasons     []advisor.ReasonRow     `json:"reasons"`
}

// Insights returns the averaging, allocation and efficiency advice for every active
// holding plus the holding-period and buy-reason outcomes.
func (s *AnalyticsService) Insights(ctx context.Context) (Analysis[Insights], error) {
	st, err := s.replay(ctx, "insights")
	if err != nil {
		return Analysis[Insights]{}, err
	}

	hs := st.result.Holdings
	trades := st.result.Realization.Trades()
	return analysis(st, Insights{
		Advice:      advisor.AdviseAll(hs, st.settings, st.asOf),
		Efficiency:  advisor.RankEfficiency(hs, st.settings, st.asOf),
		HoldingEdge: advisor.HoldingEdge(trades),
		Reasons:     advisor.ReasonOutcome(trades),
	}), nil
}

// Quality returns the decision-quality scores.
func (s *AnalyticsService) Quality(ctx context.Context) (Analysis[advisor.QualityReport], error) {
	var scorer *advisor.QualityScorer
	st, err := s.replayWith(ctx, "quality", func(settings model.Settings) []accounting.Aggregator {
		scorer = advisor.NewQualityScorer(settings)
		return []accounting.Aggregator{scorer}
	})
	if err != nil {
		return Analysis[advisor.QualityReport]{}, err
	}
	return analysis(st, scorer.Report()), nil
}

// Cycles returns the closed-cycle history of every stock.
func (s *AnalyticsService) Cycles(ctx context.Context) (Analysis[[]advisor.StockCycles], error) {
	tracker := advisor.NewCycleTracker()
	st, err := s.replay(ctx, "cycles", tracker)
	if err != nil {
		return Analysis[[]advisor.StockCycles]{}, err
	}
	return analysis(st, advisor.CycleReport(tracker, st.result.Holdings, st.settings)), nil
}

// Losses returns the realized loss report.
func (s *AnalyticsService) Losses(ctx context.Context) (Analysis[advisor.LossSummary], error) {
	st, err := s.replay(ctx, "losses")
	if err != nil {
		return Analysis[advisor.LossSummary]{}, err
	}
	return analysis(st, advisor.LossReport(st.result.Realization.Trades())), nil
}

// Benchmark compares every realized trade with a fixed deposit and inflation.
func (s *AnalyticsService) Benchmark(ctx context.Context) (Analysis[advisor.BenchmarkSummary], error) {
	st, err := s.replay(ctx, "benchmark")
	if err != nil {
		return Analysis[advisor.BenchmarkSummary]{}, err
	}
	return analysis(st, advisor.Benchmark(st.result.Realization.Trades(), st.settings)), nil
}

// SimulateExit previews selling qty of stock at price today without changing the ledger.
func (s *AnalyticsService) SimulateExit(ctx context.Context, stock string, qty, price decimal.Decimal) (Analysis[advisor.ExitSimulation], error) {
	st, err := s.replay(ctx, "exit")
	if err != nil {
		return Analysis[advisor.ExitSimulation]{}, err
	}

	h, ok := st.result.Holdings.Get(stock)
	if !ok {
		return Analysis[advisor.ExitSimulation]{}, fmt.Errorf("%w: %s", apperrors.ErrHoldingNotFound, stock)
	}
	sim, err := advisor.SimulateExit(h, qty, price, st.settings, st.asOf)
	if err != nil {
		return Analysis[advisor.ExitSimulation]{}, err
	}
	return analysis(st, sim), nil
}

// Summary computes today's snapshot values. The returned snapshot has no ID yet.
func (s *AnalyticsService) Summary(ctx context.Context) (model.Snapshot, error) {
	st, err := s.replay(ctx, "summary")
	if err != nil {
		return model.Snapshot{}, err
	}

	totals := st.result.Realization.Totals()
	return model.Snapshot{
		Date:           st.asOf,
		Invested:       st.result.Holdings.TotalInvested(),
		RealizedNet:    totals.Net,
		ActiveHoldings: len(st.result.Holdings.Active()),
		RealizedTrades: totals.Trades,
		Warnings:       len(st.result.Warnings),
		CalculatedAt:   s.now().UTC().Truncate(time.Second),
	}, nil
}
