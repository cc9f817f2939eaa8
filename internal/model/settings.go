package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Settings is the typed, read-only configuration consumed by the accounting engine
// and the advisors. A single row is stored; defaults are seeded by migration.
type Settings struct {
	BrokerageBuyPct  decimal.Decimal `json:"brokerageBuyPct"`
	BrokerageSellPct decimal.Decimal `json:"brokerageSellPct"`
	DPCharge         decimal.Decimal `json:"dpCharge"`
	PortfolioSize    decimal.Decimal `json:"portfolioSize"`
	MaxAllocationPct decimal.Decimal `json:"maxAllocationPct"`
	AvgLevel1Pct     decimal.Decimal `json:"avgLevel1Pct"`
	AvgLevel2Pct     decimal.Decimal `json:"avgLevel2Pct"`
	SellTargetPct    decimal.Decimal `json:"sellTargetPct"`
	StopLossPct      decimal.Decimal `json:"stopLossPct"`
	MinHoldDaysTrim  int             `json:"minHoldDaysTrim"`
	FDRatePct        decimal.Decimal `json:"fdRatePct"`
	InflationRatePct decimal.Decimal `json:"inflationRatePct"`
}

// DefaultSettings mirrors the row seeded by the initial migration.
func DefaultSettings() Settings {
	return Settings{
		BrokerageBuyPct:  decimal.RequireFromString("0.15"),
		BrokerageSellPct: decimal.RequireFromString("0.15"),
		DPCharge:         decimal.NewFromInt(50),
		PortfolioSize:    decimal.NewFromInt(100000),
		MaxAllocationPct: decimal.NewFromInt(25),
		AvgLevel1Pct:     decimal.NewFromInt(7),
		AvgLevel2Pct:     decimal.NewFromInt(12),
		SellTargetPct:    decimal.NewFromInt(15),
		StopLossPct:      decimal.NewFromInt(10),
		MinHoldDaysTrim:  30,
		FDRatePct:        decimal.RequireFromString("6.5"),
		InflationRatePct: decimal.NewFromInt(6),
	}
}

// SettingsError lists the fields that failed validation.
type SettingsError struct {
	Fields map[string]string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("invalid settings: %v", e.Fields)
}

// Validate checks that every value is usable by the engine. Percentages and charges
// must be non-negative and the portfolio size must be positive.
func (s Settings) Validate() error {
	fields := make(map[string]string)

	nonNegative := map[string]decimal.Decimal{
		"brokerageBuyPct":  s.BrokerageBuyPct,
		"brokerageSellPct": s.BrokerageSellPct,
		"dpCharge":         s.DPCharge,
		"maxAllocationPct": s.MaxAllocationPct,
		"avgLevel1Pct":     s.AvgLevel1Pct,
		"avgLevel2Pct":     s.AvgLevel2Pct,
		"sellTargetPct":    s.SellTargetPct,
		"stopLossPct":      s.StopLossPct,
		"fdRatePct":        s.FDRatePct,
		"inflationRatePct": s.InflationRatePct,
	}
	for name, v := range nonNegative {
		if v.IsNegative() {
			fields[name] = "must not be negative"
		}
	}

	if !s.PortfolioSize.IsPositive() {
		fields["portfolioSize"] = "must be positive"
	}
	if s.MaxAllocationPct.GreaterThan(decimal.NewFromInt(100)) {
		fields["maxAllocationPct"] = "must not exceed 100"
	}
	if s.AvgLevel1Pct.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		fields["avgLevel1Pct"] = "must be below 100"
	}
	if s.AvgLevel2Pct.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		fields["avgLevel2Pct"] = "must be below 100"
	}
	if s.StopLossPct.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		fields["stopLossPct"] = "must be below 100"
	}
	if s.MinHoldDaysTrim < 0 {
		fields["minHoldDaysTrim"] = "must not be negative"
	}

	if len(fields) > 0 {
		return &SettingsError{Fields: fields}
	}
	return nil
}
