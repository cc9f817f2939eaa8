package request

import "github.com/shopspring/decimal"

// UpdateSettingsRequest is the body of PUT /api/settings. Every field is required;
// a nil pointer means the field was omitted or null.
type UpdateSettingsRequest struct {
	BrokerageBuyPct  *decimal.Decimal `json:"brokerageBuyPct"`
	BrokerageSellPct *decimal.Decimal `json:"brokerageSellPct"`
	DPCharge         *decimal.Decimal `json:"dpCharge"`
	PortfolioSize    *decimal.Decimal `json:"portfolioSize"`
	MaxAllocationPct *decimal.Decimal `json:"maxAllocationPct"`
	AvgLevel1Pct     *decimal.Decimal `json:"avgLevel1Pct"`
	AvgLevel2Pct     *decimal.Decimal `json:"avgLevel2Pct"`
	SellTargetPct    *decimal.Decimal `json:"sellTargetPct"`
	StopLossPct      *decimal.Decimal `json:"stopLossPct"`
	MinHoldDaysTrim  *int             `json:"minHoldDaysTrim"`
	FDRatePct        *decimal.Decimal `json:"fdRatePct"`
	InflationRatePct *decimal.Decimal `json:"inflationRatePct"`
}
