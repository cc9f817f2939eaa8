package validation

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// ValidateUpdateSettings checks that a settings update carries every field and
// returns the settings it describes. Missing fields are never filled with zero or a
// default, since a zero brokerage would understate realized cost.
//
// Range checks are left to model.Settings.Validate.
func ValidateUpdateSettings(req request.UpdateSettingsRequest) (model.Settings, error) {
	errors := make(map[string]string)

	take := func(field string, v *decimal.Decimal) decimal.Decimal {
		if v == nil {
			errors[field] = "is required"
			return decimal.Zero
		}
		return *v
	}

	s := model.Settings{
		BrokerageBuyPct:  take("brokerageBuyPct", req.BrokerageBuyPct),
		BrokerageSellPct: take("brokerageSellPct", req.BrokerageSellPct),
		DPCharge:         take("dpCharge", req.DPCharge),
		PortfolioSize:    take("portfolioSize", req.PortfolioSize),
		MaxAllocationPct: take("maxAllocationPct", req.MaxAllocationPct),
		AvgLevel1Pct:     take("avgLevel1Pct", req.AvgLevel1Pct),
		AvgLevel2Pct:     take("avgLevel2Pct", req.AvgLevel2Pct),
		SellTargetPct:    take("sellTargetPct", req.SellTargetPct),
		StopLossPct:      take("stopLossPct", req.StopLossPct),
		FDRatePct:        take("fdRatePct", req.FDRatePct),
		InflationRatePct: take("inflationRatePct", req.InflationRatePct),
	}
	if req.MinHoldDaysTrim == nil {
		errors["minHoldDaysTrim"] = "is required"
	} else {
		s.MinHoldDaysTrim = *req.MinHoldDaysTrim
	}

	if len(errors) > 0 {
		return model.Settings{}, &Error{Fields: errors}
	}
	return s, nil
}
