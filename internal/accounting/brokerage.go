package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

var hundred = decimal.NewFromInt(100)

// ResolveBrokerage returns the transaction cost of txn.
//
// An explicit positive brokerage recorded on the transaction always wins, so imported
// or previously recorded costs are never rewritten by later settings changes. Otherwise
// the cost is computed from settings: BUY pays buyPct of the trade value, SELL pays
// sellPct of the trade value plus the flat DP charge.
func ResolveBrokerage(txn model.Transaction, settings model.Settings) decimal.Decimal {
	if txn.Brokerage.Valid && txn.Brokerage.Decimal.IsPositive() {
		return txn.Brokerage.Decimal
	}

	value := txn.TradeValue()
	if txn.IsBuy() {
		return value.Mul(settings.BrokerageBuyPct).Div(hundred)
	}
	return value.Mul(settings.BrokerageSellPct).Div(hundred).Add(settings.DPCharge)
}
