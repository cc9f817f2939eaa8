package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is a pre-calculated daily summary of the ledger, written by the scheduled
// snapshot job so the history of invested capital and realized P/L can be charted
// without replaying the ledger for every past day.
type Snapshot struct {
	ID             string          `json:"id"`
	Date           time.Time       `json:"date"`
	Invested       decimal.Decimal `json:"invested"`
	RealizedNet    decimal.Decimal `json:"realizedNet"`
	ActiveHoldings int             `json:"activeHoldings"`
	RealizedTrades int             `json:"realizedTrades"`
	Warnings       int             `json:"warnings"`
	CalculatedAt   time.Time       `json:"calculatedAt"`
}
