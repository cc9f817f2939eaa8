package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the side of a trade.
type TransactionType string

const (
	TransactionBuy  TransactionType = "BUY"
	TransactionSell TransactionType = "SELL"
)

// Transaction represents one BUY or SELL trade event in the ledger.
// Date is a calendar day stored at UTC midnight. Brokerage is only valid when the
// trade carries an explicitly recorded cost; otherwise it is derived from Settings.
type Transaction struct {
	ID        int64               `json:"id"`
	Date      time.Time           `json:"date"`
	Stock     string              `json:"stock"`
	Type      TransactionType     `json:"type"`
	Qty       decimal.Decimal     `json:"qty"`
	Price     decimal.Decimal     `json:"price"`
	Brokerage decimal.NullDecimal `json:"brokerage"`
	Reason    string              `json:"reason,omitempty"`
	CreatedAt time.Time           `json:"createdAt,omitempty"`
}

// TradeValue returns qty * price.
func (t Transaction) TradeValue() decimal.Decimal {
	return t.Qty.Mul(t.Price)
}

// IsBuy reports whether the transaction opens or adds to a position.
func (t Transaction) IsBuy() bool {
	return t.Type == TransactionBuy
}
