package request

import "github.com/shopspring/decimal"

// CreateTransactionRequest is the body of POST /api/transaction. Amounts accept JSON
// numbers or strings; brokerage may be null or omitted to derive it from settings.
type CreateTransactionRequest struct {
	Date      string              `json:"date"`
	Stock     string              `json:"stock"`
	Type      string              `json:"type"`
	Qty       decimal.Decimal     `json:"qty"`
	Price     decimal.Decimal     `json:"price"`
	Brokerage decimal.NullDecimal `json:"brokerage"`
	Reason    string              `json:"reason,omitempty"`
}

// CreateTransactionsRequest is the body of POST /api/transaction/batch.
type CreateTransactionsRequest struct {
	Transactions []CreateTransactionRequest `json:"transactions"`
}

// UpdateTransactionRequest is the body of PUT /api/transaction/{id}. Only non-nil
// fields are applied.
type UpdateTransactionRequest struct {
	Date      *string              `json:"date,omitempty"`
	Stock     *string              `json:"stock,omitempty"`
	Type      *string              `json:"type,omitempty"`
	Qty       *decimal.Decimal     `json:"qty,omitempty"`
	Price     *decimal.Decimal     `json:"price,omitempty"`
	Brokerage *decimal.NullDecimal `json:"brokerage,omitempty"`
	Reason    *string              `json:"reason,omitempty"`
}
