package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// ValidTransactionType contains the allowed transaction type values, case-insensitive.
var ValidTransactionType = map[string]model.TransactionType{
	"buy":  model.TransactionBuy,
	"sell": model.TransactionSell,
}

// ParseTransactionType maps a request type to its model value.
func ParseTransactionType(s string) (model.TransactionType, bool) {
	t, ok := ValidTransactionType[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - date: YYYY-MM-DD
//   - stock: non-empty after trimming
//   - type: buy or sell
//   - qty, price: positive
//
// Optional fields:
//   - brokerage: non-negative when given
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	validateDate(errors, req.Date)
	validateStock(errors, req.Stock)
	validateType(errors, req.Type)
	validatePositive(errors, "qty", req.Qty)
	validatePositive(errors, "price", req.Price)
	validateBrokerage(errors, req.Brokerage)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateCreateTransactions validates every entry of a batch. Field names are
// prefixed with the entry index, e.g. "transactions[2].qty".
func ValidateCreateTransactions(req request.CreateTransactionsRequest) error {
	errors := make(map[string]string)

	if len(req.Transactions) == 0 {
		errors["transactions"] = "at least one transaction is required"
	}
	for i, t := range req.Transactions {
		err := ValidateCreateTransaction(t)
		if verr, ok := err.(*Error); ok {
			for field, msg := range verr.Fields {
				errors[fmt.Sprintf("transactions[%d].%s", i, field)] = msg
			}
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		validateDate(errors, *req.Date)
	}
	if req.Stock != nil {
		validateStock(errors, *req.Stock)
	}
	if req.Type != nil {
		validateType(errors, *req.Type)
	}
	if req.Qty != nil {
		validatePositive(errors, "qty", *req.Qty)
	}
	if req.Price != nil {
		validatePositive(errors, "price", *req.Price)
	}
	if req.Brokerage != nil {
		validateBrokerage(errors, *req.Brokerage)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateDate(errors map[string]string, date string) {
	if strings.TrimSpace(date) == "" {
		errors["date"] = "date is required"
		return
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		errors["date"] = "date must be YYYY-MM-DD"
	}
}

func validateStock(errors map[string]string, stock string) {
	if NormalizeStock(stock) == "" {
		errors["stock"] = "stock is required"
	}
}

func validateType(errors map[string]string, txType string) {
	if strings.TrimSpace(txType) == "" {
		errors["type"] = "type is required"
	} else if _, ok := ParseTransactionType(txType); !ok {
		errors["type"] = fmt.Sprintf("invalid type: %s", txType)
	}
}

func validatePositive(errors map[string]string, field string, v decimal.Decimal) {
	if !v.IsPositive() {
		errors[field] = fmt.Sprintf("%s must be positive", field)
	}
}

func validateBrokerage(errors map[string]string, b decimal.NullDecimal) {
	if b.Valid && b.Decimal.IsNegative() {
		errors["brokerage"] = "brokerage must not be negative"
	}
}
