package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/repository"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// In-memory ledger row for the accounting engine
//	buy := testutil.NewBuy("INFY", "2024-01-01", "100", "100").WithID(1).Value()
//
//	// Stored row
//	sell := testutil.NewSell("INFY", "2024-02-01", "100", "120").
//	    WithBrokerage("20").
//	    Build(t, db)
type TransactionBuilder struct {
	txn model.Transaction
}

// NewTransaction creates a TransactionBuilder for a 1-unit BUY of TEST at 100 on 2024-01-01.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{txn: model.Transaction{
		Date:  Date("2024-01-01"),
		Stock: "TEST",
		Type:  model.TransactionBuy,
		Qty:   decimal.NewFromInt(1),
		Price: decimal.NewFromInt(100),
	}}
}

// NewBuy creates a BUY builder.
func NewBuy(stock, date, qty, price string) *TransactionBuilder {
	return NewTransaction().
		WithStock(stock).
		WithDate(Date(date)).
		WithQty(qty).
		WithPrice(price)
}

// NewSell creates a SELL builder.
func NewSell(stock, date, qty, price string) *TransactionBuilder {
	return NewBuy(stock, date, qty, price).WithType(model.TransactionSell)
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id int64) *TransactionBuilder {
	b.txn.ID = id
	return b
}

// WithDate sets the trade date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.txn.Date = date
	return b
}

// WithStock sets the stock symbol.
func (b *TransactionBuilder) WithStock(stock string) *TransactionBuilder {
	b.txn.Stock = stock
	return b
}

// WithType sets BUY or SELL.
func (b *TransactionBuilder) WithType(txType model.TransactionType) *TransactionBuilder {
	b.txn.Type = txType
	return b
}

// WithQty sets the quantity.
func (b *TransactionBuilder) WithQty(qty string) *TransactionBuilder {
	b.txn.Qty = Dec(qty)
	return b
}

// WithPrice sets the unit price.
func (b *TransactionBuilder) WithPrice(price string) *TransactionBuilder {
	b.txn.Price = Dec(price)
	return b
}

// WithBrokerage sets an explicit brokerage.
func (b *TransactionBuilder) WithBrokerage(brokerage string) *TransactionBuilder {
	b.txn.Brokerage = decimal.NewNullDecimal(Dec(brokerage))
	return b
}

// WithReason sets the trade reason.
func (b *TransactionBuilder) WithReason(reason string) *TransactionBuilder {
	b.txn.Reason = reason
	return b
}

// Value returns the transaction without storing it.
func (b *TransactionBuilder) Value() model.Transaction {
	return b.txn
}

// Build inserts the transaction into the database and returns it with its ID set.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	txn := b.txn
	if err := repository.NewTransactionRepository(db).InsertTransaction(context.Background(), &txn); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	return txn
}

// Ledger assigns sequential IDs, starting at 1, to builders that have none and returns
// the transactions in the given order.
func Ledger(builders ...*TransactionBuilder) []model.Transaction {
	out := make([]model.Transaction, len(builders))
	for i, b := range builders {
		txn := b.Value()
		if txn.ID == 0 {
			txn.ID = int64(i + 1)
		}
		out[i] = txn
	}
	return out
}

// SettingsBuilder provides a fluent interface for test settings, starting from the defaults.
type SettingsBuilder struct {
	s model.Settings
}

// NewSettings creates a SettingsBuilder holding model.DefaultSettings.
func NewSettings() *SettingsBuilder {
	return &SettingsBuilder{s: model.DefaultSettings()}
}

// WithBrokerage sets the buy and sell percentages and the flat DP charge.
func (b *SettingsBuilder) WithBrokerage(buyPct, sellPct, dpCharge string) *SettingsBuilder {
	b.s.BrokerageBuyPct = Dec(buyPct)
	b.s.BrokerageSellPct = Dec(sellPct)
	b.s.DPCharge = Dec(dpCharge)
	return b
}

// WithoutBrokerage zeroes every brokerage component.
func (b *SettingsBuilder) WithoutBrokerage() *SettingsBuilder {
	return b.WithBrokerage("0", "0", "0")
}

// WithPortfolioSize sets the portfolio size.
func (b *SettingsBuilder) WithPortfolioSize(size string) *SettingsBuilder {
	b.s.PortfolioSize = Dec(size)
	return b
}

// WithMaxAllocation sets maxAllocationPct.
func (b *SettingsBuilder) WithMaxAllocation(pct string) *SettingsBuilder {
	b.s.MaxAllocationPct = Dec(pct)
	return b
}

// WithLevels sets the two averaging-down levels.
func (b *SettingsBuilder) WithLevels(l1Pct, l2Pct string) *SettingsBuilder {
	b.s.AvgLevel1Pct = Dec(l1Pct)
	b.s.AvgLevel2Pct = Dec(l2Pct)
	return b
}

// Value returns the settings.
func (b *SettingsBuilder) Value() model.Settings {
	return b.s
}

// Build stores the settings and returns them.
func (b *SettingsBuilder) Build(t *testing.T, db *sql.DB) model.Settings {
	t.Helper()

	if err := repository.NewSettingsRepository(db).SaveSettings(context.Background(), b.s); err != nil {
		t.Fatalf("Failed to save settings: %v", err)
	}
	return b.s
}
