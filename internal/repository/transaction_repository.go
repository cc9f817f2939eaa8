package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// Rows are always returned in replay order: ascending date, then insertion order.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a copy of the repository that runs every statement inside tx.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const transactionColumns = `id, date, stock, type, qty, price, brokerage, reason, created_at`

func scanTransaction(s rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string

	if err := s.Scan(
		&t.ID,
		&dateStr,
		&t.Stock,
		&t.Type,
		&t.Qty,
		&t.Price,
		&t.Brokerage,
		&t.Reason,
		&createdAtStr,
	); err != nil {
		return t, err
	}

	var err error
	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return t, fmt.Errorf("transaction %d: %w", t.ID, err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return t, fmt.Errorf("transaction %d: %w", t.ID, err)
	}
	return t, nil
}

// GetTransactions returns the complete ledger in replay order.
// Returns an empty slice if the ledger is empty.
func (r *TransactionRepository) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" ORDER BY date ASC, id ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns ErrTransactionNotFound if no row has that ID.
func (r *TransactionRepository) GetTransaction(ctx context.Context, id int64) (model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" WHERE id = ?`

	t, err := scanTransaction(r.getQuerier().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}
	return t, nil
}

// GetStocks returns the distinct stock symbols present in the ledger, sorted.
func (r *TransactionRepository) GetStocks(ctx context.Context) ([]string, error) {
	rows, err := r.getQuerier().QueryContext(ctx, `SELECT DISTINCT stock FROM "transaction" ORDER BY stock ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer rows.Close()

	stocks := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stocks: %w", err)
	}
	return stocks, nil
}

// InsertTransaction stores t and sets its ID and CreatedAt.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (date, stock, type, qty, price, brokerage, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	result, err := r.getQuerier().ExecContext(ctx, query,
		formatDate(t.Date),
		t.Stock,
		t.Type,
		t.Qty,
		t.Price,
		t.Brokerage,
		t.Reason,
		formatDatetime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	t.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read transaction id: %w", err)
	}
	return nil
}

// UpdateTransaction overwrites the stored row with t.ID.
// Returns ErrTransactionNotFound if no row has that ID.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET date = ?, stock = ?, type = ?, qty = ?, price = ?, brokerage = ?, reason = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		formatDate(t.Date),
		t.Stock,
		t.Type,
		t.Qty,
		t.Price,
		t.Brokerage,
		t.Reason,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return expectOneRow(result, apperrors.ErrTransactionNotFound)
}

// DeleteTransaction removes a transaction by ID.
// Returns ErrTransactionNotFound if no row has that ID.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id int64) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return expectOneRow(result, apperrors.ErrTransactionNotFound)
}

func expectOneRow(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
