package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/validation"
)

// TransactionService handles ledger business logic operations.
// Requests are expected to be validated by the caller; the service normalizes them
// into model.Transaction values before storage.
type TransactionService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
) *TransactionService {
	return &TransactionService{
		db:              db,
		transactionRepo: transactionRepo,
	}
}

// GetTransactions returns the full ledger in replay order.
func (s *TransactionService) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions(ctx)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(ctx, id)
}

// GetStocks returns every distinct stock symbol in the ledger, alphabetically.
func (s *TransactionService) GetStocks(ctx context.Context) ([]string, error) {
	return s.transactionRepo.GetStocks(ctx)
}

// CreateTransaction stores one trade.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	transaction, err := newTransaction(req)
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.InsertTransaction(ctx, &transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	slog.InfoContext(ctx, "transaction created",
		slog.Int64("id", transaction.ID),
		slog.String("stock", transaction.Stock),
		slog.String("type", string(transaction.Type)),
	)
	return &transaction, nil
}

// CreateTransactions stores a batch of trades atomically, in the given order.
// Either every trade is stored or none is.
func (s *TransactionService) CreateTransactions(ctx context.Context, reqs []request.CreateTransactionRequest) ([]model.Transaction, error) {
	transactions := make([]model.Transaction, 0, len(reqs))
	for _, req := range reqs {
		t, err := newTransaction(req)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	repo := s.transactionRepo.WithTx(tx)
	for i := range transactions {
		if err := repo.InsertTransaction(ctx, &transactions[i]); err != nil {
			return nil, fmt.Errorf("failed to create transaction %d of batch: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "transaction batch created", slog.Int("count", len(transactions)))
	return transactions, nil
}

// UpdateTransaction applies the non-nil fields of req to the stored transaction.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id int64, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		if transaction.Date, err = time.Parse(time.DateOnly, *req.Date); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		transaction.Stock = validation.NormalizeStock(*req.Stock)
	}
	if req.Type != nil {
		t, ok := validation.ParseTransactionType(*req.Type)
		if !ok {
			return nil, fmt.Errorf("invalid type: %s", *req.Type)
		}
		transaction.Type = t
	}
	if req.Qty != nil {
		transaction.Qty = *req.Qty
	}
	if req.Price != nil {
		transaction.Price = *req.Price
	}
	if req.Brokerage != nil {
		transaction.Brokerage = *req.Brokerage
	}
	if req.Reason != nil {
		transaction.Reason = *req.Reason
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, transaction); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "transaction updated",
		slog.Int64("id", transaction.ID),
		slog.String("stock", transaction.Stock),
		slog.String("type", string(transaction.Type)),
	)
	return &transaction, nil
}

// DeleteTransaction removes a transaction by ID.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.transactionRepo.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "transaction deleted", slog.Int64("id", id))
	return nil
}

func newTransaction(req request.CreateTransactionRequest) (model.Transaction, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return model.Transaction{}, err
	}
	txType, ok := validation.ParseTransactionType(req.Type)
	if !ok {
		return model.Transaction{}, fmt.Errorf("invalid type: %s", req.Type)
	}

	return model.Transaction{
		Date:      date,
		Stock:     validation.NormalizeStock(req.Stock),
		Type:      txType,
		Qty:       req.Qty,
		Price:     req.Price,
		Brokerage: req.Brokerage,
		Reason:    req.Reason,
	}, nil
}
