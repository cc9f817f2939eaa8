package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/service"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// AllTransactions handles GET requests to retrieve the complete ledger in replay order.
//
// Endpoint: GET /api/transaction
// Response: 200 OK with array of Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetTransactions(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// Stocks handles GET requests for the distinct stock symbols in the ledger.
//
// Endpoint: GET /api/transaction/stocks
// Response: 200 OK with array of symbols, sorted
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) Stocks(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.transactionService.GetStocks(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stocks)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{id}
// Response: 200 OK with Transaction
// Error: 400 Bad Request if the ID is not a positive integer
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := validation.ParseTransactionID(chi.URLParam(r, "id"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidTransactionID.Error(), err.Error())
		return
	}

	transaction, err := h.transactionService.GetTransaction(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to record a new trade.
// Brokerage may be omitted; it is then derived from settings during replay.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (date, stock, type, qty, price, brokerage, reason)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		respondValidation(w, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// CreateTransactions handles POST requests to record several trades at once.
// The batch is stored atomically.
//
// Endpoint: POST /api/transaction/batch
// Request Body: CreateTransactionsRequest
// Response: 201 Created with array of Transaction
// Error: 400 Bad Request if any trade fails validation
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransactions(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransactions(req); err != nil {
		respondValidation(w, err)
		return
	}

	transactions, err := h.transactionService.CreateTransactions(r.Context(), req.Transactions)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create transactions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transactions)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
//
// Endpoint: PUT /api/transaction/{id}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if the ID is invalid or validation fails
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := validation.ParseTransactionID(chi.URLParam(r, "id"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidTransactionID.Error(), err.Error())
		return
	}

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		respondValidation(w, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), transactionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /api/transaction/{id}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if the ID is invalid
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := validation.ParseTransactionID(chi.URLParam(r, "id"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidTransactionID.Error(), err.Error())
		return
	}

	err = h.transactionService.DeleteTransaction(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
