package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSettingsNotFound indicates that the settings row has not been seeded.
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrHoldingNotFound indicates that the stock has no open position.
	ErrHoldingNotFound = errors.New("no active holding for stock")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidInput indicates a transaction that must be rejected at the ledger boundary
	// (non-positive qty or price, missing date or stock).
	ErrInvalidInput = errors.New("invalid transaction input")

	// ErrInvalidSettings indicates missing or unusable settings. The engine fails fast
	// instead of substituting zero costs.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrInvalidTransactionID indicates that a path ID is not a positive integer.
	ErrInvalidTransactionID = errors.New("transaction ID must be a positive integer")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Ledger state errors. ErrNoTransactions is an expected, user-visible empty state and
// must never be reported the same way as a failed computation.
var (
	// ErrNoTransactions indicates that the ledger is empty.
	ErrNoTransactions = errors.New("no transactions yet")

	// ErrUnsortedLedger indicates that a replay was attempted on a history that is not in
	// ascending date / insertion order. Replaying such input would mis-match lots.
	ErrUnsortedLedger = errors.New("ledger is not in chronological order")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveSettings     = errors.New("failed to retrieve settings")
	ErrFailedToComputeAnalytics     = errors.New("failed to compute analytics")
	ErrFailedToRetrieveSnapshots    = errors.New("failed to retrieve snapshots")
	ErrFailedToGenerateReport       = errors.New("failed to generate report")
)
