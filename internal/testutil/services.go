package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/report"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/service"
)

// NewTestTransactionService creates a TransactionService for testing.
//
// Example usage:
//
//	db := testutil.SetupTestDB(t)
//	svc := testutil.NewTestTransactionService(t, db)
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()
	return service.NewTransactionService(db, repository.NewTransactionRepository(db))
}

// NewTestSettingsService creates a SettingsService for testing.
func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()
	return service.NewSettingsService(repository.NewSettingsRepository(db))
}

// NewTestSystemService creates a SystemService for testing.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// NewTestAnalyticsService creates an AnalyticsService whose calendar today is fixed
// to the given "2006-01-02" date.
//
// Example usage:
//
//	svc := testutil.NewTestAnalyticsService(t, db, "2024-03-31")
func NewTestAnalyticsService(t *testing.T, db *sql.DB, today string) *service.AnalyticsService {
	t.Helper()

	// Midday keeps the calendar day stable in any zone within ±12h.
	now := Date(today).Add(12 * time.Hour)
	return service.NewAnalyticsService(
		repository.NewTransactionRepository(db),
		repository.NewSettingsRepository(db),
		time.UTC,
	).WithClock(func() time.Time { return now })
}

// NewTestSnapshotService creates a SnapshotService on top of NewTestAnalyticsService.
func NewTestSnapshotService(t *testing.T, db *sql.DB, today string) *service.SnapshotService {
	t.Helper()
	return service.NewSnapshotService(NewTestAnalyticsService(t, db, today), repository.NewSnapshotRepository(db))
}

// NewTestReportService creates a ReportService on top of NewTestAnalyticsService.
func NewTestReportService(t *testing.T, db *sql.DB, today string) *service.ReportService {
	t.Helper()
	return service.NewReportService(NewTestAnalyticsService(t, db, today), report.New())
}
