package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ParseTime parses a date string in "2006-01-02", "2006-01-02 15:04:05" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{dateLayout, datetimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatetime(t time.Time) string {
	return t.UTC().Format(datetimeLayout)
}
