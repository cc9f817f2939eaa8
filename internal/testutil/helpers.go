package testutil

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// Date parses a "2006-01-02" calendar day at UTC midnight and panics on bad input.
//
// Example usage:
//
//	d := testutil.Date("2024-02-01")
func Date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Dec parses a decimal literal and panics on bad input.
//
// Example usage:
//
//	price := testutil.Dec("101.25")
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// AssertDecimal fails the test when got is not numerically equal to want.
//
// Example usage:
//
//	testutil.AssertDecimal(t, "net", trade.Net, "1917")
func AssertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()

	if !got.Equal(Dec(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

// AssertDecimalRounded compares got to want after rounding got to places decimals.
func AssertDecimalRounded(t *testing.T, name string, got decimal.Decimal, places int32, want string) {
	t.Helper()

	if !got.Round(places).Equal(Dec(want)) {
		t.Errorf("%s = %s (rounded %s), want %s", name, got, got.Round(places), want)
	}
}

// MakeSymbol generates a stock ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("INFY")
//	// Returns: "INFY1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// CaptureLogs routes the default slog logger into the returned buffer as JSON lines
// until the test ends. Tests using it must not run in parallel.
//
// Example usage:
//
//	logs := testutil.CaptureLogs(t)
//	// ... exercise code ...
//	if !strings.Contains(logs.String(), `"msg":"transaction updated"`) { ... }
func CaptureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}
