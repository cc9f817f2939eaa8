package request

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/accounting"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
)

// DefaultDashboardRange is the number of months shown when no range is given.
const DefaultDashboardRange = 1

// ParseDashboardRange converts the range query parameter to a number of months.
// "all" returns 0, which means no cutoff.
func ParseDashboardRange(param string) (int, error) {
	param = strings.TrimSpace(strings.ToLower(param))
	switch param {
	case "":
		return DefaultDashboardRange, nil
	case "all":
		return 0, nil
	}

	months, err := strconv.Atoi(param)
	if err != nil || months <= 0 {
		return 0, fmt.Errorf("range must be a positive number of months or \"all\", got %q", param)
	}
	return months, nil
}

// ParseTradeFilter builds a realized trade filter from the from, to and stock query
// parameters. Dates are YYYY-MM-DD and both bounds are optional.
func ParseTradeFilter(fromParam, toParam, stockParam string) (accounting.TradeFilter, error) {
	f := accounting.TradeFilter{Stock: strings.TrimSpace(stockParam)}

	var err error
	if fromParam != "" {
		if f.From, err = time.Parse(time.DateOnly, fromParam); err != nil {
			return f, fmt.Errorf("invalid from date: %w", err)
		}
	}
	if toParam != "" {
		if f.To, err = time.Parse(time.DateOnly, toParam); err != nil {
			return f, fmt.Errorf("invalid to date: %w", err)
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, fmt.Errorf("%w: to is before from", apperrors.ErrInvalidDateRange)
	}
	return f, nil
}

// ExitRequest is a hypothetical partial sale read from the exit query parameters.
type ExitRequest struct {
	Stock string
	Qty   decimal.Decimal
	Price decimal.Decimal
}

// ParseExitRequest reads stock, qty and price. All three are required.
func ParseExitRequest(stockParam, qtyParam, priceParam string) (ExitRequest, error) {
	req := ExitRequest{Stock: strings.ToUpper(strings.TrimSpace(stockParam))}
	if req.Stock == "" {
		return req, fmt.Errorf("stock is required")
	}

	var err error
	if req.Qty, err = decimal.NewFromString(qtyParam); err != nil {
		return req, fmt.Errorf("invalid qty: %w", err)
	}
	if req.Price, err = decimal.NewFromString(priceParam); err != nil {
		return req, fmt.Errorf("invalid price: %w", err)
	}
	return req, nil
}

// ParseSnapshotRange reads the optional start_date and end_date parameters. Missing
// bounds default to the Unix epoch and to today.
func ParseSnapshotRange(startParam, endParam string, today time.Time) (time.Time, time.Time, error) {
	start := time.Unix(0, 0).UTC()
	end := today

	var err error
	if startParam != "" {
		if start, err = time.Parse(time.DateOnly, startParam); err != nil {
			return start, end, fmt.Errorf("invalid start_date: %w", err)
		}
	}
	if endParam != "" {
		if end, err = time.Parse(time.DateOnly, endParam); err != nil {
			return start, end, fmt.Errorf("invalid end_date: %w", err)
		}
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("%w: end_date is before start_date", apperrors.ErrInvalidDateRange)
	}
	return start, end, nil
}
