package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
)

// ParseTransactionID converts a path parameter to a positive transaction ID.
func ParseTransactionID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrInvalidTransactionID, id)
	}
	return n, nil
}

// NormalizeStock returns the canonical upper-case symbol for a stock name.
func NormalizeStock(stock string) string {
	return strings.ToUpper(strings.TrimSpace(stock))
}
