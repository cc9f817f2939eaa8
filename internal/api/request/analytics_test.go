package request

import (
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
)

func TestParseDashboardRange(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		want    int
		wantErr bool
	}{
		{"default", "", DefaultDashboardRange, false},
		{"all", "ALL", 0, false},
		{"months", "6", 6, false},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"garbage", "year", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDashboardRange(tt.param)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDashboardRange(%q) error = %v, wantErr %v", tt.param, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDashboardRange(%q) = %d, want %d", tt.param, got, tt.want)
			}
		})
	}
}

func TestParseTradeFilter(t *testing.T) {
	t.Run("parses all parameters", func(t *testing.T) {
		f, err := ParseTradeFilter("2024-01-01", "2024-03-31", " tcs ")
		if err != nil {
			t.Fatalf("ParseTradeFilter() returned unexpected error: %v", err)
		}
		if f.Stock != "tcs" {
			t.Errorf("Expected trimmed stock, got %q", f.Stock)
		}
		if !f.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Unexpected from %v", f.From)
		}
	})

	t.Run("empty parameters match everything", func(t *testing.T) {
		f, err := ParseTradeFilter("", "", "")
		if err != nil {
			t.Fatalf("ParseTradeFilter() returned unexpected error: %v", err)
		}
		if !f.From.IsZero() || !f.To.IsZero() || f.Stock != "" {
			t.Errorf("Expected zero filter, got %+v", f)
		}
	})

	t.Run("rejects reversed range", func(t *testing.T) {
		_, err := ParseTradeFilter("2024-03-01", "2024-01-01", "")
		if !errors.Is(err, apperrors.ErrInvalidDateRange) {
			t.Errorf("Expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("rejects bad date", func(t *testing.T) {
		if _, err := ParseTradeFilter("01/02/2024", "", ""); err == nil {
			t.Error("Expected error, got nil")
		}
	})
}

func TestParseExitRequest(t *testing.T) {
	req, err := ParseExitRequest(" infy ", "10", "1520.5")
	if err != nil {
		t.Fatalf("ParseExitRequest() returned unexpected error: %v", err)
	}
	if req.Stock != "INFY" || req.Qty.String() != "10" || req.Price.String() != "1520.5" {
		t.Errorf("Unexpected request %+v", req)
	}

	for _, params := range [][3]string{{"", "1", "1"}, {"X", "ten", "1"}, {"X", "1", ""}} {
		if _, err := ParseExitRequest(params[0], params[1], params[2]); err == nil {
			t.Errorf("Expected error for %v", params)
		}
	}
}

func TestParseSnapshotRange(t *testing.T) {
	today := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	start, end, err := ParseSnapshotRange("", "", today)
	if err != nil {
		t.Fatalf("ParseSnapshotRange() returned unexpected error: %v", err)
	}
	if start.Year() != 1970 || !end.Equal(today) {
		t.Errorf("Unexpected defaults %v - %v", start, end)
	}

	if _, _, err := ParseSnapshotRange("2024-05-02", "", today); !errors.Is(err, apperrors.ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange, got %v", err)
	}
}
