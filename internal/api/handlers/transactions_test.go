package handlers

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/testutil"
)

func setupTransactionHandler(t *testing.T) (*TransactionHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ts := testutil.NewTestTransactionService(t, db)
	return NewTransactionHandler(ts), db
}

func withBody(req *http.Request, body string) *http.Request {
	req.Body = io.NopCloser(strings.NewReader(body))
	return req
}

func TestTransactionHandler_AllTransactions(t *testing.T) {
	t.Run("returns empty array when no transactions exist", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response == nil {
			t.Error("Expected non-nil array, got nil")
		}

		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d transactions", len(response))
		}
	})

	t.Run("returns the ledger in replay order", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		sell := testutil.NewSell("INFY", "2024-02-01", "10", "1600").Build(t, db)
		buy := testutil.NewBuy("INFY", "2024-01-01", "10", "1500").Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(response))
		}
		if response[0].ID != buy.ID || response[1].ID != sell.ID {
			t.Errorf("Expected buy before sell, got IDs %d, %d", response[0].ID, response[1].ID)
		}
	})

	t.Run("returns 500 when database is closed", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	handler, db := setupTransactionHandler(t)
	existing := testutil.NewBuy("TCS", "2024-01-02", "5", "3500").WithBrokerage("12.5").Build(t, db)

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{"existing transaction", strconv.FormatInt(existing.ID, 10), http.StatusOK},
		{"unknown id", "9999", http.StatusNotFound},
		{"non-numeric id", "abc", http.StatusBadRequest},
		{"zero id", "0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+tt.id, map[string]string{"id": tt.id})
			w := httptest.NewRecorder()

			handler.GetTransaction(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var response model.Transaction
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if response.Stock != "TCS" || !response.Brokerage.Valid {
				t.Errorf("Unexpected transaction %+v", response)
			}
			testutil.AssertDecimal(t, "brokerage", response.Brokerage.Decimal, "12.5")
		})
	}
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("creates a transaction", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		body := `{"date":"2024-01-01","stock":"infy","type":"buy","qty":"10","price":1500.5,"reason":"Breakout"}`
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.ID == 0 || response.Stock != "INFY" || response.Type != model.TransactionBuy {
			t.Errorf("Unexpected transaction %+v", response)
		}
		testutil.AssertDecimal(t, "price", response.Price, "1500.5")
		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})

	t.Run("returns field errors", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		body := `{"date":"2024-13-01","stock":"","type":"HOLD","qty":"0","price":"-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var response struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		for _, field := range []string{"date", "stock", "type", "qty", "price"} {
			if _, ok := response.Details[field]; !ok {
				t.Errorf("Expected an error for %s, got %v", field, response.Details)
			}
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 0)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader(`{"date":`))
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_CreateTransactions(t *testing.T) {
	t.Run("creates the batch", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		body := `{"transactions":[
			{"date":"2024-01-01","stock":"INFY","type":"BUY","qty":"10","price":"1500"},
			{"date":"2024-02-01","stock":"INFY","type":"SELL","qty":"10","price":"1600","brokerage":"20"}
		]}`
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/batch", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTransactions(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 2)
	})

	t.Run("stores nothing when one trade is invalid", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		body := `{"transactions":[
			{"date":"2024-01-01","stock":"INFY","type":"BUY","qty":"10","price":"1500"},
			{"date":"2024-02-01","stock":"INFY","type":"SELL","qty":"-1","price":"1600"}
		]}`
		req := httptest.NewRequest(http.MethodPost, "/api/transaction/batch", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTransactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var errResp response.ErrorResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&errResp)
		details, _ := errResp.Details.(map[string]interface{})
		if _, ok := details["transactions[1].qty"]; !ok {
			t.Errorf("Expected an error for transactions[1].qty, got %v", errResp.Details)
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 0)
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	handler, db := setupTransactionHandler(t)
	existing := testutil.NewBuy("INFY", "2024-01-01", "10", "1500").Build(t, db)
	id := strconv.FormatInt(existing.ID, 10)

	t.Run("updates the given fields", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodPut, "/api/transaction/"+id, map[string]string{"id": id})
		req = withBody(req, `{"qty":"12"}`)
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		testutil.AssertDecimal(t, "qty", response.Qty, "12")
		testutil.AssertDecimal(t, "price", response.Price, "1500")
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodPut, "/api/transaction/"+id, map[string]string{"id": id})
		req = withBody(req, `{"type":"HOLD"}`)
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodPut, "/api/transaction/9999", map[string]string{"id": "9999"})
		req = withBody(req, `{"qty":"1"}`)
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	handler, db := setupTransactionHandler(t)
	existing := testutil.NewBuy("INFY", "2024-01-01", "10", "1500").Build(t, db)
	id := strconv.FormatInt(existing.ID, 10)

	req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/transaction/"+id, map[string]string{"id": id})
	w := httptest.NewRecorder()

	handler.DeleteTransaction(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
	}
	testutil.AssertRowCount(t, db, `"transaction"`, 0)

	w = httptest.NewRecorder()
	handler.DeleteTransaction(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on second delete, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTransactionHandler_Stocks(t *testing.T) {
	handler, db := setupTransactionHandler(t)
	testutil.NewBuy("TCS", "2024-01-01", "1", "3500").Build(t, db)
	testutil.NewBuy("INFY", "2024-01-02", "1", "1500").Build(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/transaction/stocks", nil)
	w := httptest.NewRecorder()

	handler.Stocks(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response []string
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&response)
	if len(response) != 2 || response[0] != "INFY" {
		t.Errorf("Expected [INFY TCS], got %v", response)
	}
}
