package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/config"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.NewBuy("INFY", "2024-01-01", "100", "100").Build(t, db)
	testutil.NewSell("INFY", "2024-02-01", "100", "120").Build(t, db)
	testutil.NewBuy("TCS", "2024-03-01", "10", "100").Build(t, db)

	services := Services{
		System:      testutil.NewTestSystemService(t, db),
		Transaction: testutil.NewTestTransactionService(t, db),
		Settings:    testutil.NewTestSettingsService(t, db),
		Analytics:   testutil.NewTestAnalyticsService(t, db, "2024-06-15"),
		Snapshot:    testutil.NewTestSnapshotService(t, db, "2024-06-15"),
		Report:      testutil.NewTestReportService(t, db, "2024-06-15"),
	}
	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}
	return NewRouter(services, cfg)
}

// TestNewRouter tests that every endpoint is mounted on its documented path.
func TestNewRouter(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{http.MethodGet, "/api/system/health", "", http.StatusOK},
		{http.MethodGet, "/api/system/version", "", http.StatusOK},
		{http.MethodGet, "/api/transaction", "", http.StatusOK},
		{http.MethodGet, "/api/transaction/stocks", "", http.StatusOK},
		{http.MethodGet, "/api/transaction/1", "", http.StatusOK},
		{http.MethodGet, "/api/transaction/abc", "", http.StatusBadRequest},
		{http.MethodPost, "/api/transaction", `{"date":"2024-04-01","stock":"HDFC","type":"BUY","qty":"1","price":"1600"}`, http.StatusCreated},
		{http.MethodPost, "/api/transaction/batch", `{"transactions":[]}`, http.StatusBadRequest},
		{http.MethodPut, "/api/transaction/1", `{"reason":"Breakout"}`, http.StatusOK},
		{http.MethodGet, "/api/settings", "", http.StatusOK},
		{http.MethodGet, "/api/analytics/dashboard?range=3", "", http.StatusOK},
		{http.MethodGet, "/api/analytics/pnl?stock=INFY", "", http.StatusOK},
		{http.MethodGet, "/api/analytics/holdings", "", http.StatusOK},
		{http.MethodGet, "/api/analytics/insights", "", http.StatusOK},
		{http.MethodGet, "/api/analytics/quality", "", http.StatusOK},
		{http.MethodGet, "/api/analytics/cycles", "", http.StatusOK},
		{http.MethodGet, "/api/analytics/losses", "", http.StatusOK},
		{http.MethodGet, "/api/analytics/benchmark", "", http.StatusOK},
		{http.MethodGet, "/api/analytics/exit?stock=TCS&qty=1&price=110", "", http.StatusOK},
		{http.MethodPost, "/api/analytics/snapshots", "", http.StatusNoContent},
		{http.MethodGet, "/api/analytics/snapshots", "", http.StatusOK},
		{http.MethodGet, "/api/report/xlsx", "", http.StatusOK},
		{http.MethodDelete, "/api/transaction/1", "", http.StatusNoContent},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}
