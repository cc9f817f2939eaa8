package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Equity-Ledger-Backend/internal/api/middleware"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/config"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/service"
)

// Services groups the services the router exposes.
type Services struct {
	System      *service.SystemService
	Transaction *service.TransactionService
	Settings    *service.SettingsService
	Analytics   *service.AnalyticsService
	Snapshot    *service.SnapshotService
	Report      *service.ReportService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(services.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Post("/batch", transactionHandler.CreateTransactions)
			r.Get("/stocks", transactionHandler.Stocks)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(services.Settings)
			r.Get("/", settingsHandler.GetSettings)
			r.Put("/", settingsHandler.UpdateSettings)
		})

		r.Route("/analytics", func(r chi.Router) {
			analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics, services.Snapshot)
			r.Get("/dashboard", analyticsHandler.Dashboard)
			r.Get("/pnl", analyticsHandler.PnL)
			r.Get("/holdings", analyticsHandler.Holdings)
			r.Get("/insights", analyticsHandler.Insights)
			r.Get("/quality", analyticsHandler.Quality)
			r.Get("/cycles", analyticsHandler.Cycles)
			r.Get("/losses", analyticsHandler.Losses)
			r.Get("/benchmark", analyticsHandler.Benchmark)
			r.Get("/exit", analyticsHandler.Exit)
			r.Get("/snapshots", analyticsHandler.Snapshots)
			r.Post("/snapshots", analyticsHandler.TakeSnapshot)
		})

		r.Route("/report", func(r chi.Router) {
			reportHandler := handlers.NewReportHandler(services.Report)
			r.Get("/xlsx", reportHandler.XLSX)
		})
	})

	return r
}
