package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/api"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/config"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/database"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/report"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/scheduler"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/service"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/version"
)

// snapshotJobTimeout bounds one run of the daily snapshot job.
const snapshotJobTimeout = 5 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	loc, err := cfg.Scheduler.Location()
	if err != nil {
		slog.Error("Failed to load scheduler timezone", slog.Any("error", err))
		os.Exit(1)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("Failed to migrate database", slog.Any("error", err))
		os.Exit(1) //nolint:gocritic // exitAfterDefer
	}

	slog.Info("Connected to database", slog.String("path", cfg.Database.Path), slog.String("version", version.Version))

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	analyticsService := service.NewAnalyticsService(transactionRepo, settingsRepo, loc)
	snapshotService := service.NewSnapshotService(analyticsService, snapshotRepo)
	services := api.Services{
		System:      service.NewSystemService(db),
		Transaction: service.NewTransactionService(db, transactionRepo),
		Settings:    service.NewSettingsService(settingsRepo),
		Analytics:   analyticsService,
		Snapshot:    snapshotService,
		Report:      service.NewReportService(analyticsService, report.New()),
	}

	// Schedule the daily snapshot
	sched := scheduler.New(loc, snapshotJobTimeout)
	if cfg.Scheduler.Enabled {
		if err := sched.NewCrontabJob("daily snapshot", snapshotService.TakeSnapshot, cfg.Scheduler.SnapshotCron); err != nil {
			slog.Error("Failed to schedule snapshot job", slog.Any("error", err))
			os.Exit(1)
		}
		sched.Start()
		slog.Info("Snapshot job scheduled",
			slog.String("cron", cfg.Scheduler.SnapshotCron),
			slog.String("timezone", loc.String()),
		)
	}

	// Create router
	router := api.NewRouter(services, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Starting server", slog.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	sched.Stop(ctx)
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	slog.Info("Server exited")
}

// setupLogger installs the default slog logger. Config validation has already
// rejected unknown levels and formats.
func setupLogger(cfg config.LogConfig) {
	level, _ := config.ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
