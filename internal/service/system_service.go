package service

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/database"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/model"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}

// CheckVersion reports the application version and the applied schema version.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	dbVersion, err := database.Version(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	info := model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(dbVersion, 10),
		Features: map[string]bool{
			"fifo_realization": true,
			"advisors":         true,
			"snapshots":        true,
			"xlsx_report":      true,
		},
	}
	if dbVersion < database.LatestVersion {
		info.MigrationNeeded = true
		msg := "database schema is behind; restart the server to apply migrations"
		info.MigrationMessage = &msg
	}
	return info, nil
}
