package service

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/database"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/model"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/version"
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
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version and the latest applied migration.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	var dbVersion sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(version_id) FROM goose_db_version WHERE is_applied = 1`).Scan(&dbVersion)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("failed to read schema version: %w", err)
	}

	info := model.VersionInfo{AppVersion: version.Version, DbVersion: "0"}
	if dbVersion.Valid {
		info.DbVersion = strconv.FormatInt(dbVersion.Int64, 10)
	}
	return info, nil
}
