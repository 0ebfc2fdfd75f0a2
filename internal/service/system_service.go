package service

import (
	"database/sql"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/database"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/version"
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

// CheckVersion returns the build version and the applied schema version.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	schemaVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}
	return model.VersionInfo{
		Version:       version.Version,
		SchemaVersion: schemaVersion,
	}, nil
}
