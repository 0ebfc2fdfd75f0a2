package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
)

// SettingRepository provides data access methods for the system_setting table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting by key.
// Returns apperrors.ErrSettingNotFound when the key does not exist.
func (s *SettingRepository) GetSetting(key string) (model.SystemSetting, error) {
	query := `SELECT key, value, encrypted, updated_at FROM system_setting WHERE key = ?`

	var setting model.SystemSetting
	var updatedAtStr string
	err := s.db.QueryRow(query, key).Scan(
		&setting.Key,
		&setting.Value,
		&setting.Encrypted,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.SystemSetting{}, apperrors.ErrSettingNotFound
	}
	if err != nil {
		return model.SystemSetting{}, fmt.Errorf("failed to scan system_setting row: %w", err)
	}

	setting.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.SystemSetting{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return setting, nil
}

// UpsertSetting stores or replaces a setting.
func (s *SettingRepository) UpsertSetting(setting model.SystemSetting) error {
	query := `
		INSERT INTO system_setting (key, value, encrypted, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			encrypted = excluded.encrypted,
			updated_at = excluded.updated_at
	`

	_, err := s.db.Exec(query,
		setting.Key,
		setting.Value,
		setting.Encrypted,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}
