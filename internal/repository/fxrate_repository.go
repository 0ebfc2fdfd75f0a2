package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
)

// FxRateRepository provides data access methods for the exchange_rate table.
type FxRateRepository struct {
	db *sql.DB
}

// NewFxRateRepository creates a new FxRateRepository with the provided database connection.
func NewFxRateRepository(db *sql.DB) *FxRateRepository {
	return &FxRateRepository{db: db}
}

// GetRate retrieves the stored rate for a currency pair on the most recent
// date at or before the given date. Returns apperrors.ErrExchangeRateNotFound
// when no rate has ever been stored for the pair.
func (s *FxRateRepository) GetRate(fromCurrency, toCurrency string, date time.Time) (model.ExchangeRate, error) {
	query := `
		SELECT id, from_currency, to_currency, date, rate
		FROM exchange_rate
		WHERE from_currency = ? AND to_currency = ? AND date <= ?
		ORDER BY date DESC
		LIMIT 1
	`

	var r model.ExchangeRate
	var dateStr string
	err := s.db.QueryRow(query, fromCurrency, toCurrency, date.Format("2006-01-02")).Scan(
		&r.ID,
		&r.FromCurrency,
		&r.ToCurrency,
		&dateStr,
		&r.Rate,
	)
	if err == sql.ErrNoRows {
		return model.ExchangeRate{}, apperrors.ErrExchangeRateNotFound
	}
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("failed to scan exchange_rate row: %w", err)
	}

	r.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return r, nil
}

// UpsertRate stores or replaces the rate for a currency pair and date.
func (s *FxRateRepository) UpsertRate(r model.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rate (id, from_currency, to_currency, date, rate)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(from_currency, to_currency, date) DO UPDATE SET rate = excluded.rate
	`

	_, err := s.db.Exec(query,
		r.ID,
		r.FromCurrency,
		r.ToCurrency,
		r.Date.Format("2006-01-02"),
		r.Rate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}
	return nil
}
