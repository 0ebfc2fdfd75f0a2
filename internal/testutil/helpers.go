package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/quotes"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/repository"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/service"
)

// NewTestFxRateService creates an FxRateService with a fixed fallback rate of 5.0.
func NewTestFxRateService(t *testing.T, db *sql.DB) *service.FxRateService {
	t.Helper()

	fxRateRepo := repository.NewFxRateRepository(db)

	return service.NewFxRateService(fxRateRepo, 5.0)
}

// StaticQuoteProvider serves quotes from a fixed map, never touching the
// network. Tickers absent from the map return apperrors.ErrQuoteNotFound.
type StaticQuoteProvider struct {
	Quotes map[string]quotes.Quote
}

// GetQuote returns the fixed quote for a symbol.
func (p *StaticQuoteProvider) GetQuote(symbol string) (quotes.Quote, error) {
	if quote, ok := p.Quotes[symbol]; ok {
		return quote, nil
	}
	return quotes.Quote{}, apperrors.ErrQuoteNotFound
}

// SetToken is a no-op on the static provider.
func (p *StaticQuoteProvider) SetToken(string) {}

// NewTestConsolidationService wires a ConsolidationService against the test
// database with an empty static quote provider.
func NewTestConsolidationService(t *testing.T, db *sql.DB) *service.ConsolidationService {
	t.Helper()
	return NewTestConsolidationServiceWithQuotes(t, db, nil)
}

// NewTestConsolidationServiceWithQuotes wires a ConsolidationService whose
// price service serves the given fixed quotes.
func NewTestConsolidationServiceWithQuotes(t *testing.T, db *sql.DB, fixed map[string]quotes.Quote) *service.ConsolidationService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	fxRateService := NewTestFxRateService(t, db)
	priceService := service.NewPriceService(&StaticQuoteProvider{Quotes: fixed})

	return service.NewConsolidationService(
		transactionRepo,
		snapshotRepo,
		fxRateService,
		priceService,
	)
}

// NewTestTransactionService wires a TransactionService against the test database.
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		NewTestConsolidationService(t, db),
	)
}

// NewTestSettingsService creates a SettingsService with a deterministic fernet key.
func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	settingRepo := repository.NewSettingRepository(db)

	// 32 zero bytes, base64-encoded; fine for tests.
	settingsService, err := service.NewSettingsService(settingRepo, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=")
	if err != nil {
		t.Fatalf("Failed to create settings service: %v", err)
	}
	return settingsService
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
