package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/repository"
)

// FxRateService resolves exchange rates for the consolidation engine.
type FxRateService struct {
	fxRateRepo   *repository.FxRateRepository
	fallbackRate float64
}

// NewFxRateService creates a new FxRateService. fallbackRate is used when no
// stored rate exists for the requested pair.
func NewFxRateService(fxRateRepo *repository.FxRateRepository, fallbackRate float64) *FxRateService {
	return &FxRateService{
		fxRateRepo:   fxRateRepo,
		fallbackRate: fallbackRate,
	}
}

// CurrentRate returns the most recent stored rate for the pair, or the
// configured fallback when none exists. The replay must always run; a missing
// rate degrades precision, not availability.
func (s *FxRateService) CurrentRate(fromCurrency, toCurrency string) float64 {
	rate, err := s.fxRateRepo.GetRate(fromCurrency, toCurrency, time.Now().UTC())
	if err != nil {
		if err != apperrors.ErrExchangeRateNotFound {
			log.Printf("exchange rate lookup failed for %s/%s: %v", fromCurrency, toCurrency, err)
		}
		return s.fallbackRate
	}
	return rate.Rate
}

// GetRate returns the stored rate for a pair at a specific date.
func (s *FxRateService) GetRate(fromCurrency, toCurrency string, date time.Time) (model.ExchangeRate, error) {
	if fromCurrency == "" || toCurrency == "" {
		return model.ExchangeRate{}, apperrors.ErrInvalidCurrency
	}
	return s.fxRateRepo.GetRate(fromCurrency, toCurrency, date)
}

// SetRate stores a rate for a pair and date.
func (s *FxRateService) SetRate(fromCurrency, toCurrency string, date time.Time, rate float64) (model.ExchangeRate, error) {
	if fromCurrency == "" || toCurrency == "" {
		return model.ExchangeRate{}, apperrors.ErrInvalidCurrency
	}
	if rate <= 0 {
		return model.ExchangeRate{}, apperrors.ErrNegativeAmount
	}

	r := model.ExchangeRate{
		ID:           uuid.New().String(),
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		Date:         date,
		Rate:         rate,
	}
	if err := s.fxRateRepo.UpsertRate(r); err != nil {
		return model.ExchangeRate{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToUpdateExchangeRate, err)
	}
	return r, nil
}
