package service

import (
	"fmt"
	"log"
	"time"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/ledger"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/repository"
)

// ConsolidationService orchestrates full-ledger replays. Every read endpoint
// that needs portfolio state goes through Consolidate: there is no
// incremental bookkeeping to drift out of sync with the transaction log.
type ConsolidationService struct {
	transactionRepo *repository.TransactionRepository
	snapshotRepo    *repository.SnapshotRepository
	fxRateService   *FxRateService
	priceService    *PriceService
}

// NewConsolidationService creates a new ConsolidationService.
func NewConsolidationService(
	transactionRepo *repository.TransactionRepository,
	snapshotRepo *repository.SnapshotRepository,
	fxRateService *FxRateService,
	priceService *PriceService,
) *ConsolidationService {
	return &ConsolidationService{
		transactionRepo: transactionRepo,
		snapshotRepo:    snapshotRepo,
		fxRateService:   fxRateService,
		priceService:    priceService,
	}
}

// Consolidate replays the entire transaction log and returns the raw result.
func (s *ConsolidationService) Consolidate() (ledger.Result, error) {
	transactions, err := s.transactionRepo.GetAllTransactions()
	if err != nil {
		return ledger.Result{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToConsolidate, err)
	}

	fxRate := s.fxRateService.CurrentRate("USD", "BRL")
	return ledger.Replay(transactions, fxRate), nil
}

// GetPortfolio returns the open positions enriched with live market prices
// where available. Quote failures degrade to ledger-only values; the
// portfolio view must never go down because a quote provider is.
func (s *ConsolidationService) GetPortfolio() ([]model.PositionSummary, error) {
	result, err := s.Consolidate()
	if err != nil {
		return nil, err
	}

	tickers := make([]string, 0, len(result.Positions))
	for _, pos := range result.Positions {
		if pos.Country == model.CountryLocal && pos.Category != model.CategoryFixedIncome {
			tickers = append(tickers, pos.Ticker)
		}
	}
	prices := s.priceService.GetPrices(tickers)

	summaries := make([]model.PositionSummary, 0, len(result.Positions))
	for _, pos := range result.Positions {
		summary := model.PositionSummary{
			Ticker:         pos.Ticker,
			Broker:         pos.Broker,
			Country:        pos.Country,
			Category:       pos.Category,
			Quantity:       pos.TotalQuantity,
			AveragePrice:   round(pos.AveragePrice),
			TotalInvested:  round(pos.TotalInvested),
			TotalDividends: round(pos.TotalDividends),
			MaturityDate:   pos.MaturityDate,
			InterestRate:   pos.InterestRate,
		}

		if quote, ok := prices[pos.Ticker]; ok {
			summary.CurrentPrice = quote.Price
			summary.CurrentValue = round(pos.TotalQuantity * quote.Price)
			summary.UnrealizedGain = round(summary.CurrentValue - pos.TotalInvested)
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// GetTaxReport returns the monthly Brazilian tax summaries.
func (s *ConsolidationService) GetTaxReport() ([]ledger.TaxMonthlySummary, error) {
	result, err := s.Consolidate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetTaxReport, err)
	}
	return result.TaxReport, nil
}

// GetRealizedGains returns monthly realized-gain totals across all countries.
func (s *ConsolidationService) GetRealizedGains() ([]ledger.MonthlyGain, error) {
	result, err := s.Consolidate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetRealizedGains, err)
	}
	return result.RealizedGains, nil
}

// GetSellMatches returns the FIFO audit trail for one sell transaction.
func (s *ConsolidationService) GetSellMatches(transactionID string) ([]ledger.MatchedLot, error) {
	result, err := s.Consolidate()
	if err != nil {
		return nil, err
	}
	matches, ok := result.SellMatches[transactionID]
	if !ok {
		return nil, apperrors.ErrTransactionNotFound
	}
	return matches, nil
}

// GetEquityHistory returns the equity curve. It prefers the materialized
// snapshot and falls back to a fresh replay (persisting it on the way out)
// when the snapshot is empty, as after a restore or schema migration.
func (s *ConsolidationService) GetEquityHistory() ([]ledger.HistoricalPoint, error) {
	points, err := s.snapshotRepo.GetEquityHistory()
	if err == nil && len(points) > 0 {
		return points, nil
	}
	if err != nil {
		log.Printf("equity snapshot read failed, replaying: %v", err)
	}

	result, err := s.Consolidate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetEquityHistory, err)
	}

	if err := s.snapshotRepo.ReplaceEquityHistory(result.HistoricalEquity); err != nil {
		// Serving the curve matters more than materializing it.
		log.Printf("failed to materialize equity history: %v", err)
	}
	return result.HistoricalEquity, nil
}

// RebuildEquitySnapshots replays the ledger and replaces the materialized
// curve. Called after every write to the transaction log and nightly by the
// scheduler.
func (s *ConsolidationService) RebuildEquitySnapshots() error {
	started := time.Now()

	result, err := s.Consolidate()
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToRebuildSnapshots, err)
	}
	if err := s.snapshotRepo.ReplaceEquityHistory(result.HistoricalEquity); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToRebuildSnapshots, err)
	}

	log.Printf("equity snapshots rebuilt: %d points in %s", len(result.HistoricalEquity), time.Since(started))
	return nil
}
