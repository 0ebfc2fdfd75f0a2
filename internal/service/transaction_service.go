package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/api/request"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/ledger"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/repository"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/validation"
)

// TransactionService handles writes to the transaction log. Every successful
// write triggers an equity snapshot rebuild so the materialized curve never
// lags the ledger.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	consolidation   *ConsolidationService
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	consolidation *ConsolidationService,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		consolidation:   consolidation,
	}
}

// GetTransactions returns the full transaction log ordered by date.
func (s *TransactionService) GetTransactions() ([]model.Transaction, error) {
	transactions, err := s.transactionRepo.GetAllTransactions()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}
	return transactions, nil
}

// GetTransaction returns a single transaction by ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	t, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransaction, err)
	}
	if t.ID == "" {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	return t, nil
}

// CreateTransaction validates and stores a new transaction.
func (s *TransactionService) CreateTransaction(req request.CreateTransactionRequest) (model.Transaction, error) {
	if err := validation.ValidateCreateTransaction(req); err != nil {
		return model.Transaction{}, err
	}

	t, err := transactionFromRequest(req)
	if err != nil {
		return model.Transaction{}, err
	}
	t.ID = uuid.New().String()
	t.CreatedAt = time.Now().UTC()

	if err := s.transactionRepo.CreateTransaction(t); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.rebuildSnapshots()
	return t, nil
}

// ImportTransactions stores a pre-parsed batch from the CSV importer.
func (s *TransactionService) ImportTransactions(transactions []model.Transaction) (int, error) {
	now := time.Now().UTC()
	for i := range transactions {
		if transactions[i].ID == "" {
			transactions[i].ID = uuid.New().String()
		}
		transactions[i].CreatedAt = now
	}

	if err := s.transactionRepo.CreateTransactions(transactions); err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrFailedToImportTransactions, err)
	}

	s.rebuildSnapshots()
	return len(transactions), nil
}

// UpdateTransaction applies a partial update to an existing transaction.
func (s *TransactionService) UpdateTransaction(transactionID string, req request.UpdateTransactionRequest) (model.Transaction, error) {
	if err := validation.ValidateUpdateTransaction(req); err != nil {
		return model.Transaction{}, err
	}

	existing, err := s.GetTransaction(transactionID)
	if err != nil {
		return model.Transaction{}, err
	}

	applyTransactionUpdate(&existing, req)

	affected, err := s.transactionRepo.UpdateTransaction(existing)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to update transaction: %w", err)
	}
	if affected == 0 {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}

	s.rebuildSnapshots()
	return existing, nil
}

// DeleteTransaction removes a transaction from the log.
func (s *TransactionService) DeleteTransaction(transactionID string) error {
	affected, err := s.transactionRepo.DeleteTransaction(transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	s.rebuildSnapshots()
	return nil
}

// GetSellMatches exposes the FIFO audit trail for one sell transaction.
func (s *TransactionService) GetSellMatches(transactionID string) ([]ledger.MatchedLot, error) {
	return s.consolidation.GetSellMatches(transactionID)
}

// rebuildSnapshots refreshes the materialized equity curve after a write.
// Failure is logged, not returned: the write already committed and the
// nightly rebuild will repair the snapshot.
func (s *TransactionService) rebuildSnapshots() {
	if err := s.consolidation.RebuildEquitySnapshots(); err != nil {
		log.Printf("snapshot rebuild after write failed: %v", err)
	}
}

func transactionFromRequest(req request.CreateTransactionRequest) (model.Transaction, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return model.Transaction{}, &validation.Error{Fields: map[string]string{"date": err.Error()}}
	}

	t := model.Transaction{
		Date:         date.UTC(),
		Ticker:       req.Ticker,
		Broker:       req.Broker,
		Country:      req.Country,
		Category:     model.AssetCategory(req.Category),
		Type:         model.TransactionType(req.Type),
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Fees:         req.Fees,
		SplitFrom:    req.SplitFrom,
		SplitTo:      req.SplitTo,
		InterestRate: req.InterestRate,
	}

	if req.MaturityDate != "" {
		maturity, err := time.Parse("2006-01-02", req.MaturityDate)
		if err != nil {
			return model.Transaction{}, &validation.Error{Fields: map[string]string{"maturityDate": err.Error()}}
		}
		maturity = maturity.UTC()
		t.MaturityDate = &maturity
	}

	return t, nil
}

func applyTransactionUpdate(t *model.Transaction, req request.UpdateTransactionRequest) {
	if req.Date != nil {
		if date, err := time.Parse("2006-01-02", *req.Date); err == nil {
			t.Date = date.UTC()
		}
	}
	if req.Ticker != nil {
		t.Ticker = *req.Ticker
	}
	if req.Broker != nil {
		t.Broker = *req.Broker
	}
	if req.Country != nil {
		t.Country = *req.Country
	}
	if req.Category != nil {
		t.Category = model.AssetCategory(*req.Category)
	}
	if req.Type != nil {
		t.Type = model.TransactionType(*req.Type)
	}
	if req.Quantity != nil {
		t.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		t.UnitPrice = *req.UnitPrice
	}
	if req.Fees != nil {
		t.Fees = *req.Fees
	}
	if req.SplitFrom != nil {
		t.SplitFrom = *req.SplitFrom
	}
	if req.SplitTo != nil {
		t.SplitTo = *req.SplitTo
	}
	if req.InterestRate != nil {
		t.InterestRate = *req.InterestRate
	}
	if req.MaturityDate != nil {
		if *req.MaturityDate == "" {
			t.MaturityDate = nil
		} else if maturity, err := time.Parse("2006-01-02", *req.MaturityDate); err == nil {
			maturity = maturity.UTC()
			t.MaturityDate = &maturity
		}
	}
}
