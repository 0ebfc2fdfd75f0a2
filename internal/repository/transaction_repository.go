package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
)

// TransactionRepository provides data access methods for the asset_transaction table.
// It is the single source the consolidation engine replays from.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `
	id, date, ticker, broker, country, category, type,
	quantity, unit_price, fees, split_from, split_to,
	maturity_date, interest_rate, created_at
`

// GetAllTransactions retrieves every transaction ordered by date ascending.
// The consolidation engine re-sorts defensively, but returning them ordered
// keeps ad-hoc listings readable without another sort.
func (s *TransactionRepository) GetAllTransactions() ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM asset_transaction
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset_transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns a zero-value transaction (empty ID) when no row exists.
func (s *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	if transactionID == "" {
		return model.Transaction{}, nil
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM asset_transaction
		WHERE id = ?
	`

	row := s.db.QueryRow(query, transactionID)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return model.Transaction{}, nil
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// CreateTransaction inserts a new transaction.
func (s *TransactionRepository) CreateTransaction(t model.Transaction) error {
	query := `
		INSERT INTO asset_transaction (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		t.ID,
		t.Date.Format("2006-01-02"),
		t.Ticker,
		t.Broker,
		t.Country,
		string(t.Category),
		string(t.Type),
		t.Quantity,
		t.UnitPrice,
		t.Fees,
		t.SplitFrom,
		t.SplitTo,
		nullableDate(t.MaturityDate),
		t.InterestRate,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// CreateTransactions inserts a batch of transactions in a single database
// transaction. Used by the CSV importer so a bad row aborts the whole file.
func (s *TransactionRepository) CreateTransactions(transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO asset_transaction (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range transactions {
		_, err := stmt.Exec(
			t.ID,
			t.Date.Format("2006-01-02"),
			t.Ticker,
			t.Broker,
			t.Country,
			string(t.Category),
			string(t.Type),
			t.Quantity,
			t.UnitPrice,
			t.Fees,
			t.SplitFrom,
			t.SplitTo,
			nullableDate(t.MaturityDate),
			t.InterestRate,
			t.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// UpdateTransaction replaces the mutable fields of an existing transaction.
// Returns the number of affected rows so callers can detect a missing ID.
func (s *TransactionRepository) UpdateTransaction(t model.Transaction) (int64, error) {
	query := `
		UPDATE asset_transaction
		SET date = ?, ticker = ?, broker = ?, country = ?, category = ?, type = ?,
			quantity = ?, unit_price = ?, fees = ?, split_from = ?, split_to = ?,
			maturity_date = ?, interest_rate = ?
		WHERE id = ?
	`

	result, err := s.db.Exec(query,
		t.Date.Format("2006-01-02"),
		t.Ticker,
		t.Broker,
		t.Country,
		string(t.Category),
		string(t.Type),
		t.Quantity,
		t.UnitPrice,
		t.Fees,
		t.SplitFrom,
		t.SplitTo,
		nullableDate(t.MaturityDate),
		t.InterestRate,
		t.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update transaction: %w", err)
	}
	return result.RowsAffected()
}

// DeleteTransaction removes a transaction by ID.
// Returns the number of affected rows so callers can detect a missing ID.
func (s *TransactionRepository) DeleteTransaction(transactionID string) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM asset_transaction WHERE id = ?`, transactionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transaction: %w", err)
	}
	return result.RowsAffected()
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string
	var maturityStr sql.NullString

	err := row.Scan(
		&t.ID,
		&dateStr,
		&t.Ticker,
		&t.Broker,
		&t.Country,
		&t.Category,
		&t.Type,
		&t.Quantity,
		&t.UnitPrice,
		&t.Fees,
		&t.SplitFrom,
		&t.SplitTo,
		&maturityStr,
		&t.InterestRate,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return t, err
	}
	if err != nil {
		return t, fmt.Errorf("failed to scan asset_transaction row: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return t, fmt.Errorf("failed to parse date: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || t.CreatedAt.IsZero() {
		return t, fmt.Errorf("failed to parse date: %w", err)
	}

	// maturity_date is nullable
	if maturityStr.Valid {
		maturity, err := ParseTime(maturityStr.String)
		if err != nil {
			return t, fmt.Errorf("failed to parse maturity date: %w", err)
		}
		t.MaturityDate = &maturity
	}

	return t, nil
}
