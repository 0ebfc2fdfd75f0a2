package repository

import (
	"database/sql"
	"fmt"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/ledger"
)

// SnapshotRepository persists the materialized equity curve. The curve is
// always recomputable from the transaction log; this table only exists so
// the history endpoint can answer without a full replay.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// ReplaceEquityHistory atomically swaps the stored curve for a fresh one.
// A partial write would leave the chart with a hole, hence the transaction.
func (s *SnapshotRepository) ReplaceEquityHistory(points []ledger.HistoricalPoint) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM equity_history`); err != nil {
		return fmt.Errorf("failed to clear equity history: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO equity_history (date, equity, invested) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(p.Date.Format("2006-01-02"), p.Equity, p.Invested); err != nil {
			return fmt.Errorf("failed to insert equity point: %w", err)
		}
	}

	return tx.Commit()
}

// GetEquityHistory retrieves the stored curve ordered by date ascending.
func (s *SnapshotRepository) GetEquityHistory() ([]ledger.HistoricalPoint, error) {
	rows, err := s.db.Query(`SELECT date, equity, invested FROM equity_history ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query equity_history table: %w", err)
	}
	defer rows.Close()

	points := []ledger.HistoricalPoint{}
	for rows.Next() {
		var p ledger.HistoricalPoint
		var dateStr string
		if err := rows.Scan(&dateStr, &p.Equity, &p.Invested); err != nil {
			return nil, fmt.Errorf("failed to scan equity_history row: %w", err)
		}
		p.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		points = append(points, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating equity_history table: %w", err)
	}

	return points, nil
}
