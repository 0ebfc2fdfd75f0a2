// Package ledger implements the portfolio consolidation engine: a pure,
// single-pass replay of a chronologically ordered transaction list into
// per-asset positions, a FIFO-matched realized-gain ledger, a monthly tax
// report and an equity time series.
//
// The engine performs no I/O and holds no state between calls; everything
// is recomputed from scratch on every invocation. Callers are expected to
// supply well-formed transactions — validation lives at the API and import
// boundaries.
package ledger

import (
	"fmt"
	"time"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
)

// Epsilon absorbs floating round-off from repeated division during lot
// consumption and split rebasing. Quantities and invested capital at or
// below this threshold are treated as zero.
const Epsilon = 1e-8

// Lot is one acquisition batch of an asset, owned exclusively by a single
// Position. Lots are created by buys and bonus issues, consumed oldest-first
// by sells and redemptions, and rescaled in place by splits.
type Lot struct {
	Date             time.Time `json:"date"`
	Quantity         float64   `json:"quantity"`         // remaining, shrinks on sale
	OriginalQuantity float64   `json:"originalQuantity"` // fixed at creation, prorates fees
	UnitPrice        float64   `json:"unitPrice"`
	Fees             float64   `json:"fees"` // total fees paid for the original quantity
}

// Position is the running state for one asset at one broker in one country.
// TotalInvested tracks the remaining cost basis (not lifetime cost) and is
// kept consistent with TotalQuantity×AveragePrice after every mutation.
type Position struct {
	Ticker         string              `json:"ticker"`
	Broker         string              `json:"broker"`
	Country        string              `json:"country"`
	Category       model.AssetCategory `json:"category"`
	TotalQuantity  float64             `json:"totalQuantity"`
	AveragePrice   float64             `json:"averagePrice"`
	TotalInvested  float64             `json:"totalInvested"`
	TotalDividends float64             `json:"totalDividends"`
	Lots           []*Lot              `json:"lots"`

	// Fixed-income metadata, carried from the opening buy.
	MaturityDate *time.Time `json:"maturityDate,omitempty"`
	InterestRate string     `json:"interestRate,omitempty"`
}

// Key returns the composite identity of the position.
func (p *Position) Key() string {
	return PositionKey(p.Country, p.Ticker, p.Broker)
}

// PositionKey builds the composite key a transaction resolves its position by.
// The same ticker held at two brokers, or in two countries, is two positions.
func PositionKey(country, ticker, broker string) string {
	return fmt.Sprintf("%s:%s:%s", country, ticker, broker)
}

// RealizedGainDetail records the outcome of one sell or redemption:
// proceeds, consumed cost basis and the resulting gain, plus the month key
// the tax aggregator groups by.
type RealizedGainDetail struct {
	TransactionID string              `json:"transactionId"`
	Date          time.Time           `json:"date"`
	Ticker        string              `json:"ticker"`
	Broker        string              `json:"broker"`
	Country       string              `json:"country"`
	Category      model.AssetCategory `json:"category"`
	Quantity      float64             `json:"quantity"`
	SellPrice     float64             `json:"sellPrice"`
	CostBasis     float64             `json:"costBasis"`
	Gain          float64             `json:"gain"`
	Month         string              `json:"month"` // YYYY-MM
}

// MatchedLot is the audit trail of FIFO matching: which historical lot
// contributed how much quantity and cost basis to a given sale. The sum of
// matched quantities can be smaller than the sell quantity when earlier buys
// are missing from the input; the engine deliberately does not flag this.
type MatchedLot struct {
	LotDate      time.Time `json:"lotDate"`
	LotUnitPrice float64   `json:"lotUnitPrice"`
	Quantity     float64   `json:"quantity"`
	CostBasis    float64   `json:"costBasis"`
}

// MonthlyGain aggregates realized gains for one calendar month.
type MonthlyGain struct {
	Month string  `json:"month"` // YYYY-MM
	Gain  float64 `json:"gain"`
}

// HistoricalPoint is one sample of the equity curve: mark-to-market value
// of everything held (at last-observed transaction prices) plus cumulative
// realized cash, against the cumulative cost basis of open positions.
// There is exactly one point per distinct transaction date.
type HistoricalPoint struct {
	Date     time.Time `json:"date"`
	Equity   float64   `json:"equity"`
	Invested float64   `json:"invested"`
}

// Result is the complete output of one consolidation run.
type Result struct {
	Positions           []*Position             `json:"positions"`
	RealizedGainDetails []RealizedGainDetail    `json:"realizedGainDetails"`
	SellMatches         map[string][]MatchedLot `json:"sellMatches"`
	RealizedGains       []MonthlyGain           `json:"realizedGains"`
	HistoricalEquity    []HistoricalPoint       `json:"historicalEquity"`
	TaxReport           []TaxMonthlySummary     `json:"taxReport"`
}
