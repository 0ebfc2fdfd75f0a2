package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple buy with defaults
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Customized sell
//	tx := testutil.NewTransaction().
//	    OfType(model.TypeSell).
//	    WithTicker("VALE3").
//	    WithQuantity(50).
//	    WithUnitPrice(61.20).
//	    OnDate(2024, time.March, 15).
//	    Build(t, db)
type TransactionBuilder struct {
	ID        string
	Date      time.Time
	Ticker    string
	Broker    string
	Country   string
	Category  model.AssetCategory
	Type      model.TransactionType
	Quantity  float64
	UnitPrice float64
	Fees      float64
	SplitFrom float64
	SplitTo   float64
}

// NewTransaction creates a TransactionBuilder with sensible defaults:
// a local stock buy of 100 shares at 10.00 with no fees.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		Date:      time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Ticker:    "PETR4",
		Broker:    "Inter",
		Country:   model.CountryLocal,
		Category:  model.CategoryStock,
		Type:      model.TypeBuy,
		Quantity:  100,
		UnitPrice: 10.00,
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// OnDate sets the transaction date.
func (b *TransactionBuilder) OnDate(year int, month time.Month, day int) *TransactionBuilder {
	b.Date = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return b
}

// WithTicker sets the ticker.
func (b *TransactionBuilder) WithTicker(ticker string) *TransactionBuilder {
	b.Ticker = ticker
	return b
}

// WithBroker sets the broker.
func (b *TransactionBuilder) WithBroker(broker string) *TransactionBuilder {
	b.Broker = broker
	return b
}

// WithCountry sets the country.
func (b *TransactionBuilder) WithCountry(country string) *TransactionBuilder {
	b.Country = country
	return b
}

// WithCategory sets the asset category.
func (b *TransactionBuilder) WithCategory(category model.AssetCategory) *TransactionBuilder {
	b.Category = category
	return b
}

// OfType sets the transaction type.
func (b *TransactionBuilder) OfType(txType model.TransactionType) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithQuantity sets the quantity.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithUnitPrice sets the unit price.
func (b *TransactionBuilder) WithUnitPrice(price float64) *TransactionBuilder {
	b.UnitPrice = price
	return b
}

// WithFees sets the fees.
func (b *TransactionBuilder) WithFees(fees float64) *TransactionBuilder {
	b.Fees = fees
	return b
}

// WithSplitRatio sets the split ratio for split transactions.
func (b *TransactionBuilder) WithSplitRatio(from, to float64) *TransactionBuilder {
	b.SplitFrom = from
	b.SplitTo = to
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO asset_transaction (
			id, date, ticker, broker, country, category, type,
			quantity, unit_price, fees, split_from, split_to,
			maturity_date, interest_rate, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, '', ?)
	`

	createdAt := time.Now().UTC()
	_, err := db.Exec(query,
		b.ID,
		b.Date.Format("2006-01-02"),
		b.Ticker,
		b.Broker,
		b.Country,
		string(b.Category),
		string(b.Type),
		b.Quantity,
		b.UnitPrice,
		b.Fees,
		b.SplitFrom,
		b.SplitTo,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		Date:      b.Date,
		Ticker:    b.Ticker,
		Broker:    b.Broker,
		Country:   b.Country,
		Category:  b.Category,
		Type:      b.Type,
		Quantity:  b.Quantity,
		UnitPrice: b.UnitPrice,
		Fees:      b.Fees,
		SplitFrom: b.SplitFrom,
		SplitTo:   b.SplitTo,
		CreatedAt: createdAt,
	}
}

// Convenience functions

// CreateBuy creates a buy transaction for the given ticker.
func CreateBuy(t *testing.T, db *sql.DB, ticker string, quantity, price float64) model.Transaction {
	t.Helper()
	return NewTransaction().WithTicker(ticker).WithQuantity(quantity).WithUnitPrice(price).Build(t, db)
}

// CreateSell creates a sell transaction for the given ticker.
func CreateSell(t *testing.T, db *sql.DB, ticker string, quantity, price float64) model.Transaction {
	t.Helper()
	return NewTransaction().
		OfType(model.TypeSell).
		OnDate(2024, time.June, 15).
		WithTicker(ticker).
		WithQuantity(quantity).
		WithUnitPrice(price).
		Build(t, db)
}
