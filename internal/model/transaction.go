package model

import "time"

// TransactionType identifies the market event a transaction represents.
type TransactionType string

// Supported transaction types. These are stored as-is in the database and
// drive the replay dispatch in the ledger engine.
const (
	TypeBuy        TransactionType = "buy"
	TypeSell       TransactionType = "sell"
	TypeDividend   TransactionType = "dividend"
	TypeBonus      TransactionType = "bonus"
	TypeSplit      TransactionType = "split"
	TypeRedemption TransactionType = "redemption"
)

// AssetCategory classifies an asset for tax purposes.
// Stocks, fund shares and fixed income fall under different fiscal rules
// and must never share a tax bucket.
type AssetCategory string

const (
	CategoryStock       AssetCategory = "stock"
	CategoryFund        AssetCategory = "fund"
	CategoryFixedIncome AssetCategory = "fixed_income"
)

// CountryLocal marks transactions settled in local currency (BRL).
// Any other country code is treated as foreign and normalized through
// the exchange rate supplied to the consolidation run.
const CountryLocal = "BR"

// Transaction represents a single market event for one asset at one broker.
// It is the immutable input of the consolidation engine; validation happens
// at the API/import boundary, never inside the engine.
type Transaction struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	Ticker    string          `json:"ticker"`
	Broker    string          `json:"broker"`
	Country   string          `json:"country"`
	Category  AssetCategory   `json:"category"`
	Type      TransactionType `json:"type"`
	Quantity  float64         `json:"quantity"`
	UnitPrice float64         `json:"unitPrice"`
	Fees      float64         `json:"fees"`

	// Split events only.
	SplitFrom float64 `json:"splitFrom,omitempty"`
	SplitTo   float64 `json:"splitTo,omitempty"`

	// Fixed-income buys only.
	MaturityDate *time.Time `json:"maturityDate,omitempty"`
	InterestRate string     `json:"interestRate,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// IsLocal reports whether the transaction settles in local currency.
func (t Transaction) IsLocal() bool {
	return t.Country == CountryLocal
}
