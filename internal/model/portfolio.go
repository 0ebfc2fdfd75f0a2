package model

import "time"

// PositionSummary is the API view of one open position, combining the
// replayed ledger state with an optional live market price.
type PositionSummary struct {
	Ticker         string        `json:"ticker"`
	Broker         string        `json:"broker"`
	Country        string        `json:"country"`
	Category       AssetCategory `json:"category"`
	Quantity       float64       `json:"quantity"`
	AveragePrice   float64       `json:"averagePrice"`
	TotalInvested  float64       `json:"totalInvested"`
	TotalDividends float64       `json:"totalDividends"`
	CurrentPrice   float64       `json:"currentPrice,omitempty"`
	CurrentValue   float64       `json:"currentValue,omitempty"`
	UnrealizedGain float64       `json:"unrealizedGain,omitempty"`
	MaturityDate   *time.Time    `json:"maturityDate,omitempty"`
	InterestRate   string        `json:"interestRate,omitempty"`
}
