package model

import "time"

// ExchangeRate is a stored conversion rate between two currencies on a date.
type ExchangeRate struct {
	ID           string    `json:"id"`
	FromCurrency string    `json:"fromCurrency"`
	ToCurrency   string    `json:"toCurrency"`
	Date         time.Time `json:"date"`
	Rate         float64   `json:"rate"`
}
