package request

// SetExchangeRateRequest is the body for POST /api/rates.
type SetExchangeRateRequest struct {
	FromCurrency string  `json:"fromCurrency"`
	ToCurrency   string  `json:"toCurrency"`
	Date         string  `json:"date"`
	Rate         float64 `json:"rate"`
}
