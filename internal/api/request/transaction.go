package request

// CreateTransactionRequest is the body for POST /api/transaction.
type CreateTransactionRequest struct {
	Date         string  `json:"date"`
	Ticker       string  `json:"ticker"`
	Broker       string  `json:"broker"`
	Country      string  `json:"country"`
	Category     string  `json:"category"`
	Type         string  `json:"type"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	Fees         float64 `json:"fees"`
	SplitFrom    float64 `json:"splitFrom,omitempty"`
	SplitTo      float64 `json:"splitTo,omitempty"`
	MaturityDate string  `json:"maturityDate,omitempty"`
	InterestRate string  `json:"interestRate,omitempty"`
}

// UpdateTransactionRequest is the body for PUT /api/transaction/{uuid}.
type UpdateTransactionRequest struct {
	Date         *string  `json:"date,omitempty"`
	Ticker       *string  `json:"ticker,omitempty"`
	Broker       *string  `json:"broker,omitempty"`
	Country      *string  `json:"country,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Type         *string  `json:"type,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	UnitPrice    *float64 `json:"unitPrice,omitempty"`
	Fees         *float64 `json:"fees,omitempty"`
	SplitFrom    *float64 `json:"splitFrom,omitempty"`
	SplitTo      *float64 `json:"splitTo,omitempty"`
	MaturityDate *string  `json:"maturityDate,omitempty"`
	InterestRate *string  `json:"interestRate,omitempty"`
}
