package quotes

import "time"

// Response is the raw payload returned by the brapi quote endpoint.
type Response struct {
	Results []Result `json:"results"`
	Error   *string  `json:"error,omitempty"`
}

// Result is one quoted ticker inside a Response.
type Result struct {
	Symbol             string  `json:"symbol"`
	ShortName          string  `json:"shortName"`
	LongName           string  `json:"longName"`
	Currency           string  `json:"currency"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	RegularMarketTime  string  `json:"regularMarketTime"`
}

// Quote is the normalized price the rest of the application consumes.
type Quote struct {
	Symbol   string    `json:"symbol"`
	Name     string    `json:"name"`
	Currency string    `json:"currency"`
	Price    float64   `json:"price"`
	AsOf     time.Time `json:"asOf"`
}
