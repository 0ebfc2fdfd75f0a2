package quotes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
)

const defaultBaseURL = "https://brapi.dev/api"

// Provider is the quote-fetching surface the rest of the application depends
// on. Tests substitute a mock; production uses Client.
type Provider interface {
	GetQuote(symbol string) (Quote, error)
	SetToken(token string)
}

// Client provides methods for fetching B3 quotes from the brapi API.
// Responses are cached for a short TTL so a consolidation pass touching the
// same ticker repeatedly issues one upstream request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	cache      *cache.Cache
}

// NewClient creates a new brapi client. The token may be empty; brapi serves
// a limited free tier without one.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
		cache:      cache.New(15*time.Minute, 30*time.Minute),
	}
}

// SetToken replaces the API token at runtime. The cache is flushed because
// the free and paid tiers can return different data for the same ticker.
func (c *Client) SetToken(token string) {
	c.token = token
	c.cache.Flush()
}

// GetQuote fetches the latest market price for a single ticker.
//
// Returns apperrors.ErrQuoteNotFound when the API knows nothing about the
// ticker, which callers treat as "keep the last transaction price".
func (c *Client) GetQuote(symbol string) (Quote, error) {
	if cached, ok := c.cache.Get(symbol); ok {
		return cached.(Quote), nil
	}

	endpoint := fmt.Sprintf("%s/quote/%s", c.baseURL, url.PathEscape(symbol))
	if c.token != "" {
		endpoint += "?token=" + url.QueryEscape(c.token)
	}

	response, err := c.query(endpoint)
	if err != nil {
		return Quote{}, err
	}
	if len(response.Results) == 0 {
		return Quote{}, apperrors.ErrQuoteNotFound
	}

	result := response.Results[0]
	asOf, err := time.Parse(time.RFC3339, result.RegularMarketTime)
	if err != nil {
		// Some tickers come back without a market time; fall back to now.
		asOf = time.Now().UTC()
	}

	quote := Quote{
		Symbol:   result.Symbol,
		Name:     result.LongName,
		Currency: result.Currency,
		Price:    result.RegularMarketPrice,
		AsOf:     asOf,
	}
	if quote.Name == "" {
		quote.Name = result.ShortName
	}

	c.cache.Set(symbol, quote, cache.DefaultExpiration)
	return quote, nil
}

// query executes a GET against the brapi API and decodes the response.
func (c *Client) query(endpoint string) (Response, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Response{}, apperrors.ErrQuoteNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("brapi returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Error != nil {
		return response, fmt.Errorf("brapi error: %s", *response.Error)
	}

	return response, nil
}
