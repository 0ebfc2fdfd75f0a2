package service

import (
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/quotes"
)

// maxConcurrentQuoteRequests bounds the fan-out against the quote provider.
const maxConcurrentQuoteRequests = 4

// PriceService fetches live market prices for portfolio tickers.
type PriceService struct {
	client quotes.Provider
}

// NewPriceService creates a new PriceService backed by the given quote provider.
func NewPriceService(client quotes.Provider) *PriceService {
	return &PriceService{client: client}
}

// GetPrice fetches the latest quote for a single ticker.
func (s *PriceService) GetPrice(ticker string) (quotes.Quote, error) {
	return s.client.GetQuote(ticker)
}

// GetPrices fetches quotes for the given tickers concurrently and returns
// whatever succeeded. Individual failures are logged and skipped so one
// delisted ticker cannot blank out the whole portfolio view.
func (s *PriceService) GetPrices(tickers []string) map[string]quotes.Quote {
	prices := make(map[string]quotes.Quote, len(tickers))
	if len(tickers) == 0 {
		return prices
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(maxConcurrentQuoteRequests)

	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			quote, err := s.client.GetQuote(ticker)
			if err != nil {
				log.Printf("quote fetch failed for %s: %v", ticker, err)
				return nil
			}
			mu.Lock()
			prices[ticker] = quote
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait is for completion only.
	_ = g.Wait()
	return prices
}

// SetToken updates the quote provider token at runtime, used when the
// encrypted setting changes through the API.
func (s *PriceService) SetToken(token string) {
	s.client.SetToken(token)
}
