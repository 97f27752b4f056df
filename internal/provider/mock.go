package provider

import (
	"context"
	"sync"
	"time"

	"github.com/france8520/Fin-alpha/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Calls counts invocations so tests can assert that validation short-circuits
// before any fetch happens.
type MockFetcher struct {
	Series model.PriceSeries
	Err    error
	Calls  int

	mu sync.Mutex
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(_ context.Context, ticker string) (model.PriceSeries, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.Err != nil {
		return model.PriceSeries{}, m.Err
	}
	s := m.Series
	if s.Ticker == "" {
		s.Ticker = ticker
	}
	if s.Points == nil {
		s = GenerateSeries(ticker, 100, 252)
	}
	return s, nil
}

// GenerateSeries builds a gently trending daily close series ending today.
func GenerateSeries(ticker string, basePrice float64, count int) model.PriceSeries {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Time:  time.Now().UTC().AddDate(0, 0, -(count - i)),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return model.PriceSeries{Ticker: ticker, Points: points, FetchedAt: time.Now().UTC()}
}
