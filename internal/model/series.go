package model

import "time"

// PricePoint is a single daily observation: trading date and closing price.
type PricePoint struct {
	Time  time.Time
	Close float64
}

// PriceSeries holds the daily closing-price history fetched for one ticker.
// Points are ordered by strictly increasing time and every close is positive;
// the provider enforces both before returning a series. A series belongs to
// the analysis call that fetched it and is not shared across requests.
type PriceSeries struct {
	Ticker    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Len returns the number of observations in the series.
func (s PriceSeries) Len() int { return len(s.Points) }

// Closes extracts the closing prices in time order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}
