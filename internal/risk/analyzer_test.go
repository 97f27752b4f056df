package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/france8520/Fin-alpha/internal/model"
)

func seriesFromCloses(ticker string, closes []float64) model.PriceSeries {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{Time: start.AddDate(0, 0, i), Close: c}
	}
	return model.PriceSeries{Ticker: ticker, Points: points, FetchedAt: start}
}

func constantCloses(n int, price float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return closes
}

func TestAnalyze_ConstantSeries(t *testing.T) {
	m, err := Analyze(seriesFromCloses("FLAT", constantCloses(30, 42)))
	require.NoError(t, err)

	assert.Equal(t, "FLAT", m.Ticker)
	assert.Equal(t, 30, m.PeriodDays)
	assert.Equal(t, 42.0, m.CurrentPrice)
	assert.Zero(t, m.AnnualizedVolatility)
	assert.Zero(t, m.VaR95)
	assert.Zero(t, m.VaR99)
	assert.Zero(t, m.MaxDrawdown)
	assert.Zero(t, m.SharpeRatio)
	assert.Equal(t, model.RiskLow, m.Category)
}

func TestAnalyze_InsufficientData(t *testing.T) {
	_, err := Analyze(seriesFromCloses("X", []float64{100}))
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = Analyze(seriesFromCloses("X", constantCloses(MinObservations-1, 100)))
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = Analyze(model.PriceSeries{Ticker: "X"})
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestAnalyze_Idempotent(t *testing.T) {
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 100 + 10*float64(i%5) - 3*float64(i%3)
	}
	series := seriesFromCloses("RPT", closes)

	first, err := Analyze(series)
	require.NoError(t, err)
	second, err := Analyze(series)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnalyze_VolatileSeries(t *testing.T) {
	// Alternating ±5% days: plenty of variance, both VaR levels positive.
	closes := make([]float64, 60)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%2 == 0 {
			closes[i] = closes[i-1] * 1.05
		} else {
			closes[i] = closes[i-1] * 0.95
		}
	}
	m, err := Analyze(seriesFromCloses("SWING", closes))
	require.NoError(t, err)

	assert.Greater(t, m.AnnualizedVolatility, 0.30)
	assert.Equal(t, model.RiskHigh, m.Category)
	assert.Greater(t, m.VaR95, 0.0)
	assert.GreaterOrEqual(t, m.VaR99, m.VaR95)
	assert.Greater(t, m.MaxDrawdown, 0.0)
	assert.LessOrEqual(t, m.MaxDrawdown, 1.0)
}

func TestAnalyze_MonotoneDecline(t *testing.T) {
	closes := make([]float64, 252)
	for i := range closes {
		closes[i] = 100 - 50*float64(i)/251
	}
	m, err := Analyze(seriesFromCloses("DOWN", closes))
	require.NoError(t, err)

	assert.InDelta(t, 0.5, m.MaxDrawdown, 1e-12)
	assert.Less(t, m.SharpeRatio, 0.0)
}

func TestAnalyze_DegenerateSeries(t *testing.T) {
	// An overflow-scale jump drives the return series non-finite; the
	// analyzer must fail rather than surface NaN or Inf.
	closes := constantCloses(30, 1e-300)
	closes[15] = 1e300
	_, err := Analyze(seriesFromCloses("BOOM", closes))
	require.ErrorIs(t, err, ErrDegenerateSeries)
}
