package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/france8520/Fin-alpha/internal/model"
	"github.com/france8520/Fin-alpha/internal/provider"
	"github.com/france8520/Fin-alpha/internal/risk"
)

type fakeNotifier struct {
	msgs []string
}

func (f *fakeNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	f.msgs = append(f.msgs, text)
	return nil
}

func seriesWithCloses(ticker string, closes []float64) model.PriceSeries {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{Time: start.AddDate(0, 0, i), Close: c}
	}
	return model.PriceSeries{Ticker: ticker, Points: points}
}

// volatileCloses alternates ±8% daily: annualized volatility far above the
// HIGH threshold.
func volatileCloses(n int) []float64 {
	closes := make([]float64, n)
	closes[0] = 100
	for i := 1; i < n; i++ {
		if i%2 == 0 {
			closes[i] = closes[i-1] * 1.08
		} else {
			closes[i] = closes[i-1] * 0.92
		}
	}
	return closes
}

func constantCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100
	}
	return closes
}

func newTestWatcher(mock *provider.MockFetcher, watchlist []string) (*Watcher, *fakeNotifier) {
	fn := &fakeNotifier{}
	w := NewWatcher(context.Background(), risk.NewEngine(mock), fn, watchlist)
	return w, fn
}

func TestSweep_FirstObservationAlertsOnlyOnHigh(t *testing.T) {
	mock := &provider.MockFetcher{Series: seriesWithCloses("CALM", constantCloses(60))}
	w, fn := newTestWatcher(mock, []string{"CALM"})

	w.RunSweepNow()
	assert.Empty(t, fn.msgs, "LOW first observation must not alert")

	mock.Series = seriesWithCloses("WILD", volatileCloses(60))
	w2, fn2 := newTestWatcher(mock, []string{"WILD"})
	w2.RunSweepNow()
	require.Len(t, fn2.msgs, 1, "HIGH first observation must alert")
	assert.Contains(t, fn2.msgs[0], "WILD")
	assert.Contains(t, fn2.msgs[0], "HIGH")
}

func TestSweep_AlertsOnCategoryChange(t *testing.T) {
	mock := &provider.MockFetcher{Series: seriesWithCloses("ACME", constantCloses(60))}
	w, fn := newTestWatcher(mock, []string{"ACME"})

	w.RunSweepNow()
	require.Empty(t, fn.msgs)

	// Same ticker turns volatile: LOW -> HIGH must alert.
	mock.Series = seriesWithCloses("ACME", volatileCloses(60))
	w.RunSweepNow()
	require.Len(t, fn.msgs, 1)
	assert.Contains(t, fn.msgs[0], "Risk level change")
	assert.Contains(t, fn.msgs[0], "LOW")
	assert.Contains(t, fn.msgs[0], "HIGH")

	// Unchanged category stays quiet.
	w.RunSweepNow()
	assert.Len(t, fn.msgs, 1)
}

func TestSweep_FetchFailureDoesNotAlert(t *testing.T) {
	mock := &provider.MockFetcher{Err: provider.ErrTransport}
	w, fn := newTestWatcher(mock, []string{"AAPL", "MSFT"})

	w.RunSweepNow()
	assert.Empty(t, fn.msgs)
	assert.Equal(t, 2, mock.Calls)
}

func TestHandleCommand_Risk(t *testing.T) {
	mock := &provider.MockFetcher{Series: seriesWithCloses("AAPL", constantCloses(60))}
	w, _ := newTestWatcher(mock, []string{"AAPL"})

	reply := w.HandleCommand("/risk aapl")
	assert.Contains(t, reply, "AAPL")
	assert.Contains(t, reply, "Risk level")

	reply = w.HandleCommand("/risk")
	assert.Contains(t, reply, "Usage")

	reply = w.HandleCommand("/risk ###")
	assert.Contains(t, reply, "not a valid ticker")
}

func TestHandleCommand_Watchlist(t *testing.T) {
	mock := &provider.MockFetcher{Series: seriesWithCloses("AAPL", constantCloses(60))}
	w, _ := newTestWatcher(mock, []string{"AAPL", "MSFT"})

	reply := w.HandleCommand("/watchlist")
	assert.Contains(t, reply, "AAPL: not analyzed yet")
	assert.Contains(t, reply, "MSFT: not analyzed yet")

	w.HandleCommand("/risk AAPL")
	reply = w.HandleCommand("/watchlist")
	assert.Contains(t, reply, "AAPL: LOW")
}

func TestHandleCommand_Unknown(t *testing.T) {
	w, _ := newTestWatcher(&provider.MockFetcher{}, []string{"AAPL"})
	assert.Contains(t, w.HandleCommand("/frobnicate"), "Available commands")
	assert.Contains(t, w.HandleCommand(""), "Available commands")
}
