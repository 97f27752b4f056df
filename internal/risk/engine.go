package risk

import (
	"context"
	"fmt"
	"strings"

	"github.com/france8520/Fin-alpha/internal/model"
	"github.com/france8520/Fin-alpha/internal/provider"
)

// Engine ties a data provider to the analyzer. It is stateless: every call
// owns its own series and may run concurrently with others.
type Engine struct {
	Fetcher provider.Fetcher
}

// NewEngine creates an Engine backed by the given fetcher.
func NewEngine(f provider.Fetcher) *Engine {
	return &Engine{Fetcher: f}
}

// AnalyzeTicker validates the symbol, fetches one trading year of daily
// closes, and computes the risk report. A malformed symbol is rejected
// before any network access.
func (e *Engine) AnalyzeTicker(ctx context.Context, ticker string) (*model.RiskMetrics, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if err := provider.ValidateTicker(ticker); err != nil {
		return nil, err
	}

	series, err := e.Fetcher.FetchDailyCloses(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}

	return Analyze(series)
}
