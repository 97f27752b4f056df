package provider

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/france8520/Fin-alpha/internal/model"
)

// Typed failures callers match with errors.Is to pick user-facing messaging.
var (
	// ErrInvalidTicker means the symbol fails shape validation; no network
	// request is made for such a symbol.
	ErrInvalidTicker = errors.New("invalid ticker symbol")

	// ErrNotFound means the symbol looks valid but no price data exists
	// behind it (unknown or delisted).
	ErrNotFound = errors.New("no price data found")

	// ErrTransport means the request to the market-data source failed
	// (network, timeout, or provider-side error). Transient by nature.
	ErrTransport = errors.New("market data transport failure")
)

// Fetcher defines the interface for fetching a daily closing-price history.
// Implementations return roughly one trading year of closes, oldest first,
// with non-positive and out-of-order rows already filtered out.
type Fetcher interface {
	FetchDailyCloses(ctx context.Context, ticker string) (model.PriceSeries, error)
	Name() string
}

// Exchange symbols: 1-10 characters of letters, digits, dot, or dash, with an
// optional leading caret for index symbols (^GSPC).
var tickerPattern = regexp.MustCompile(`^\^?[A-Za-z0-9][A-Za-z0-9.\-]{0,9}$`)

// ValidateTicker checks the symbol shape without touching the network.
func ValidateTicker(ticker string) error {
	if !tickerPattern.MatchString(ticker) {
		return fmt.Errorf("%w: %q", ErrInvalidTicker, ticker)
	}
	return nil
}
