package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/france8520/Fin-alpha/internal/model"
)

// DefaultLookback is the fixed fetch window: one trading year of daily bars.
// The chart API returns slightly fewer rows than 252 (holidays, partial
// weeks); the analyzer decides whether what came back is enough.
const DefaultLookback = "1y"

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance public chart API.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: defaultYahooBaseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchDailyCloses retrieves one trading year of daily closes for ticker.
func (f *YahooFetcher) FetchDailyCloses(ctx context.Context, ticker string) (model.PriceSeries, error) {
	if err := ValidateTicker(ticker); err != nil {
		return model.PriceSeries{}, err
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(ticker), DefaultLookback)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: yahoo fetch: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: yahoo read body: %v", ErrTransport, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return model.PriceSeries{}, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}
	if resp.StatusCode != http.StatusOK {
		return model.PriceSeries{}, fmt.Errorf("%w: yahoo status %d", ErrTransport, resp.StatusCode)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: yahoo decode: %v", ErrTransport, err)
	}
	if chart.Chart.Error != nil {
		// The chart API reports unknown symbols through this envelope.
		return model.PriceSeries{}, fmt.Errorf("%w: %s: %s", ErrNotFound, ticker, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return model.PriceSeries{}, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return model.PriceSeries{}, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}
	quote := result.Indicators.Quote[0]

	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		c := toFloat(quote.Close[i])
		if c <= 0 {
			continue // null bars (holidays) and malformed rows
		}
		points = append(points, model.PricePoint{Time: time.Unix(ts, 0).UTC(), Close: c})
	}
	if len(points) == 0 {
		return model.PriceSeries{}, fmt.Errorf("%w: %s: only empty bars returned", ErrNotFound, ticker)
	}

	return model.PriceSeries{
		Ticker:    ticker,
		Points:    normalizePoints(points),
		FetchedAt: time.Now().UTC(),
	}, nil
}

// normalizePoints sorts by time and drops duplicate timestamps so the series
// is strictly increasing.
func normalizePoints(points []model.PricePoint) []model.PricePoint {
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	out := points[:0]
	for _, p := range points {
		if len(out) > 0 && !p.Time.After(out[len(out)-1].Time) {
			continue
		}
		out = append(out, p)
	}
	return out
}
