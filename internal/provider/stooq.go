package provider

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/france8520/Fin-alpha/internal/model"
)

// StooqFetcher implements Fetcher using the Stooq daily-history CSV endpoint.
// It serves as the fallback data source when Yahoo is unreachable from the
// deployment network.
type StooqFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewStooqFetcher creates a new fetcher with optional proxy support. baseURL
// defaults to the public Stooq host when empty.
func NewStooqFetcher(baseURL, proxyURL string) *StooqFetcher {
	if baseURL == "" {
		baseURL = "https://stooq.com"
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &StooqFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *StooqFetcher) Name() string { return "stooq" }

// stooqSymbol maps an exchange ticker to Stooq's naming: lowercase, with a
// ".us" suffix for plain US symbols.
func stooqSymbol(ticker string) string {
	s := strings.ToLower(ticker)
	if !strings.Contains(s, ".") && !strings.HasPrefix(s, "^") {
		s += ".us"
	}
	return s
}

// FetchDailyCloses retrieves one trading year of daily closes for ticker.
func (f *StooqFetcher) FetchDailyCloses(ctx context.Context, ticker string) (model.PriceSeries, error) {
	if err := ValidateTicker(ticker); err != nil {
		return model.PriceSeries{}, err
	}

	now := time.Now().UTC()
	from := now.AddDate(-1, 0, 0)
	u := fmt.Sprintf("%s/q/d/l/?s=%s&i=d&d1=%s&d2=%s",
		f.BaseURL, url.QueryEscape(stooqSymbol(ticker)),
		from.Format("20060102"), now.Format("20060102"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("stooq request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: stooq fetch: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.PriceSeries{}, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}
	if resp.StatusCode != http.StatusOK {
		return model.PriceSeries{}, fmt.Errorf("%w: stooq status %d", ErrTransport, resp.StatusCode)
	}

	points, err := parseStooqCSV(resp.Body)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%s: %w", ticker, err)
	}

	return model.PriceSeries{
		Ticker:    ticker,
		Points:    normalizePoints(points),
		FetchedAt: time.Now().UTC(),
	}, nil
}

// parseStooqCSV reads the Date,Open,High,Low,Close,Volume daily history
// format. Stooq answers unknown symbols with a "No data" body instead of an
// error status.
func parseStooqCSV(r io.Reader) ([]model.PricePoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: empty response", ErrNotFound)
	}
	if len(header) < 5 || !strings.EqualFold(header[0], "Date") {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.Join(header, ","))
	}

	var points []model.PricePoint
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: stooq csv: %v", ErrTransport, err)
		}
		if len(row) < 5 {
			continue
		}
		day, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			continue
		}
		c, err := strconv.ParseFloat(row[4], 64)
		if err != nil || c <= 0 {
			continue
		}
		points = append(points, model.PricePoint{Time: day.UTC(), Close: c})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no rows in history", ErrNotFound)
	}
	return points, nil
}
