package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/france8520/Fin-alpha/internal/model"
	"github.com/france8520/Fin-alpha/internal/provider"
	"github.com/france8520/Fin-alpha/internal/risk"
)

// stubAnalyzer routes each ticker to a canned result or error.
type stubAnalyzer struct {
	metrics map[string]*model.RiskMetrics
	errs    map[string]error
}

func (s *stubAnalyzer) AnalyzeTicker(_ context.Context, ticker string) (*model.RiskMetrics, error) {
	ticker = strings.ToUpper(ticker)
	if err, ok := s.errs[ticker]; ok {
		return nil, err
	}
	if m, ok := s.metrics[ticker]; ok {
		return m, nil
	}
	return nil, provider.ErrNotFound
}

func newTestServer() (*httptest.Server, *stubAnalyzer) {
	stub := &stubAnalyzer{
		metrics: map[string]*model.RiskMetrics{
			"AAPL": {
				Ticker:               "AAPL",
				CurrentPrice:         187.32,
				PeriodDays:           250,
				AnnualizedVolatility: 0.22,
				VaR95:                0.023,
				VaR99:                0.033,
				MaxDrawdown:          0.15,
				SharpeRatio:          1.1,
				Category:             model.RiskMedium,
			},
		},
		errs: map[string]error{
			"###":   provider.ErrInvalidTicker,
			"NEWCO": fmt.Errorf("analyze: %w", risk.ErrInsufficientData),
			"FLAKY": fmt.Errorf("fetch FLAKY: %w", provider.ErrTransport),
		},
	}
	return httptest.NewServer(Router(stub)), stub
}

func TestRiskEndpoint_OK(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/risk/AAPL")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var m model.RiskMetrics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, "AAPL", m.Ticker)
	assert.Equal(t, 250, m.PeriodDays)
	assert.Equal(t, model.RiskMedium, m.Category)
	assert.Equal(t, 0.023, m.VaR95)
}

func TestRiskEndpoint_ErrorMapping(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	tests := []struct {
		ticker string
		status int
	}{
		{"%23%23%23", http.StatusBadRequest}, // "###"
		{"GONE", http.StatusNotFound},
		{"NEWCO", http.StatusUnprocessableEntity},
		{"FLAKY", http.StatusBadGateway},
	}
	for _, tt := range tests {
		resp, err := http.Get(srv.URL + "/api/v1/risk/" + tt.ticker)
		require.NoError(t, err)
		assert.Equal(t, tt.status, resp.StatusCode, "ticker %s", tt.ticker)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.NotEmpty(t, body["error"])
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
