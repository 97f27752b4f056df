package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/france8520/Fin-alpha/internal/model"
	"github.com/france8520/Fin-alpha/internal/provider"
	"github.com/france8520/Fin-alpha/internal/risk"
)

// Analyzer is the slice of the risk engine the API needs.
type Analyzer interface {
	AnalyzeTicker(ctx context.Context, ticker string) (*model.RiskMetrics, error)
}

// errorResponse is the JSON body returned for failed analyses.
type errorResponse struct {
	Error string `json:"error"`
}

// New builds the HTTP server exposing the risk engine.
func New(analyzer Analyzer, addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      Router(analyzer),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
}

// Router wires the API routes. Split out from New so tests can drive the
// handler directly.
func Router(analyzer Analyzer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]string{"status": "ok"})
	})
	r.Get("/api/v1/risk/{ticker}", handleRisk(analyzer))

	return r
}

func handleRisk(analyzer Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ticker := chi.URLParam(req, "ticker")

		metrics, err := analyzer.AnalyzeTicker(req.Context(), ticker)
		if err != nil {
			render.Status(req, statusFor(err))
			render.JSON(w, req, errorResponse{Error: err.Error()})
			return
		}
		render.JSON(w, req, metrics)
	}
}

// statusFor maps the typed analysis failures onto HTTP status codes so API
// clients can distinguish "fix the symbol" from "try again".
func statusFor(err error) int {
	switch {
	case errors.Is(err, provider.ErrInvalidTicker):
		return http.StatusBadRequest
	case errors.Is(err, provider.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, risk.ErrInsufficientData), errors.Is(err, risk.ErrDegenerateSeries):
		return http.StatusUnprocessableEntity
	case errors.Is(err, provider.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
