package risk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/france8520/Fin-alpha/internal/model"
)

// Analyze derives the full set of risk statistics from a daily close series.
// It is pure: the same series always yields the same metrics, and either a
// complete record or a typed error comes back, never a partial result.
func Analyze(series model.PriceSeries) (*model.RiskMetrics, error) {
	closes := series.Closes()
	if len(closes) < MinObservations {
		return nil, fmt.Errorf("%w: %d observations for %s, need at least %d",
			ErrInsufficientData, len(closes), series.Ticker, MinObservations)
	}

	returns, err := DailyReturns(closes)
	if err != nil {
		return nil, err
	}

	mean := stat.Mean(returns, nil)
	stdev := stat.StdDev(returns, nil)

	m := &model.RiskMetrics{
		Ticker:               series.Ticker,
		CurrentPrice:         closes[len(closes)-1],
		PeriodDays:           len(closes),
		AnnualizedVolatility: stdev * math.Sqrt(TradingDaysPerYear),
		VaR95:                parametricVaR(mean, stdev, z95),
		VaR99:                parametricVaR(mean, stdev, z99),
		MaxDrawdown:          MaxDrawdown(closes),
		SharpeRatio:          SharpeRatio(mean, stdev),
	}
	m.Category = Categorize(m.AnnualizedVolatility)

	if err := checkFinite(m); err != nil {
		return nil, err
	}
	return m, nil
}

// checkFinite rejects any result carrying a NaN or infinity so callers never
// see a silently wrong value.
func checkFinite(m *model.RiskMetrics) error {
	for _, v := range []float64{
		m.CurrentPrice, m.AnnualizedVolatility, m.VaR95, m.VaR99, m.MaxDrawdown, m.SharpeRatio,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite statistic for %s", ErrDegenerateSeries, m.Ticker)
		}
	}
	return nil
}
