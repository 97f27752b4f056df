package risk

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/france8520/Fin-alpha/internal/model"
)

// Typed analysis failures callers match with errors.Is.
var (
	// ErrInsufficientData means the series has fewer observations than the
	// statistical minimum.
	ErrInsufficientData = errors.New("insufficient price history")

	// ErrDegenerateSeries means a computed statistic came out non-finite;
	// no partial result is returned in that case.
	ErrDegenerateSeries = errors.New("degenerate price series")
)

const (
	// TradingDaysPerYear is the fixed annualization constant.
	TradingDaysPerYear = 252

	// MinObservations is the fewest daily closes accepted for analysis.
	// Volatility and VaR over shorter histories are statistical noise.
	MinObservations = 30

	// Annualized-volatility thresholds for the qualitative categories.
	// Boundary values resolve to MEDIUM.
	mediumVolThreshold = 0.15
	highVolThreshold   = 0.30
)

// One-tailed standard-normal critical values for the parametric VaR levels
// (z95 ~ -1.645, z99 ~ -2.326).
var (
	z95 = distuv.UnitNormal.Quantile(0.05)
	z99 = distuv.UnitNormal.Quantile(0.01)
)

// DailyReturns computes simple day-over-day returns from a close series:
// returns[i] = closes[i+1]/closes[i] - 1, so len(returns) = len(closes) - 1.
func DailyReturns(closes []float64) ([]float64, error) {
	if len(closes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 closes, got %d", ErrInsufficientData, len(closes))
	}
	returns := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns[i-1] = closes[i]/closes[i-1] - 1
	}
	return returns, nil
}

// AnnualizedVolatility scales the sample standard deviation of daily returns
// to a one-year horizon.
func AnnualizedVolatility(returns []float64) float64 {
	return stat.StdDev(returns, nil) * math.Sqrt(TradingDaysPerYear)
}

// parametricVaR estimates the one-day loss not exceeded at the confidence
// level implied by z, assuming normally distributed returns. A computed
// "loss" that is actually a gain is clipped to zero.
func parametricVaR(mean, stdev, z float64) float64 {
	v := -(mean + z*stdev)
	if v <= 0 {
		return 0
	}
	return v
}

// MaxDrawdown returns the largest peak-to-trough fraction of decline over the
// close series. It is 0 exactly when prices never fall below a prior peak.
func MaxDrawdown(closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}
	peak := closes[0]
	maxDD := 0.0
	for _, c := range closes {
		if c > peak {
			peak = c
		}
		if dd := (peak - c) / peak; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// SharpeRatio computes annualized excess return per unit of volatility under
// a fixed 0% risk-free rate. A constant-return series has no defined ratio
// and maps to 0.
func SharpeRatio(mean, stdev float64) float64 {
	if stdev == 0 {
		return 0
	}
	return mean / stdev * math.Sqrt(TradingDaysPerYear)
}

// Categorize maps annualized volatility to a qualitative risk category.
func Categorize(vol float64) model.RiskCategory {
	switch {
	case vol > highVolThreshold:
		return model.RiskHigh
	case vol < mediumVolThreshold:
		return model.RiskLow
	default:
		return model.RiskMedium
	}
}
