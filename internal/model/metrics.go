package model

// RiskCategory is the qualitative bucket derived from annualized volatility.
type RiskCategory string

const (
	RiskLow    RiskCategory = "LOW"
	RiskMedium RiskCategory = "MEDIUM"
	RiskHigh   RiskCategory = "HIGH"
)

// RiskMetrics is the result of one risk analysis. It is constructed once per
// successful analysis and never mutated afterwards; every numeric field is
// finite. VaR values are one-day loss magnitudes (non-negative fractions of
// position value), MaxDrawdown is the peak-to-trough fraction in [0,1].
type RiskMetrics struct {
	Ticker               string       `json:"ticker"`
	CurrentPrice         float64      `json:"current_price"`
	PeriodDays           int          `json:"period_days"`
	AnnualizedVolatility float64      `json:"annualized_volatility"`
	VaR95                float64      `json:"var_95"`
	VaR99                float64      `json:"var_99"`
	MaxDrawdown          float64      `json:"max_drawdown"`
	SharpeRatio          float64      `json:"sharpe_ratio"`
	Category             RiskCategory `json:"risk_category"`
}
