package notifier

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/france8520/Fin-alpha/internal/model"
	"github.com/france8520/Fin-alpha/internal/provider"
	"github.com/france8520/Fin-alpha/internal/risk"
)

// FormatRiskReport renders a risk report for display. The output is plain
// text with HTML bold markers, suitable for both terminal output and
// Telegram's HTML parse mode.
func FormatRiskReport(m *model.RiskMetrics) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Risk report: %s</b> | %s\n\n", m.Ticker, time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Current price: $%.2f\n", m.CurrentPrice))
	b.WriteString(fmt.Sprintf("Window: %d trading days\n\n", m.PeriodDays))

	b.WriteString("📈 <b>Risk metrics:</b>\n")
	b.WriteString(fmt.Sprintf("  Annual volatility: %.1f%%\n", m.AnnualizedVolatility*100))
	b.WriteString(fmt.Sprintf("  Value at Risk (95%%): %.2f%% daily\n", m.VaR95*100))
	b.WriteString(fmt.Sprintf("  Value at Risk (99%%): %.2f%% daily\n", m.VaR99*100))
	b.WriteString(fmt.Sprintf("  Maximum drawdown: %.1f%%\n", m.MaxDrawdown*100))
	b.WriteString(fmt.Sprintf("  Sharpe ratio: %.2f\n", m.SharpeRatio))

	b.WriteString(fmt.Sprintf("\nRisk level: <b>%s</b> %s\n", m.Category, categoryBadge(m.Category)))

	return b.String()
}

// FormatAnalysisError maps a typed analysis failure to user-facing text that
// tells the reader whether to fix the symbol or just try again.
func FormatAnalysisError(ticker string, err error) string {
	ticker = strings.ToUpper(ticker)
	switch {
	case errors.Is(err, provider.ErrInvalidTicker):
		return fmt.Sprintf("❌ %q is not a valid ticker symbol. Use 1-10 letters, digits, dots, or dashes.", ticker)
	case errors.Is(err, provider.ErrNotFound):
		return fmt.Sprintf("❌ No price data found for %s. Check the symbol — it may be misspelled or delisted.", ticker)
	case errors.Is(err, provider.ErrTransport):
		return fmt.Sprintf("⚠️ Could not reach the market data source for %s. Please try again shortly.", ticker)
	case errors.Is(err, risk.ErrInsufficientData):
		return fmt.Sprintf("❌ %s has too little price history for a meaningful analysis (need %d trading days).", ticker, risk.MinObservations)
	case errors.Is(err, risk.ErrDegenerateSeries):
		return fmt.Sprintf("❌ The price history for %s produced no usable statistics.", ticker)
	default:
		return fmt.Sprintf("❌ Analysis of %s failed: %v", ticker, err)
	}
}

// FormatCategoryChange renders the alert sent when a watched ticker moves
// between risk categories.
func FormatCategoryChange(ticker string, from, to model.RiskCategory, m *model.RiskMetrics) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚨 <b>Risk level change: %s</b>\n\n", ticker))
	b.WriteString(fmt.Sprintf("%s → <b>%s</b> %s\n\n", from, to, categoryBadge(to)))
	b.WriteString(fmt.Sprintf("Annual volatility: %.1f%% | VaR 95%%: %.2f%% | Drawdown: %.1f%%\n",
		m.AnnualizedVolatility*100, m.VaR95*100, m.MaxDrawdown*100))
	return b.String()
}

func categoryBadge(c model.RiskCategory) string {
	switch c {
	case model.RiskHigh:
		return "🔴"
	case model.RiskMedium:
		return "🟡"
	default:
		return "🟢"
	}
}
