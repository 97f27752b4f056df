package scheduler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/france8520/Fin-alpha/internal/model"
	"github.com/france8520/Fin-alpha/internal/notifier"
	"github.com/france8520/Fin-alpha/internal/risk"
)

// analyzeTimeout bounds one ticker's fetch-and-analyze round trip.
const analyzeTimeout = 45 * time.Second

// maxConcurrentFetches caps parallel requests against the data source.
const maxConcurrentFetches = 4

// Notifier is the messaging capability the watcher needs.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Watcher re-analyzes the configured watchlist on a cron schedule and sends
// an alert when a ticker's risk category changes. Last-seen categories are
// held in memory only; nothing is persisted between runs.
type Watcher struct {
	Cron     *cron.Cron
	Engine   *risk.Engine
	Notifier Notifier
	Ctx      context.Context

	watchlist []string

	mu       sync.Mutex
	lastSeen map[string]model.RiskCategory
}

// NewWatcher creates a Watcher over the given watchlist.
func NewWatcher(ctx context.Context, engine *risk.Engine, n Notifier, watchlist []string) *Watcher {
	return &Watcher{
		Cron:      cron.New(cron.WithSeconds()),
		Engine:    engine,
		Notifier:  n,
		Ctx:       ctx,
		watchlist: watchlist,
		lastSeen:  make(map[string]model.RiskCategory),
	}
}

// Register schedules the watchlist sweep with the given cron expression.
func (w *Watcher) Register(spec string) error {
	if _, err := w.Cron.AddFunc(spec, w.sweep); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (w *Watcher) Start() {
	w.Cron.Start()
	log.Println("[INFO] watcher started")
}

// Stop stops the cron scheduler gracefully.
func (w *Watcher) Stop() {
	w.Cron.Stop()
	log.Println("[INFO] watcher stopped")
}

// RunSweepNow executes a sweep immediately (manual trigger / RUN_ON_START).
func (w *Watcher) RunSweepNow() {
	w.sweep()
}

func (w *Watcher) sweep() {
	log.Printf("[INFO] sweeping watchlist (%d tickers)", len(w.watchlist))

	g, ctx := errgroup.WithContext(w.Ctx)
	g.SetLimit(maxConcurrentFetches)
	for _, ticker := range w.watchlist {
		g.Go(func() error {
			w.checkTicker(ctx, ticker)
			return nil
		})
	}
	_ = g.Wait()
}

// checkTicker analyzes one ticker and alerts on a category transition. The
// first observation of a ticker alerts only when it lands on HIGH.
func (w *Watcher) checkTicker(ctx context.Context, ticker string) {
	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	m, err := w.Engine.AnalyzeTicker(ctx, ticker)
	if err != nil {
		log.Printf("[ERROR] analyze %s: %v", ticker, err)
		return
	}

	prev, seen := w.remember(m.Ticker, m.Category)
	switch {
	case !seen && m.Category == model.RiskHigh:
		w.trySend(notifier.FormatRiskReport(m))
	case seen && prev != m.Category:
		w.trySend(notifier.FormatCategoryChange(m.Ticker, prev, m.Category, m))
	}
}

// remember stores the latest category and returns what was there before.
func (w *Watcher) remember(ticker string, c model.RiskCategory) (prev model.RiskCategory, seen bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev, seen = w.lastSeen[ticker]
	w.lastSeen[ticker] = c
	return prev, seen
}

// HandleCommand processes a user command and returns a reply.
func (w *Watcher) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	switch fields[0] {
	case "/risk":
		if len(fields) < 2 {
			return "Usage: /risk TICKER"
		}
		ctx, cancel := context.WithTimeout(w.Ctx, analyzeTimeout)
		defer cancel()
		m, err := w.Engine.AnalyzeTicker(ctx, fields[1])
		if err != nil {
			return notifier.FormatAnalysisError(fields[1], err)
		}
		w.remember(m.Ticker, m.Category)
		return notifier.FormatRiskReport(m)
	case "/watchlist":
		return w.formatWatchlist()
	default:
		return helpText
	}
}

const helpText = "Available commands:\n• /risk TICKER — analyze a symbol now\n• /watchlist — monitored symbols and their last risk level"

func (w *Watcher) formatWatchlist() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var b strings.Builder
	b.WriteString("👀 <b>Watchlist</b>\n")
	tickers := append([]string(nil), w.watchlist...)
	sort.Strings(tickers)
	for _, t := range tickers {
		t = strings.ToUpper(t)
		if c, ok := w.lastSeen[t]; ok {
			b.WriteString(fmt.Sprintf("  %s: %s\n", t, c))
		} else {
			b.WriteString(fmt.Sprintf("  %s: not analyzed yet\n", t))
		}
	}
	return b.String()
}

func (w *Watcher) trySend(text string) {
	if err := w.Notifier.SendWithRetry(w.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
