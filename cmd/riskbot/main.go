package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/france8520/Fin-alpha/internal/config"
	"github.com/france8520/Fin-alpha/internal/notifier"
	"github.com/france8520/Fin-alpha/internal/provider"
	"github.com/france8520/Fin-alpha/internal/risk"
	"github.com/france8520/Fin-alpha/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	ticker := flag.String("ticker", "", "analyze one ticker, print the report, and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] .env not loaded: %v", err)
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	engine := risk.NewEngine(newFetcher(cfg))
	log.Printf("[INFO] data source: %s", engine.Fetcher.Name())

	// One-shot mode: analyze, print, exit.
	if *ticker != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		m, err := engine.AnalyzeTicker(ctx, *ticker)
		if err != nil {
			fmt.Println(stripTags(notifier.FormatAnalysisError(*ticker, err)))
			os.Exit(1)
		}
		fmt.Println(stripTags(notifier.FormatRiskReport(m)))
		return
	}

	// Watch mode: scheduled watchlist monitoring with Telegram alerts.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := scheduler.NewWatcher(ctx, engine, tn, cfg.Watchlist)
	if err := watcher.Register(cfg.Schedule.WatchCron); err != nil {
		log.Fatalf("[FATAL] register watch task: %v", err)
	}
	watcher.Start()
	defer watcher.Stop()

	go tn.StartPolling(ctx, watcher.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, sweeping watchlist now")
		go watcher.RunSweepNow()
	}

	log.Printf("[INFO] riskbot is running, watching %d tickers. Press Ctrl+C to stop.", len(cfg.Watchlist))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] riskbot stopped")
}

// newFetcher selects the data source configured for this deployment.
func newFetcher(cfg *config.Config) provider.Fetcher {
	if cfg.DataSource.Provider == "stooq" {
		return provider.NewStooqFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	}
	f := provider.NewYahooFetcher(cfg.Proxy)
	if cfg.DataSource.BaseURL != "" {
		f.BaseURL = cfg.DataSource.BaseURL
	}
	return f
}

// stripTags removes the Telegram bold markers for terminal output.
func stripTags(s string) string {
	r := strings.NewReplacer("<b>", "", "</b>", "")
	return r.Replace(s)
}
