package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/france8520/Fin-alpha/internal/config"
	"github.com/france8520/Fin-alpha/internal/provider"
	"github.com/france8520/Fin-alpha/internal/risk"
	"github.com/france8520/Fin-alpha/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	var fetcher provider.Fetcher
	if cfg.DataSource.Provider == "stooq" {
		fetcher = provider.NewStooqFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	} else {
		fetcher = provider.NewYahooFetcher(cfg.Proxy)
	}
	engine := risk.NewEngine(fetcher)

	srv := server.New(engine, cfg.Server.Addr)

	go func() {
		log.Printf("[INFO] riskapi listening on %s (data source: %s)", srv.Addr, fetcher.Name())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[INFO] shutdown signal received, shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] server shutdown: %v", err)
	}
	log.Println("[INFO] riskapi stopped")
}
