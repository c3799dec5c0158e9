package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PriceProphet/internal/collector"
	"PriceProphet/internal/config"
	"PriceProphet/internal/feature"
	"PriceProphet/internal/forecast"
	"PriceProphet/internal/history"
	"PriceProphet/internal/scheduler"
	"PriceProphet/internal/server"
	"PriceProphet/internal/snapshot"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PriceProphet starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init history store
	var store history.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := history.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using in-memory store: %v", err)
			store = history.NewMemoryStore()
		} else {
			store = ss
			defer ss.Close()
		}
	} else {
		store = history.NewMemoryStore()
	}

	// Init fetchers
	var hf collector.HistoryFetcher
	var sf collector.SpotFetcher
	if len(cfg.DataSource.APIKeys) > 0 {
		hf = collector.NewAlphaVantageFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKeys, cfg.DataSource.RatePerMin, cfg.Proxy)
		sf = collector.NewCoinDeskFetcher(cfg.DataSource.SpotURL, cfg.Proxy)
	} else {
		log.Println("[WARN] no API keys configured, using mock data source")
		mock := &collector.MockFetcher{Price: 50000}
		hf, sf = mock, mock
	}
	log.Printf("[INFO] data source: %s / %s", hf.Name(), sf.Name())

	// Init pipeline
	col := collector.NewCollector(hf, sf, store, cfg.DataSource.Symbol)
	eng := feature.NewEngine(cfg.Forecast.MinHistory)
	cache := snapshot.NewCache()
	modelCfg := forecast.Config{
		Estimators:   cfg.Forecast.Estimators,
		MaxDepth:     cfg.Forecast.MaxDepth,
		TestFraction: cfg.Forecast.TestFraction,
		Seed:         cfg.Forecast.Seed,
	}
	sched := scheduler.NewScheduler(col, eng, cache, modelCfg, cfg.Forecast.Horizon)

	// Initial synchronous refresh so the first readers get a snapshot.
	if err := sched.RunNow(); err != nil {
		log.Printf("[WARN] initial refresh failed, serving 503 until next cycle: %v", err)
	}

	if err := sched.Register(cfg.Schedule.RefreshMinutes); err != nil {
		log.Fatalf("[FATAL] register refresh task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start HTTP server
	srv := server.New(cache, cfg.Server.Port)
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("[INFO] http server stopped: %v", err)
		}
	}()
	log.Printf("[INFO] PriceProphet is serving on :%d. Press Ctrl+C to stop.", cfg.Server.Port)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] PriceProphet stopped")
}
