package scheduler

import (
	"fmt"
	"log"
	"time"

	"PriceProphet/internal/collector"
	"PriceProphet/internal/feature"
	"PriceProphet/internal/forecast"
	"PriceProphet/internal/model"
	"PriceProphet/internal/recommend"
	"PriceProphet/internal/snapshot"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the periodic refresh cycle: fetch, derive features,
// train, forecast, recommend, publish. A failed cycle is logged and skipped;
// the previously published snapshot stays untouched, so readers never see
// partial state from a broken refresh.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Engine    *feature.Engine
	Cache     *snapshot.Cache
	ModelCfg  forecast.Config
	Horizon   int
}

// NewScheduler creates a Scheduler around the pipeline components.
func NewScheduler(col *collector.Collector, eng *feature.Engine, cache *snapshot.Cache, modelCfg forecast.Config, horizon int) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(),
		Collector: col,
		Engine:    eng,
		Cache:     cache,
		ModelCfg:  modelCfg,
		Horizon:   horizon,
	}
}

// Register schedules the refresh task on a fixed period.
func (s *Scheduler) Register(refreshMinutes int) error {
	spec := fmt.Sprintf("@every %dm", refreshMinutes)
	if _, err := s.Cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes one refresh cycle immediately and returns its error.
// Used for the blocking initial refresh at startup.
func (s *Scheduler) RunNow() error {
	return s.refresh()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running scheduled refresh")
	if err := s.refresh(); err != nil {
		log.Printf("[ERROR] refresh cycle failed, keeping previous snapshot: %v", err)
	}
}

// refresh runs one full pipeline cycle. Nothing is published unless every
// stage succeeds.
func (s *Scheduler) refresh() error {
	series, err := s.Collector.Collect()
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}

	derived, err := s.Engine.Derive(series.Bars)
	if err != nil {
		return fmt.Errorf("derive features: %w", err)
	}

	forest, err := forecast.Train(derived.Set, s.ModelCfg)
	if err != nil {
		return fmt.Errorf("train model: %w", err)
	}

	path := forest.Forecast(derived.Latest, s.Horizon)
	tomorrow := path[0]
	comparison, recommendation := recommend.Advise(series.CurrentPrice, tomorrow)

	s.Cache.Replace(&model.Snapshot{
		CurrentPrice:    series.CurrentPrice,
		TomorrowPrice:   tomorrow,
		ForecastPath:    path,
		PriceComparison: comparison,
		Recommendation:  recommendation,
		GeneratedAt:     time.Now(),
	})
	log.Printf("[INFO] snapshot published: current %.2f, tomorrow %.2f", series.CurrentPrice, tomorrow)
	return nil
}
