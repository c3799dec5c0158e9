package model

import "time"

// Snapshot is the immutable published result of one forecasting cycle.
// Only whole Snapshot values are ever swapped into the cache; fields are
// never mutated after construction.
type Snapshot struct {
	CurrentPrice    float64   `json:"current_price"`
	TomorrowPrice   float64   `json:"tomorrow_price"`
	ForecastPath    []float64 `json:"forecast_path"`
	PriceComparison string    `json:"price_comparison"`
	Recommendation  string    `json:"recommendation"`
	GeneratedAt     time.Time `json:"generated_at"`
}
