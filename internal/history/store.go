package history

import "PriceProphet/internal/model"

// Store persists daily OHLCV history between refresh cycles so the pipeline
// can keep forecasting when the remote data source is down.
type Store interface {
	// Load returns the full history in chronological order.
	Load() ([]model.OHLCV, error)
	// Upsert inserts a bar, or overwrites the existing bar with the same
	// date. Only the trailing "today" bar is expected to change in place.
	Upsert(bar model.OHLCV) error
	// ReplaceAll swaps the stored history for the given bars.
	ReplaceAll(bars []model.OHLCV) error
	Close() error
}
