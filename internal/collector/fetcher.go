package collector

import (
	"errors"

	"PriceProphet/internal/model"
)

// ErrFetchFailed indicates every external data source was exhausted and no
// usable history could be produced for this cycle.
var ErrFetchFailed = errors.New("market data fetch failed")

// HistoryFetcher retrieves the full daily OHLCV history for a symbol.
type HistoryFetcher interface {
	FetchDailyHistory(symbol string) ([]model.OHLCV, error)
	Name() string
}

// SpotFetcher retrieves the current market price for a symbol.
type SpotFetcher interface {
	FetchSpotPrice(symbol string) (float64, error)
	Name() string
}
