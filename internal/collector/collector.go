package collector

import (
	"fmt"
	"log"
	"time"

	"PriceProphet/internal/history"
	"PriceProphet/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// It implements both HistoryFetcher and SpotFetcher.
type MockFetcher struct {
	Price      float64
	Bars       []model.OHLCV
	HistoryErr error
	SpotErr    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyHistory(_ string) ([]model.OHLCV, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(m.Price, 120), nil
}

func (m *MockFetcher) FetchSpotPrice(_ string) (float64, error) {
	if m.SpotErr != nil {
		return 0, m.SpotErr
	}
	return m.Price, nil
}

// GenerateMockBars produces a gently trending synthetic daily series.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Date:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector assembles the price series for one refresh cycle: live spot
// price plus daily history, preferring the remote source and falling back
// to the durable local store when the remote is unavailable.
type Collector struct {
	History HistoryFetcher
	Spot    SpotFetcher
	Store   history.Store
	Symbol  string
}

// NewCollector creates a new Collector.
func NewCollector(hf HistoryFetcher, sf SpotFetcher, store history.Store, symbol string) *Collector {
	return &Collector{History: hf, Spot: sf, Store: store, Symbol: symbol}
}

// Collect fetches the spot price and daily history. On remote history
// failure it falls back to the local store and synthesizes the trailing
// "today" bar from the spot price, so a stale store still yields a series
// ending at the current day.
func (c *Collector) Collect() (*model.PriceSeries, error) {
	spot, err := c.Spot.FetchSpotPrice(c.Symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: spot price: %v", ErrFetchFailed, err)
	}

	bars, err := c.History.FetchDailyHistory(c.Symbol)
	if err != nil {
		log.Printf("[WARN] remote history fetch failed: %v, falling back to local store", err)
		bars, err = c.fallbackFromStore(spot)
		if err != nil {
			return nil, err
		}
	} else {
		if err := c.Store.ReplaceAll(bars); err != nil {
			log.Printf("[WARN] persist history: %v", err)
		}
	}

	return &model.PriceSeries{
		Symbol:       c.Symbol,
		Bars:         bars,
		CurrentPrice: spot,
		FetchedAt:    time.Now(),
	}, nil
}

// fallbackFromStore loads the stored history and patches in today's bar:
// an existing today bar gets its prices overwritten with the spot price
// (volume carried from the prior day), otherwise a fresh bar is appended
// with zero volume.
func (c *Collector) fallbackFromStore(spot float64) ([]model.OHLCV, error) {
	bars, err := c.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: load local history: %v", ErrFetchFailed, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no local history available", ErrFetchFailed)
	}

	today := time.Now().Truncate(24 * time.Hour)
	last := bars[len(bars)-1]
	if sameDay(last.Date, today) {
		volume := last.Volume
		if len(bars) > 1 {
			volume = bars[len(bars)-2].Volume
		}
		bars[len(bars)-1] = model.OHLCV{
			Date: last.Date, Open: spot, High: spot, Low: spot, Close: spot, Volume: volume,
		}
	} else {
		bars = append(bars, model.OHLCV{
			Date: today, Open: spot, High: spot, Low: spot, Close: spot, Volume: 0,
		})
	}

	if err := c.Store.Upsert(bars[len(bars)-1]); err != nil {
		log.Printf("[WARN] persist today bar: %v", err)
	}
	return bars, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
