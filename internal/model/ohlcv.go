package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the fetched daily history plus the live spot price.
type PriceSeries struct {
	Symbol       string
	Bars         []OHLCV
	CurrentPrice float64
	FetchedAt    time.Time
}
