package feature

import (
	"errors"
	"math"
	"testing"
	"time"

	"PriceProphet/internal/model"
)

func makeBars(closes []float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Date:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   c * 0.999,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func trendingCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		// Rising trend with a small oscillation so every indicator has signal.
		closes[i] = 100 + float64(i)*0.5 + 3*math.Sin(float64(i)/4)
	}
	return closes
}

func TestDerive_InsufficientHistory(t *testing.T) {
	eng := NewEngine(50)
	_, err := eng.Derive(makeBars(trendingCloses(30)))
	if !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestDerive_FullyImputedAndAligned(t *testing.T) {
	eng := NewEngine(50)
	bars := makeBars(trendingCloses(120))
	derived, err := eng.Derive(bars)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	if len(derived.Rows) != len(bars) {
		t.Fatalf("expected %d rows, got %d", len(bars), len(derived.Rows))
	}
	if derived.Set.Len() != len(bars) {
		t.Fatalf("expected %d samples, got %d", len(bars), derived.Set.Len())
	}
	for i, row := range derived.Set.X {
		if len(row) != model.FeatureCount {
			t.Fatalf("row %d: expected %d features, got %d", i, model.FeatureCount, len(row))
		}
		for j, v := range row {
			if math.IsNaN(v) {
				t.Errorf("row %d feature %s is NaN after imputation", i, model.FeatureNames[j])
			}
		}
	}
	for i := range bars {
		if derived.Set.Y[i] != bars[i].Close {
			t.Fatalf("row %d: target %v != close %v", i, derived.Set.Y[i], bars[i].Close)
		}
	}
}

func TestDerive_IndicatorValues(t *testing.T) {
	eng := NewEngine(50)
	closes := trendingCloses(120)
	derived, err := eng.Derive(makeBars(closes))
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	last := derived.Rows[len(derived.Rows)-1]

	// SMA_20 of the last row must equal the mean of the last 20 closes.
	var want float64
	for _, c := range closes[len(closes)-20:] {
		want += c
	}
	want /= 20
	if math.Abs(last.Features[model.FeatSMA20]-want) > 1e-9 {
		t.Errorf("SMA_20 = %v, want %v", last.Features[model.FeatSMA20], want)
	}

	// Bounded oscillators.
	if rsi := last.Features[model.FeatRSI]; rsi < 0 || rsi > 100 {
		t.Errorf("RSI out of range: %v", rsi)
	}
	if adx := last.Features[model.FeatADX]; adx < 0 || adx > 100 {
		t.Errorf("ADX out of range: %v", adx)
	}
	if k := last.Features[model.FeatStochasticK]; k < 0 || k > 100 {
		t.Errorf("Stochastic %%K out of range: %v", k)
	}

	// Bollinger bands bracket the SMA.
	if !(last.LowerBand < last.Features[model.FeatSMA20] && last.Features[model.FeatSMA20] < last.UpperBand) {
		t.Errorf("bands do not bracket SMA: [%v, %v] around %v",
			last.LowerBand, last.UpperBand, last.Features[model.FeatSMA20])
	}
}

func TestDerive_WarmupImputedToColumnMean(t *testing.T) {
	eng := NewEngine(50)
	derived, err := eng.Derive(makeBars(trendingCloses(80)))
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	// Row 0 is inside the SMA_20 warm-up window, so its imputed value must
	// equal the fitted column mean.
	if !math.IsNaN(derived.Rows[0].Features[model.FeatSMA20]) {
		t.Fatal("expected raw row 0 SMA_20 to be NaN during warm-up")
	}
	got := derived.Set.X[0][model.FeatSMA20]
	if got != derived.Imputer.Means[model.FeatSMA20] {
		t.Errorf("imputed warm-up value %v != column mean %v", got, derived.Imputer.Means[model.FeatSMA20])
	}
}

func TestDerive_ConstantCloses(t *testing.T) {
	// 25 days of a dead-flat market: SMA defined, RSI / ADX / %K all
	// undefined and imputed. Derivation must succeed.
	eng := NewEngine(25)
	derived, err := eng.Derive(makeFlatBars(25, 100))
	if err != nil {
		t.Fatalf("derive on flat history: %v", err)
	}

	last := derived.Rows[len(derived.Rows)-1]
	if got := last.Features[model.FeatSMA20]; math.Abs(got-100) > 1e-9 {
		t.Errorf("SMA_20 on flat closes = %v, want 100", got)
	}
	if !math.IsNaN(last.Features[model.FeatRSI]) {
		t.Errorf("expected raw RSI undefined on flat closes, got %v", last.Features[model.FeatRSI])
	}
	if !math.IsNaN(last.Features[model.FeatStochasticK]) {
		t.Errorf("expected raw %%K undefined on zero range, got %v", last.Features[model.FeatStochasticK])
	}
	for j, v := range derived.Set.X[len(derived.Set.X)-1] {
		if math.IsNaN(v) {
			t.Errorf("feature %s still NaN after imputation", model.FeatureNames[j])
		}
	}
}

func makeFlatBars(n int, price float64) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		bars[i] = model.OHLCV{
			Date:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: 1000,
		}
	}
	return bars
}

func TestImputer_FitAndTransform(t *testing.T) {
	x := [][]float64{
		{1, math.NaN()},
		{3, math.NaN()},
		{math.NaN(), math.NaN()},
	}
	im := FitImputer(x)
	if im.Means[0] != 2 {
		t.Errorf("column 0 mean = %v, want 2", im.Means[0])
	}
	if im.Means[1] != 0 {
		t.Errorf("all-NaN column mean = %v, want 0", im.Means[1])
	}

	got := im.Transform([]float64{math.NaN(), 7})
	if got[0] != 2 || got[1] != 7 {
		t.Errorf("Transform = %v, want [2 7]", got)
	}
}
