package model

// Feature slot indices. The order is fixed: the trained model's trees are
// keyed on these positions, so reordering invalidates a fitted model.
const (
	FeatSMA20 = iota
	FeatEMA50
	FeatRSI
	FeatMACD
	FeatADX
	FeatStochasticK
	FeatureCount
)

// FeatureNames maps slot index to a human-readable indicator name.
var FeatureNames = [FeatureCount]string{"SMA_20", "EMA_50", "RSI", "MACD", "ADX", "Stochastic_K"}

// FeatureRow holds the derived indicators for one trading day. Values may be
// NaN during indicator warm-up; they are imputed before reaching the model.
// SignalLine and the Bollinger bands are computed for parity with downstream
// consumers but are not model inputs.
type FeatureRow struct {
	Date       string
	Features   [FeatureCount]float64
	Close      float64
	SignalLine float64
	UpperBand  float64
	LowerBand  float64
}

// TrainingSet is the aligned feature matrix and same-day close targets,
// fully imputed, one row per historical date.
type TrainingSet struct {
	X [][]float64
	Y []float64
}

// Len returns the number of samples.
func (t *TrainingSet) Len() int { return len(t.Y) }
