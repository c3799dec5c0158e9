package feature

import (
	"errors"
	"fmt"

	"PriceProphet/internal/model"
)

// ErrInsufficientHistory indicates too few bars for indicator warm-up.
var ErrInsufficientHistory = errors.New("insufficient history")

// Derived is the output of one feature-derivation run.
type Derived struct {
	// Rows are the raw per-day indicator rows; warm-up slots carry NaN.
	Rows []model.FeatureRow
	// Set is the fully imputed training set, aligned 1:1 with Rows.
	Set *model.TrainingSet
	// Imputer holds the column means fitted on this run.
	Imputer *Imputer
	// Latest is the imputed feature vector of the most recent bar.
	Latest []float64
}

// Engine derives technical-indicator features from daily OHLCV history.
type Engine struct {
	MinHistory int
}

// NewEngine creates an Engine requiring at least minHistory bars.
func NewEngine(minHistory int) *Engine {
	return &Engine{MinHistory: minHistory}
}

// Derive computes the indicator table over the full history and the imputed
// training set. The target of each row is the same day's close: the model is
// fitted as a regression from indicator state to the price that produced it,
// and next-day forecasts come from feeding it the latest row.
func (e *Engine) Derive(bars []model.OHLCV) (*Derived, error) {
	if len(bars) < e.MinHistory {
		return nil, fmt.Errorf("%w: have %d bars, need %d", ErrInsufficientHistory, len(bars), e.MinHistory)
	}

	n := len(bars)
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
	}

	sma20 := smaSeries(closes, 20)
	std20 := rollingStdSeries(closes, 20)
	ema50 := emaSeries(closes, 50)
	ema12 := emaSeries(closes, 12)
	ema26 := emaSeries(closes, 26)
	macd := make([]float64, n)
	for i := range macd {
		macd[i] = ema12[i] - ema26[i]
	}
	signal := emaSeries(macd, 9)
	rsi := rsiSeries(closes, 14)
	adx := adxSeries(highs, lows, closes, 14)
	stochK := stochasticKSeries(highs, lows, closes, 14)

	rows := make([]model.FeatureRow, n)
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := range bars {
		row := model.FeatureRow{
			Date:       bars[i].Date.Format("2006-01-02"),
			Close:      closes[i],
			SignalLine: signal[i],
			UpperBand:  sma20[i] + 2*std20[i],
			LowerBand:  sma20[i] - 2*std20[i],
		}
		row.Features[model.FeatSMA20] = sma20[i]
		row.Features[model.FeatEMA50] = ema50[i]
		row.Features[model.FeatRSI] = rsi[i]
		row.Features[model.FeatMACD] = macd[i]
		row.Features[model.FeatADX] = adx[i]
		row.Features[model.FeatStochasticK] = stochK[i]
		rows[i] = row

		x[i] = rows[i].Features[:]
		y[i] = closes[i]
	}

	imputer := FitImputer(x)
	imputed := imputer.TransformMatrix(x)

	return &Derived{
		Rows:    rows,
		Set:     &model.TrainingSet{X: imputed, Y: y},
		Imputer: imputer,
		Latest:  imputed[n-1],
	}, nil
}
