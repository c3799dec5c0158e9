package feature

import "math"

// Indicator series helpers. Each function returns one value per input index;
// positions inside the warm-up window are NaN and are imputed later, so the
// output always aligns 1:1 with the input bars.

// smaSeries computes the n-period simple moving average.
func smaSeries(vals []float64, n int) []float64 {
	out := nanSlice(len(vals))
	var sum float64
	for i, v := range vals {
		sum += v
		if i >= n {
			sum -= vals[i-n]
		}
		if i >= n-1 {
			out[i] = sum / float64(n)
		}
	}
	return out
}

// rollingStdSeries computes the n-period rolling sample standard deviation.
func rollingStdSeries(vals []float64, n int) []float64 {
	out := nanSlice(len(vals))
	if n < 2 {
		return out
	}
	for i := n - 1; i < len(vals); i++ {
		var sum float64
		for j := i - n + 1; j <= i; j++ {
			sum += vals[j]
		}
		mean := sum / float64(n)
		var sq float64
		for j := i - n + 1; j <= i; j++ {
			d := vals[j] - mean
			sq += d * d
		}
		out[i] = math.Sqrt(sq / float64(n-1))
	}
	return out
}

// emaSeries computes an exponential moving average with smoothing factor
// 2/(span+1), seeded from the first value.
func emaSeries(vals []float64, span int) []float64 {
	out := make([]float64, len(vals))
	if len(vals) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = vals[0]
	for i := 1; i < len(vals); i++ {
		out[i] = alpha*vals[i] + (1-alpha)*out[i-1]
	}
	return out
}

// rsiSeries computes the Wilder-smoothed RSI. A flat window (no gains and
// no losses) has no defined relative strength and yields NaN.
func rsiSeries(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if len(closes) < period+1 {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgGain == 0 && avgLoss == 0 {
		return math.NaN()
	}
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// adxSeries computes the Wilder Average Directional Index from high/low/close.
// The first value appears at index 2*period-1 once enough DX readings exist.
func adxSeries(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if n < 2*period {
		return out
	}

	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		upMove := highs[i] - highs[i-1]
		downMove := lows[i-1] - lows[i]
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
		tr[i] = math.Max(highs[i]-lows[i],
			math.Max(math.Abs(highs[i]-closes[i-1]), math.Abs(lows[i]-closes[i-1])))
	}

	// Wilder smoothing: seed with plain sums over the first period.
	var smTR, smPlus, smMinus float64
	for i := 1; i <= period; i++ {
		smTR += tr[i]
		smPlus += plusDM[i]
		smMinus += minusDM[i]
	}

	dx := nanSlice(n)
	dx[period] = dxValue(smPlus, smMinus, smTR)
	for i := period + 1; i < n; i++ {
		smTR = smTR - smTR/float64(period) + tr[i]
		smPlus = smPlus - smPlus/float64(period) + plusDM[i]
		smMinus = smMinus - smMinus/float64(period) + minusDM[i]
		dx[i] = dxValue(smPlus, smMinus, smTR)
	}

	// ADX seeds as the mean of the first period DX readings.
	var dxSum float64
	defined := 0
	for i := period; i < 2*period; i++ {
		if !math.IsNaN(dx[i]) {
			dxSum += dx[i]
			defined++
		}
	}
	if defined == 0 {
		return out
	}
	adx := dxSum / float64(defined)
	out[2*period-1] = adx
	for i := 2 * period; i < n; i++ {
		if math.IsNaN(dx[i]) {
			out[i] = math.NaN()
			continue
		}
		adx = (adx*float64(period-1) + dx[i]) / float64(period)
		out[i] = adx
	}
	return out
}

func dxValue(smPlus, smMinus, smTR float64) float64 {
	if smTR == 0 {
		return math.NaN()
	}
	plusDI := 100 * smPlus / smTR
	minusDI := 100 * smMinus / smTR
	if plusDI+minusDI == 0 {
		return math.NaN()
	}
	return 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
}

// stochasticKSeries computes %K: close position within the n-period
// high/low range. A zero range yields NaN.
func stochasticKSeries(highs, lows, closes []float64, n int) []float64 {
	out := nanSlice(len(closes))
	for i := n - 1; i < len(closes); i++ {
		hi := math.Inf(-1)
		lo := math.Inf(1)
		for j := i - n + 1; j <= i; j++ {
			if highs[j] > hi {
				hi = highs[j]
			}
			if lows[j] < lo {
				lo = lows[j]
			}
		}
		if hi == lo {
			out[i] = math.NaN()
			continue
		}
		out[i] = 100 * (closes[i] - lo) / (hi - lo)
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
