package feature

import "math"

// Imputer replaces NaN feature values with per-column means. It is fitted
// once per training run and reused for every inference on that model, so
// training and prediction always see the same substitution values.
type Imputer struct {
	Means []float64
}

// FitImputer computes column means over the non-NaN entries of X.
// A column with no defined values at all imputes to zero.
func FitImputer(x [][]float64) *Imputer {
	if len(x) == 0 {
		return &Imputer{}
	}
	cols := len(x[0])
	means := make([]float64, cols)
	counts := make([]int, cols)
	for _, row := range x {
		for j, v := range row {
			if !math.IsNaN(v) {
				means[j] += v
				counts[j]++
			}
		}
	}
	for j := range means {
		if counts[j] > 0 {
			means[j] /= float64(counts[j])
		}
	}
	return &Imputer{Means: means}
}

// Transform returns a copy of v with NaN entries replaced by column means.
func (im *Imputer) Transform(v []float64) []float64 {
	out := make([]float64, len(v))
	for j, val := range v {
		if math.IsNaN(val) && j < len(im.Means) {
			out[j] = im.Means[j]
		} else {
			out[j] = val
		}
	}
	return out
}

// TransformMatrix applies Transform to every row.
func (im *Imputer) TransformMatrix(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = im.Transform(row)
	}
	return out
}
