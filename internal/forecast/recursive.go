package forecast

import "PriceProphet/internal/model"

// Forecast produces a horizon-length path of predicted closes. The first
// step predicts from the real latest feature vector; each later step feeds
// the previous prediction back into the SMA_20 slot while every other
// feature stays frozen at its last real value. Because four of the six
// inputs never advance, accuracy decays quickly past the first step —
// callers should treat the tail of the path as a rough trend sketch.
func (f *Forest) Forecast(latest []float64, horizon int) []float64 {
	if horizon < 1 {
		horizon = 1
	}
	vec := make([]float64, len(latest))
	copy(vec, latest)

	path := make([]float64, horizon)
	path[0] = f.Predict(vec)
	for i := 1; i < horizon; i++ {
		vec[model.FeatSMA20] = path[i-1]
		path[i] = f.Predict(vec)
	}
	return path
}
