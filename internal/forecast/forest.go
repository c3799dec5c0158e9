package forecast

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"PriceProphet/internal/model"
)

// ErrDegenerateTraining indicates the training set cannot support a
// regression fit (empty, or every target identical).
var ErrDegenerateTraining = errors.New("degenerate training data")

// Config holds the forest hyperparameters.
type Config struct {
	Estimators   int
	MaxDepth     int
	TestFraction float64
	Seed         int64
}

// Forest is an ensemble of bootstrap-sampled regression trees. Predictions
// are the mean of the per-tree predictions. Given a fixed seed, training is
// fully deterministic.
type Forest struct {
	trees []*treeNode
}

// Train performs a seeded shuffle split, fits the ensemble on the train
// partition, and logs the held-out mean absolute error. The held-out score
// is informational only; it never influences the forecast.
func Train(ts *model.TrainingSet, cfg Config) (*Forest, error) {
	n := ts.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: empty training set", ErrDegenerateTraining)
	}
	if uniqueCount(ts.Y) < 2 {
		return nil, fmt.Errorf("%w: single unique target value", ErrDegenerateTraining)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	perm := rng.Perm(n)
	testN := int(float64(n) * cfg.TestFraction)
	if testN >= n {
		testN = n - 1
	}
	trainIdx := perm[testN:]
	testIdx := perm[:testN]

	trees := make([]*treeNode, cfg.Estimators)
	for t := range trees {
		sample := make([]int, len(trainIdx))
		for i := range sample {
			sample[i] = trainIdx[rng.Intn(len(trainIdx))]
		}
		trees[t] = buildTree(ts.X, ts.Y, sample, 0, cfg.MaxDepth)
	}

	f := &Forest{trees: trees}
	if len(testIdx) > 0 {
		var mae float64
		for _, i := range testIdx {
			mae += math.Abs(f.Predict(ts.X[i]) - ts.Y[i])
		}
		mae /= float64(len(testIdx))
		log.Printf("[INFO] forest trained: %d trees, depth %d, %d train / %d test samples, holdout MAE %.2f",
			cfg.Estimators, cfg.MaxDepth, len(trainIdx), len(testIdx), mae)
	}
	return f, nil
}

// Predict returns the ensemble prediction for one feature vector.
func (f *Forest) Predict(features []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(features)
	}
	return sum / float64(len(f.trees))
}

func uniqueCount(vals []float64) int {
	seen := make(map[float64]struct{}, len(vals))
	for _, v := range vals {
		seen[v] = struct{}{}
		if len(seen) > 1 {
			break
		}
	}
	return len(seen)
}
