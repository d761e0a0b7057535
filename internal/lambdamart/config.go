// Package lambdamart implements the outer training loop (spec.md §4.5): recompute lambdas,
// grow one tree, fold it into the model score and the ensemble, track train/validate metric, and
// stop after the configured number of iterations.
package lambdamart

import (
	"github.com/pkg/errors"

	"github.com/janpfeifer/lambdamart/internal/metric"
)

// Config holds every option spec.md §6's CLI table exposes.
type Config struct {
	Trees          int
	LearningRate   float64
	MaxLeaves      int
	MinLeafSamples int
	Bins           int

	MetricFamily string // "NDCG" or "DCG"
	MetricK      int

	// EarlyStop is accepted but never consulted by the training loop -- reserved, per
	// spec.md §9.
	EarlyStop int

	PrintMetric bool
	PrintTree   bool
}

// DefaultConfig matches spec.md §6's CLI defaults.
func DefaultConfig() Config {
	return Config{
		Trees:          1000,
		LearningRate:   0.1,
		MaxLeaves:      10,
		MinLeafSamples: 1,
		Bins:           256,
		MetricFamily:   "NDCG",
		MetricK:        10,
		EarlyStop:      100,
	}
}

// Validate checks the configuration errors spec.md §7.2 names, surfaced at driver construction
// rather than mid-training.
func (c Config) Validate() error {
	if c.Trees < 0 {
		return errors.Errorf("trees must be >= 0, got %d", c.Trees)
	}
	if c.MaxLeaves < 1 {
		return errors.Errorf("max_leaves must be >= 1, got %d", c.MaxLeaves)
	}
	if c.MinLeafSamples < 1 {
		return errors.Errorf("min_leaf_samples must be >= 1, got %d", c.MinLeafSamples)
	}
	if c.Bins < 1 {
		return errors.Errorf("thresholds (bin budget) must be >= 1, got %d", c.Bins)
	}
	if c.LearningRate <= 0 {
		return errors.Errorf("learning_rate must be > 0, got %f", c.LearningRate)
	}
	if _, err := metric.New(c.MetricFamily, c.MetricK); err != nil {
		return errors.WithMessage(err, "invalid metric configuration")
	}
	return nil
}
