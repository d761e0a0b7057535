package dataset

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// ThresholdMap pre-discretizes one feature's values into at most maxBins+1 bins (the last bin is
// the +∞ sentinel), so the tree learner can scan candidate splits in O(bins) instead of
// resorting the feature on every split search (spec.md §4.2).
type ThresholdMap struct {
	// Thresholds is ascending but not necessarily strictly: it repeats a value when equal feature
	// values are kept verbatim (no more values than the bin budget) or when every value is the
	// same. Thresholds[len-1] == +Inf.
	Thresholds []float64
	// BinOf[i] is the bin index assigned to instance i's value for this feature.
	BinOf []int
}

// NewThresholdMap builds a ThresholdMap from a feature-value vector and a bin budget. maxBins
// must be >= 1; a smaller budget is returned as a configuration error (spec.md §7.2).
func NewThresholdMap(values []float64, maxBins int) (*ThresholdMap, error) {
	if maxBins < 1 {
		return nil, errors.Errorf("threshold bin budget must be >= 1, got %d", maxBins)
	}

	type indexedValue struct {
		index int
		value float64
	}
	indexed := make([]indexedValue, len(values))
	for i, v := range values {
		indexed[i] = indexedValue{index: i, value: v}
	}
	sort.Slice(indexed, func(a, b int) bool { return indexed[a].value < indexed[b].value })

	sortedValues := make([]float64, len(indexed))
	for i, iv := range indexed {
		sortedValues[i] = iv.value
	}

	thresholds := buildThresholds(sortedValues, maxBins)

	binOf := make([]int, len(values))
	bin := 0
	for _, iv := range indexed {
		for bin < len(thresholds)-1 && iv.value > thresholds[bin] {
			bin++
		}
		binOf[iv.index] = bin
	}

	return &ThresholdMap{Thresholds: thresholds, BinOf: binOf}, nil
}

// buildThresholds implements spec.md §4.2/§9: when there are no more values than the bin budget,
// the sorted values are kept verbatim -- including duplicates, not deduplicated -- as thresholds;
// otherwise maxBins evenly spaced thresholds spanning [min, max) are generated. +Inf is appended
// last in both cases.
func buildThresholds(sortedValues []float64, maxBins int) []float64 {
	var thresholds []float64
	if len(sortedValues) <= maxBins {
		thresholds = make([]float64, len(sortedValues))
		copy(thresholds, sortedValues)
	} else {
		min, max := sortedValues[0], sortedValues[len(sortedValues)-1]
		step := (max - min) / float64(maxBins)
		thresholds = make([]float64, maxBins)
		for i := 0; i < maxBins; i++ {
			thresholds[i] = min + float64(i)*step
		}
	}
	thresholds = append(thresholds, math.Inf(1))
	return thresholds
}
