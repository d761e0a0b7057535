package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdMapPreDiscretization(t *testing.T) {
	values := []float64{5, 7, 3, 2, 1, 8, 9, 4, 6}
	tm, err := NewThresholdMap(values, 3)
	require.NoError(t, err)

	require.Len(t, tm.Thresholds, 4)
	assert.InDelta(t, 1.0, tm.Thresholds[0], 1e-9)
	assert.InDelta(t, 1.0+8.0/3.0, tm.Thresholds[1], 1e-9)
	assert.InDelta(t, 1.0+16.0/3.0, tm.Thresholds[2], 1e-9)
	assert.True(t, math.IsInf(tm.Thresholds[3], 1))

	assert.Equal(t, []int{2, 3, 1, 1, 0, 3, 3, 2, 2}, tm.BinOf)
}

func TestThresholdMapInvariants(t *testing.T) {
	values := []float64{5, 7, 3, 2, 1, 8, 9, 4, 6, 0.5, 11, 3.2}
	tm, err := NewThresholdMap(values, 4)
	require.NoError(t, err)

	require.Equal(t, len(values), len(tm.BinOf))
	for i, v := range values {
		b := tm.BinOf[i]
		require.True(t, b >= 0 && b < len(tm.Thresholds))
		assert.LessOrEqual(t, v, tm.Thresholds[b])
	}
	for i := 1; i < len(tm.Thresholds); i++ {
		assert.Less(t, tm.Thresholds[i-1], tm.Thresholds[i])
	}
	assert.True(t, math.IsInf(tm.Thresholds[len(tm.Thresholds)-1], 1))
}

func TestThresholdMapDuplicatesKeptWhenUnderBudget(t *testing.T) {
	values := []float64{1, 1, 2}
	tm, err := NewThresholdMap(values, 10)
	require.NoError(t, err)
	// N <= B: sorted values kept verbatim, including duplicates, before the +Inf sentinel.
	assert.Equal(t, []float64{1, 1, 2}, tm.Thresholds[:3])
	assert.True(t, math.IsInf(tm.Thresholds[3], 1))
}

func TestThresholdMapInvalidBudget(t *testing.T) {
	_, err := NewThresholdMap([]float64{1, 2, 3}, 0)
	require.Error(t, err)
}

func TestBestSplit(t *testing.T) {
	values := []float64{5, 7, 3, 2, 1, 8, 9, 4, 6}
	tm, err := NewThresholdMap(values, 3)
	require.NoError(t, err)

	// The instance labels are the histogram target: with them the best split over these bins is
	// at the third threshold (S = 32).
	labels := []float64{3, 2, 3, 1, 0, 2, 4, 1, 0}
	indices := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	h := tm.BuildHistogram(indices, func(i int) float64 { return labels[i] })

	threshold, _, ok := tm.BestSplit(h, 3)
	require.True(t, ok)
	assert.InDelta(t, 1.0+16.0/3.0, threshold, 1e-6)

	_, _, ok = tm.BestSplit(h, 4)
	assert.False(t, ok)
}

func TestHistogramPrefixSums(t *testing.T) {
	values := []float64{5, 7, 3, 2, 1, 8, 9, 4, 6}
	tm, err := NewThresholdMap(values, 3)
	require.NoError(t, err)

	labels := []float64{3, 2, 3, 1, 0, 2, 4, 1, 0}
	indices := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	h := tm.BuildHistogram(indices, func(i int) float64 { return labels[i] })

	want := []struct {
		count int
		sum   float64
	}{
		{1, 0},
		{3, 4},
		{6, 8},
		{9, 16},
	}
	for b, w := range want {
		assert.Equal(t, w.count, h.Count[b], "bin %d count", b)
		assert.InDelta(t, w.sum, h.Sum[b], 1e-9, "bin %d sum", b)
	}
}
