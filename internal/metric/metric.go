// Package metric implements the listwise rank-quality scorers used both to derive the
// LambdaMART pseudo-gradients and to report training/validation quality: DCG and NDCG.
package metric

import "math"

// Scorer measures the quality of a ranking and the swap-sensitivity of that ranking, over a
// label vector already sorted in predicted order (position 0 is the top-ranked document).
//
// Two implementations exist: DCG and NDCG. Both are safe for concurrent use by multiple readers
// (they hold no mutable state beyond an immutable discount cache).
type Scorer interface {
	// Measure returns the scalar quality of labels, which must already be in predicted rank order.
	Measure(labels []float64) float64

	// SwapChanges returns the symmetric n×n matrix of absolute metric deltas that swapping
	// positions i and j would produce. SwapChanges(labels)[i][i] == 0 for all i.
	SwapChanges(labels []float64) [][]float64

	// Name identifies the scorer, e.g. "NDCG@10".
	Name() string

	// K returns the truncation level.
	K() int
}

// discountCacheSize is how many discount values are precomputed; beyond this the formula is
// evaluated directly (spec.md §4.1: "first 128 discount values may be cached").
const discountCacheSize = 128

var discountCache = func() [discountCacheSize]float64 {
	var d [discountCacheSize]float64
	for i := range d {
		d[i] = 1.0 / math.Log2(float64(i)+2.0)
	}
	return d
}()

// discount is the logarithmic position discount 1/log2(i+2).
func discount(i int) float64 {
	if i < discountCacheSize {
		return discountCache[i]
	}
	return 1.0 / math.Log2(float64(i)+2.0)
}

// gain is the exponential relevance gain 2^x - 1.
func gain(label float64) float64 {
	return math.Exp2(label) - 1.0
}

// dcg computes DCG@k directly, with no normalization.
func dcg(labels []float64, k int) float64 {
	n := len(labels)
	if k < n {
		n = k
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += gain(labels[i]) * discount(i)
	}
	return sum
}

// newDeltaMatrix allocates an n×n matrix of zeros.
func newDeltaMatrix(n int) [][]float64 {
	flat := make([]float64, n*n)
	delta := make([][]float64, n)
	for i := range delta {
		delta[i] = flat[i*n : (i+1)*n : (i+1)*n]
	}
	return delta
}
