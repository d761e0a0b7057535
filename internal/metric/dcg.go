package metric

import (
	"fmt"
	"math"
)

// DCG is the Discounted Cumulative Gain scorer, truncated at K.
type DCG struct {
	k int
}

// NewDCG creates a DCG@k scorer. k must be >= 1; validated by the caller (driver construction,
// spec.md §7.2) before this is used.
func NewDCG(k int) *DCG {
	return &DCG{k: k}
}

var _ Scorer = (*DCG)(nil)

// Name implements Scorer.
func (d *DCG) Name() string { return fmt.Sprintf("DCG@%d", d.k) }

// K implements Scorer.
func (d *DCG) K() int { return d.k }

// Measure implements Scorer.
func (d *DCG) Measure(labels []float64) float64 {
	return dcg(labels, d.k)
}

// SwapChanges implements Scorer. Unlike NDCG, the swap matrix is not truncated by k: every
// pair of positions contributes, matching the reference implementation this is grounded on.
func (d *DCG) SwapChanges(labels []float64) [][]float64 {
	n := len(labels)
	delta := newDeltaMatrix(n)
	for i := 0; i < n; i++ {
		gi, di := gain(labels[i]), discount(i)
		for j := i + 1; j < n; j++ {
			v := math.Abs((gi - gain(labels[j])) * (di - discount(j)))
			delta[i][j] = v
			delta[j][i] = v
		}
	}
	return delta
}
