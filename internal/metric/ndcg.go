package metric

import (
	"fmt"
	"math"
	"sort"
)

// NDCG is the Normalized Discounted Cumulative Gain scorer, truncated at K.
type NDCG struct {
	k int
}

// NewNDCG creates an NDCG@k scorer. k must be >= 1; validated by the caller (driver
// construction, spec.md §7.2) before this is used.
func NewNDCG(k int) *NDCG {
	return &NDCG{k: k}
}

var _ Scorer = (*NDCG)(nil)

// Name implements Scorer.
func (n *NDCG) Name() string { return fmt.Sprintf("NDCG@%d", n.k) }

// K implements Scorer.
func (n *NDCG) K() int { return n.k }

// idealDCG is the DCG of labels sorted in descending order: the best achievable DCG for this
// label multiset.
func (n *NDCG) idealDCG(labels []float64) float64 {
	ideal := make([]float64, len(labels))
	copy(ideal, labels)
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))
	return dcg(ideal, n.k)
}

// Measure implements Scorer. Returns 0 when the ideal DCG is 0 (spec.md §7.3).
func (n *NDCG) Measure(labels []float64) float64 {
	ideal := n.idealDCG(labels)
	if ideal == 0 {
		return 0
	}
	return dcg(labels, n.k) / ideal
}

// SwapChanges implements Scorer. Only positions in [0, k) contribute as the "i" side of a pair
// (spec.md §4.1: "ignoring k beyond n is legal ... treat entries at positions ≥ k as having only
// one-sided contribution"); position j ranges over the whole vector so a swap of a top-k
// position with a below-k position is still scored.
func (n *NDCG) SwapChanges(labels []float64) [][]float64 {
	nLabels := len(labels)
	delta := newDeltaMatrix(nLabels)

	ideal := n.idealDCG(labels)
	if ideal == 0 {
		return delta
	}

	size := n.k
	if size > nLabels {
		size = nLabels
	}
	for i := 0; i < size; i++ {
		gi, di := gain(labels[i]), discount(i)
		for j := i + 1; j < nLabels; j++ {
			v := math.Abs((gi-gain(labels[j]))*(di-discount(j))) / ideal
			delta[i][j] = v
			delta[j][i] = v
		}
	}
	return delta
}
