package dataset

// Histogram is the per-bin prefix-summed statistic built by ThresholdMap.BuildHistogram: for
// bin b, Count[b]/Sum[b] aggregate every iterated instance whose bin is <= b. This lets the tree
// learner score every candidate split for one feature in O(bins) rather than O(instances) or a
// resort (spec.md §4.2).
type Histogram struct {
	Count []int
	Sum   []float64
}

// BuildHistogram scans the given instance indices, bucketing each index's target value (e.g. its
// lambda) into the bin ThresholdMap.BinOf assigns it, then runs a single left-to-right prefix
// sum over bins.
func (tm *ThresholdMap) BuildHistogram(indices []int, target func(i int) float64) *Histogram {
	nbins := len(tm.Thresholds)
	h := &Histogram{
		Count: make([]int, nbins),
		Sum:   make([]float64, nbins),
	}
	for _, i := range indices {
		b := tm.BinOf[i]
		h.Count[b]++
		h.Sum[b] += target(i)
	}
	for b := 1; b < nbins; b++ {
		h.Count[b] += h.Count[b-1]
		h.Sum[b] += h.Sum[b-1]
	}
	return h
}

// BestSplit scans bins left to right and returns the threshold and score of the admissible split
// (both sides holding >= minLeafSamples instances) that maximizes
// S(b) = sum_L^2/count_L + sum_R^2/count_R. ok is false when no bin is admissible.
func (tm *ThresholdMap) BestSplit(h *Histogram, minLeafSamples int) (threshold, score float64, ok bool) {
	nbins := len(h.Count)
	if nbins == 0 {
		return 0, 0, false
	}
	totalCount := h.Count[nbins-1]
	totalSum := h.Sum[nbins-1]

	for b := 0; b < nbins; b++ {
		countL, sumL := h.Count[b], h.Sum[b]
		countR, sumR := totalCount-countL, totalSum-sumL
		if countL < minLeafSamples || countR < minLeafSamples {
			continue
		}
		s := sumL*sumL/float64(countL) + sumR*sumR/float64(countR)
		if !ok || s > score {
			threshold, score, ok = tm.Thresholds[b], s, true
		}
	}
	return
}
