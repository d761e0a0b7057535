package tree

import "github.com/janpfeifer/lambdamart/internal/dataset"

// sample is the set of instance indices currently residing at one frontier leaf, plus its
// derived statistics (spec.md §4.4). Variance is the priority key driving best-first expansion.
type sample struct {
	indices []int

	sumLambda   float64
	sumLambdaSq float64
	sumWeight   float64
	count       int
}

// newSample computes a sample's derived statistics by scanning indices once.
func newSample(ts *dataset.TrainingSet, indices []int) *sample {
	s := &sample{indices: indices, count: len(indices)}
	for _, i := range indices {
		l := ts.Lambda[i]
		s.sumLambda += l
		s.sumLambdaSq += l * l
		s.sumWeight += ts.Weight[i]
	}
	return s
}

// variance is Sigma(lambda^2) - Sigma(lambda)^2/n, the priority key (spec.md §4.4, §9: computed
// from lambda sums, not label sums).
func (s *sample) variance() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sumLambdaSq - s.sumLambda*s.sumLambda/float64(s.count)
}

// leafOutput is the Newton step Sigma(lambda)/Sigma(weight), or 0 when Sigma(weight) is 0
// (spec.md §7.3).
func (s *sample) leafOutput() float64 {
	if s.sumWeight == 0 {
		return 0
	}
	return s.sumLambda / s.sumWeight
}

// partition splits the sample's indices into left ({i : value(i,fid) <= threshold}) and right
// (the complement), per the chosen split (spec.md §4.4). Order within each child is unspecified.
func (s *sample) partition(ts *dataset.TrainingSet, fid int, threshold float64) (left, right []int) {
	ds := ts.DataSet()
	left = make([]int, 0, len(s.indices))
	right = make([]int, 0, len(s.indices))
	for _, i := range s.indices {
		if ds.Instance(i).Value(fid) <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}
