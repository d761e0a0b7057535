package dataset

import (
	"math"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/lambdamart/internal/generics"
	"github.com/janpfeifer/lambdamart/internal/metric"
)

// TrainingSet borrows a DataSet and owns the three mutable vectors LambdaMART recomputes every
// iteration: model_score, lambda, weight (spec.md §3, §4.3). It also owns the per-feature
// ThresholdMaps built once from the training DataSet's values.
type TrainingSet struct {
	ds         *DataSet
	thresholds []*ThresholdMap // thresholds[fid-1]

	ModelScore []float64
	Lambda     []float64
	Weight     []float64
}

// NewTrainingSet builds a TrainingSet over ds, discretizing every feature with the given bin
// budget. bins must be >= 1 (spec.md §7.2); the error is returned, not panicked.
func NewTrainingSet(ds *DataSet, bins int) (*TrainingSet, error) {
	ts := &TrainingSet{
		ds:         ds,
		thresholds: make([]*ThresholdMap, ds.NumFeatures()),
		ModelScore: make([]float64, ds.Len()),
		Lambda:     make([]float64, ds.Len()),
		Weight:     make([]float64, ds.Len()),
	}
	for fid := 1; fid <= ds.NumFeatures(); fid++ {
		tm, err := NewThresholdMap(ds.FeatureValues(fid), bins)
		if err != nil {
			return nil, err
		}
		ts.thresholds[fid-1] = tm
	}
	return ts, nil
}

// DataSet returns the borrowed data set.
func (ts *TrainingSet) DataSet() *DataSet { return ts.ds }

// Len returns the number of instances.
func (ts *TrainingSet) Len() int { return ts.ds.Len() }

// UpdateLambdasWeights recomputes Lambda and Weight from the current ModelScore and the given
// metric, per spec.md §4.3. Distinct queries are processed concurrently through an errgroup --
// their accumulations are disjoint (spec.md §5) -- and the cross-query result is purely additive
// since each query's slice of Lambda/Weight is zeroed and rebuilt independently.
func (ts *TrainingSet) UpdateLambdasWeights(m metric.Scorer) error {
	var g errgroup.Group
	for q := 0; q < ts.ds.NumQueries(); q++ {
		start, length := ts.ds.Query(q)
		g.Go(func() error {
			ts.updateQueryLambdasWeights(start, length, m)
			return nil
		})
	}
	return g.Wait()
}

func (ts *TrainingSet) updateQueryLambdasWeights(start, length int, m metric.Scorer) {
	indices := make([]int, length)
	for i := range indices {
		indices[i] = start + i
	}
	// Permutation of this query's instances sorted by model score descending.
	scores := make([]float64, length)
	for i, idx := range indices {
		scores[i] = ts.ModelScore[idx]
	}
	order := generics.SliceOrdering(scores, true)
	ranked := make([]int, length) // ranked[r] is the dataset index of the r-th ranked instance.
	labelsByRank := make([]float64, length)
	for r, o := range order {
		ranked[r] = indices[o]
		labelsByRank[r] = ts.ds.instances[ranked[r]].Label
	}

	delta := m.SwapChanges(labelsByRank)

	for _, idx := range indices {
		ts.Lambda[idx] = 0
		ts.Weight[idx] = 0
	}

	for r1 := 0; r1 < length; r1++ {
		i1 := ranked[r1]
		label1 := labelsByRank[r1]
		for r2 := 0; r2 < length; r2++ {
			label2 := labelsByRank[r2]
			if label1 <= label2 {
				continue
			}
			i2 := ranked[r2]
			deltaM := delta[r1][r2]
			rho := 1.0 / (1.0 + math.Exp(ts.ModelScore[i1]-ts.ModelScore[i2]))
			lambda := deltaM * rho
			weight := rho * (1 - rho) * deltaM

			ts.Lambda[i1] += lambda
			ts.Lambda[i2] -= lambda
			ts.Weight[i1] += weight
			ts.Weight[i2] += weight
		}
	}
}

// AddLeafOutputs adds a tree's already shrinkage-scaled per-instance output to ModelScore.
func (ts *TrainingSet) AddLeafOutputs(outputs []float64) {
	for i, v := range outputs {
		ts.ModelScore[i] += v
	}
}

// Evaluate sorts each query's instances by descending ModelScore, scores the resulting label
// vector with m, and returns the mean over queries.
func (ts *TrainingSet) Evaluate(m metric.Scorer) float64 {
	return evaluateByQuery(ts.ds, ts.ModelScore, m)
}

// FeatureHistogram builds a histogram for feature fid over the given instance indices, using
// Lambda as the target value (spec.md §4.3).
func (ts *TrainingSet) FeatureHistogram(fid int, indices []int) *Histogram {
	tm := ts.thresholds[fid-1]
	return tm.BuildHistogram(indices, func(i int) float64 { return ts.Lambda[i] })
}

// ThresholdMap returns the ThresholdMap for feature fid, used by the tree learner for split
// scanning and for partitioning a sample by the chosen threshold.
func (ts *TrainingSet) ThresholdMap(fid int) *ThresholdMap {
	return ts.thresholds[fid-1]
}

// evaluateByQuery sorts each query's instances by descending score, measures m on the resulting
// label vector, and returns the mean over queries. Shared by TrainingSet.Evaluate and
// ValidateSet.Evaluate.
func evaluateByQuery(ds *DataSet, score []float64, m metric.Scorer) float64 {
	if ds.NumQueries() == 0 {
		return 0
	}
	var sum float64
	for q := 0; q < ds.NumQueries(); q++ {
		start, length := ds.Query(q)
		querySum := make([]float64, length)
		for i := 0; i < length; i++ {
			querySum[i] = score[start+i]
		}
		order := generics.SliceOrdering(querySum, true)
		labels := make([]float64, length)
		for r, o := range order {
			labels[r] = ds.instances[start+o].Label
		}
		sum += m.Measure(labels)
	}
	klog.V(2).Infof("evaluated %d queries with %s", ds.NumQueries(), m.Name())
	return sum / float64(ds.NumQueries())
}
