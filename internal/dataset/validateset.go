package dataset

import "github.com/janpfeifer/lambdamart/internal/metric"

// Evaluator scores a single instance's feature vector. RegressionTree (raw, unscaled leaf output)
// and Ensemble (shrinkage already applied) in internal/tree satisfy this interface structurally,
// without this package needing to import internal/tree.
type Evaluator interface {
	Eval(inst *Instance) float64
}

// ValidateSet borrows a held-out DataSet and tracks the ensemble's cumulative score on it,
// without ever touching the training set's ThresholdMaps or lambdas (spec.md §3).
type ValidateSet struct {
	ds              *DataSet
	CumulativeScore []float64
}

// NewValidateSet builds a ValidateSet over ds, with CumulativeScore initialized to 0.
func NewValidateSet(ds *DataSet) *ValidateSet {
	return &ValidateSet{ds: ds, CumulativeScore: make([]float64, ds.Len())}
}

// DataSet returns the borrowed data set.
func (vs *ValidateSet) DataSet() *DataSet { return vs.ds }

// Update adds learningRate * tree.Eval(instance) to every instance's cumulative score.
func (vs *ValidateSet) Update(tree Evaluator, learningRate float64) {
	for i := range vs.ds.instances {
		vs.CumulativeScore[i] += learningRate * tree.Eval(&vs.ds.instances[i])
	}
}

// Evaluate sorts each query by descending cumulative score and returns the mean metric measure
// over queries (spec.md §3, §4.5 step 5).
func (vs *ValidateSet) Evaluate(m metric.Scorer) float64 {
	return evaluateByQuery(vs.ds, vs.CumulativeScore, m)
}
