package tree

import "github.com/janpfeifer/lambdamart/internal/dataset"

// Ensemble is an ordered sequence of RegressionTrees plus a single global learning rate. The
// ensemble's score for an instance is eta * sum of each tree's raw output (spec.md §3).
type Ensemble struct {
	Trees        []*RegressionTree
	LearningRate float64
}

// NewEnsemble creates an empty ensemble with the given learning rate.
func NewEnsemble(learningRate float64) *Ensemble {
	return &Ensemble{LearningRate: learningRate}
}

var _ dataset.Evaluator = (*Ensemble)(nil)

// Append adds a tree to the ensemble, preserving order.
func (e *Ensemble) Append(t *RegressionTree) {
	e.Trees = append(e.Trees, t)
}

// Len returns the number of trees appended so far.
func (e *Ensemble) Len() int {
	return len(e.Trees)
}

// Eval returns eta * sum(tree.Eval(inst)) over every tree, i.e. the ensemble's prediction for
// inst. With zero trees this is 0, matching spec.md §8's "trees = 0 -> evaluation returns 0".
func (e *Ensemble) Eval(inst *dataset.Instance) float64 {
	var sum float64
	for _, t := range e.Trees {
		sum += t.Eval(inst)
	}
	return e.LearningRate * sum
}
