package tree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janpfeifer/lambdamart/internal/dataset"
	"github.com/janpfeifer/lambdamart/internal/metric"
)

func scenarioDataSet() *dataset.DataSet {
	instances := []dataset.Instance{
		dataset.NewInstance(3, 1, []float64{5}),
		dataset.NewInstance(2, 1, []float64{7}),
		dataset.NewInstance(3, 1, []float64{3}),
		dataset.NewInstance(1, 1, []float64{2}),
		dataset.NewInstance(0, 1, []float64{1}),
		dataset.NewInstance(2, 1, []float64{8}),
		dataset.NewInstance(4, 1, []float64{9}),
		dataset.NewInstance(1, 1, []float64{4}),
		dataset.NewInstance(0, 1, []float64{6}),
	}
	return dataset.New(instances)
}

func TestBestSplitMatchesScenario(t *testing.T) {
	ds := scenarioDataSet()
	ts, err := dataset.NewTrainingSet(ds, 3)
	require.NoError(t, err)
	// The scenario's split (S = 32) is the one found with the instance labels as split targets,
	// so Lambda is set to the labels here rather than computed from a metric.
	for i := range ts.Lambda {
		ts.Lambda[i] = ds.Instance(i).Label
	}

	rootIndices := make([]int, ts.Len())
	for i := range rootIndices {
		rootIndices[i] = i
	}
	s := newSample(ts, rootIndices)

	split, err := bestSplit(ts, s, 3)
	require.NoError(t, err)
	require.True(t, split.ok)
	assert.Equal(t, 1, split.fid)
	assert.InDelta(t, 1.0+16.0/3.0, split.threshold, 1e-6)
	assert.InDelta(t, 32.0, split.score, 0.5)

	left, right := s.partition(ts, split.fid, split.threshold)
	assert.ElementsMatch(t, []int{0, 2, 3, 4, 7, 8}, left)
	assert.ElementsMatch(t, []int{1, 5, 6}, right)

	split4, err := bestSplit(ts, s, 4)
	require.NoError(t, err)
	assert.False(t, split4.ok)
}

func TestLearnProducesBoundedLeaves(t *testing.T) {
	ds := scenarioDataSet()
	ts, err := dataset.NewTrainingSet(ds, 3)
	require.NoError(t, err)
	ndcg, err := metric.New("NDCG", 10)
	require.NoError(t, err)
	require.NoError(t, ts.UpdateLambdasWeights(ndcg))

	tr, outputs, err := Learn(ts, Config{LearningRate: 0.1, MaxLeaves: 10, MinLeafSamples: 1})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, tr.NumLeaves(), 1)
	assert.LessOrEqual(t, tr.NumLeaves(), 10)
	assert.Len(t, outputs, ts.Len())
}

func TestLearnSingleLeafWhenMaxLeavesIsOne(t *testing.T) {
	ds := scenarioDataSet()
	ts, err := dataset.NewTrainingSet(ds, 3)
	require.NoError(t, err)
	ndcg, err := metric.New("NDCG", 10)
	require.NoError(t, err)
	require.NoError(t, ts.UpdateLambdasWeights(ndcg))

	tr, _, err := Learn(ts, Config{LearningRate: 0.1, MaxLeaves: 1, MinLeafSamples: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, tr.NumLeaves())
}

func TestLearnZeroLambdasYieldsZeroOutput(t *testing.T) {
	instances := []dataset.Instance{
		dataset.NewInstance(2, 1, []float64{1}),
		dataset.NewInstance(2, 1, []float64{2}),
		dataset.NewInstance(2, 1, []float64{3}),
	}
	ds := dataset.New(instances)
	ts, err := dataset.NewTrainingSet(ds, 3)
	require.NoError(t, err)
	ndcg, err := metric.New("NDCG", 10)
	require.NoError(t, err)
	require.NoError(t, ts.UpdateLambdasWeights(ndcg))

	_, outputs, err := Learn(ts, Config{LearningRate: 0.1, MaxLeaves: 10, MinLeafSamples: 1})
	require.NoError(t, err)
	for _, o := range outputs {
		assert.Zero(t, o)
	}
}

func TestEnsembleEvalEmptyIsZero(t *testing.T) {
	e := NewEnsemble(0.1)
	inst := dataset.NewInstance(0, 1, []float64{5})
	assert.Zero(t, e.Eval(&inst))
}

func TestRegressionTreePrintRendersSplitsAndLeaves(t *testing.T) {
	ds := scenarioDataSet()
	ts, err := dataset.NewTrainingSet(ds, 3)
	require.NoError(t, err)
	ndcg, err := metric.New("NDCG", 10)
	require.NoError(t, err)
	require.NoError(t, ts.UpdateLambdasWeights(ndcg))

	tr, _, err := Learn(ts, Config{LearningRate: 0.1, MaxLeaves: 2, MinLeafSamples: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	tr.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "fid 1 <=")
	assert.Contains(t, out, "= ")
	// Both leaves sit at depth 1 ("  = output"); the root's "fid 1 <= " line is not counted.
	assert.Equal(t, 2, strings.Count(out, "  = "))
}

func TestRegressionTreePrintEmptyTree(t *testing.T) {
	tr := &RegressionTree{}
	var buf bytes.Buffer
	tr.Print(&buf)
	assert.Equal(t, "empty\n", buf.String())
}
