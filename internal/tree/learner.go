package tree

import (
	"container/heap"

	"golang.org/x/sync/errgroup"

	"github.com/janpfeifer/lambdamart/internal/dataset"
)

// Config holds the per-tree hyperparameters spec.md §4.4 names.
type Config struct {
	LearningRate   float64
	MaxLeaves      int
	MinLeafSamples int
}

// featureSplit is one feature's best admissible split, or ok=false if none exists.
type featureSplit struct {
	fid       int
	threshold float64
	score     float64
	ok        bool
}

// Learn grows one RegressionTree over ts via best-first leaf expansion (spec.md §4.4), and
// returns the tree together with the per-instance, already shrinkage-scaled output to add to
// TrainingSet.ModelScore (the side effect spec.md §4.4 describes: a buffer of length
// ts.Len() accumulated as each leaf is materialized).
func Learn(ts *dataset.TrainingSet, cfg Config) (*RegressionTree, []float64, error) {
	t := &RegressionTree{}
	outputs := make([]float64, ts.Len())

	rootIndices := make([]int, ts.Len())
	for i := range rootIndices {
		rootIndices[i] = i
	}
	root := newSample(ts, rootIndices)

	// Reserve node 0 for the root; it is populated when first popped.
	t.nodes = append(t.nodes, node{})
	t.root = 0

	q := frontierQueue{{nodeIndex: 0, sample: root}}
	heap.Init(&q)

	leafCount := 0
	for q.Len() > 0 {
		elem := heap.Pop(&q).(*frontierElement)

		if 1+leafCount+q.Len() >= cfg.MaxLeaves {
			makeLeaf(t, outputs, elem, cfg.LearningRate)
			leafCount++
			continue
		}

		split, err := bestSplit(ts, elem.sample, cfg.MinLeafSamples)
		if err != nil {
			return nil, nil, err
		}
		if !split.ok {
			makeLeaf(t, outputs, elem, cfg.LearningRate)
			leafCount++
			continue
		}

		leftIndices, rightIndices := elem.sample.partition(ts, split.fid, split.threshold)
		leftIdx := len(t.nodes)
		t.nodes = append(t.nodes, node{})
		rightIdx := len(t.nodes)
		t.nodes = append(t.nodes, node{})

		t.nodes[elem.nodeIndex] = node{
			IsLeaf:    false,
			FID:       split.fid,
			Threshold: split.threshold,
			Left:      leftIdx,
			Right:     rightIdx,
		}

		heap.Push(&q, &frontierElement{nodeIndex: leftIdx, sample: newSample(ts, leftIndices)})
		heap.Push(&q, &frontierElement{nodeIndex: rightIdx, sample: newSample(ts, rightIndices)})
	}

	return t, outputs, nil
}

// makeLeaf materializes elem as a leaf: writes its raw output into the tree arena and
// accumulates the shrinkage-scaled per-instance output into the outputs buffer.
func makeLeaf(t *RegressionTree, outputs []float64, elem *frontierElement, learningRate float64) {
	rawOutput := elem.sample.leafOutput()
	t.nodes[elem.nodeIndex] = node{IsLeaf: true, Output: rawOutput}
	scaled := learningRate * rawOutput
	for _, i := range elem.sample.indices {
		outputs[i] = scaled
	}
}

// bestSplit scans every feature's histogram (in parallel -- disjoint per-feature scans, spec.md
// §5) and selects the split maximizing S, left-biased on exact ties (spec.md §4.4: "tie-break by
// first feature id encountered").
func bestSplit(ts *dataset.TrainingSet, s *sample, minLeafSamples int) (featureSplit, error) {
	nfeatures := ts.DataSet().NumFeatures()
	results := make([]featureSplit, nfeatures)

	var g errgroup.Group
	for i := 0; i < nfeatures; i++ {
		fid := i + 1
		g.Go(func() error {
			tm := ts.ThresholdMap(fid)
			h := ts.FeatureHistogram(fid, s.indices)
			threshold, score, ok := tm.BestSplit(h, minLeafSamples)
			results[fid-1] = featureSplit{fid: fid, threshold: threshold, score: score, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return featureSplit{}, err
	}

	var best featureSplit
	for _, r := range results {
		if !r.ok {
			continue
		}
		if !best.ok || r.score > best.score {
			best = r
		}
	}
	return best, nil
}
