// Package tree implements the best-first leaf-expansion regression tree learner (spec.md §4.4)
// and the Ensemble that accumulates trees into a shrinkage-scaled score (spec.md §3).
package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/janpfeifer/lambdamart/internal/dataset"
)

// node is one entry in a RegressionTree's arena. A leaf has IsLeaf true and a valid Output; an
// internal node has both Left and Right set to valid arena indices. This mirrors spec.md §9's
// recommended index-into-arena shape: a pure tree with no shared-ownership machinery.
type node struct {
	IsLeaf      bool
	FID         int
	Threshold   float64
	Left, Right int
	Output      float64 // valid only when IsLeaf
}

// RegressionTree is an immutable, arena-backed binary regression tree. Internal nodes split on
// (FID, Threshold); leaves store a raw (unscaled) Newton-step output.
type RegressionTree struct {
	nodes []node
	root  int
}

var _ dataset.Evaluator = (*RegressionTree)(nil)

// Eval walks the tree from the root to a leaf and returns the leaf's raw output, unscaled by any
// learning rate (spec.md §4.4: "evaluation of one tree on an instance ... return leaf.output").
func (t *RegressionTree) Eval(inst *dataset.Instance) float64 {
	n := &t.nodes[t.root]
	for !n.IsLeaf {
		if inst.Value(n.FID) <= n.Threshold {
			n = &t.nodes[n.Left]
		} else {
			n = &t.nodes[n.Right]
		}
	}
	return n.Output
}

// NumLeaves returns the number of leaf nodes in the tree.
func (t *RegressionTree) NumLeaves() int {
	count := 0
	for _, n := range t.nodes {
		if n.IsLeaf {
			count++
		}
	}
	return count
}

// Print renders the tree as indented text to w, two spaces per depth level: internal nodes as
// "fid <= threshold", leaves as "= output" (--print-tree diagnostics).
func (t *RegressionTree) Print(w io.Writer) {
	if len(t.nodes) == 0 {
		fmt.Fprintln(w, "empty")
		return
	}
	t.print(w, t.root, 0)
}

func (t *RegressionTree) print(w io.Writer, idx, depth int) {
	n := &t.nodes[idx]
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf {
		fmt.Fprintf(w, "%s= %v\n", indent, n.Output)
		return
	}
	fmt.Fprintf(w, "%sfid %d <= %v\n", indent, n.FID, n.Threshold)
	t.print(w, n.Left, depth+1)
	t.print(w, n.Right, depth+1)
}
