package tree

import "container/heap"

// frontierElement owns the arena node index it will eventually populate and its sample's index
// vector. It is consumed exactly once: popped, then either turned into a leaf (indices discarded
// after writing leaf outputs) or split into two new elements (indices partitioned, not copied),
// per spec.md §9.
type frontierElement struct {
	nodeIndex int
	sample    *sample
}

// frontierQueue is a max-priority queue over frontierElements keyed by sample variance. No
// third-party priority-queue library appears anywhere in the retrieved example pack (see
// DESIGN.md); container/heap is the idiomatic stdlib choice for this.
type frontierQueue []*frontierElement

func (q frontierQueue) Len() int { return len(q) }
func (q frontierQueue) Less(i, j int) bool {
	return q[i].sample.variance() > q[j].sample.variance() // max-heap
}
func (q frontierQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontierQueue) Push(x any) {
	*q = append(*q, x.(*frontierElement))
}

func (q *frontierQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

var _ heap.Interface = (*frontierQueue)(nil)
