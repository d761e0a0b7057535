// Package generics implements small generic data-structure helpers missing from the stdlib,
// used by the dataset package to order a query's instances by score.
package generics

import (
	"cmp"
	"slices"
)

// SliceOrdering returns a slice of indices into s (the original slice) ordered by value --
// without changing s. If reverse is true, returns descending order instead.
//
// Ties (including any comparison involving NaN, which is treated as equal to everything) resolve
// to Go's stable sort order, matching spec.md §7.3's "NaN comparisons fall back to equal" policy.
func SliceOrdering[S interface{ ~[]E }, E cmp.Ordered](s S, reverse bool) []int {
	ordering := make([]int, len(s))
	for i := range ordering {
		ordering[i] = i
	}
	reverseMult := 1
	if reverse {
		reverseMult = -1
	}
	slices.SortStableFunc(ordering, func(a, b int) int {
		if s[a] != s[a] || s[b] != s[b] { // Only NaN differs from itself.
			return 0
		}
		return cmp.Compare(s[a], s[b]) * reverseMult
	})
	return ordering
}
