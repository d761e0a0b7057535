package metric

import (
	"strings"

	"github.com/pkg/errors"
)

// New builds a Scorer from its family name ("NDCG" or "DCG", case-insensitive) and truncation
// level k. Returns a configuration error (spec.md §7.2) for an unknown family or a non-positive k.
func New(family string, k int) (Scorer, error) {
	if k < 1 {
		return nil, errors.Errorf("metric truncation level k must be >= 1, got %d", k)
	}
	switch strings.ToUpper(family) {
	case "NDCG":
		return NewNDCG(k), nil
	case "DCG":
		return NewDCG(k), nil
	default:
		return nil, errors.Errorf("unknown metric %q, expected NDCG or DCG", family)
	}
}
