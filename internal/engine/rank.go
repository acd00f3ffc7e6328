package engine

import (
	"sort"

	"github.com/tripdeck/travelsearch/internal/model"
)

type scored[T any] struct {
	item  T
	score float64
}

// rank assigns each item its composite score under pref and returns the
// items ordered best-first. Ties keep input order, so the total order is
// deterministic across repeated runs for fixed input and preference.
func rank[T any](d Domain[T], items []T, pref model.Preference) []T {
	if len(items) == 0 {
		return items
	}

	entries := make([]scored[T], len(items))
	for i, it := range items {
		s := d.Score(it, pref)
		entries[i] = scored[T]{item: d.Annotate(it, s), score: s}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})

	out := make([]T, len(entries))
	for i, en := range entries {
		out[i] = en.item
	}
	return out
}
