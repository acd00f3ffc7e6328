package engine

// dedupe collapses items sharing an identity key, keeping the winner of the
// domain tie-break. First-seen order of keys is preserved, so the result is
// deterministic and stable under re-runs given identical input, and running
// dedupe on its own output yields the same set.
func dedupe[T any](d Domain[T], items []T) []T {
	if len(items) <= 1 {
		return items
	}

	index := make(map[string]int, len(items))
	out := make([]T, 0, len(items))

	for _, it := range items {
		key := d.Key(it)
		at, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, it)
			continue
		}
		if d.Prefer(it, out[at]) {
			out[at] = it
		}
	}

	return out
}
