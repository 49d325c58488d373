package usage

import "sort"

// Tally counts occurrences per categorical key. Counts only ever grow.
type Tally map[string]int

// Add increments the count for key.
func (t Tally) Add(key string) {
	t[key]++
}

// Total returns the sum of all counts.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// RankedCount is one row of a ranked tally.
type RankedCount struct {
	Key   string
	Count int
}

// Ranked returns the tally ordered by descending count, ties broken by
// key so the order is deterministic.
// This is a PURE function.
func (t Tally) Ranked() []RankedCount {
	out := make([]RankedCount, 0, len(t))
	for k, c := range t {
		out = append(out, RankedCount{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
