// Package query implements the query evaluator and result composition:
// a predicate tree over term, structured, and all-frames leaves,
// evaluated into composable result sets, scored by TF·IDF and ranked.
//
// Result sets are data, not objects: ResultSet is a plain map, and the
// composition operators are free functions rather than a class
// hierarchy — no inheritance where a value will do.
package query

import "sort"

// ResultSet maps a match key to the list of per-clause score
// contributions that matched it. The evaluator always keys results by
// frame id; it has no document-granularity mode. The list structure
// preserves score provenance across arbitrary composition.
type ResultSet map[int64][]float64

// MatchAll intersects the keys of every set, concatenating value lists
// for keys that survive.
func MatchAll(sets ...ResultSet) ResultSet {
	if len(sets) == 0 {
		return ResultSet{}
	}
	out := ResultSet{}
	for key, values := range sets[0] {
		allPresent := true
		combined := append([]float64{}, values...)
		for _, other := range sets[1:] {
			v, ok := other[key]
			if !ok {
				allPresent = false
				break
			}
			combined = append(combined, v...)
		}
		if allPresent {
			out[key] = combined
		}
	}
	return out
}

// MatchAny unions the keys of every set. A key absent from a given set
// contributes a single 0 in that set's position, preserving per-clause
// arity across the whole union.
func MatchAny(sets ...ResultSet) ResultSet {
	out := ResultSet{}
	keys := map[int64]bool{}
	for _, s := range sets {
		for k := range s {
			keys[k] = true
		}
	}
	for key := range keys {
		var combined []float64
		for _, s := range sets {
			if v, ok := s[key]; ok {
				combined = append(combined, v...)
			} else {
				combined = append(combined, 0)
			}
		}
		out[key] = combined
	}
	return out
}

// Exclude keeps the keys of base that are absent from every set in
// excluders.
func Exclude(base ResultSet, excluders ...ResultSet) ResultSet {
	out := ResultSet{}
	for key, values := range base {
		excluded := false
		for _, e := range excluders {
			if _, ok := e[key]; ok {
				excluded = true
				break
			}
		}
		if !excluded {
			out[key] = values
		}
	}
	return out
}

// Boost multiplies every score in every value list by factor.
func Boost(base ResultSet, factor float64) ResultSet {
	out := make(ResultSet, len(base))
	for key, values := range base {
		scaled := make([]float64, len(values))
		for i, v := range values {
			scaled[i] = v * factor
		}
		out[key] = scaled
	}
	return out
}

// Aggregator reduces one key's score list to a single ranking score.
type Aggregator func([]float64) float64

// SumAggregator sums every score in the list.
func SumAggregator(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// MaxAggregator returns the largest score in the list.
func MaxAggregator(values []float64) float64 {
	max := 0.0
	for i, v := range values {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// Ranked is one windowed, scored hit.
type Ranked struct {
	Key   int64
	Score float64
}

// ScoreAndRank aggregates every key's value list with aggregator, sorts
// by descending score with ascending key as the tie-break (a
// deliberate, consistent tie-break), and returns the
// [start, start+limit) window. A non-positive limit returns every
// remaining result.
func ScoreAndRank(set ResultSet, aggregator Aggregator, start, limit int) []Ranked {
	if aggregator == nil {
		aggregator = SumAggregator
	}
	ranked := make([]Ranked, 0, len(set))
	for key, values := range set {
		ranked = append(ranked, Ranked{Key: key, Score: aggregator(values)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Key < ranked[j].Key
	})

	if start < 0 {
		start = 0
	}
	if start >= len(ranked) {
		return nil
	}
	end := len(ranked)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return ranked[start:end]
}
