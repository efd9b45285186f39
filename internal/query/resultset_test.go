package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchAllIntersectsAndConcatenates(t *testing.T) {
	a := ResultSet{1: {1.0}, 2: {2.0}}
	b := ResultSet{2: {3.0}, 3: {4.0}}
	out := MatchAll(a, b)
	require.Equal(t, ResultSet{2: {2.0, 3.0}}, out)
}

func TestMatchAnyUnionsWithZeroPadding(t *testing.T) {
	a := ResultSet{1: {1.0}}
	b := ResultSet{2: {2.0}}
	out := MatchAny(a, b)
	require.ElementsMatch(t, []float64{1.0, 0}, out[1])
	require.ElementsMatch(t, []float64{0, 2.0}, out[2])
}

func TestExcludeKeepsOnlyUnmatched(t *testing.T) {
	base := ResultSet{1: {1.0}, 2: {2.0}, 3: {3.0}}
	e1 := ResultSet{2: {0}}
	e2 := ResultSet{3: {0}}
	out := Exclude(base, e1, e2)
	require.Equal(t, ResultSet{1: {1.0}}, out)
}

func TestBoostScalesEveryScore(t *testing.T) {
	base := ResultSet{1: {1.0, 2.0}}
	out := Boost(base, 2.0)
	require.Equal(t, ResultSet{1: {2.0, 4.0}}, out)
}

func TestScoreAndRankTieBreaksAscendingKey(t *testing.T) {
	set := ResultSet{
		5: {1.0},
		2: {1.0},
		9: {3.0},
	}
	ranked := ScoreAndRank(set, SumAggregator, 0, 0)
	require.Equal(t, []Ranked{
		{Key: 9, Score: 3.0},
		{Key: 2, Score: 1.0},
		{Key: 5, Score: 1.0},
	}, ranked)
}

func TestScoreAndRankWindow(t *testing.T) {
	set := ResultSet{1: {1}, 2: {2}, 3: {3}, 4: {4}}
	ranked := ScoreAndRank(set, SumAggregator, 1, 2)
	require.Len(t, ranked, 2)
	require.Equal(t, int64(3), ranked[0].Key)
	require.Equal(t, int64(2), ranked[1].Key)
}

func TestScoreAndRankMaxAggregator(t *testing.T) {
	set := ResultSet{1: {1.0, 5.0, 2.0}}
	ranked := ScoreAndRank(set, MaxAggregator, 0, 0)
	require.Equal(t, 5.0, ranked[0].Score)
}

func TestSetAlgebraCardinalityIdentity(t *testing.T) {
	a := ResultSet{1: {1}, 2: {1}, 3: {1}}
	b := ResultSet{2: {1}, 3: {1}, 4: {1}}

	union := MatchAny(a, b)
	inter := MatchAll(a, b)
	onlyA := Exclude(a, b)
	onlyB := Exclude(b, a)

	require.Equal(t, len(union), len(inter)+len(onlyA)+len(onlyB))
}
