package flush

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Data-drone/caterpillar/internal/staging"
)

// Storage-backed flush behavior (deletions, postings, revisions) is
// exercised end-to-end by the index package's tests against a live
// embedded store: unit tests here cover the pure bookkeeping, while
// integration tests one level up cover the database round trip.

func TestAggregateStagedFrequenciesOrdersDescending(t *testing.T) {
	docs := []*staging.Document{
		{Frames: []staging.Frame{
			{Terms: map[string]*staging.TermOccurrence{
				"fox":   {Frequency: 1},
				"quick": {Frequency: 3},
			}},
		}},
		{Frames: []staging.Frame{
			{Terms: map[string]*staging.TermOccurrence{
				"quick": {Frequency: 2},
				"dog":   {Frequency: 3},
			}},
		}},
	}

	agg := aggregateStagedFrequencies(docs)
	require.Equal(t, 5, agg.counts["quick"])
	require.Equal(t, 1, agg.counts["fox"])
	require.Equal(t, []string{"quick", "dog", "fox"}, agg.order, "descending frequency, ties broken alphabetically")
}

func TestJoinPositions(t *testing.T) {
	require.Equal(t, "0,3,7", joinPositions([]int{0, 3, 7}))
	require.Equal(t, "", joinPositions(nil))
}

func TestErrUnknownField(t *testing.T) {
	err := errUnknownField("ghost")
	require.EqualError(t, err, "unknown field: ghost")
}
