package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Data-drone/caterpillar/internal/schema"
)

func TestWildcardRegexpTranslatesGlob(t *testing.T) {
	re, err := wildcardRegexp("Christ*")
	require.NoError(t, err)
	require.True(t, re.MatchString("Christchurch"))
	require.False(t, re.MatchString("NewChrist"))

	re, err = wildcardRegexp("b?g")
	require.NoError(t, err)
	require.True(t, re.MatchString("big"))
	require.False(t, re.MatchString("bg"))
}

func TestIsWildcard(t *testing.T) {
	require.True(t, isWildcard("Christ*"))
	require.True(t, isWildcard("b?g"))
	require.False(t, isWildcard("plain"))
}

func TestMatchesPredicateNumeric(t *testing.T) {
	require.True(t, matchesPredicate(schema.Numeric, schema.OpGTE, "42", "10", nil))
	require.False(t, matchesPredicate(schema.Numeric, schema.OpLT, "42", "10", nil))
}

func TestMatchesPredicateCategorical(t *testing.T) {
	require.True(t, matchesPredicate(schema.CategoricalText, schema.OpEQ, "open", "open", nil))
	require.False(t, matchesPredicate(schema.CategoricalText, schema.OpEQ, "open", "closed", nil))
}

func TestIDFZeroWhenTermAbsent(t *testing.T) {
	require.Equal(t, 0.0, idf(100, 0))
	require.Equal(t, 0.0, idf(0, 0))
}

func TestIDFDecreasesAsTermBecomesCommon(t *testing.T) {
	rare := idf(1000, 2)
	common := idf(1000, 500)
	require.Greater(t, rare, common)
}
