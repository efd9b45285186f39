package querystring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Data-drone/caterpillar/internal/query"
)

func TestParseSingleTerm(t *testing.T) {
	p, err := Parse("alice")
	require.NoError(t, err)
	require.Equal(t, query.TermLeaf{Term: "alice"}, p)
}

func TestParseStarMatchesAllFrames(t *testing.T) {
	p, err := Parse("*")
	require.NoError(t, err)
	require.Equal(t, query.AllFrames{}, p)
}

func TestParseCompoundOperandIsAndChain(t *testing.T) {
	p, err := Parse("mad hatter")
	require.NoError(t, err)
	require.Equal(t, query.And{
		Left:  query.TermLeaf{Term: "mad"},
		Right: query.TermLeaf{Term: "hatter"},
	}, p)
}

func TestParseAndOrNot(t *testing.T) {
	p, err := Parse("alice AND rabbit OR hatter NOT queen")
	require.NoError(t, err)

	left := query.And{Left: query.TermLeaf{Term: "alice"}, Right: query.TermLeaf{Term: "rabbit"}}
	right := query.Not{Left: query.TermLeaf{Term: "hatter"}, Right: query.TermLeaf{Term: "queen"}}
	require.Equal(t, query.Or{Left: left, Right: right}, p)
}

func TestParseAndOrCaseInsensitive(t *testing.T) {
	p, err := Parse("alice and rabbit")
	require.NoError(t, err)
	require.Equal(t, query.And{Left: query.TermLeaf{Term: "alice"}, Right: query.TermLeaf{Term: "rabbit"}}, p)
}

func TestParseParentheses(t *testing.T) {
	p, err := Parse("(alice OR rabbit) AND hatter")
	require.NoError(t, err)
	require.Equal(t, query.And{
		Left:  query.Or{Left: query.TermLeaf{Term: "alice"}, Right: query.TermLeaf{Term: "rabbit"}},
		Right: query.TermLeaf{Term: "hatter"},
	}, p)
}

func TestParseWeight(t *testing.T) {
	p, err := Parse("alice^2.5")
	require.NoError(t, err)
	require.Equal(t, query.Weight{Factor: 2.5, Child: query.TermLeaf{Term: "alice"}}, p)
}

func TestParseStructuredPredicate(t *testing.T) {
	p, err := Parse("year>=1865")
	require.NoError(t, err)
	require.Equal(t, query.StructuredLeaf{Field: "year", Op: ">=", Value: "1865"}, p)
}

func TestParseStructuredPredicateQuotedValue(t *testing.T) {
	p, err := Parse(`status="open door"`)
	require.NoError(t, err)
	require.Equal(t, query.StructuredLeaf{Field: "status", Op: "=", Value: "open door"}, p)
}

func TestParseFieldRestriction(t *testing.T) {
	p, err := Parse("title:alice")
	require.NoError(t, err)
	require.Equal(t, query.FieldRestrict{Field: "title", Child: query.TermLeaf{Term: "alice"}}, p)
}

func TestParseWildcardTerm(t *testing.T) {
	p, err := Parse("christ*")
	require.NoError(t, err)
	require.Equal(t, query.TermLeaf{Term: "christ*"}, p)
}

func TestParseWeightedParenthesizedGroup(t *testing.T) {
	p, err := Parse("(alice OR rabbit)^3")
	require.NoError(t, err)
	require.Equal(t, query.Weight{
		Factor: 3,
		Child:  query.Or{Left: query.TermLeaf{Term: "alice"}, Right: query.TermLeaf{Term: "rabbit"}},
	}, p)
}

func TestParseUnbalancedParenIsSyntaxError(t *testing.T) {
	_, err := Parse("(alice OR rabbit")
	require.Error(t, err)
}

func TestParseTrailingOperatorIsSyntaxError(t *testing.T) {
	_, err := Parse("alice AND")
	require.Error(t, err)
}

func TestParseEmptyInputIsSyntaxError(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
}
