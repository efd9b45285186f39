package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func values(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Value
	}
	return out
}

func TestTokenizeBasic(t *testing.T) {
	tok := NewWordTokenizer()
	tokens := tok.Tokenize("The quick brown fox")
	require.Equal(t, []string{"The", "quick", "brown", "fox"}, values(tokens))
}

func TestTokenizeEmpty(t *testing.T) {
	tok := NewWordTokenizer()
	require.Empty(t, tok.Tokenize(""))
	require.Empty(t, tok.Tokenize("   "))
}

func TestTokenizeEmail(t *testing.T) {
	tok := NewWordTokenizer()
	tokens := tok.Tokenize("contact alice@example.com today")
	require.Contains(t, values(tokens), "alice@example.com")
}

func TestTokenizeURL(t *testing.T) {
	tok := NewWordTokenizer()
	tokens := tok.Tokenize("see https://example.com/path for details")
	require.Contains(t, values(tokens), "https://example.com/path")
}

func TestTokenizeHashtagAndMention(t *testing.T) {
	tok := NewWordTokenizer()
	tokens := tok.Tokenize("great talk #golang cc @alice")
	vs := values(tokens)
	require.Contains(t, vs, "#golang")
	require.Contains(t, vs, "@alice")
}

func TestTokenizeCompoundProperNoun(t *testing.T) {
	tok := NewWordTokenizer()
	tokens := tok.Tokenize("John McGee visited King of Scotland")
	vs := values(tokens)
	require.Contains(t, vs, "John McGee")
	require.Contains(t, vs, "King of Scotland")
}

func TestTokenizePossessive(t *testing.T) {
	tok := NewWordTokenizer()
	tokens := tok.Tokenize("Alice's book")
	require.Equal(t, []string{"Alice", "book"}, values(tokens))
}

func TestTokenizeFrameBoundary(t *testing.T) {
	tok := NewWordTokenizer()
	text := "first part" + string(rune(FrameBoundarySentinel)) + "second part"
	tokens := tok.Tokenize(text)
	require.True(t, tokens[0].FrameBoundary == false)
	// the first token after the sentinel should carry the boundary flag
	found := false
	for _, tk := range tokens {
		if tk.Value == "second" && tk.FrameBoundary {
			found = true
		}
	}
	require.True(t, found)
}

func TestTokenizeNeverProducesEmptyTokens(t *testing.T) {
	tok := NewWordTokenizer()
	tokens := tok.Tokenize("  ...   ,,,  ")
	for _, tk := range tokens {
		require.NotEmpty(t, tk.Value)
	}
}

func TestAnalyzerAppliesFilters(t *testing.T) {
	a := DefaultEnglishAnalyzer()
	tokens := a.Analyze("The Quick Fox")
	var stopped []bool
	for _, tk := range tokens {
		stopped = append(stopped, tk.Stopped)
	}
	require.Equal(t, []string{"the", "quick fox"}, values(tokens))
	require.True(t, stopped[0], "leading stopword 'the' should be marked stopped")
}
