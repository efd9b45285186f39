package analysis

import (
	"regexp"
	"strings"
)

// Filter transforms a token stream. Filters compose in order inside an
// Analyzer and may mark tokens Stopped (never delete them outright —
// stopped tokens still occupy a position).
type Filter interface {
	Filter(tokens []Token) []Token
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func([]Token) []Token

func (f FilterFunc) Filter(tokens []Token) []Token { return f(tokens) }

// LowercaseFilter lowercases every non-stopped token's value.
type LowercaseFilter struct{}

func (LowercaseFilter) Filter(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		if !t.Stopped {
			t.Value = strings.ToLower(t.Value)
		}
		out[i] = t
	}
	return out
}

// StopFilter marks tokens present in the given stopword set as Stopped.
// It never removes a token: positions must stay stable.
type StopFilter struct {
	words map[string]bool
}

func NewStopFilter(words []string) *StopFilter {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return &StopFilter{words: set}
}

func (f *StopFilter) Filter(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		if f.words[strings.ToLower(t.Value)] {
			t.Stopped = true
		}
		out[i] = t
	}
	return out
}

// PositionalLowercaseFilter lowercases only title-cased, non-compound
// tokens at a given position — intended to defeat sentence-initial
// capitalization without corrupting proper nouns.
type PositionalLowercaseFilter struct {
	Position int
}

func (f PositionalLowercaseFilter) Filter(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		if t.Position == f.Position && isTitleCase(t.Value) && !strings.Contains(t.Value, " ") {
			t.Value = strings.ToLower(t.Value)
		}
		out[i] = t
	}
	return out
}

// SubstitutionFilter applies a regex replacement to every token value.
type SubstitutionFilter struct {
	re   *regexp.Regexp
	repl string
}

// NewSubstitutionFilter compiles pattern. An invalid pattern is a
// construction-time configuration error.
func NewSubstitutionFilter(pattern, repl string) (*SubstitutionFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &SubstitutionFilter{re: re, repl: repl}, nil
}

func (f *SubstitutionFilter) Filter(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		t.Value = f.re.ReplaceAllString(t.Value, f.repl)
		out[i] = t
	}
	return out
}

// SearchFilter keeps only group 0 of a regex match inside each token
// value, dropping tokens that don't match at all.
type SearchFilter struct {
	re *regexp.Regexp
}

func NewSearchFilter(pattern string) (*SearchFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &SearchFilter{re: re}, nil
}

func (f *SearchFilter) Filter(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		m := f.re.FindString(t.Value)
		if m == "" {
			continue
		}
		t.Value = m
		out = append(out, t)
	}
	return out
}

// OuterPunctuationFilter strips leading/trailing punctuation from each
// token, except characters present in the allow-lists.
type OuterPunctuationFilter struct {
	AllowLeading, AllowTrailing map[rune]bool
}

func NewOuterPunctuationFilter(allowLeading, allowTrailing []rune) *OuterPunctuationFilter {
	f := &OuterPunctuationFilter{AllowLeading: map[rune]bool{}, AllowTrailing: map[rune]bool{}}
	for _, r := range allowLeading {
		f.AllowLeading[r] = true
	}
	for _, r := range allowTrailing {
		f.AllowTrailing[r] = true
	}
	return f
}

func (f *OuterPunctuationFilter) Filter(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		v := strings.TrimLeftFunc(t.Value, func(r rune) bool {
			return isPunct(r) && !f.AllowLeading[r]
		})
		v = strings.TrimRightFunc(v, func(r rune) bool {
			return isPunct(r) && !f.AllowTrailing[r]
		})
		if v == "" {
			continue
		}
		t.Value = v
		out = append(out, t)
	}
	return out
}

func isPunct(r rune) bool {
	switch r {
	case '.', ',', ';', ':', '!', '?', '"', '\'', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

// PossessiveContractionFilter removes a trailing "'s" from token
// values. The tokenizer already performs this for the mandatory word
// tokenizer; this filter exists so custom pipelines built on a
// different tokenizer can opt into the same behavior.
type PossessiveContractionFilter struct{}

func (PossessiveContractionFilter) Filter(tokens []Token) []Token {
	return splitPossessives(tokens)
}

// BiGramFilter collapses adjacent non-stopped, non-proper-noun tokens
// whose joined form appears in the supplied set into one token.
type BiGramFilter struct {
	pairs map[string]bool
}

func NewBiGramFilter(joinedForms []string) *BiGramFilter {
	set := make(map[string]bool, len(joinedForms))
	for _, s := range joinedForms {
		set[s] = true
	}
	return &BiGramFilter{pairs: set}
}

func (f *BiGramFilter) Filter(tokens []Token) []Token {
	var out []Token
	i := 0
	for i < len(tokens) {
		if i+1 < len(tokens) {
			a, b := tokens[i], tokens[i+1]
			if !a.Stopped && !b.Stopped && !strings.Contains(a.Value, " ") && !strings.Contains(b.Value, " ") {
				joined := a.Value + " " + b.Value
				if f.pairs[joined] {
					out = append(out, Token{
						Value:    joined,
						Position: a.Position,
						Start:    a.Start,
						End:      b.End,
					})
					i += 2
					continue
				}
			}
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

// PotentialBiGramFilter emits candidate adjacent-pair strings for the
// bi-gram discovery pre-pass, rather than filtering the stream itself.
// Call Candidates after running the pipeline through this filter.
type PotentialBiGramFilter struct {
	candidates []string
}

func (f *PotentialBiGramFilter) Filter(tokens []Token) []Token {
	for i := 0; i+1 < len(tokens); i++ {
		a, b := tokens[i], tokens[i+1]
		if a.Stopped || b.Stopped {
			continue
		}
		if strings.Contains(a.Value, " ") || strings.Contains(b.Value, " ") {
			continue
		}
		f.candidates = append(f.candidates, a.Value+" "+b.Value)
	}
	return tokens
}

// Candidates returns the candidate pairs observed across every call to
// Filter since construction (or the last Reset).
func (f *PotentialBiGramFilter) Candidates() []string { return f.candidates }

// Reset clears accumulated candidates.
func (f *PotentialBiGramFilter) Reset() { f.candidates = nil }
