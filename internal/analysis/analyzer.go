package analysis

// Tokenizer is anything that can split raw text into an ordered token
// sequence.
type Tokenizer interface {
	Tokenize(text string) []Token
}

// Analyzer is a tokenizer followed by zero or more filters applied in
// order, grounded on the original source's
// caterpillar/processing/analysis/analyse.py (a tokenizer-then-filters
// pipeline object), re-expressed as a value pipeline rather than a
// stateful object.
type Analyzer struct {
	Tokenizer Tokenizer
	Filters   []Filter
}

// NewAnalyzer builds a pipeline from a tokenizer and filters applied in
// the given order.
func NewAnalyzer(tokenizer Tokenizer, filters ...Filter) *Analyzer {
	return &Analyzer{Tokenizer: tokenizer, Filters: filters}
}

// Analyze runs the full pipeline over raw text. It never fails: a nil
// or malformed tokenizer input simply yields no tokens.
func (a *Analyzer) Analyze(text string) []Token {
	if a == nil || a.Tokenizer == nil {
		return nil
	}
	tokens := a.Tokenizer.Tokenize(text)
	for _, f := range a.Filters {
		if f == nil {
			continue
		}
		tokens = f.Filter(tokens)
	}
	return tokens
}

// DefaultEnglishAnalyzer builds the pipeline used when a text field
// doesn't name an explicit analyzer: the mandatory word tokenizer,
// lowercasing, and the English stopword filter.
func DefaultEnglishAnalyzer() *Analyzer {
	return NewAnalyzer(NewWordTokenizer(), LowercaseFilter{}, NewStopFilter(EnglishStopwords))
}
