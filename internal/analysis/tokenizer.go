package analysis

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// FrameBoundarySentinel is the code point a frame builder may embed in
// field text to mark a paragraph break. The tokenizer recognizes it and
// never lets it leak into token text.
const FrameBoundarySentinel = ' ' // Unicode PARAGRAPH SEPARATOR

// leadingArticles are excluded from the front of a compound proper-noun
// sequence (excludes a leading "The" or "But" from joining the compound).
var leadingArticles = map[string]bool{"the": true, "but": true}

// special-token patterns, applied before generic word segmentation so
// that emails, URLs, hashtags and mentions survive as single tokens —
// UAX #29 word boundaries alone would split on '@', '#', '/' and '.'.
var (
	urlPattern   = regexp.MustCompile(`\bhttps?://[^\s]+`)
	emailPattern = regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.[\w.-]+\b`)
	hashPattern  = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	mentionPattern = regexp.MustCompile(`@[\p{L}\p{N}_]+`)
)

var specialPatterns = []*regexp.Regexp{urlPattern, emailPattern, hashPattern, mentionPattern}

// span is a half-open byte range [start, end) into the original text.
type span struct {
	start, end int
	protected  bool // recognized by a special pattern; skip generic segmentation
}

// WordTokenizer implements the mandatory "word" tokenizer: it
// recognizes compound proper nouns, preserves emails/URLs/hashtags/
// mentions and contractions (splitting off only the possessive
// suffix), preserves decimal numbers, and honors FrameBoundarySentinel.
//
// Tokenize never fails: malformed input yields zero tokens, following
// the package's runtime-never-fails propagation policy.
type WordTokenizer struct{}

// NewWordTokenizer returns the mandatory word tokenizer. Construction
// cannot fail for this tokenizer (it has no configurable regex); other
// tokenizers composed into an Analyzer may return a construction error
// instead (e.g. an invalid tokenizer regex).
func NewWordTokenizer() *WordTokenizer { return &WordTokenizer{} }

func (w *WordTokenizer) Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	segments := splitOnSentinel(text)

	var tokens []Token
	pos := 0
	for i, seg := range segments {
		boundaryBefore := i > 0
		segTokens := tokenizeSegment(text[seg.start:seg.end], seg.start, &pos)
		if boundaryBefore && len(segTokens) > 0 {
			segTokens[0].FrameBoundary = true
		}
		tokens = append(tokens, segTokens...)
	}

	tokens = mergeCompoundProperNouns(tokens)
	tokens = splitPossessives(tokens)
	return tokens
}

// splitOnSentinel breaks text into byte spans around FrameBoundarySentinel
// occurrences; the sentinel rune itself is excluded from every span.
func splitOnSentinel(text string) []span {
	var spans []span
	start := 0
	for i, r := range text {
		if r == FrameBoundarySentinel {
			if i > start {
				spans = append(spans, span{start: start, end: i})
			}
			start = i + len(string(r))
		}
	}
	if start < len(text) {
		spans = append(spans, span{start: start, end: len(text)})
	}
	if len(spans) == 0 {
		return []span{{start: 0, end: 0}}
	}
	return spans
}

// tokenizeSegment tokenizes one sentinel-free segment of text, starting
// at byte offset `base` within the original string, and advances *pos
// (the running token position counter) as it goes.
func tokenizeSegment(segment string, base int, pos *int) []Token {
	if strings.TrimSpace(segment) == "" {
		return nil
	}

	protected := findProtectedSpans(segment)

	var tokens []Token
	cursor := 0
	for _, p := range protected {
		if p.start > cursor {
			tokens = append(tokens, segmentWords(segment[cursor:p.start], base+cursor, pos)...)
		}
		value := segment[p.start:p.end]
		if value != "" {
			tokens = append(tokens, Token{
				Value:    value,
				Position: *pos,
				Start:    base + p.start,
				End:      base + p.end,
			})
			*pos++
		}
		cursor = p.end
	}
	if cursor < len(segment) {
		tokens = append(tokens, segmentWords(segment[cursor:], base+cursor, pos)...)
	}
	return tokens
}

func findProtectedSpans(text string) []span {
	var spans []span
	for _, re := range specialPatterns {
		for _, m := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{start: m[0], end: m[1], protected: true})
		}
	}
	if len(spans) == 0 {
		return nil
	}
	// Sort and drop overlaps, keeping the earliest/longest match.
	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			if spans[j].start < spans[i].start {
				spans[i], spans[j] = spans[j], spans[i]
			}
		}
	}
	out := spans[:1]
	for _, s := range spans[1:] {
		last := out[len(out)-1]
		if s.start < last.end {
			continue // overlaps a span we already kept
		}
		out = append(out, s)
	}
	return out
}

// segmentWords runs the UAX #29 word segmenter over unprotected text
// and emits a Token per non-whitespace, non-punctuation-only segment.
func segmentWords(text string, base int, pos *int) []Token {
	if text == "" {
		return nil
	}

	var tokens []Token
	seg := words.NewSegmenter([]byte(text))
	offset := 0
	for seg.Next() {
		value := seg.Value()
		start := offset
		end := offset + len(value)
		offset = end

		trimmed := strings.TrimFunc(string(value), func(r rune) bool {
			return unicode.IsSpace(r) || isBareOuterPunctuation(r)
		})
		if trimmed == "" {
			continue
		}
		leadTrim := len(value) - len(strings.TrimLeftFunc(string(value), func(r rune) bool {
			return unicode.IsSpace(r) || isBareOuterPunctuation(r)
		}))
		tokens = append(tokens, Token{
			Value:    trimmed,
			Position: *pos,
			Start:    base + start + leadTrim,
			End:      base + start + leadTrim + len(trimmed),
		})
		*pos++
	}
	return tokens
}

// isBareOuterPunctuation reports whether r is punctuation the bare word
// tokenizer strips from a segment's edges when it isn't part of a
// protected special token. This is a simplification of the composable
// outer-punctuation filter applied at the tokenizer level so raw word
// boundaries never carry stray quotes/brackets.
func isBareOuterPunctuation(r rune) bool {
	switch r {
	case '"', '\'', '(', ')', '[', ']', '{', '}', ',', ';', ':', '!', '?', '.', '“', '”', '‘', '’':
		return true
	}
	return false
}

// mergeCompoundProperNouns collapses adjacent, contiguous Title-Case
// tokens into a single compound token ("John McGee", "King of Scotland"),
// excluding a leading "The"/"But" from the merged sequence.
func mergeCompoundProperNouns(tokens []Token) []Token {
	if len(tokens) == 0 {
		return tokens
	}

	var out []Token
	i := 0
	for i < len(tokens) {
		if !isTitleCase(tokens[i].Value) || leadingArticles[strings.ToLower(tokens[i].Value)] {
			out = append(out, tokens[i])
			i++
			continue
		}

		j := i + 1
		for j < len(tokens) && isContiguous(tokens[j-1], tokens[j]) && (isTitleCase(tokens[j].Value) || isLowerJoiner(tokens[j].Value)) {
			j++
		}
		// Trim a trailing lower-case joiner ("of", "de") that didn't lead
		// into another Title-Case token.
		for j > i+1 && isLowerJoiner(tokens[j-1].Value) {
			j--
		}

		if j-i <= 1 {
			out = append(out, tokens[i])
			i++
			continue
		}

		var b strings.Builder
		for k := i; k < j; k++ {
			if k > i {
				b.WriteByte(' ')
			}
			b.WriteString(tokens[k].Value)
		}
		out = append(out, Token{
			Value:    b.String(),
			Position: tokens[i].Position,
			Start:    tokens[i].Start,
			End:      tokens[j-1].End,
		})
		i = j
	}
	return out
}

func isContiguous(a, b Token) bool {
	return b.Position == a.Position+1
}

func isTitleCase(s string) bool {
	r := []rune(s)
	if len(r) == 0 || !unicode.IsUpper(r[0]) {
		return false
	}
	if len(r) == 1 {
		return true
	}
	for _, c := range r[1:] {
		if unicode.IsLower(c) {
			return true
		}
	}
	return false // all-caps acronyms aren't proper-noun candidates
}

func isLowerJoiner(s string) bool {
	switch strings.ToLower(s) {
	case "of", "de", "van", "von", "der", "den":
		return true
	}
	return false
}

// splitPossessives removes a trailing possessive "'s" from a token,
// discarding the suffix rather than emitting it as its own token.
// Contractions otherwise stay intact; only the possessive suffix is
// split off and discarded.
func splitPossessives(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		v := t.Value
		if strings.HasSuffix(v, "'s") && len(v) > 2 {
			t.Value = v[:len(v)-2]
			t.End -= 2
		} else if strings.HasSuffix(v, "’s") {
			t.Value = strings.TrimSuffix(v, "’s")
			t.End -= len("’s")
		}
		if t.Value == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
