// Package frames splits one unstructured field's raw text into
// sentences, then groups sentences into fixed-size frames, honoring
// paragraph breaks as frame boundaries regardless of the configured
// frame size.
package frames

import (
	"regexp"
	"strings"
)

// Frame is one frame produced by Build. SequenceInField is assigned in
// the order frames are produced; the caller (the staging workspace)
// attaches the field name and uses SequenceInField as-is.
type Frame struct {
	SequenceInField int
	Text            string
	SentenceCount   int
}

// sentenceEnd matches a sentence-terminal punctuation run, optional
// closing quotes or brackets, and the whitespace after them; text after
// the last match is kept as the final sentence. A deliberate stdlib regexp
// implementation: nothing in the dependency set offers sentence
// boundaries, only word boundaries.
var sentenceEnd = regexp.MustCompile(`([.!?]+)(['")\]]*)(\s+)`)

// commonAbbreviations are excluded from sentence-ending punctuation to
// avoid splitting "Mr. Smith" or "e.g. this" into two sentences.
var commonAbbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true,
	"sr": true, "jr": true, "st": true, "vs": true, "etc": true,
	"e.g": true, "i.e": true, "no": true, "inc": true, "ltd": true,
	"co": true, "corp": true, "gen": true, "gov": true, "rep": true,
}

// Split splits raw text into sentences, treating a blank line (two or
// more consecutive newlines) as an additional, always-respected
// boundary.
func Split(text string) []string {
	var sentences []string
	for _, para := range splitParagraphs(text) {
		sentences = append(sentences, splitSentences(para)...)
	}
	return sentences
}

func splitParagraphs(text string) []string {
	paras := regexp.MustCompile(`\n\s*\n+`).Split(text, -1)
	var out []string
	for _, p := range paras {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func splitSentences(paragraph string) []string {
	paragraph = strings.TrimSpace(paragraph)
	if paragraph == "" {
		return nil
	}

	var sentences []string
	last := 0
	matches := sentenceEnd.FindAllStringSubmatchIndex(paragraph, -1)
	for _, m := range matches {
		end := m[1] // end of the full match (punctuation + trailing space)
		candidate := paragraph[last:m[3]] // up through the punctuation, before trailing space/quote
		word := lastWord(paragraph[last:m[2]])
		if commonAbbreviations[strings.ToLower(strings.TrimRight(word, "."))] {
			continue
		}
		sentences = append(sentences, strings.TrimSpace(candidate))
		last = end
	}
	if rest := strings.TrimSpace(paragraph[last:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func lastWord(s string) string {
	s = strings.TrimRight(s, ".!?'\")] \t\n")
	idx := strings.LastIndexAny(s, " \t\n")
	if idx == -1 {
		return s
	}
	return s[idx+1:]
}

// Builder groups sentences into frames of a configured size.
type Builder struct {
	// FrameSize is the number of sentences per frame. Zero means "whole
	// field as one frame".
	FrameSize int
}

// Build splits text into frames. Paragraph breaks always start a new
// frame, regardless of FrameSize.
func (b Builder) Build(text string) []Frame {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var frames []Frame
	seq := 0
	for _, para := range splitParagraphs(text) {
		sentences := splitSentences(para)
		if len(sentences) == 0 {
			continue
		}

		if b.FrameSize <= 0 {
			frames = append(frames, Frame{
				SequenceInField: seq,
				Text:            strings.Join(sentences, " "),
				SentenceCount:   len(sentences),
			})
			seq++
			continue
		}

		for i := 0; i < len(sentences); i += b.FrameSize {
			end := i + b.FrameSize
			if end > len(sentences) {
				end = len(sentences)
			}
			frames = append(frames, Frame{
				SequenceInField: seq,
				Text:            strings.Join(sentences[i:end], " "),
				SentenceCount:   end - i,
			})
			seq++
		}
	}
	return frames
}
