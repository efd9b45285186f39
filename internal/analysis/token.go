// Package analysis implements the text analysis pipeline: a tokenizer
// followed by zero or more composable filters, turning one raw field
// value into a sequence of Tokens.
package analysis

// Token is a single unit produced by the pipeline. Tokens are values:
// Token carries no shared mutable state across iterations — the
// pipeline is a plain slice/iterator of values, never a reused cursor.
type Token struct {
	Value         string
	Position      int
	Start, End    int
	Stopped       bool
	FrameBoundary bool
}

// Len returns the character span width of the token.
func (t Token) Len() int { return t.End - t.Start }
