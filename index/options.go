package index

import "time"

// Options are the explicit constructor options an index is opened or
// created with, in place of dynamic config-kwargs.
type Options struct {
	// ACID requests the store's full transactional guarantees. The Dolt
	// substrate always provides them; the flag exists so a caller's
	// intent is recorded rather than implicit.
	ACID bool

	// FrameSize is a frame size (sentences per frame, 0 = whole field as
	// one frame) carried with the options. The index does not apply it:
	// each text field is framed by its own schema.Field.FrameSize, and a
	// field that leaves that at 0 is indexed as one frame.
	FrameSize int

	// FoldCase enables the post-ingest case-folding pass: a
	// vocabulary-merging step run after flush that merges a term and its
	// title-cased variant into whichever of the two occurs more often.
	FoldCase bool

	// FoldThreshold is the case-folding merge threshold in (0, 1]: a
	// case-variant pair is merged when the less frequent variant's
	// occurrence count divided by the more frequent one's is below it.
	FoldThreshold float64

	// Encoding names the text encoding stored documents are assumed to
	// be in. The core itself is encoding-agnostic (Go strings are UTF-8
	// throughout); this is recorded for round-tripping external tools'
	// expectations, not enforced.
	Encoding string

	// LockTimeout bounds how long Writer waits to acquire the writer
	// lock. Nil means a single non-blocking attempt.
	LockTimeout *time.Duration
}

// DefaultOptions returns the engine's default constructor options.
func DefaultOptions() Options {
	return Options{
		ACID:          true,
		FrameSize:     2,
		FoldCase:      false,
		FoldThreshold: 0.7,
		Encoding:      "utf-8",
	}
}
