package frames

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	sentences := Split("The cat sat. The dog ran. Birds flew away.")
	require.Len(t, sentences, 3)
}

func TestSplitRespectsAbbreviations(t *testing.T) {
	sentences := Split("Dr. Smith arrived. He left soon after.")
	require.Len(t, sentences, 2)
}

func TestBuilderFrameSizeZeroIsWholeField(t *testing.T) {
	b := Builder{FrameSize: 0}
	frames := b.Build("One sentence. Two sentence. Three sentence.")
	require.Len(t, frames, 1)
	require.Equal(t, 3, frames[0].SentenceCount)
}

func TestBuilderGroupsBySize(t *testing.T) {
	b := Builder{FrameSize: 2}
	frames := b.Build("S1. S2. S3. S4. S5.")
	require.Len(t, frames, 3)
	require.Equal(t, 2, frames[0].SentenceCount)
	require.Equal(t, 2, frames[1].SentenceCount)
	require.Equal(t, 1, frames[2].SentenceCount)
}

func TestBuilderParagraphBreaksAlwaysSplit(t *testing.T) {
	b := Builder{FrameSize: 10}
	frames := b.Build("First paragraph sentence.\n\nSecond paragraph sentence.")
	require.Len(t, frames, 2)
}

func TestBuilderEmptyText(t *testing.T) {
	b := Builder{FrameSize: 2}
	require.Empty(t, b.Build(""))
	require.Empty(t, b.Build("   "))
}

func TestSequenceNumbersAreContiguous(t *testing.T) {
	b := Builder{FrameSize: 1}
	frames := b.Build("A. B. C.")
	for i, f := range frames {
		require.Equal(t, i, f.SequenceInField)
	}
}
