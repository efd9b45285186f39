//go:build cgo

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := DefaultConfig(t.TempDir())
	st, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestOpenCreatesSchema(t *testing.T) {
	st := openTestStore(t)
	fields, err := ListFields(context.Background(), st.DB())
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestFieldRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := InsertField(ctx, st.DB(), FieldRow{Name: "body", Kind: "text", Indexed: true, Stored: true, FrameSize: 2, Analyzer: "default"})
	require.NoError(t, err)
	require.NotZero(t, id)

	row, err := FieldByName(ctx, st.DB(), "body")
	require.NoError(t, err)
	require.Equal(t, "text", row.Kind)
	require.Equal(t, 2, row.FrameSize)
}

func TestTermIDIsStableAcrossLookups(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first, err := TermID(ctx, st.DB(), "caterpillar")
	require.NoError(t, err)
	second, err := TermID(ctx, st.DB(), "caterpillar")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDocumentAndFrameInsertion(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	fieldID, err := InsertField(ctx, st.DB(), FieldRow{Name: "body", Kind: "text", Indexed: true, Stored: true})
	require.NoError(t, err)

	docID, err := InsertDocument(ctx, st.DB(), 1)
	require.NoError(t, err)

	frameID, err := InsertFrame(ctx, st.DB(), FrameRow{DocumentID: docID, FieldID: fieldID, SequenceInField: 0, Text: "the quick fox"})
	require.NoError(t, err)

	termID, err := TermID(ctx, st.DB(), "fox")
	require.NoError(t, err)
	require.NoError(t, InsertPosting(ctx, st.DB(), termID, frameID, 1, "2"))

	postings, err := TermPostings(ctx, st.DB(), termID)
	require.NoError(t, err)
	require.Len(t, postings, 1)
	require.Equal(t, frameID, postings[0].FrameID)
}

func TestMarkDocumentDeletedMissingIsError(t *testing.T) {
	st := openTestStore(t)
	err := MarkDocumentDeleted(context.Background(), st.DB(), 999)
	require.Error(t, err)
}

func TestSettingRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, SetSetting(ctx, st.DB(), "vocabulary_gc", "false"))
	value, ok, err := GetSetting(ctx, st.DB(), "vocabulary_gc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "false", value)
}
