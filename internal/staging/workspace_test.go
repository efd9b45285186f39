package staging

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Data-drone/caterpillar/internal/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s := schema.New()
	require.NoError(t, s.AddField(schema.Field{Name: "body", Kind: schema.Text, Indexed: true, Stored: true, FrameSize: 2}))
	require.NoError(t, s.AddField(schema.Field{Name: "status", Kind: schema.CategoricalText, Indexed: true, Stored: true}))
	return s
}

func TestAddDocumentStagesFramesAndTerms(t *testing.T) {
	w := New(testSchema(t), nil)

	id, err := w.AddDocument(map[string]any{
		"body":   "The quick fox ran. The quick fox jumped.",
		"status": "open",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	docs := w.Documents()
	require.Len(t, docs, 1)
	require.Equal(t, "open", docs[0].Structured["status"])
	require.NotEmpty(t, docs[0].Frames)

	var sawQuick bool
	for _, f := range docs[0].Frames {
		if occ, ok := f.Terms["quick"]; ok {
			sawQuick = true
			require.Equal(t, 2, occ.Frequency)
		}
	}
	require.True(t, sawQuick)
}

func TestAddDocumentUndeclaredField(t *testing.T) {
	w := New(testSchema(t), nil)
	_, err := w.AddDocument(map[string]any{"nonexistent": "x"})
	require.Error(t, err)
}

func TestDeleteDocumentIdempotent(t *testing.T) {
	w := New(testSchema(t), nil)
	w.DeleteDocument(42)
	w.DeleteDocument(42)
	require.Equal(t, []int64{42}, w.Deletes())
}

func TestAddFieldDuplicateAgainstExistingSchema(t *testing.T) {
	w := New(testSchema(t), nil)
	err := w.AddField(schema.Field{Name: "body", Kind: schema.Text})
	require.Error(t, err)
}

func TestAddFieldDuplicateWithinBatch(t *testing.T) {
	w := New(testSchema(t), nil)
	require.NoError(t, w.AddField(schema.Field{Name: "tags", Kind: schema.CategoricalText, Indexed: true}))
	require.Error(t, w.AddField(schema.Field{Name: "tags", Kind: schema.CategoricalText, Indexed: true}))
}

func TestPluginStateSetThenDelete(t *testing.T) {
	w := New(testSchema(t), nil)
	w.SetPluginState("stemmer", "lang=en", "version", "3")
	w.DeletePluginState("stemmer", "lang=en", "version")

	key := PluginKey{PluginType: "stemmer", Settings: "lang=en"}
	require.Empty(t, w.PluginSets()[key])
	require.True(t, w.PluginDeletes()[key]["version"])
}

func TestRollbackClearsEverything(t *testing.T) {
	w := New(testSchema(t), nil)
	_, err := w.AddDocument(map[string]any{"body": "Some text here.", "status": "open"})
	require.NoError(t, err)
	w.DeleteDocument(7)
	w.SetSetting("vocabulary_gc", "true")

	w.Rollback()
	require.True(t, w.Empty())

	id, err := w.AddDocument(map[string]any{"body": "Fresh start.", "status": "open"})
	require.NoError(t, err)
	require.Equal(t, int64(1), id, "local ids restart at 1 after rollback")
}
