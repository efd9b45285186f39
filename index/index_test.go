//go:build cgo

package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Data-drone/caterpillar/internal/plugin"
	"github.com/Data-drone/caterpillar/internal/query"
	"github.com/Data-drone/caterpillar/internal/query/querystring"
	"github.com/Data-drone/caterpillar/internal/schema"
	"github.com/Data-drone/caterpillar/internal/store"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	fields := []schema.Field{
		{Name: "body", Kind: schema.Text, Indexed: true, Stored: true, FrameSize: 0, Analyzer: "default"},
		{Name: "region", Kind: schema.CategoricalText, Indexed: true, Stored: true},
		{Name: "year", Kind: schema.Numeric, Indexed: true, Stored: true},
	}
	idx, err := Create(context.Background(), t.TempDir(), fields, DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func mustSearch(t *testing.T, idx *Index, q string) []query.Ranked {
	t.Helper()
	pred, err := querystring.Parse(q)
	require.NoError(t, err)
	ranked, err := idx.Search(context.Background(), pred, query.SumAggregator, 0, 0)
	require.NoError(t, err)
	return ranked
}

func TestAddDocumentThenSearchByTerm(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	w, err := idx.Writer(ctx)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.AddDocument(map[string]any{"body": "the king and the queen danced", "region": "north", "year": 1865.0})
	require.NoError(t, err)
	_, err = w.Commit(ctx)
	require.NoError(t, err)

	ranked := mustSearch(t, idx, "king")
	require.Len(t, ranked, 1)
}

func TestSetAlgebraSanity(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	w, err := idx.Writer(ctx)
	require.NoError(t, err)
	defer w.Close()

	docs := []string{
		"king alone",
		"queen alone",
		"king and queen together",
		"king and queen again together",
		"nothing relevant",
	}
	for _, body := range docs {
		_, err := w.AddDocument(map[string]any{"body": body, "region": "north", "year": 1800.0})
		require.NoError(t, err)
	}
	_, err = w.Commit(ctx)
	require.NoError(t, err)

	kingAndQueen := mustSearch(t, idx, "king AND queen")
	kingOrQueen := mustSearch(t, idx, "king OR queen")
	kingNotQueen := mustSearch(t, idx, "king NOT queen")
	queenNotKing := mustSearch(t, idx, "queen NOT king")

	require.Len(t, kingAndQueen, 2)
	require.Len(t, kingOrQueen, 4)
	require.Len(t, kingNotQueen, 1)
	require.Len(t, queenNotKing, 1)
	require.Equal(t, len(kingOrQueen), len(kingAndQueen)+len(kingNotQueen)+len(queenNotKing))
}

func TestWildcardEqualityOnCategoricalField(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	w, err := idx.Writer(ctx)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.AddDocument(map[string]any{"body": "a city", "region": "Christchurch", "year": 2020.0})
	require.NoError(t, err)
	_, err = w.AddDocument(map[string]any{"body": "another city", "region": "Wellington", "year": 2020.0})
	require.NoError(t, err)
	_, err = w.Commit(ctx)
	require.NoError(t, err)

	ranked := mustSearch(t, idx, `region="Christ*"`)
	require.Len(t, ranked, 1)
}

func TestWildcardWithOrderingIsQuerySemanticsError(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	w, err := idx.Writer(ctx)
	require.NoError(t, err)
	defer w.Close()
	_, err = w.AddDocument(map[string]any{"body": "a city", "region": "Christchurch", "year": 2020.0})
	require.NoError(t, err)
	_, err = w.Commit(ctx)
	require.NoError(t, err)

	pred, err := querystring.Parse(`region>"Christ*"`)
	require.NoError(t, err)
	_, err = idx.SearchResultSet(ctx, pred)
	require.Error(t, err)
}

func TestDeleteRoundTrip(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	w, err := idx.Writer(ctx)
	require.NoError(t, err)
	defer w.Close()

	docID, err := w.AddDocument(map[string]any{"body": "ephemeral", "region": "north", "year": 1900.0})
	require.NoError(t, err)
	_, err = w.Commit(ctx)
	require.NoError(t, err)

	_, err = idx.Document(ctx, docID)
	require.NoError(t, err)

	w.DeleteDocument(docID)
	_, err = w.Commit(ctx)
	require.NoError(t, err)

	_, err = idx.Document(ctx, docID)
	require.Error(t, err)

	_, err = w.AddDocument(map[string]any{"body": "ephemeral", "region": "north", "year": 1900.0})
	require.NoError(t, err)
	_, err = w.Commit(ctx)
	require.NoError(t, err)

	// AddDocument returns a writer-local staged id; the committed id of
	// the re-added document is found through its frame.
	ranked := mustSearch(t, idx, "ephemeral")
	require.Len(t, ranked, 1)
	newDocID, err := idx.DocumentForFrame(ctx, ranked[0].Key)
	require.NoError(t, err)
	require.NotEqual(t, docID, newDocID)
}

func TestPersistedPluginSlotsCommitIndependently(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	w, err := idx.Writer(ctx)
	require.NoError(t, err)
	w.SetPluginState("sentiment", "{}", "score", "0.8")
	_, err = w.Commit(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = idx.Writer(ctx)
	require.NoError(t, err)
	w.SetPluginState("topic", "{}", "label", "politics")
	_, err = w.Commit(ctx)
	require.NoError(t, err, "a second, distinct plugin slot must not collide with the first")
	require.NoError(t, w.Close())

	sentiment, ok, err := store.FindPlugin(ctx, idx.st.DB(), "sentiment", "{}")
	require.NoError(t, err)
	require.True(t, ok)
	topic, ok, err := store.FindPlugin(ctx, idx.st.DB(), "topic", "{}")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEqual(t, sentiment.PluginID, topic.PluginID)

	sentimentData, err := store.PluginData(ctx, idx.st.DB(), sentiment.PluginID)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"score": "0.8"}, sentimentData)

	topicData, err := store.PluginData(ctx, idx.st.DB(), topic.PluginID)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"label": "politics"}, topicData)
}

func TestPluginLifecycle(t *testing.T) {
	idx := newTestIndex(t)
	key := plugin.Key{Type: "x", Settings: "{}"}

	idx.Plugins().Register(key, stubPlugin{state: map[string]string{"k1": "v1", "k2": "v2"}})
	state, err := idx.RunPlugin(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"k1": "v1", "k2": "v2"}, state)

	idx.Plugins().Register(key, stubPlugin{state: map[string]string{"k1": "v3"}})
	state, err = idx.RunPlugin(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"k1": "v3"}, state)
	require.NotContains(t, state, "k2")

	idx.Plugins().Unregister(key)
	_, err = idx.RunPlugin(context.Background(), key)
	require.Error(t, err)
}

type stubPlugin struct{ state map[string]string }

func (s stubPlugin) Name() string { return "stub" }

func (s stubPlugin) Run(ctx context.Context, snap plugin.Snapshot) (map[string]string, error) {
	return s.state, nil
}
