//go:build cgo

package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Data-drone/caterpillar/internal/schema"
	"github.com/Data-drone/caterpillar/internal/store"
)

func TestAttributeLeafMatchesPostedFrames(t *testing.T) {
	ctx := context.Background()
	cfg := store.DefaultConfig(t.TempDir())
	st, err := store.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	fieldID, err := store.InsertField(ctx, st.DB(), store.FieldRow{Name: "body", Kind: "text", Indexed: true, Stored: true})
	require.NoError(t, err)
	docID, err := store.InsertDocument(ctx, st.DB(), 1)
	require.NoError(t, err)
	frameID, err := store.InsertFrame(ctx, st.DB(), store.FrameRow{DocumentID: docID, FieldID: fieldID, Text: "great trip"})
	require.NoError(t, err)

	attrID, err := store.AttributeID(ctx, st.DB(), "sentiment")
	require.NoError(t, err)
	require.NoError(t, store.InsertAttributePosting(ctx, st.DB(), attrID, frameID, "positive"))

	sch := schema.New()
	ev := NewEvaluator(ctx, st.DB(), sch)

	rs, err := (AttributeLeaf{Name: "sentiment", Op: "=", Value: "positive"}).Eval(ev)
	require.NoError(t, err)
	require.Contains(t, rs, frameID)

	rs, err = (AttributeLeaf{Name: "sentiment", Op: "=", Value: "negative"}).Eval(ev)
	require.NoError(t, err)
	require.Empty(t, rs)

	rs, err = (AttributeLeaf{Name: "absent", Op: "=", Value: "x"}).Eval(ev)
	require.NoError(t, err)
	require.Empty(t, rs)
}
