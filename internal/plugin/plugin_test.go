package plugin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Data-drone/caterpillar/internal/caterr"
	"github.com/Data-drone/caterpillar/internal/query"
)

type stubSnapshot struct{}

func (stubSnapshot) Search(ctx context.Context, p query.Predicate) (query.ResultSet, error) {
	return query.ResultSet{1: {1.0}}, nil
}

func (stubSnapshot) StoredField(ctx context.Context, documentID int64, field string) (string, bool, error) {
	return "", false, nil
}

type countingPlugin struct{ name string }

func (c countingPlugin) Name() string { return c.name }

func (c countingPlugin) Run(ctx context.Context, snap Snapshot) (map[string]string, error) {
	if _, err := snap.Search(ctx, query.AllFrames{}); err != nil {
		return nil, err
	}
	return map[string]string{"matches": "1"}, nil
}

func TestRegistryRunsBoundPlugin(t *testing.T) {
	r := NewRegistry()
	key := Key{Type: "counter", Settings: "{}"}
	r.Register(key, countingPlugin{name: "counter"})

	state, err := r.Run(context.Background(), key, stubSnapshot{})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"matches": "1"}, state)
}

func TestRegistryRunMissingSlotIsPluginMissing(t *testing.T) {
	r := NewRegistry()
	_, err := r.Run(context.Background(), Key{Type: "absent"}, stubSnapshot{})
	require.Error(t, err)

	kind, ok := caterr.Of(err)
	require.True(t, ok)
	require.Equal(t, "plugin-missing", string(kind))
}

func TestUnregisterRemovesBinding(t *testing.T) {
	r := NewRegistry()
	key := Key{Type: "counter"}
	r.Register(key, countingPlugin{name: "counter"})
	r.Unregister(key)

	_, ok := r.Lookup(key)
	require.False(t, ok)
}
