package schema

import (
	"encoding/json"
	"testing"

	"github.com/Data-drone/caterpillar/internal/caterr"
	"github.com/stretchr/testify/require"
)

func TestAddFieldDuplicate(t *testing.T) {
	s := New()
	require.NoError(t, s.AddField(Field{Name: "title", Kind: Text, Indexed: true}))

	err := s.AddField(Field{Name: "title", Kind: Text})
	require.Error(t, err)
	kind, ok := caterr.Of(err)
	require.True(t, ok)
	require.Equal(t, caterr.DuplicateField, kind)
}

func TestAddFieldReservedPrefix(t *testing.T) {
	s := New()
	err := s.AddField(Field{Name: "_internal", Kind: Text})
	require.Error(t, err)
	kind, _ := caterr.Of(err)
	require.Equal(t, caterr.InvalidFieldName, kind)
}

func TestAddFieldWhitespace(t *testing.T) {
	s := New()
	err := s.AddField(Field{Name: "bad name", Kind: Text})
	require.Error(t, err)
	kind, _ := caterr.Of(err)
	require.Equal(t, caterr.InvalidFieldName, kind)
}

func TestSupportsOperator(t *testing.T) {
	region := Field{Name: "region", Kind: CategoricalText, Indexed: true}
	require.True(t, region.SupportsOperator(OpEQ))
	require.True(t, region.SupportsOperator(OpWildcardEQ))
	require.False(t, region.SupportsOperator(OpGT))

	price := Field{Name: "price", Kind: Numeric, Indexed: true}
	require.True(t, price.SupportsOperator(OpGT))
	require.False(t, price.SupportsOperator(OpWildcardEQ))

	notIndexed := Field{Name: "notes", Kind: Numeric, Indexed: false}
	require.False(t, notIndexed.SupportsOperator(OpEQ))
}

func TestRemoveFieldMissing(t *testing.T) {
	s := New()
	err := s.RemoveField("nope")
	require.Error(t, err)
	kind, _ := caterr.Of(err)
	require.Equal(t, caterr.ContainerMissing, kind)
}

func TestSchemaRoundTrip(t *testing.T) {
	s := New()
	require.NoError(t, s.AddField(Field{Name: "title", Kind: Text, Indexed: true, Stored: true, FrameSize: 2}))
	require.NoError(t, s.AddField(Field{Name: "region", Kind: CategoricalText, Indexed: true}))

	data, err := json.Marshal(s)
	require.NoError(t, err)

	s2 := New()
	require.NoError(t, json.Unmarshal(data, s2))

	require.Equal(t, s.Fields(), s2.Fields())
}
