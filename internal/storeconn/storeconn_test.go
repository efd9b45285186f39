package storeconn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/tmp/example-index")
	require.Equal(t, "/tmp/example-index", cfg.Path)
	require.Equal(t, "caterpillar", cfg.Database)
	require.False(t, cfg.ServerMode)
	require.Equal(t, 30*time.Second, cfg.OpenTimeout)
}
