//go:build !cgo

package storeconn

import (
	"context"
	"database/sql"
	"errors"
	"io"
)

// errNoCGO is returned when an embedded connection is requested from a
// CGO-disabled build: github.com/dolthub/driver requires CGO. Build
// with CGO_ENABLED=1, or set Config.ServerMode to reach a running
// `dolt sql-server` instead.
var errNoCGO = errors.New("storeconn: embedded store requires a CGO-enabled build; use Config.ServerMode or rebuild with CGO_ENABLED=1")

func connectEmbedded(ctx context.Context, cfg *Config) (*sql.DB, io.Closer, error) {
	return nil, nil, errNoCGO
}
