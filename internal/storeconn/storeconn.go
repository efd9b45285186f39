// Package storeconn opens the persistent store's database/sql
// connection: the embedded Dolt engine in-process (CGO builds), or a
// remote `dolt sql-server` over the MySQL wire protocol, both reached
// with exponential-backoff retry on the transient "busy" errors a
// freshly-started engine can return.
//
// This package isolates the embedded-vs-server choice behind one
// Config, keeping it out of internal/store, which only needs a live
// *sql.DB and doesn't care how it was obtained.
package storeconn

import (
	"context"
	"database/sql"
	"io"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Config controls how Connect reaches the backing Dolt engine.
type Config struct {
	// Path is the directory holding the embedded Dolt database. Ignored
	// in server mode.
	Path string

	// Database is the Dolt database name within the engine.
	Database string

	// ServerMode, when true, connects to a remote `dolt sql-server`
	// over the MySQL wire protocol instead of opening an embedded
	// engine in-process.
	ServerMode bool
	ServerHost string
	ServerPort int
	ServerUser string

	// CommitterName/CommitterEmail stamp the Dolt commits the embedded
	// engine makes internally for each SQL transaction.
	CommitterName  string
	CommitterEmail string

	// OpenTimeout bounds how long Connect retries transient "database
	// locked" conditions during engine startup.
	OpenTimeout time.Duration

	// ReadOnly opens the engine without acquiring write resources; used
	// by readers, of which many may run concurrently against one index.
	ReadOnly bool
}

// DefaultConfig returns sane embedded-mode defaults for a new index
// directory.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:           path,
		Database:       "caterpillar",
		CommitterName:  "caterpillar",
		CommitterEmail: "caterpillar@localhost",
		OpenTimeout:    30 * time.Second,
	}
}

// Connect opens a database/sql connection per cfg. The returned
// io.Closer releases engine-level resources (the embedded connector);
// it is non-nil only in embedded mode and must be closed after db.
func Connect(ctx context.Context, cfg *Config) (*sql.DB, io.Closer, error) {
	if cfg.ServerMode {
		return connectServer(ctx, cfg)
	}
	return connectEmbedded(ctx, cfg)
}
