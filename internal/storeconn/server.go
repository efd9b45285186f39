package storeconn

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/cenkalti/backoff/v4"
)

// connectServer dials a running `dolt sql-server` over the MySQL wire
// protocol. This path needs no CGO, so remote/server mode works in a
// pure-Go build.
func connectServer(ctx context.Context, cfg *Config) (*sql.DB, io.Closer, error) {
	dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?parseTime=true", cfg.ServerUser, cfg.ServerHost, cfg.ServerPort, cfg.Database)

	var db *sql.DB
	operation := func() error {
		var err error
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			return backoff.Permanent(err)
		}
		return db.PingContext(ctx)
	}
	if err := backoff.Retry(operation, newOpenBackoff(cfg)); err != nil {
		return nil, nil, err
	}
	return db, nil, nil
}
