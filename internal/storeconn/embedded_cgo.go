//go:build cgo

package storeconn

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	embedded "github.com/dolthub/driver"
)

// connectEmbedded opens (creating if necessary) an in-process Dolt
// engine rooted at cfg.Path: an absolute DSN path, CREATE DATABASE IF
// NOT EXISTS against an unqualified connection, then a second connector
// scoped to the database, both wrapped in exponential-backoff retry for
// transient "database locked" conditions at startup.
func connectEmbedded(ctx context.Context, cfg *Config) (*sql.DB, io.Closer, error) {
	if info, err := os.Stat(cfg.Path); err == nil && !info.IsDir() {
		return nil, nil, fmt.Errorf("storeconn: path %q is not a directory", cfg.Path)
	}
	if !cfg.ReadOnly {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, nil, fmt.Errorf("storeconn: %w", err)
		}
	}

	absPath, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("storeconn: %w", err)
	}

	initDSN := fmt.Sprintf("file://%s?commitname=%s&commitemail=%s", absPath, cfg.CommitterName, cfg.CommitterEmail)
	dbDSN := fmt.Sprintf("file://%s?commitname=%s&commitemail=%s&database=%s", absPath, cfg.CommitterName, cfg.CommitterEmail, cfg.Database)

	if !cfg.ReadOnly {
		if err := withTransient(ctx, initDSN, cfg, func(ctx context.Context, db *sql.DB) error {
			_, err := db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", cfg.Database))
			return err
		}); err != nil {
			return nil, nil, fmt.Errorf("storeconn: create database: %w", err)
		}
	}

	openCfg, err := embedded.ParseDSN(dbDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("storeconn: %w", err)
	}
	openCfg.BackOff = newOpenBackoff(cfg)

	connector, err := embedded.NewConnector(openCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("storeconn: %w", err)
	}
	db := sql.OpenDB(connector)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		_ = connector.Close()
		return nil, nil, fmt.Errorf("storeconn: ping: %w", err)
	}

	return db, connector, nil
}

// withTransient opens a short-lived connector against dsn, runs fn, and
// tears the connector down again — used for the one-shot "ensure the
// database exists" step before the long-lived connection is opened.
func withTransient(ctx context.Context, dsn string, cfg *Config, fn func(ctx context.Context, db *sql.DB) error) error {
	openCfg, err := embedded.ParseDSN(dsn)
	if err != nil {
		return err
	}
	openCfg.BackOff = newOpenBackoff(cfg)

	connector, err := embedded.NewConnector(openCfg)
	if err != nil {
		return err
	}
	defer connector.Close()

	db := sql.OpenDB(connector)
	defer db.Close()

	return fn(ctx, db)
}
