package store

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"sync/atomic"

	"github.com/Data-drone/caterpillar/internal/caterr"
	"github.com/Data-drone/caterpillar/internal/storeconn"
)

// Config controls how a Store connects to its backing Dolt engine. It is
// an alias of storeconn.Config: internal/storeconn owns the
// embedded-vs-server connection mechanics, internal/store owns the
// schema and query surface built on top of the resulting *sql.DB.
type Config = storeconn.Config

// DefaultConfig returns sane embedded-mode defaults for a new index
// directory.
func DefaultConfig(path string) *Config { return storeconn.DefaultConfig(path) }

// execer is satisfied by *sql.DB, *sql.Tx, and *sql.Conn; ensureSchema and
// the query helpers are written against it so they work during both
// initial setup and inside a flush transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the persistent substrate: a handle onto the Dolt-backed
// database holding the field catalog, vocabulary, documents, frames,
// postings, statistics, plugin state, and revision history.
//
// A Store is safe for concurrent reads. Writes must be serialized by
// the caller (the index package enforces this with internal/lockfile)
// — a single-writer model.
type Store struct {
	db     *sql.DB
	closer io.Closer // non-nil only in embedded mode; releases engine-level resources
	cfg    *Config
	mu     sync.RWMutex
	closed atomic.Bool
}

// DB exposes the underlying *sql.DB for packages (staging, flush, query)
// that build their own statements against the schema in schema.go.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the database connection and any engine-level resources
// acquired when opening in embedded mode.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open connects to the store described by cfg via internal/storeconn,
// then applies the schema (unless cfg.ReadOnly).
func Open(ctx context.Context, cfg *Config) (*Store, error) {
	db, closer, err := storeconn.Connect(ctx, cfg)
	if err != nil {
		return nil, caterr.Wrap(caterr.StorageMissing, "store.Open", err)
	}

	if !cfg.ReadOnly {
		if err := ensureSchema(ctx, db); err != nil {
			_ = db.Close()
			if closer != nil {
				_ = closer.Close()
			}
			return nil, caterr.Wrap(caterr.StorageMissing, "store.Open", err)
		}
	}

	return &Store{db: db, closer: closer, cfg: cfg}, nil
}

// WithTx runs fn inside a single database transaction, committing on a
// nil return and rolling back otherwise. This is the only transaction
// boundary the flush protocol (internal/flush) uses: one atomic
// multi-statement commit per flush, not a BEGIN-per-statement pattern.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.WithTx", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.WithTx", err)
	}
	return nil
}
