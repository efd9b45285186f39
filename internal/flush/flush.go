// Package flush implements the deterministic commit protocol: the one
// point where a writer's staged changes become visible to readers. A
// flush runs inside a single database transaction — the
// engine's embedded Dolt connection already gives that transaction the
// atomic multi-statement commit the protocol needs, so there is no
// separate BEGIN IMMEDIATE step the way a plain SQLite store would need.
//
// The transaction covers the whole inverted-index write path in one
// commit: deletions, vocabulary growth, document/frame remapping,
// posting insertion, statistics maintenance, plugin state, and
// revision bookkeeping.
package flush

import (
	"context"
	"database/sql"
	"time"

	"github.com/Data-drone/caterpillar/internal/schema"
	"github.com/Data-drone/caterpillar/internal/staging"
	"github.com/Data-drone/caterpillar/internal/store"
	"github.com/Data-drone/caterpillar/internal/telemetry"
)

// Result summarizes one committed flush.
type Result struct {
	RevisionID       int64
	DocumentsAdded   int
	DocumentsDeleted int
	FramesAdded      int

	// TermsFolded counts vocabulary merges the caller's optional
	// case-fold pass performed after this flush. Flush itself never
	// folds; index.Writer.Commit sets this when fold_case is enabled.
	TermsFolded int
}

// Flush commits every change staged in ws against st, in a fixed
// eleven-step order. On success ws is cleared and sch gains any fields
// staged with AddField. On failure the transaction rolls back and ws is
// left untouched, so the caller may retry or abandon it.
func Flush(ctx context.Context, st *store.Store, ws *staging.Workspace, sch *schema.Schema) (Result, error) {
	if ws.Empty() {
		return Result{}, nil
	}

	start := time.Now()
	var result Result
	err := st.WithTx(ctx, func(tx *sql.Tx) error {
		return runFlush(ctx, tx, ws, sch, &result)
	})
	if err != nil {
		return Result{}, err
	}
	telemetry.RecordFlush(ctx, time.Since(start), result.DocumentsAdded, result.DocumentsDeleted, result.FramesAdded)

	for _, f := range ws.NewFields() {
		_ = sch.AddField(f) // already validated not to collide during staging.AddField
	}
	ws.Rollback()
	return result, nil
}
