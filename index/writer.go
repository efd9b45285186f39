package index

import (
	"context"
	"errors"

	"github.com/Data-drone/caterpillar/internal/caterr"
	"github.com/Data-drone/caterpillar/internal/flush"
	"github.com/Data-drone/caterpillar/internal/fold"
	"github.com/Data-drone/caterpillar/internal/lockfile"
	"github.com/Data-drone/caterpillar/internal/schema"
	"github.com/Data-drone/caterpillar/internal/staging"
)

// Writer is the single serialized write handle: at most one may be open
// per index, enforced by the writer lock file at <path>/writer.lock. A
// Writer may stage and commit several batches in succession before
// Close releases the lock.
type Writer struct {
	idx  *Index
	lock *lockfile.Lock
	ws   *staging.Workspace
}

// Writer acquires the writer lock and returns a handle ready to stage
// changes. It fails with lock-timeout, lock-already-held, or
// lock-failed per internal/lockfile.
func (idx *Index) Writer(ctx context.Context) (*Writer, error) {
	lock, err := lockfile.Acquire(idx.path, idx.opts.LockTimeout)
	if err != nil {
		return nil, translateLockErr(err)
	}
	return &Writer{
		idx:  idx,
		lock: lock,
		ws:   staging.New(idx.sch, idx.analyzers),
	}, nil
}

// translateLockErr maps internal/lockfile's Kind taxonomy onto the
// caterr.Kind values for the writer-lock lifecycle.
func translateLockErr(err error) error {
	var le *lockfile.Error
	if !errors.As(err, &le) {
		return err
	}
	switch le.Kind {
	case lockfile.KindTimeout:
		return caterr.Wrap(caterr.LockTimeout, "index.Writer", err)
	case lockfile.KindAlreadyLocked:
		return caterr.Wrap(caterr.LockAlreadyHeld, "index.Writer", err)
	case lockfile.KindNotMyLock:
		return caterr.Wrap(caterr.LockNotMine, "index.Writer", err)
	case lockfile.KindNotLocked:
		return caterr.Wrap(caterr.LockNotHeld, "index.Writer", err)
	default:
		return caterr.Wrap(caterr.LockFailed, "index.Writer", err)
	}
}

// AddDocument stages a new document for the next commit.
func (w *Writer) AddDocument(fields map[string]any) (int64, error) {
	return w.ws.AddDocument(fields)
}

// DeleteDocument stages removal of an existing document. Idempotent.
func (w *Writer) DeleteDocument(documentID int64) {
	w.ws.DeleteDocument(documentID)
}

// AddField stages a new schema field declaration.
func (w *Writer) AddField(f schema.Field) error {
	return w.ws.AddField(f)
}

// SetPluginState stages an upsert of plugin slot key/value state.
func (w *Writer) SetPluginState(pluginType, settings, key, value string) {
	w.ws.SetPluginState(pluginType, settings, key, value)
}

// DeletePluginState stages removal of one plugin slot key.
func (w *Writer) DeletePluginState(pluginType, settings, key string) {
	w.ws.DeletePluginState(pluginType, settings, key)
}

// SetSetting stages an index-level setting override.
func (w *Writer) SetSetting(name, value string) {
	w.ws.SetSetting(name, value)
}

// Commit runs the flush protocol against the staged changes, then, if
// the index was opened with FoldCase, runs a case-fold pass over the
// vocabulary the flush just grew. On success the workspace is cleared,
// ready for the next batch, and the writer lock stays held. If the flush
// fails the workspace is left untouched so the caller may retry or
// Rollback; if only the fold pass fails, the flush has already committed
// and cleared the workspace, and its Result is returned with the error.
func (w *Writer) Commit(ctx context.Context) (flush.Result, error) {
	result, err := flush.Flush(ctx, w.idx.st, w.ws, w.idx.sch)
	if err != nil {
		return flush.Result{}, err
	}
	if w.idx.opts.FoldCase {
		foldResult, err := fold.Fold(ctx, w.idx.st, w.idx.opts.FoldThreshold)
		if err != nil {
			return result, err
		}
		result.TermsFolded = foldResult.Merged
	}
	return result, nil
}

// Rollback discards everything staged since the last commit. The
// persistent store is left untouched; cancellation is always a no-op
// against it.
func (w *Writer) Rollback() {
	w.ws.Rollback()
}

// Close releases the writer lock. It is safe to call after an earlier
// Rollback or Commit; calling it twice returns lock-not-held the second
// time, mirroring internal/lockfile.Release's own idempotence contract.
func (w *Writer) Close() error {
	if w.lock == nil {
		return caterr.New(caterr.LockNotHeld, "index.Writer.Close")
	}
	err := w.lock.Release()
	w.lock = nil
	if err != nil {
		return translateLockErr(err)
	}
	return nil
}
