// Package index wires together the schema, persistent store, staging
// workspace, flush protocol, query evaluator, and writer lock into a
// single public handle: every resource an index needs is owned by that
// handle, and closing it releases all of it.
package index

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/Data-drone/caterpillar/internal/analysis"
	"github.com/Data-drone/caterpillar/internal/caterr"
	"github.com/Data-drone/caterpillar/internal/plugin"
	"github.com/Data-drone/caterpillar/internal/query"
	"github.com/Data-drone/caterpillar/internal/schema"
	"github.com/Data-drone/caterpillar/internal/store"
	"github.com/Data-drone/caterpillar/internal/telemetry"
)

const schemaFileName = "schema.json"

// Index is a handle onto one on-disk index: its schema, its persistent
// store connection, and (while a Writer is open) the writer lock. It is
// safe to share across goroutines for reads; write access must go
// through Writer, which internal/lockfile serializes across processes.
type Index struct {
	path      string
	opts      Options
	sch       *schema.Schema
	st        *store.Store
	analyzers map[string]*analysis.Analyzer
	plugins   *plugin.Registry
}

// Create makes a new index directory at path with the given field
// declarations, failing with storage-duplicate if a schema blob already
// exists there.
func Create(ctx context.Context, path string, fields []schema.Field, opts Options) (*Index, error) {
	schemaPath := filepath.Join(path, schemaFileName)
	if _, err := os.Stat(schemaPath); err == nil {
		return nil, caterr.New(caterr.StorageDuplicate, "index.Create "+path)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, caterr.Wrapf(caterr.StorageDuplicate, err, "index.Create %q", path)
	}

	sch := schema.New()
	for _, f := range fields {
		if err := sch.AddField(f); err != nil {
			return nil, err
		}
	}

	data, err := json.MarshalIndent(sch, "", "  ")
	if err != nil {
		return nil, caterr.Wrapf(caterr.InvalidFieldConfig, err, "index.Create %q", path)
	}
	if err := os.WriteFile(schemaPath, data, 0o644); err != nil {
		return nil, caterr.Wrapf(caterr.StorageDuplicate, err, "index.Create %q", path)
	}

	return open(ctx, path, sch, opts)
}

// Open reconnects to an existing index directory, failing with
// storage-missing if no schema blob is present.
func Open(ctx context.Context, path string, opts Options) (*Index, error) {
	schemaPath := filepath.Join(path, schemaFileName)
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, caterr.Wrapf(caterr.StorageMissing, err, "index.Open %q", path)
	}

	sch := schema.New()
	if err := json.Unmarshal(data, sch); err != nil {
		return nil, caterr.Wrapf(caterr.StorageMissing, err, "index.Open %q", path)
	}

	return open(ctx, path, sch, opts)
}

func open(ctx context.Context, path string, sch *schema.Schema, opts Options) (*Index, error) {
	cfg := store.DefaultConfig(filepath.Join(path, "data"))
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		path:      path,
		opts:      opts,
		sch:       sch,
		st:        st,
		analyzers: map[string]*analysis.Analyzer{},
		plugins:   plugin.NewRegistry(),
	}

	if err := idx.syncFields(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}

	return idx, nil
}

// syncFields ensures every declared schema field has a row in the
// store's field table, so query-time lookups (internal/store.FieldByName)
// never miss a field the caller declared at Create time.
func (idx *Index) syncFields(ctx context.Context) error {
	existing, err := store.ListFields(ctx, idx.st.DB())
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, f := range existing {
		have[f.Name] = true
	}
	for _, f := range idx.sch.Fields() {
		if have[f.Name] {
			continue
		}
		if _, err := store.InsertField(ctx, idx.st.DB(), store.FieldRow{
			Name: f.Name, Kind: string(f.Kind), Indexed: f.Indexed,
			Stored: f.Stored, FrameSize: f.FrameSize, Analyzer: f.Analyzer,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Schema returns the index's current field declarations.
func (idx *Index) Schema() *schema.Schema { return idx.sch }

// Plugins returns the registry of plugins bound to this index. Register
// plugins against it before calling RunPlugin.
func (idx *Index) Plugins() *plugin.Registry { return idx.plugins }

// SetAnalyzer overrides the analyzer pipeline used for a text field,
// replacing analysis.DefaultEnglishAnalyzer().
func (idx *Index) SetAnalyzer(field string, az *analysis.Analyzer) {
	idx.analyzers[field] = az
}

// Close releases the store connection. It does not release any writer
// lock; release that via Writer.Close first.
func (idx *Index) Close() error {
	return idx.st.Close()
}

// SearchResultSet evaluates a predicate tree into its raw result set,
// without aggregating or ranking.
func (idx *Index) SearchResultSet(ctx context.Context, pred query.Predicate) (query.ResultSet, error) {
	ev := query.NewEvaluator(ctx, idx.st.DB(), idx.sch)
	return pred.Eval(ev)
}

// Search evaluates a predicate tree, aggregates each match's score list
// with aggregator, and returns the window [start, start+limit) of
// results ordered by (score desc, key asc).
func (idx *Index) Search(ctx context.Context, pred query.Predicate, aggregator query.Aggregator, start, limit int) ([]query.Ranked, error) {
	began := time.Now()
	rs, err := idx.SearchResultSet(ctx, pred)
	if err != nil {
		return nil, err
	}
	ranked := query.ScoreAndRank(rs, aggregator, start, limit)
	telemetry.RecordQuery(ctx, time.Since(began))
	return ranked, nil
}

// DocumentForFrame maps a search result's frame key back to its owning
// document id.
func (idx *Index) DocumentForFrame(ctx context.Context, frameID int64) (int64, error) {
	return store.FrameDocumentID(ctx, idx.st.DB(), frameID)
}

// Document returns the stored field values of a live document, or
// document-missing if the id was never committed or was deleted.
func (idx *Index) Document(ctx context.Context, documentID int64) (map[string]string, error) {
	exists, err := store.DocumentExists(ctx, idx.st.DB(), documentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, caterr.New(caterr.DocumentMissing, "index.Document")
	}

	data, err := store.DocumentData(ctx, idx.st.DB(), documentID)
	if err != nil {
		return nil, err
	}
	fields, err := store.ListFields(ctx, idx.st.DB())
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]string, len(fields))
	for _, f := range fields {
		byID[f.FieldID] = f.Name
	}

	out := make(map[string]string, len(data))
	for fieldID, value := range data {
		if name, ok := byID[fieldID]; ok {
			out[name] = value
		}
	}
	return out, nil
}

// StoredField returns one document's value for one field, satisfying
// internal/plugin.Snapshot.
func (idx *Index) StoredField(ctx context.Context, documentID int64, field string) (string, bool, error) {
	fields, err := idx.Document(ctx, documentID)
	if err != nil {
		return "", false, err
	}
	value, ok := fields[field]
	return value, ok, nil
}

// RunPlugin runs the registered plugin bound to key against a read-only
// snapshot of this index (see snapshotAdapter) and returns its output.
func (idx *Index) RunPlugin(ctx context.Context, key plugin.Key) (map[string]string, error) {
	return idx.plugins.Run(ctx, key, snapshotAdapter{idx})
}

// snapshotAdapter exposes Index's SearchResultSet (which returns a
// query.ResultSet) as the Search method plugin.Snapshot expects, keeping the
// plugin package's import surface free of the top-level index package.
type snapshotAdapter struct{ idx *Index }

func (s snapshotAdapter) Search(ctx context.Context, p query.Predicate) (query.ResultSet, error) {
	return s.idx.SearchResultSet(ctx, p)
}

func (s snapshotAdapter) StoredField(ctx context.Context, documentID int64, field string) (string, bool, error) {
	return s.idx.StoredField(ctx, documentID, field)
}

// Stats summarizes an index's current size, for the catidx CLI's stats
// command and similar diagnostics.
type Stats struct {
	TotalFrames    int64
	VocabularySize int
	LatestRevision int64
	Fields         []schema.Field
}

func (idx *Index) Stats(ctx context.Context) (Stats, error) {
	total, err := store.TotalFrameCount(ctx, idx.st.DB())
	if err != nil {
		return Stats{}, err
	}
	vocab, err := store.AllVocabulary(ctx, idx.st.DB())
	if err != nil {
		return Stats{}, err
	}
	revision, err := store.LatestRevision(ctx, idx.st.DB())
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalFrames:    total,
		VocabularySize: len(vocab),
		LatestRevision: revision,
		Fields:         idx.sch.Fields(),
	}, nil
}
