package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Data-drone/caterpillar/internal/caterr"
)

// This file collects the typed query/exec helpers the staging, flush, and
// query packages build on. Each function takes an execer so callers can
// pass either *Store.DB() for reads outside a transaction, or the *sql.Tx
// the flush protocol opens for its single atomic commit.

// FieldRow mirrors one row of the field table.
type FieldRow struct {
	FieldID   int64
	Name      string
	Kind      string
	Indexed   bool
	Stored    bool
	FrameSize int
	Analyzer  string
}

func InsertField(ctx context.Context, e execer, f FieldRow) (int64, error) {
	res, err := e.ExecContext(ctx,
		`INSERT INTO field (name, kind, indexed, stored, frame_size, analyzer) VALUES (?, ?, ?, ?, ?, ?)`,
		f.Name, f.Kind, f.Indexed, f.Stored, f.FrameSize, f.Analyzer)
	if err != nil {
		return 0, caterr.Wrap(caterr.StorageDuplicate, "store.InsertField", err)
	}
	return res.LastInsertId()
}

func ListFields(ctx context.Context, e execer) ([]FieldRow, error) {
	rows, err := e.QueryContext(ctx, `SELECT field_id, name, kind, indexed, stored, frame_size, analyzer FROM field`)
	if err != nil {
		return nil, caterr.Wrap(caterr.StorageMissing, "store.ListFields", err)
	}
	defer rows.Close()

	var out []FieldRow
	for rows.Next() {
		var f FieldRow
		if err := rows.Scan(&f.FieldID, &f.Name, &f.Kind, &f.Indexed, &f.Stored, &f.FrameSize, &f.Analyzer); err != nil {
			return nil, caterr.Wrap(caterr.StorageMissing, "store.ListFields", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func FieldByName(ctx context.Context, e execer, name string) (FieldRow, error) {
	var f FieldRow
	err := e.QueryRowContext(ctx,
		`SELECT field_id, name, kind, indexed, stored, frame_size, analyzer FROM field WHERE name = ?`, name).
		Scan(&f.FieldID, &f.Name, &f.Kind, &f.Indexed, &f.Stored, &f.FrameSize, &f.Analyzer)
	if errors.Is(err, sql.ErrNoRows) {
		return f, caterr.New(caterr.ContainerMissing, "store.FieldByName")
	}
	if err != nil {
		return f, caterr.Wrap(caterr.StorageMissing, "store.FieldByName", err)
	}
	return f, nil
}

// TermID returns the vocabulary id for term, inserting it if absent. The
// vocabulary grows monotonically; deletion never reclaims term ids —
// orphaned rows are left in place rather than swept.
func TermID(ctx context.Context, e execer, term string) (int64, error) {
	var id int64
	err := e.QueryRowContext(ctx, `SELECT term_id FROM vocabulary WHERE term = ?`, term).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, caterr.Wrap(caterr.StorageMissing, "store.TermID", err)
	}

	res, err := e.ExecContext(ctx, `INSERT INTO vocabulary (term) VALUES (?)`, term)
	if err != nil {
		return 0, caterr.Wrap(caterr.StorageMissing, "store.TermID", err)
	}
	return res.LastInsertId()
}

// LookupTermID finds an existing vocabulary entry without creating one,
// for read-side term resolution (the query evaluator must never grow
// the vocabulary).
func LookupTermID(ctx context.Context, e execer, term string) (int64, bool, error) {
	var id int64
	err := e.QueryRowContext(ctx, `SELECT term_id FROM vocabulary WHERE term = ?`, term).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, caterr.Wrap(caterr.StorageMissing, "store.LookupTermID", err)
	}
	return id, true, nil
}

// VocabularyTerm pairs a term with its stable id.
type VocabularyTerm struct {
	TermID int64
	Term   string
}

// AllVocabulary returns every vocabulary entry, for wildcard term-leaf
// resolution (the caller compiles the wildcard pattern and filters
// client-side; the vocabulary is not expected to be large enough to
// need a server-side LIKE/regex pushdown).
func AllVocabulary(ctx context.Context, e execer) ([]VocabularyTerm, error) {
	rows, err := e.QueryContext(ctx, `SELECT term_id, term FROM vocabulary`)
	if err != nil {
		return nil, caterr.Wrap(caterr.StorageMissing, "store.AllVocabulary", err)
	}
	defer rows.Close()

	var out []VocabularyTerm
	for rows.Next() {
		var v VocabularyTerm
		if err := rows.Scan(&v.TermID, &v.Term); err != nil {
			return nil, caterr.Wrap(caterr.StorageMissing, "store.AllVocabulary", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// DocumentDataForField returns every document's stored value for one
// field, keyed by document id, for structured-predicate resolution.
func DocumentDataForField(ctx context.Context, e execer, fieldID int64) (map[int64]string, error) {
	rows, err := e.QueryContext(ctx, `SELECT document_id, value FROM document_data WHERE field_id = ?`, fieldID)
	if err != nil {
		return nil, caterr.Wrap(caterr.StorageMissing, "store.DocumentDataForField", err)
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var docID int64
		var value sql.NullString
		if err := rows.Scan(&docID, &value); err != nil {
			return nil, caterr.Wrap(caterr.StorageMissing, "store.DocumentDataForField", err)
		}
		out[docID] = value.String
	}
	return out, rows.Err()
}

// FramesForField returns every live frame id belonging to a field, for
// field-restriction query nodes.
func FramesForField(ctx context.Context, e execer, fieldID int64) ([]int64, error) {
	rows, err := e.QueryContext(ctx, `SELECT frame_id FROM frame WHERE field_id = ?`, fieldID)
	if err != nil {
		return nil, caterr.Wrap(caterr.StorageMissing, "store.FramesForField", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, caterr.Wrap(caterr.StorageMissing, "store.FramesForField", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func AttributeID(ctx context.Context, e execer, name string) (int64, error) {
	var id int64
	err := e.QueryRowContext(ctx, `SELECT attribute_id FROM attribute WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, caterr.Wrap(caterr.StorageMissing, "store.AttributeID", err)
	}
	res, err := e.ExecContext(ctx, `INSERT INTO attribute (name) VALUES (?)`, name)
	if err != nil {
		return 0, caterr.Wrap(caterr.StorageMissing, "store.AttributeID", err)
	}
	return res.LastInsertId()
}

// FindAttribute looks an attribute type up by name without registering
// one, unlike AttributeID.
func FindAttribute(ctx context.Context, e execer, name string) (int64, bool, error) {
	var id int64
	err := e.QueryRowContext(ctx, `SELECT attribute_id FROM attribute WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, caterr.Wrap(caterr.StorageMissing, "store.FindAttribute", err)
	}
	return id, true, nil
}

// InsertDocument creates a document row and returns its permanent id.
func InsertDocument(ctx context.Context, e execer, revision int64) (int64, error) {
	res, err := e.ExecContext(ctx, `INSERT INTO document (deleted, added_revision) VALUES (FALSE, ?)`, revision)
	if err != nil {
		return 0, caterr.Wrap(caterr.StorageMissing, "store.InsertDocument", err)
	}
	return res.LastInsertId()
}

// DocumentExists reports whether a (live) document row exists. Since
// deletion is a hard cascading delete rather than a soft-delete flag,
// existence and liveness are the same question.
func DocumentExists(ctx context.Context, e execer, documentID int64) (bool, error) {
	var discard int64
	err := e.QueryRowContext(ctx, `SELECT 1 FROM document WHERE document_id = ?`, documentID).Scan(&discard)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, caterr.Wrap(caterr.StorageMissing, "store.DocumentExists", err)
	}
	return true, nil
}

func MarkDocumentDeleted(ctx context.Context, e execer, documentID int64) error {
	res, err := e.ExecContext(ctx, `UPDATE document SET deleted = TRUE WHERE document_id = ?`, documentID)
	if err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.MarkDocumentDeleted", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.MarkDocumentDeleted", err)
	}
	if n == 0 {
		return caterr.New(caterr.DocumentMissing, "store.MarkDocumentDeleted")
	}
	return nil
}

func DeleteDocumentCascade(ctx context.Context, e execer, documentID int64) error {
	_, err := e.ExecContext(ctx, `DELETE FROM document WHERE document_id = ?`, documentID)
	if err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.DeleteDocumentCascade", err)
	}
	return nil
}

func SetDocumentData(ctx context.Context, e execer, documentID, fieldID int64, value string) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO document_data (document_id, field_id, value) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE value = VALUES(value)`,
		documentID, fieldID, value)
	if err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.SetDocumentData", err)
	}
	return nil
}

func DocumentData(ctx context.Context, e execer, documentID int64) (map[int64]string, error) {
	rows, err := e.QueryContext(ctx, `SELECT field_id, value FROM document_data WHERE document_id = ?`, documentID)
	if err != nil {
		return nil, caterr.Wrap(caterr.StorageMissing, "store.DocumentData", err)
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var fieldID int64
		var value sql.NullString
		if err := rows.Scan(&fieldID, &value); err != nil {
			return nil, caterr.Wrap(caterr.StorageMissing, "store.DocumentData", err)
		}
		out[fieldID] = value.String
	}
	return out, rows.Err()
}

// FrameRow mirrors one row of the frame table.
type FrameRow struct {
	FrameID         int64
	DocumentID      int64
	FieldID         int64
	SequenceInField int
	Text            string
}

func InsertFrame(ctx context.Context, e execer, f FrameRow) (int64, error) {
	res, err := e.ExecContext(ctx,
		`INSERT INTO frame (document_id, field_id, sequence_in_field, text) VALUES (?, ?, ?, ?)`,
		f.DocumentID, f.FieldID, f.SequenceInField, f.Text)
	if err != nil {
		return 0, caterr.Wrap(caterr.StorageMissing, "store.InsertFrame", err)
	}
	return res.LastInsertId()
}

// FrameDocumentID returns the owning document of a frame, for mapping a
// search result's frame-keyed ResultSet back to the document it belongs
// to (e.g. for result presentation).
func FrameDocumentID(ctx context.Context, e execer, frameID int64) (int64, error) {
	var documentID int64
	err := e.QueryRowContext(ctx, `SELECT document_id FROM frame WHERE frame_id = ?`, frameID).Scan(&documentID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, caterr.New(caterr.DocumentMissing, "store.FrameDocumentID")
	}
	if err != nil {
		return 0, caterr.Wrap(caterr.StorageMissing, "store.FrameDocumentID", err)
	}
	return documentID, nil
}

func FramesForDocument(ctx context.Context, e execer, documentID int64) ([]FrameRow, error) {
	rows, err := e.QueryContext(ctx,
		`SELECT frame_id, document_id, field_id, sequence_in_field, text FROM frame WHERE document_id = ? ORDER BY field_id, sequence_in_field`,
		documentID)
	if err != nil {
		return nil, caterr.Wrap(caterr.StorageMissing, "store.FramesForDocument", err)
	}
	defer rows.Close()

	var out []FrameRow
	for rows.Next() {
		var f FrameRow
		if err := rows.Scan(&f.FrameID, &f.DocumentID, &f.FieldID, &f.SequenceInField, &f.Text); err != nil {
			return nil, caterr.Wrap(caterr.StorageMissing, "store.FramesForDocument", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// InsertPosting writes both orderings of one term-in-frame occurrence:
// term_posting (keyed by term, scanned when evaluating a term query) and
// frame_posting (keyed by frame, scanned when deleting a document).
func InsertPosting(ctx context.Context, e execer, termID, frameID int64, frequency int, positionsCSV string) error {
	if _, err := e.ExecContext(ctx,
		`INSERT INTO term_posting (term_id, frame_id, frequency, positions) VALUES (?, ?, ?, ?)`,
		termID, frameID, frequency, positionsCSV); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.InsertPosting", err)
	}
	if _, err := e.ExecContext(ctx,
		`INSERT INTO frame_posting (frame_id, term_id, frequency, positions) VALUES (?, ?, ?, ?)`,
		frameID, termID, frequency, positionsCSV); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.InsertPosting", err)
	}
	return nil
}

// TermPostingRow is one (frame, frequency) pair for a term.
type TermPostingRow struct {
	FrameID   int64
	Frequency int
	Positions string
}

func TermPostings(ctx context.Context, e execer, termID int64) ([]TermPostingRow, error) {
	rows, err := e.QueryContext(ctx,
		`SELECT frame_id, frequency, positions FROM term_posting WHERE term_id = ?`, termID)
	if err != nil {
		return nil, caterr.Wrap(caterr.StorageMissing, "store.TermPostings", err)
	}
	defer rows.Close()

	var out []TermPostingRow
	for rows.Next() {
		var r TermPostingRow
		if err := rows.Scan(&r.FrameID, &r.Frequency, &r.Positions); err != nil {
			return nil, caterr.Wrap(caterr.StorageMissing, "store.TermPostings", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func InsertAttributePosting(ctx context.Context, e execer, attributeID, frameID int64, value string) error {
	if _, err := e.ExecContext(ctx,
		`INSERT INTO attribute_frame_posting (attribute_id, frame_id, value) VALUES (?, ?, ?)`,
		attributeID, frameID, value); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.InsertAttributePosting", err)
	}
	if _, err := e.ExecContext(ctx,
		`INSERT INTO frame_attribute_posting (frame_id, attribute_id, value) VALUES (?, ?, ?)`,
		frameID, attributeID, value); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.InsertAttributePosting", err)
	}
	return nil
}

func AttributePostings(ctx context.Context, e execer, attributeID int64, op, value string) ([]int64, error) {
	var cmp string
	switch op {
	case "lt":
		cmp = "<"
	case "lte":
		cmp = "<="
	case "gt":
		cmp = ">"
	case "gte":
		cmp = ">="
	default:
		cmp = "="
	}
	query := `SELECT frame_id FROM attribute_frame_posting WHERE attribute_id = ? AND value ` + cmp + ` ?`
	rows, err := e.QueryContext(ctx, query, attributeID, value)
	if err != nil {
		return nil, caterr.Wrap(caterr.StorageMissing, "store.AttributePostings", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, caterr.Wrap(caterr.StorageMissing, "store.AttributePostings", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// AllFrameIDs returns every live frame id in the index, for the
// all-frames (`*`) query leaf.
func AllFrameIDs(ctx context.Context, e execer) ([]int64, error) {
	rows, err := e.QueryContext(ctx, `SELECT frame_id FROM frame`)
	if err != nil {
		return nil, caterr.Wrap(caterr.StorageMissing, "store.AllFrameIDs", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, caterr.Wrap(caterr.StorageMissing, "store.AllFrameIDs", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// TermStatistics holds the aggregate counters the TF·IDF scoring
// formula reads.
type TermStatistics struct {
	FramesOccurringIn int64
	TotalOccurrences  int64
}

func UpsertTermStatistics(ctx context.Context, e execer, termID int64, deltaFrames, deltaOccurrences int) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO term_statistics (term_id, frames_occurring_in, total_occurrences) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   frames_occurring_in = frames_occurring_in + VALUES(frames_occurring_in),
		   total_occurrences = total_occurrences + VALUES(total_occurrences)`,
		termID, deltaFrames, deltaOccurrences)
	if err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.UpsertTermStatistics", err)
	}
	return nil
}

func GetTermStatistics(ctx context.Context, e execer, termID int64) (TermStatistics, error) {
	var s TermStatistics
	err := e.QueryRowContext(ctx,
		`SELECT frames_occurring_in, total_occurrences FROM term_statistics WHERE term_id = ?`, termID).
		Scan(&s.FramesOccurringIn, &s.TotalOccurrences)
	if errors.Is(err, sql.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return s, caterr.Wrap(caterr.StorageMissing, "store.GetTermStatistics", err)
	}
	return s, nil
}

func SetFieldStatistics(ctx context.Context, e execer, fieldID int64, frameCount int64) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO field_statistics (field_id, frame_count) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE frame_count = VALUES(frame_count)`,
		fieldID, frameCount)
	if err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.SetFieldStatistics", err)
	}
	return nil
}

func FieldFrameCount(ctx context.Context, e execer, fieldID int64) (int64, error) {
	var n int64
	err := e.QueryRowContext(ctx, `SELECT frame_count FROM field_statistics WHERE field_id = ?`, fieldID).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, caterr.Wrap(caterr.StorageMissing, "store.FieldFrameCount", err)
	}
	return n, nil
}

func TotalFrameCount(ctx context.Context, e execer) (int64, error) {
	var n int64
	err := e.QueryRowContext(ctx, `SELECT COALESCE(SUM(frame_count), 0) FROM field_statistics`).Scan(&n)
	if err != nil {
		return 0, caterr.Wrap(caterr.StorageMissing, "store.TotalFrameCount", err)
	}
	return n, nil
}

// PluginRow mirrors plugin_registry.
type PluginRow struct {
	PluginID   int64
	PluginType string
	Settings   string
}

func UpsertPlugin(ctx context.Context, e execer, p PluginRow) (int64, error) {
	res, err := e.ExecContext(ctx,
		`INSERT INTO plugin_registry (plugin_type, settings) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE plugin_type = plugin_type`,
		p.PluginType, p.Settings)
	if err != nil {
		return 0, caterr.Wrap(caterr.PluginMissing, "store.UpsertPlugin", err)
	}
	id, err := res.LastInsertId()
	if err == nil && id != 0 {
		return id, nil
	}

	var existing int64
	err = e.QueryRowContext(ctx,
		`SELECT plugin_id FROM plugin_registry WHERE plugin_type = ? AND settings = ?`, p.PluginType, p.Settings).
		Scan(&existing)
	if err != nil {
		return 0, caterr.Wrap(caterr.PluginMissing, "store.UpsertPlugin", err)
	}
	return existing, nil
}

// FindPlugin looks a plugin slot up by its (type, settings) identity
// without registering one, unlike UpsertPlugin.
func FindPlugin(ctx context.Context, e execer, pluginType, settings string) (PluginRow, bool, error) {
	var row PluginRow
	err := e.QueryRowContext(ctx,
		`SELECT plugin_id, plugin_type, settings FROM plugin_registry
		 WHERE plugin_type = ? AND settings = ?`, pluginType, settings).
		Scan(&row.PluginID, &row.PluginType, &row.Settings)
	if err == sql.ErrNoRows {
		return PluginRow{}, false, nil
	}
	if err != nil {
		return PluginRow{}, false, caterr.Wrap(caterr.PluginMissing, "store.FindPlugin", err)
	}
	return row, true, nil
}

func SetPluginData(ctx context.Context, e execer, pluginID int64, key, value string) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO plugin_data (plugin_id, data_key, data_value) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE data_value = VALUES(data_value)`,
		pluginID, key, value)
	if err != nil {
		return caterr.Wrap(caterr.PluginMissing, "store.SetPluginData", err)
	}
	return nil
}

func DeletePluginData(ctx context.Context, e execer, pluginID int64, key string) error {
	_, err := e.ExecContext(ctx, `DELETE FROM plugin_data WHERE plugin_id = ? AND data_key = ?`, pluginID, key)
	if err != nil {
		return caterr.Wrap(caterr.PluginMissing, "store.DeletePluginData", err)
	}
	return nil
}

func PluginData(ctx context.Context, e execer, pluginID int64) (map[string]string, error) {
	rows, err := e.QueryContext(ctx, `SELECT data_key, data_value FROM plugin_data WHERE plugin_id = ?`, pluginID)
	if err != nil {
		return nil, caterr.Wrap(caterr.PluginMissing, "store.PluginData", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k string
		var v sql.NullString
		if err := rows.Scan(&k, &v); err != nil {
			return nil, caterr.Wrap(caterr.PluginMissing, "store.PluginData", err)
		}
		out[k] = v.String
	}
	return out, rows.Err()
}

// InsertRevision records one committed flush in index_revision and
// returns its id.
func InsertRevision(ctx context.Context, e execer, documentsAdded, documentsDeleted, framesAdded int) (int64, error) {
	res, err := e.ExecContext(ctx,
		`INSERT INTO index_revision (documents_added, documents_deleted, frames_added) VALUES (?, ?, ?)`,
		documentsAdded, documentsDeleted, framesAdded)
	if err != nil {
		return 0, caterr.Wrap(caterr.StorageMissing, "store.InsertRevision", err)
	}
	return res.LastInsertId()
}

func LatestRevision(ctx context.Context, e execer) (int64, error) {
	var id sql.NullInt64
	err := e.QueryRowContext(ctx, `SELECT MAX(revision_id) FROM index_revision`).Scan(&id)
	if err != nil {
		return 0, caterr.Wrap(caterr.StorageMissing, "store.LatestRevision", err)
	}
	return id.Int64, nil
}

func SetSetting(ctx context.Context, e execer, name, value string) error {
	_, err := e.ExecContext(ctx,
		`INSERT INTO setting (name, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)`,
		name, value)
	if err != nil {
		return caterr.Wrap(caterr.StorageMissing, "store.SetSetting", err)
	}
	return nil
}

func GetSetting(ctx context.Context, e execer, name string) (string, bool, error) {
	var value sql.NullString
	err := e.QueryRowContext(ctx, `SELECT value FROM setting WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, caterr.Wrap(caterr.StorageMissing, "store.GetSetting", err)
	}
	return value.String, true, nil
}
