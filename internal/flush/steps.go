package flush

import (
	"context"
	"database/sql"
	"sort"
	"strconv"
	"strings"

	"github.com/Data-drone/caterpillar/internal/caterr"
	"github.com/Data-drone/caterpillar/internal/schema"
	"github.com/Data-drone/caterpillar/internal/staging"
	"github.com/Data-drone/caterpillar/internal/store"
)

func runFlush(ctx context.Context, tx *sql.Tx, ws *staging.Workspace, sch *schema.Schema, result *Result) error {
	// Step 1: resolve deletions first, so a term that loses every
	// occurrence this batch can still be seen as present by the
	// vocabulary-expansion step that follows (its statistics simply net
	// out to zero; vocabulary rows themselves are never reclaimed here —
	// orphans are left in place rather than swept).
	for _, docID := range ws.Deletes() {
		exists, err := store.DocumentExists(ctx, tx, docID)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if err := deleteDocument(ctx, tx, docID); err != nil {
			return err
		}
		result.DocumentsDeleted++
	}

	// Step 2: register new fields.
	fieldIDs := map[string]int64{}
	for _, f := range sch.Fields() {
		row, err := store.FieldByName(ctx, tx, f.Name)
		if err != nil {
			return err
		}
		fieldIDs[f.Name] = row.FieldID
	}
	for _, f := range ws.NewFields() {
		id, err := store.InsertField(ctx, tx, store.FieldRow{
			Name: f.Name, Kind: string(f.Kind), Indexed: f.Indexed,
			Stored: f.Stored, FrameSize: f.FrameSize, Analyzer: f.Analyzer,
		})
		if err != nil {
			return err
		}
		fieldIDs[f.Name] = id
	}

	// Step 3: expand the vocabulary, visiting terms in descending staged
	// frequency so heavily used terms get lower term ids — a minor
	// locality optimization with no semantic effect.
	docs := ws.Documents()
	staged := aggregateStagedFrequencies(docs)
	termIDs := map[string]int64{}
	for _, term := range staged.order {
		id, err := store.TermID(ctx, tx, term)
		if err != nil {
			return err
		}
		termIDs[term] = id
	}

	revision, err := store.LatestRevision(ctx, tx)
	if err != nil {
		return err
	}
	revision++

	// Step 4: remap and insert documents and frames.
	framesAdded := 0
	termDeltaFrames := map[int64]int{}
	termDeltaOccurrences := map[int64]int{}
	fieldFrameDelta := map[int64]int{}

	for _, doc := range docs {
		documentID, err := store.InsertDocument(ctx, tx, revision)
		if err != nil {
			return err
		}
		result.DocumentsAdded++

		for name, value := range doc.Stored {
			fieldID, ok := fieldIDs[name]
			if !ok {
				continue
			}
			if err := store.SetDocumentData(ctx, tx, documentID, fieldID, value); err != nil {
				return err
			}
		}

		// Structured field values (doc.Structured) are resolved by the
		// query evaluator's structured-predicate leaf straight out of
		// document_data (set above via doc.Stored); they are a
		// per-document concept and need no frame-level posting.
		// attribute_frame_posting is reserved for the Attribute data
		// model's distinct, frame-level (type, value) tags — e.g. a
		// sentiment score a plugin computes per frame — populated
		// directly against the store by whatever produces them, not by
		// this core write path.
		for _, fr := range doc.Frames {
			fieldID, ok := fieldIDs[fr.FieldName]
			if !ok {
				return caterr.Wrapf(caterr.ContainerMissing, errUnknownField(fr.FieldName), "flush: frame for field %q", fr.FieldName)
			}
			frameID, err := store.InsertFrame(ctx, tx, store.FrameRow{
				DocumentID: documentID, FieldID: fieldID,
				SequenceInField: fr.SequenceInField, Text: fr.Text,
			})
			if err != nil {
				return err
			}
			framesAdded++
			fieldFrameDelta[fieldID]++

			// Step 5: insert postings for every term occurring in this frame.
			for term, occ := range fr.Terms {
				termID := termIDs[term]
				positions := joinPositions(occ.Positions)
				if err := store.InsertPosting(ctx, tx, termID, frameID, occ.Frequency, positions); err != nil {
					return err
				}
				termDeltaFrames[termID]++
				termDeltaOccurrences[termID] += occ.Frequency
			}
		}
	}
	result.FramesAdded = framesAdded

	// Step 6: update term statistics by summing new occurrences (losses
	// from deleted documents were already applied in deleteDocument).
	for termID, deltaFrames := range termDeltaFrames {
		if err := store.UpsertTermStatistics(ctx, tx, termID, deltaFrames, termDeltaOccurrences[termID]); err != nil {
			return err
		}
	}

	// Step 7: recompute field_statistics.frame_count for every touched field.
	for fieldID, delta := range fieldFrameDelta {
		current, err := store.FieldFrameCount(ctx, tx, fieldID)
		if err != nil {
			return err
		}
		if err := store.SetFieldStatistics(ctx, tx, fieldID, current+int64(delta)); err != nil {
			return err
		}
	}

	// Step 8: apply plugin deletions, then upserts.
	for key, keys := range ws.PluginDeletes() {
		pluginID, err := store.UpsertPlugin(ctx, tx, store.PluginRow{PluginType: key.PluginType, Settings: key.Settings})
		if err != nil {
			return err
		}
		for k := range keys {
			if err := store.DeletePluginData(ctx, tx, pluginID, k); err != nil {
				return err
			}
		}
	}
	for key, kv := range ws.PluginSets() {
		pluginID, err := store.UpsertPlugin(ctx, tx, store.PluginRow{PluginType: key.PluginType, Settings: key.Settings})
		if err != nil {
			return err
		}
		for k, v := range kv {
			if err := store.SetPluginData(ctx, tx, pluginID, k, v); err != nil {
				return err
			}
		}
	}

	// Step 9: apply setting overrides.
	for name, value := range ws.Settings() {
		if err := store.SetSetting(ctx, tx, name, value); err != nil {
			return err
		}
	}

	// Step 10: append the revision row.
	revisionID, err := store.InsertRevision(ctx, tx, result.DocumentsAdded, result.DocumentsDeleted, result.FramesAdded)
	if err != nil {
		return err
	}
	result.RevisionID = revisionID

	// Step 11: the caller's enclosing store.WithTx commits; ws.Rollback
	// runs in Flush only after that commit succeeds.
	return nil
}

// deleteDocument removes a document and every row derived from it,
// decrementing term_statistics for each posting it is about to cascade
// away. Idempotent: deleting an id with no matching document is a
// no-op, matching the staging workspace's own idempotence for deletes.
func deleteDocument(ctx context.Context, tx *sql.Tx, documentID int64) error {
	frameRows, err := store.FramesForDocument(ctx, tx, documentID)
	if err != nil {
		return err
	}
	for _, fr := range frameRows {
		postings, err := framePostings(ctx, tx, fr.FrameID)
		if err != nil {
			return err
		}
		for termID, occ := range postings {
			if err := store.UpsertTermStatistics(ctx, tx, termID, -1, -occ); err != nil {
				return err
			}
		}
	}
	return store.DeleteDocumentCascade(ctx, tx, documentID)
}

func framePostings(ctx context.Context, tx *sql.Tx, frameID int64) (map[int64]int, error) {
	rows, err := tx.QueryContext(ctx, `SELECT term_id, frequency FROM frame_posting WHERE frame_id = ?`, frameID)
	if err != nil {
		return nil, caterr.Wrap(caterr.StorageMissing, "flush.framePostings", err)
	}
	defer rows.Close()

	out := map[int64]int{}
	for rows.Next() {
		var termID int64
		var freq int
		if err := rows.Scan(&termID, &freq); err != nil {
			return nil, caterr.Wrap(caterr.StorageMissing, "flush.framePostings", err)
		}
		out[termID] = freq
	}
	return out, rows.Err()
}

// stagedFrequencies pairs each term seen this batch with its total
// staged occurrence count, plus a deterministic descending-frequency
// visiting order (ties broken alphabetically for reproducibility).
type stagedFrequencies struct {
	counts map[string]int
	order  []string
}

func aggregateStagedFrequencies(docs []*staging.Document) stagedFrequencies {
	counts := map[string]int{}
	for _, doc := range docs {
		for _, fr := range doc.Frames {
			for term, occ := range fr.Terms {
				counts[term] += occ.Frequency
			}
		}
	}
	order := make([]string, 0, len(counts))
	for term := range counts {
		order = append(order, term)
	}
	sort.Slice(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return order[i] < order[j]
	})
	return stagedFrequencies{counts: counts, order: order}
}

func joinPositions(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

type errUnknownFieldT string

func (e errUnknownFieldT) Error() string { return "unknown field: " + string(e) }

func errUnknownField(name string) error { return errUnknownFieldT(name) }
