// Package fold implements an explicit post-ingest case-fold pass, run
// deliberately rather than folded silently at query time: a term and
// its differently-cased counterpart ("Alice" vs "alice") are merged
// into whichever occurs more often, but only when the minority variant
// is rare enough relative to the majority that merging doesn't lose a
// real distinction ("Flask" the character name staying distinct from a
// lowercase "flask").
package fold

import (
	"context"
	"database/sql"
	"math"
	"strings"

	"github.com/Data-drone/caterpillar/internal/caterr"
	"github.com/Data-drone/caterpillar/internal/store"
)

// Result reports how many term pairs a Fold pass merged.
type Result struct {
	Merged int
}

// Fold scans the vocabulary for terms differing only by case and merges
// each pair whose minority-to-majority occurrence ratio falls below
// threshold: merge into whichever of (w, w.title()) has the
// higher total_occurrences, provided min(f1,f2)/max(f1,f2) < threshold.
func Fold(ctx context.Context, st *store.Store, threshold float64) (Result, error) {
	result := Result{}
	err := st.WithTx(ctx, func(tx *sql.Tx) error {
		vocab, err := store.AllVocabulary(ctx, tx)
		if err != nil {
			return err
		}
		byTerm := make(map[string]store.VocabularyTerm, len(vocab))
		for _, v := range vocab {
			byTerm[v.Term] = v
		}

		merged := map[int64]bool{}
		for _, v := range vocab {
			if merged[v.TermID] {
				continue
			}
			lower := strings.ToLower(v.Term)
			if lower == v.Term {
				continue
			}
			other, ok := byTerm[lower]
			if !ok || merged[other.TermID] {
				continue
			}

			statsA, err := store.GetTermStatistics(ctx, tx, v.TermID)
			if err != nil {
				return err
			}
			statsB, err := store.GetTermStatistics(ctx, tx, other.TermID)
			if err != nil {
				return err
			}
			f1, f2 := float64(statsA.TotalOccurrences), float64(statsB.TotalOccurrences)
			if f1 == 0 || f2 == 0 {
				continue
			}
			if math.Min(f1, f2)/math.Max(f1, f2) >= threshold {
				continue
			}

			majorID, minorID := other.TermID, v.TermID
			if f1 > f2 {
				majorID, minorID = v.TermID, other.TermID
			}
			if err := mergeTerm(ctx, tx, majorID, minorID); err != nil {
				return err
			}
			merged[minorID] = true
			result.Merged++
		}
		return nil
	})
	return result, err
}

// mergeTerm repoints every posting of minorID onto majorID, combining
// frequency and positions where both terms occurred in the same frame,
// drops the now-empty minority vocabulary row (cascading its leftover
// statistics and postings), and recomputes majorID's statistics from the
// merged posting set.
func mergeTerm(ctx context.Context, tx *sql.Tx, majorID, minorID int64) error {
	postings, err := store.TermPostings(ctx, tx, minorID)
	if err != nil {
		return err
	}
	for _, p := range postings {
		if err := repointPosting(ctx, tx, majorID, minorID, p); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM vocabulary WHERE term_id = ?`, minorID); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "fold.mergeTerm", err)
	}

	return recomputeTermStatistics(ctx, tx, majorID)
}

func repointPosting(ctx context.Context, tx *sql.Tx, majorID, minorID int64, p store.TermPostingRow) error {
	existing, err := store.TermPostings(ctx, tx, majorID)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.FrameID != p.FrameID {
			continue
		}
		// Both variants occurred in this frame: combine into the major
		// term's row and drop the minor term's, rather than violating
		// the (term_id, frame_id) primary key.
		frequency := e.Frequency + p.Frequency
		positions := e.Positions + "," + p.Positions
		if err := updatePosting(ctx, tx, majorID, p.FrameID, frequency, positions); err != nil {
			return err
		}
		return deletePosting(ctx, tx, minorID, p.FrameID)
	}
	return retargetPosting(ctx, tx, majorID, minorID, p.FrameID)
}

func updatePosting(ctx context.Context, tx *sql.Tx, termID, frameID int64, frequency int, positions string) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE term_posting SET frequency = ?, positions = ? WHERE term_id = ? AND frame_id = ?`,
		frequency, positions, termID, frameID); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "fold.updatePosting", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE frame_posting SET frequency = ?, positions = ? WHERE frame_id = ? AND term_id = ?`,
		frequency, positions, frameID, termID); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "fold.updatePosting", err)
	}
	return nil
}

func deletePosting(ctx context.Context, tx *sql.Tx, termID, frameID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM term_posting WHERE term_id = ? AND frame_id = ?`, termID, frameID); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "fold.deletePosting", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM frame_posting WHERE frame_id = ? AND term_id = ?`, frameID, termID); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "fold.deletePosting", err)
	}
	return nil
}

func retargetPosting(ctx context.Context, tx *sql.Tx, majorID, minorID, frameID int64) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE term_posting SET term_id = ? WHERE term_id = ? AND frame_id = ?`, majorID, minorID, frameID); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "fold.retargetPosting", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE frame_posting SET term_id = ? WHERE frame_id = ? AND term_id = ?`, majorID, frameID, minorID); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "fold.retargetPosting", err)
	}
	return nil
}

func recomputeTermStatistics(ctx context.Context, tx *sql.Tx, termID int64) error {
	postings, err := store.TermPostings(ctx, tx, termID)
	if err != nil {
		return err
	}
	var total int
	for _, p := range postings {
		total += p.Frequency
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO term_statistics (term_id, frames_occurring_in, total_occurrences) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE frames_occurring_in = VALUES(frames_occurring_in), total_occurrences = VALUES(total_occurrences)`,
		termID, len(postings), total); err != nil {
		return caterr.Wrap(caterr.StorageMissing, "fold.recomputeTermStatistics", err)
	}
	return nil
}
