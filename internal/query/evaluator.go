package query

import (
	"context"
	"database/sql"
	"regexp"
	"strconv"
	"strings"

	"github.com/Data-drone/caterpillar/internal/caterr"
	"github.com/Data-drone/caterpillar/internal/schema"
	"github.com/Data-drone/caterpillar/internal/store"
)

// Evaluator resolves a Predicate tree against a live store snapshot. It
// never mutates the store: term-leaf resolution looks vocabulary terms
// up without creating them.
type Evaluator struct {
	ctx context.Context
	db  *sql.DB
	sch *schema.Schema
}

// NewEvaluator builds an Evaluator bound to one store connection and
// schema snapshot.
func NewEvaluator(ctx context.Context, db *sql.DB, sch *schema.Schema) *Evaluator {
	return &Evaluator{ctx: ctx, db: db, sch: sch}
}

func (e *Evaluator) totalFrames() (int64, error) {
	return store.TotalFrameCount(e.ctx, e.db)
}

func (e *Evaluator) evalAllFrames() (ResultSet, error) {
	ids, err := store.AllFrameIDs(e.ctx, e.db)
	if err != nil {
		return nil, err
	}
	out := make(ResultSet, len(ids))
	for _, id := range ids {
		out[id] = []float64{0}
	}
	return out, nil
}

func (e *Evaluator) evalFieldFrames(fieldName string) (ResultSet, error) {
	field, ok := e.sch.Field(fieldName)
	if !ok {
		return nil, caterr.New(caterr.ContainerMissing, "query: field-restriction "+fieldName)
	}
	row, err := store.FieldByName(e.ctx, e.db, field.Name)
	if err != nil {
		return nil, err
	}
	ids, err := store.FramesForField(e.ctx, e.db, row.FieldID)
	if err != nil {
		return nil, err
	}
	out := make(ResultSet, len(ids))
	for _, id := range ids {
		out[id] = []float64{0}
	}
	return out, nil
}

// isWildcard reports whether term contains a `?` or `*`.
func isWildcard(term string) bool {
	return strings.ContainsAny(term, "?*")
}

// wildcardRegexp compiles a `?`/`*` glob into an anchored regexp.
func wildcardRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '?':
			b.WriteString(".")
		case '*':
			b.WriteString(".*")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

func (e *Evaluator) evalTerm(term string) (ResultSet, error) {
	total, err := e.totalFrames()
	if err != nil {
		return nil, err
	}

	var termIDs []int64
	if isWildcard(term) {
		re, err := wildcardRegexp(term)
		if err != nil {
			return nil, caterr.Wrapf(caterr.QuerySyntax, err, "query: wildcard term %q", term)
		}
		vocab, err := store.AllVocabulary(e.ctx, e.db)
		if err != nil {
			return nil, err
		}
		for _, v := range vocab {
			if re.MatchString(v.Term) {
				termIDs = append(termIDs, v.TermID)
			}
		}
	} else {
		id, ok, err := store.LookupTermID(e.ctx, e.db, term)
		if err != nil {
			return nil, err
		}
		if ok {
			termIDs = append(termIDs, id)
		}
	}

	out := ResultSet{}
	for _, termID := range termIDs {
		stats, err := store.GetTermStatistics(e.ctx, e.db, termID)
		if err != nil {
			return nil, err
		}
		idfValue := idf(total, stats.FramesOccurringIn)

		postings, err := store.TermPostings(e.ctx, e.db, termID)
		if err != nil {
			return nil, err
		}
		for _, p := range postings {
			score := tfidf(float64(p.Frequency), idfValue, 1.0)
			out[p.FrameID] = append(out[p.FrameID], score)
		}
	}
	return out, nil
}

func (e *Evaluator) evalStructured(fieldName, op, value string) (ResultSet, error) {
	field, ok := e.sch.Field(fieldName)
	if !ok {
		return nil, caterr.New(caterr.ContainerMissing, "query: structured field "+fieldName)
	}
	operator := schema.Operator(op)
	if !field.SupportsOperator(operator) {
		return nil, caterr.Wrapf(caterr.QuerySemantics, errUnsupportedOperator(fieldName, op), "query: %s %s", fieldName, op)
	}
	if isWildcard(value) && operator != schema.OpWildcardEQ && operator != schema.OpEQ {
		return nil, caterr.Wrapf(caterr.QuerySemantics, errWildcardWithOrdering(), "query: %s %s %s", fieldName, op, value)
	}

	row, err := store.FieldByName(e.ctx, e.db, field.Name)
	if err != nil {
		return nil, err
	}
	data, err := store.DocumentDataForField(e.ctx, e.db, row.FieldID)
	if err != nil {
		return nil, err
	}

	var matched []int64
	var re *regexp.Regexp
	if isWildcard(value) {
		re, err = wildcardRegexp(value)
		if err != nil {
			return nil, caterr.Wrapf(caterr.QuerySyntax, err, "query: wildcard value %q", value)
		}
	}

	for docID, stored := range data {
		if matchesPredicate(field.Kind, operator, stored, value, re) {
			matched = append(matched, docID)
		}
	}

	out := ResultSet{}
	for _, docID := range matched {
		frames, err := store.FramesForDocument(e.ctx, e.db, docID)
		if err != nil {
			return nil, err
		}
		for _, fr := range frames {
			out[fr.FrameID] = []float64{0}
		}
	}
	return out, nil
}

// evalAttribute matches frames carrying a (type, value) attribute
// posting, the frame-level tag data-model distinct from document_data's
// per-document structured fields.
func (e *Evaluator) evalAttribute(name, op, value string) (ResultSet, error) {
	attrID, ok, err := store.FindAttribute(e.ctx, e.db, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return ResultSet{}, nil
	}
	frameIDs, err := store.AttributePostings(e.ctx, e.db, attrID, op, value)
	if err != nil {
		return nil, err
	}
	out := make(ResultSet, len(frameIDs))
	for _, id := range frameIDs {
		out[id] = []float64{0}
	}
	return out, nil
}

func matchesPredicate(kind schema.FieldKind, op schema.Operator, stored, value string, re *regexp.Regexp) bool {
	if re != nil {
		return re.MatchString(stored)
	}
	if kind == schema.Numeric {
		storedNum, err1 := strconv.ParseFloat(stored, 64)
		valueNum, err2 := strconv.ParseFloat(value, 64)
		if err1 != nil || err2 != nil {
			return false
		}
		switch op {
		case schema.OpEQ:
			return storedNum == valueNum
		case schema.OpLT:
			return storedNum < valueNum
		case schema.OpLTE:
			return storedNum <= valueNum
		case schema.OpGT:
			return storedNum > valueNum
		case schema.OpGTE:
			return storedNum >= valueNum
		}
		return false
	}
	switch op {
	case schema.OpEQ:
		return stored == value
	case schema.OpLT:
		return stored < value
	case schema.OpLTE:
		return stored <= value
	case schema.OpGT:
		return stored > value
	case schema.OpGTE:
		return stored >= value
	}
	return false
}

type predicateErr string

func (e predicateErr) Error() string { return string(e) }

func errUnsupportedOperator(field, op string) error {
	return predicateErr("operator " + op + " not supported on field " + field)
}

func errWildcardWithOrdering() error {
	return predicateErr("wildcards are only permitted with the equality operator")
}
