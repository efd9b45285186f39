// Package staging implements the per-writer private accumulator: a
// Writer stages documents, field declarations, plugin state, and
// settings in memory, entirely invisible to readers, until
// internal/flush commits the whole batch in one step.
package staging

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/Data-drone/caterpillar/internal/analysis"
	"github.com/Data-drone/caterpillar/internal/caterr"
	"github.com/Data-drone/caterpillar/internal/frames"
	"github.com/Data-drone/caterpillar/internal/schema"
)

// TermOccurrence is one term's occurrences within a single staged frame.
type TermOccurrence struct {
	Frequency int
	Positions []int
}

// Frame is one staged frame, carrying its analyzed term occurrences
// (vocabulary terms only — stopped tokens contribute positions to their
// neighbors but are never indexed themselves) ready for the flush
// protocol to persist.
type Frame struct {
	FieldName       string
	SequenceInField int
	Text            string
	Terms           map[string]*TermOccurrence
}

// Document is one staged document: its analyzed unstructured frames plus
// the raw values of every stored field (structured or not).
type Document struct {
	LocalID    int64
	Frames     []Frame
	Stored     map[string]string // field name -> raw value, for fields with Stored=true
	Structured map[string]string // field name -> raw value, for structured (attribute) fields
}

// PluginKey identifies one plugin slot: the pair (plugin type,
// settings) is the slot's identity.
type PluginKey struct {
	PluginType string
	Settings   string
}

// Workspace accumulates one writer's pending changes. It is not safe for
// concurrent use; the index package serializes writers with
// internal/lockfile before constructing one.
type Workspace struct {
	schema    *schema.Schema
	analyzers map[string]*analysis.Analyzer
	nextLocal int64

	documents map[int64]*Document
	deletes   map[int64]bool // existing, persisted document ids staged for deletion

	newFields []schema.Field

	pluginSets    map[PluginKey]map[string]string
	pluginDeletes map[PluginKey]map[string]bool

	settings map[string]string
}

// New creates an empty Workspace bound to sch. analyzers maps field name
// to the Analyzer used for its unstructured text; fields absent from the
// map fall back to analysis.DefaultEnglishAnalyzer().
func New(sch *schema.Schema, analyzers map[string]*analysis.Analyzer) *Workspace {
	return &Workspace{
		schema:        sch,
		analyzers:     analyzers,
		nextLocal:     1,
		documents:     map[int64]*Document{},
		deletes:       map[int64]bool{},
		pluginSets:    map[PluginKey]map[string]string{},
		pluginDeletes: map[PluginKey]map[string]bool{},
		settings:      map[string]string{},
	}
}

// AddDocument analyzes each indexed field's text into frames and tokens,
// stages the resulting rows, and returns the staged (writer-local,
// counting from 1) document id.
func (w *Workspace) AddDocument(fields map[string]any) (int64, error) {
	doc := &Document{
		LocalID:    w.nextLocal,
		Stored:     map[string]string{},
		Structured: map[string]string{},
	}
	w.nextLocal++

	for name, value := range fields {
		f, ok := w.schema.Field(name)
		if !ok {
			return 0, caterr.Wrapf(caterr.InvalidFieldName, fmt.Errorf("undeclared field"), "staging.AddDocument field %q", name)
		}

		raw := toStoredString(value)
		if f.Stored {
			doc.Stored[name] = raw
		}

		if f.IsStructured() {
			if f.Indexed {
				doc.Structured[name] = raw
			}
			continue
		}

		if !f.Indexed {
			continue
		}
		text, ok := value.(string)
		if !ok {
			return 0, caterr.Wrapf(caterr.InvalidFieldConfig, fmt.Errorf("value must be a string"), "staging.AddDocument field %q", name)
		}

		builder := frames.Builder{FrameSize: f.FrameSize}
		az := w.analyzerFor(name)
		for _, fr := range builder.Build(text) {
			tokens := az.Analyze(fr.Text)
			doc.Frames = append(doc.Frames, Frame{
				FieldName:       name,
				SequenceInField: fr.SequenceInField,
				Text:            fr.Text,
				Terms:           termOccurrences(tokens),
			})
		}
	}

	w.documents[doc.LocalID] = doc
	return doc.LocalID, nil
}

func (w *Workspace) analyzerFor(field string) *analysis.Analyzer {
	if az, ok := w.analyzers[field]; ok {
		return az
	}
	return analysis.DefaultEnglishAnalyzer()
}

func termOccurrences(tokens []analysis.Token) map[string]*TermOccurrence {
	out := map[string]*TermOccurrence{}
	for _, t := range tokens {
		if t.Stopped {
			continue
		}
		occ, ok := out[t.Value]
		if !ok {
			occ = &TermOccurrence{}
			out[t.Value] = occ
		}
		occ.Frequency++
		occ.Positions = append(occ.Positions, t.Position)
	}
	return out
}

func toStoredString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// DeleteDocument stages deletion of an existing, persisted document.
// Idempotent: staging the same id twice is not an error.
func (w *Workspace) DeleteDocument(documentID int64) {
	w.deletes[documentID] = true
}

// Deletes returns the set of persisted document ids staged for removal,
// sorted for deterministic flush ordering.
func (w *Workspace) Deletes() []int64 {
	out := make([]int64, 0, len(w.deletes))
	for id := range w.deletes {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Documents returns the staged documents in ascending local-id order.
func (w *Workspace) Documents() []*Document {
	out := make([]*Document, 0, len(w.documents))
	for _, d := range w.documents {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocalID < out[j].LocalID })
	return out
}

// AddField stages a new field declaration. The field must not already
// exist in the bound schema or among fields already staged this batch.
func (w *Workspace) AddField(f schema.Field) error {
	if _, exists := w.schema.Field(f.Name); exists {
		return caterr.New(caterr.DuplicateField, "staging.AddField")
	}
	for _, existing := range w.newFields {
		if existing.Name == f.Name {
			return caterr.New(caterr.DuplicateField, "staging.AddField")
		}
	}
	w.newFields = append(w.newFields, f)
	return nil
}

// NewFields returns the field declarations staged this batch.
func (w *Workspace) NewFields() []schema.Field { return w.newFields }

// SetPluginState stages an upsert of one (key, value) pair for the
// plugin slot identified by (pluginType, settings).
func (w *Workspace) SetPluginState(pluginType, settings, key, value string) {
	k := PluginKey{PluginType: pluginType, Settings: settings}
	if w.pluginSets[k] == nil {
		w.pluginSets[k] = map[string]string{}
	}
	w.pluginSets[k][key] = value
	if w.pluginDeletes[k] != nil {
		delete(w.pluginDeletes[k], key)
	}
}

// DeletePluginState stages removal of one key from a plugin slot.
func (w *Workspace) DeletePluginState(pluginType, settings, key string) {
	k := PluginKey{PluginType: pluginType, Settings: settings}
	if w.pluginDeletes[k] == nil {
		w.pluginDeletes[k] = map[string]bool{}
	}
	w.pluginDeletes[k][key] = true
	if w.pluginSets[k] != nil {
		delete(w.pluginSets[k], key)
	}
}

// PluginSets returns staged plugin key/value upserts.
func (w *Workspace) PluginSets() map[PluginKey]map[string]string { return w.pluginSets }

// PluginDeletes returns staged plugin key deletions.
func (w *Workspace) PluginDeletes() map[PluginKey]map[string]bool { return w.pluginDeletes }

// SetSetting stages an index-level setting override.
func (w *Workspace) SetSetting(name, value string) {
	w.settings[name] = value
}

// Settings returns staged setting overrides.
func (w *Workspace) Settings() map[string]string { return w.settings }

// Rollback discards every staged change. The Workspace is left usable
// for a fresh batch, with local ids restarting at 1.
func (w *Workspace) Rollback() {
	w.nextLocal = 1
	w.documents = map[int64]*Document{}
	w.deletes = map[int64]bool{}
	w.newFields = nil
	w.pluginSets = map[PluginKey]map[string]string{}
	w.pluginDeletes = map[PluginKey]map[string]bool{}
	w.settings = map[string]string{}
}

// Empty reports whether the workspace has nothing staged.
func (w *Workspace) Empty() bool {
	return len(w.documents) == 0 && len(w.deletes) == 0 && len(w.newFields) == 0 &&
		len(w.pluginSets) == 0 && len(w.pluginDeletes) == 0 && len(w.settings) == 0
}
