// Package schema declares fields, their types, and the predicate
// operators each field kind supports.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Data-drone/caterpillar/internal/caterr"
)

// FieldKind is the tagged-union field-kind enum, used in place of
// dynamic config-kwargs.
type FieldKind string

const (
	Text            FieldKind = "text"
	CategoricalText FieldKind = "categorical-text"
	Numeric         FieldKind = "numeric"
	Boolean         FieldKind = "boolean"
	Identifier      FieldKind = "identifier"
)

// Operator is a structured-predicate comparison operator.
type Operator string

const (
	OpEQ         Operator = "="
	OpLT         Operator = "<"
	OpLTE        Operator = "<="
	OpGT         Operator = ">"
	OpGTE        Operator = ">="
	OpWildcardEQ Operator = "=*"
)

// Field is one declared schema field.
type Field struct {
	Name      string    `json:"name"`
	Kind      FieldKind `json:"kind"`
	Indexed   bool      `json:"indexed"`
	Stored    bool      `json:"stored"`
	FrameSize int       `json:"frame_size,omitempty"` // text fields only; 0 = whole field as one frame
	Analyzer  string    `json:"analyzer,omitempty"`   // text fields only; analyzer pipeline name
}

// IsStructured reports whether the field is compared as a scalar rather
// than analyzed into terms.
func (f Field) IsStructured() bool { return f.Kind != Text }

// SupportsOperator reports whether op is permitted against this field,
// matching the query evaluator's structured-predicate leaf rules.
func (f Field) SupportsOperator(op Operator) bool {
	if !f.Indexed || f.Kind == Text {
		return false
	}
	switch f.Kind {
	case Numeric:
		switch op {
		case OpEQ, OpLT, OpLTE, OpGT, OpGTE:
			return true
		}
		return false
	case CategoricalText, Identifier:
		switch op {
		case OpEQ, OpWildcardEQ:
			return true
		}
		return false
	case Boolean:
		return op == OpEQ
	}
	return false
}

// Schema is a named mapping from field name to Field.
type Schema struct {
	fields map[string]Field
	order  []string // insertion order, for deterministic serialization/iteration
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{fields: make(map[string]Field)}
}

func validateFieldName(name string) error {
	if name == "" {
		return caterr.New(caterr.InvalidFieldName, "schema: empty field name")
	}
	if strings.HasPrefix(name, "_") {
		return caterr.Wrapf(caterr.InvalidFieldName, fmt.Errorf("reserved prefix"), "schema: field %q", name)
	}
	if strings.ContainsAny(name, " \t\n\r") {
		return caterr.Wrapf(caterr.InvalidFieldName, fmt.Errorf("contains whitespace"), "schema: field %q", name)
	}
	return nil
}

// AddField adds a field declaration. It fails on a duplicate name, a
// reserved-prefix name (leading underscore), a name containing
// whitespace, or an invalid combination of kind/flags.
func (s *Schema) AddField(f Field) error {
	if err := validateFieldName(f.Name); err != nil {
		return err
	}
	if _, exists := s.fields[f.Name]; exists {
		return caterr.Wrapf(caterr.DuplicateField, fmt.Errorf("already declared"), "schema: field %q", f.Name)
	}
	if f.Kind == "" {
		return caterr.Wrapf(caterr.InvalidFieldConfig, fmt.Errorf("missing kind"), "schema: field %q", f.Name)
	}
	if f.Kind != Text && f.FrameSize != 0 {
		return caterr.Wrapf(caterr.InvalidFieldConfig, fmt.Errorf("frame_size only applies to text fields"), "schema: field %q", f.Name)
	}
	if f.FrameSize < 0 {
		return caterr.Wrapf(caterr.InvalidFieldConfig, fmt.Errorf("frame_size must be >= 0"), "schema: field %q", f.Name)
	}

	s.fields[f.Name] = f
	s.order = append(s.order, f.Name)
	return nil
}

// RemoveField removes a field declaration. Cascading removal of stored
// data for the field (structured index rows, postings, frames) is the
// caller's (the index's) responsibility.
func (s *Schema) RemoveField(name string) error {
	if _, exists := s.fields[name]; !exists {
		return caterr.New(caterr.ContainerMissing, fmt.Sprintf("schema: remove field %q", name))
	}
	delete(s.fields, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Field looks up a field declaration by name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Fields iterates fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, s.fields[n])
	}
	return out
}

// marshaledSchema is the on-disk JSON representation (plain
// encoding/json, declaration order preserved via the separate order
// slice rather than relying on map iteration).
type marshaledSchema struct {
	Fields []Field `json:"fields"`
}

// MarshalJSON serializes the schema, preserving declaration order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(marshaledSchema{Fields: s.Fields()})
}

// UnmarshalJSON restores a schema previously produced by MarshalJSON.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var m marshaledSchema
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	s.fields = make(map[string]Field, len(m.Fields))
	s.order = nil
	for _, f := range m.Fields {
		s.fields[f.Name] = f
		s.order = append(s.order, f.Name)
	}
	return nil
}
