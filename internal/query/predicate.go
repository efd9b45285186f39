package query

// Predicate is one node of a query tree. Eval resolves it against an
// Evaluator into a ResultSet.
type Predicate interface {
	Eval(e *Evaluator) (ResultSet, error)
}

// TermLeaf matches a single term, or a wildcard pattern using `?`
// (single character) and `*` (multi-character).
type TermLeaf struct {
	Term string
}

func (p TermLeaf) Eval(e *Evaluator) (ResultSet, error) { return e.evalTerm(p.Term) }

// AllFrames matches every live frame in the index (the `*` leaf).
type AllFrames struct{}

func (AllFrames) Eval(e *Evaluator) (ResultSet, error) { return e.evalAllFrames() }

// StructuredLeaf matches a structured-field predicate: `field OP value`.
type StructuredLeaf struct {
	Field string
	Op    string // "=", "<", "<=", ">", ">=", "=*" (wildcard equality)
	Value string
}

func (p StructuredLeaf) Eval(e *Evaluator) (ResultSet, error) {
	return e.evalStructured(p.Field, p.Op, p.Value)
}

// AttributeLeaf matches frames carrying a (type, value) attribute
// posting — per-frame derived tags (e.g. a sentiment score) a plugin
// attached, distinct from a schema-declared structured field. Only
// reachable through the programmatic Predicate API: the query-string
// grammar has no surface syntax for it.
type AttributeLeaf struct {
	Name  string
	Op    string // "=", "lt", "lte", "gt", "gte"
	Value string
}

func (p AttributeLeaf) Eval(e *Evaluator) (ResultSet, error) {
	return e.evalAttribute(p.Name, p.Op, p.Value)
}

// And intersects two subtrees' result sets.
type And struct{ Left, Right Predicate }

func (p And) Eval(e *Evaluator) (ResultSet, error) {
	l, err := p.Left.Eval(e)
	if err != nil {
		return nil, err
	}
	r, err := p.Right.Eval(e)
	if err != nil {
		return nil, err
	}
	return MatchAll(l, r), nil
}

// Or unions two subtrees' result sets.
type Or struct{ Left, Right Predicate }

func (p Or) Eval(e *Evaluator) (ResultSet, error) {
	l, err := p.Left.Eval(e)
	if err != nil {
		return nil, err
	}
	r, err := p.Right.Eval(e)
	if err != nil {
		return nil, err
	}
	return MatchAny(l, r), nil
}

// Not removes Right's keys from Left's result set.
type Not struct{ Left, Right Predicate }

func (p Not) Eval(e *Evaluator) (ResultSet, error) {
	l, err := p.Left.Eval(e)
	if err != nil {
		return nil, err
	}
	r, err := p.Right.Eval(e)
	if err != nil {
		return nil, err
	}
	return Exclude(l, r), nil
}

// FieldRestrict intersects a subtree's result set with the set of
// frames belonging to a given (text) field.
type FieldRestrict struct {
	Field string
	Child Predicate
}

func (p FieldRestrict) Eval(e *Evaluator) (ResultSet, error) {
	child, err := p.Child.Eval(e)
	if err != nil {
		return nil, err
	}
	fieldFrames, err := e.evalFieldFrames(p.Field)
	if err != nil {
		return nil, err
	}
	return MatchAll(child, fieldFrames), nil
}

// Weight multiplies the score contributions of a subtree's matches.
type Weight struct {
	Factor float64
	Child  Predicate
}

func (p Weight) Eval(e *Evaluator) (ResultSet, error) {
	child, err := p.Child.Eval(e)
	if err != nil {
		return nil, err
	}
	return Boost(child, p.Factor), nil
}
