package querystring

import (
	"strconv"
	"strings"

	"github.com/Data-drone/caterpillar/internal/caterr"
	"github.com/Data-drone/caterpillar/internal/query"
)

// Parse compiles a query string into the predicate tree
// internal/query's Evaluator resolves.
func Parse(input string) (query.Predicate, error) {
	p := &parser{tokens: lex(input)}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, caterr.Wrapf(caterr.QuerySyntax, errUnexpectedToken(p.peek()), "querystring: parse %q", input)
	}
	return expr, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) parseOr() (query.Predicate, error) {
	left, err := p.parseAndNot()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAndNot()
		if err != nil {
			return nil, err
		}
		left = query.Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAndNot() (query.Predicate, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd || p.peek().kind == tokNot {
		isNot := p.peek().kind == tokNot
		p.next()
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if isNot {
			left = query.Not{Left: left, Right: right}
		} else {
			left = query.And{Left: left, Right: right}
		}
	}
	return left, nil
}

func (p *parser) parseAtom() (query.Predicate, error) {
	var atom query.Predicate

	if p.peek().kind == tokLParen {
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, caterr.Wrapf(caterr.QuerySyntax, errUnexpectedToken(p.peek()), "querystring: expected )")
		}
		p.next()
		atom = inner
	} else {
		operand, err := p.parseOperand()
		if err != nil {
			return nil, err
		}

		switch {
		case p.peek().kind == tokColon:
			p.next()
			child, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			atom = query.FieldRestrict{Field: joinOperand(operand), Child: child}
		case p.peek().kind == tokOp:
			opTok := p.next()
			value, err := p.parseOperand()
			if err != nil {
				return nil, err
			}
			atom = query.StructuredLeaf{Field: joinOperand(operand), Op: opTok.text, Value: joinOperand(value)}
		default:
			atom = operandToPredicate(operand)
		}
	}

	if p.peek().kind == tokCaret {
		p.next()
		numTok := p.next()
		if numTok.kind != tokTerm {
			return nil, caterr.Wrapf(caterr.QuerySyntax, errUnexpectedToken(numTok), "querystring: expected weight number")
		}
		factor, err := strconv.ParseFloat(numTok.text, 64)
		if err != nil {
			return nil, caterr.Wrapf(caterr.QuerySyntax, err, "querystring: invalid weight %q", numTok.text)
		}
		atom = query.Weight{Factor: factor, Child: atom}
	}

	return atom, nil
}

// parseOperand consumes one or more adjacent term tokens (a compound
// operand: `operand := term (whitespace term)*`).
func (p *parser) parseOperand() ([]string, error) {
	var terms []string
	for p.peek().kind == tokTerm {
		terms = append(terms, p.next().text)
	}
	if len(terms) == 0 {
		return nil, caterr.Wrapf(caterr.QuerySyntax, errUnexpectedToken(p.peek()), "querystring: expected operand")
	}
	return terms, nil
}

func joinOperand(terms []string) string { return strings.Join(terms, " ") }

func operandToPredicate(terms []string) query.Predicate {
	if len(terms) == 1 {
		if terms[0] == "*" {
			return query.AllFrames{}
		}
		return query.TermLeaf{Term: terms[0]}
	}
	var atom query.Predicate = query.TermLeaf{Term: terms[0]}
	for _, t := range terms[1:] {
		atom = query.And{Left: atom, Right: query.TermLeaf{Term: t}}
	}
	return atom
}

type parseErr string

func (e parseErr) Error() string { return string(e) }

func errUnexpectedToken(t token) error {
	if t.kind == tokEOF {
		return parseErr("unexpected end of query")
	}
	return parseErr("unexpected token " + t.text)
}
