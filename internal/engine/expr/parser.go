// Package expr evaluates prerequisite expressions: boolean formulas over option
// IDs built from identifiers, '!', '&&', '||' and parentheses.
//
//	ok, err := expr.Evaluate("a && (b || !c)", func(id string) bool { return selected[id] })
//
// Expressions are parsed into a tree and walked; the input text is never executed.
package expr

import (
	"strings"

	"github.com/KirkDiggler/build-api/internal/errors"
)

// Expression is a parsed prerequisite expression
type Expression struct {
	source string
	root   node
}

// Parse parses an expression. Errors have code MALFORMED_EXPRESSION.
func Parse(input string) (*Expression, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.MalformedExpression("expression is empty")
	}

	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, malformed(tok.pos, "unexpected %s after complete expression", tok.kind)
	}

	return &Expression{source: input, root: root}, nil
}

// Evaluate parses and evaluates an expression in one step
func Evaluate(input string, resolve func(id string) bool) (bool, error) {
	e, err := Parse(input)
	if err != nil {
		return false, err
	}
	return e.Evaluate(resolve), nil
}

// Evaluate walks the tree, calling resolve once per identifier occurrence
func (e *Expression) Evaluate(resolve func(id string) bool) bool {
	return e.root.eval(resolve)
}

// Identifiers returns the distinct identifiers in order of first appearance
func (e *Expression) Identifiers() []string {
	return e.root.collect(make(map[string]bool), nil)
}

// String returns the source text
func (e *Expression) String() string {
	return e.source
}

// maxDepth bounds nesting of parentheses and negations
const maxDepth = 256

// parser is a recursive-descent parser over:
//
//	or      = and { "||" and }
//	and     = unary { "&&" unary }
//	unary   = "!" unary | primary
//	primary = IDENT | "(" or ")"
type parser struct {
	tokens []token
	pos    int
	depth  int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) descend(pos int) error {
	p.depth++
	if p.depth > maxDepth {
		return malformed(pos, "expression nests deeper than %d levels", maxDepth)
	}
	return nil
}

func (p *parser) parseOr() (node, error) {
	return p.parseList(tokenOr, false, p.parseAnd)
}

func (p *parser) parseAnd() (node, error) {
	return p.parseList(tokenAnd, true, p.parseUnary)
}

// parseList parses operand { op operand } into one flat node
func (p *parser) parseList(op tokenKind, and bool, operand func() (node, error)) (node, error) {
	first, err := operand()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != op {
		return first, nil
	}

	list := &listNode{and: and, operands: []node{first}}
	for p.peek().kind == op {
		p.next()
		next, err := operand()
		if err != nil {
			return nil, err
		}
		list.operands = append(list.operands, next)
	}
	return list, nil
}

func (p *parser) parseUnary() (node, error) {
	tok := p.peek()
	if tok.kind != tokenNot {
		return p.parsePrimary()
	}

	p.next()
	if err := p.descend(tok.pos); err != nil {
		return nil, err
	}
	operand, err := p.parseUnary()
	p.depth--
	if err != nil {
		return nil, err
	}
	return &notNode{operand: operand}, nil
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenIdent:
		return &identNode{id: tok.text}, nil
	case tokenLParen:
		if err := p.descend(tok.pos); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		p.depth--
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return nil, malformed(closing.pos, "expected ')' but found %s", closing.kind)
		}
		return inner, nil
	default:
		return nil, malformed(tok.pos, "expected identifier or '(' but found %s", tok.kind)
	}
}
