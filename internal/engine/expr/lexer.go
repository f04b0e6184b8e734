package expr

import (
	"github.com/KirkDiggler/build-api/internal/errors"
)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenNot
	tokenAnd
	tokenOr
	tokenLParen
	tokenRParen
	tokenEOF
)

func (k tokenKind) String() string {
	switch k {
	case tokenIdent:
		return "identifier"
	case tokenNot:
		return "'!'"
	case tokenAnd:
		return "'&&'"
	case tokenOr:
		return "'||'"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	default:
		return "end of expression"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// tokenize splits an expression into tokens. Any byte outside the grammar is
// rejected here so nothing unexpected reaches the parser.
func tokenize(input string) ([]token, error) {
	var tokens []token

	for i := 0; i < len(input); {
		c := input[i]
		switch {
		case isSpace(c):
			i++
		case isIdentStart(c):
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: input[start:i], pos: start})
		case c == '!':
			tokens = append(tokens, token{kind: tokenNot, text: "!", pos: i})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", pos: i})
			i++
		case c == '&' || c == '|':
			if i+1 >= len(input) || input[i+1] != c {
				return nil, malformed(i, "expected %q", string([]byte{c, c}))
			}
			kind := tokenAnd
			if c == '|' {
				kind = tokenOr
			}
			tokens = append(tokens, token{kind: kind, text: input[i : i+2], pos: i})
			i += 2
		default:
			return nil, malformed(i, "unexpected character %q", string(c))
		}
	}

	return append(tokens, token{kind: tokenEOF, pos: len(input)}), nil
}

func malformed(pos int, format string, args ...any) error {
	return errors.MalformedExpressionf(format, args...).WithMeta("position", pos)
}
