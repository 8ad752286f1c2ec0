// internal/expr/token.go
package expr

import (
	"fmt"

	"github.com/branchwork/rulecase/internal/types"
)

// tokenKind enumerates the lexical token classes of the rule grammar.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString // single-quoted literal
	tokEq     // ==
	tokNeq    // !=
	tokGt     // >
	tokLt     // <
	tokQuestion
	tokColon
	tokDot
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokComma
)

// token is one lexical unit with its byte span in the input.
// Text is the raw source slice; for tokString it includes the quotes.
type token struct {
	kind  tokenKind
	text  string
	start int
	end   int
}

// tokenize splits expression text into tokens. The lexer is permissive
// about quoted literal contents (anything up to the closing quote); literal
// safety is enforced by the serializer's whitelist, not here, so parsing
// accepts a superset of what can be re-serialized.
func tokenize(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '\'':
			start := i
			i++
			for i < len(input) && input[i] != '\'' {
				i++
			}
			if i >= len(input) {
				return nil, fmt.Errorf("%w: unterminated string literal at offset %d", types.ErrInvalidExpressionSyntax, start)
			}
			i++ // closing quote
			toks = append(toks, token{tokString, input[start:i], start, i})

		case isIdentChar(c):
			start := i
			for i < len(input) && isIdentChar(input[i]) {
				i++
			}
			toks = append(toks, token{tokIdent, input[start:i], start, i})

		case c == '=':
			if i+1 < len(input) && input[i+1] == '=' {
				toks = append(toks, token{tokEq, "==", i, i + 2})
				i += 2
			} else {
				return nil, fmt.Errorf("%w: single '=' at offset %d (use '==')", types.ErrInvalidExpressionSyntax, i)
			}

		case c == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				toks = append(toks, token{tokNeq, "!=", i, i + 2})
				i += 2
			} else {
				return nil, fmt.Errorf("%w: stray '!' at offset %d", types.ErrInvalidExpressionSyntax, i)
			}

		case c == '>':
			toks = append(toks, token{tokGt, ">", i, i + 1})
			i++
		case c == '<':
			toks = append(toks, token{tokLt, "<", i, i + 1})
			i++
		case c == '?':
			toks = append(toks, token{tokQuestion, "?", i, i + 1})
			i++
		case c == ':':
			toks = append(toks, token{tokColon, ":", i, i + 1})
			i++
		case c == '.':
			toks = append(toks, token{tokDot, ".", i, i + 1})
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i, i + 1})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i, i + 1})
			i++
		case c == '{':
			toks = append(toks, token{tokLBrace, "{", i, i + 1})
			i++
		case c == '}':
			toks = append(toks, token{tokRBrace, "}", i, i + 1})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i, i + 1})
			i++

		default:
			return nil, fmt.Errorf("%w: unexpected character %q at offset %d", types.ErrInvalidExpressionSyntax, c, i)
		}
	}

	toks = append(toks, token{tokEOF, "", len(input), len(input)})
	return toks, nil
}

// isIdentChar reports whether c may appear in an identifier or bare token.
// Hyphens and underscores are legal mid-token; '.' is not, so the member
// access in field.contains(...) lexes as three tokens.
func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-'
}
