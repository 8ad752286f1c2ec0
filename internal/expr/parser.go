// Package expr parses the textual two-branch rule language into an AST.
//
// Grammar (informal EBNF):
//
//	rule        := condition "?" branch ":" branch
//	condition   := comparison ( ("and" | "or") comparison )*
//	comparison  := FIELD ("==" | "!=" | ">" | "<") literal
//	             | FIELD "." "contains" "(" literal ")"
//	             | FIELD "." "contains" "(" list ")"
//	branch      := literal
//	literal     := "'" chars "'" | BARE_TOKEN
//	list        := "{" literal ( "," literal )* "}"
//
// Exactly one top-level ternary; no nesting, no grouping, no arithmetic.
// Connective chains are flat and left-associative. Parsing is a pure
// function of the input text and is safe for unlimited concurrent use.
package expr

import (
	"fmt"

	"github.com/branchwork/rulecase/internal/types"
)

// Parse parses rule expression text into an AST. On success the returned
// node is a *Conditional. Any text not matching the grammar fails with an
// error wrapping types.ErrInvalidExpressionSyntax.
func Parse(input string) (Node, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	p := &parser{input: input, toks: toks}
	rule, err := p.parseRule()
	if err != nil {
		return nil, err
	}

	if p.cur().kind != tokEOF {
		return nil, p.errorf("unexpected trailing input %q", p.cur().text)
	}
	return rule, nil
}

// IsValid reports whether text parses as a rule expression. It performs no
// semantic or whitelist check and never returns an error: any parser
// failure converts to false.
func IsValid(input string) bool {
	_, err := Parse(input)
	return err == nil
}

type parser struct {
	input string
	toks  []token
	pos   int
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) prev() token { return p.toks[p.pos-1] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.cur().kind != kind {
		return token{}, p.errorf("expected %s, found %q", what, p.cur().text)
	}
	return p.advance(), nil
}

func (p *parser) errorf(format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at offset %d", types.ErrInvalidExpressionSyntax, detail, p.cur().start)
}

// src slices the original input; node sources are verbatim copies, never
// re-rendered, because the SQL fragment generator passes them through.
func (p *parser) src(start, end int) string {
	return p.input[start:end]
}

func (p *parser) parseRule() (Node, error) {
	start := p.cur().start

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokQuestion, "'?'"); err != nil {
		return nil, err
	}
	then, err := p.parseBranch()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, "':'"); err != nil {
		return nil, err
	}
	els, err := p.parseBranch()
	if err != nil {
		return nil, err
	}

	return &Conditional{
		Cond: cond,
		Then: then,
		Else: els,
		src:  p.src(start, p.prev().end),
	}, nil
}

// parseCondition parses a flat left-associative and/or chain.
func (p *parser) parseCondition() (Node, error) {
	start := p.cur().start

	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.cur().kind == tokIdent && (p.cur().text == "and" || p.cur().text == "or") {
		opTok := p.advance()
		op := types.LogicalAnd
		if opTok.text == "or" {
			op = types.LogicalOr
		}

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		left = &Logical{
			Op:    op,
			Left:  left,
			Right: right,
			src:   p.src(start, p.prev().end),
		}
	}

	return left, nil
}

// parseComparison parses one comparison term: either a field/operator/literal
// triple or a field-targeted contains(...) call.
func (p *parser) parseComparison() (Node, error) {
	start := p.cur().start

	fieldTok, err := p.expect(tokIdent, "field name")
	if err != nil {
		return nil, err
	}
	field := &FieldRef{Name: fieldTok.text, src: fieldTok.text}

	if p.cur().kind == tokDot {
		p.advance()
		callTok, err := p.expect(tokIdent, "'contains'")
		if err != nil {
			return nil, err
		}
		if callTok.text != "contains" {
			return nil, p.errorf("unknown call %q (only 'contains' is supported)", callTok.text)
		}
		if _, err := p.expect(tokLParen, "'('"); err != nil {
			return nil, err
		}

		call := &ContainsCall{Field: field}
		if p.cur().kind == tokLBrace {
			call.List, err = p.parseList()
		} else {
			call.Scalar, err = p.parseLiteral()
		}
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		call.src = p.src(start, p.prev().end)
		return call, nil
	}

	var op types.Operator
	switch p.cur().kind {
	case tokEq:
		op = types.OpEquals
	case tokNeq:
		op = types.OpNotEquals
	case tokGt:
		op = types.OpGreaterThan
	case tokLt:
		op = types.OpLessThan
	default:
		return nil, p.errorf("expected comparison operator, found %q", p.cur().text)
	}
	p.advance()

	value, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Op:    op,
		Field: field,
		Value: value,
		src:   p.src(start, p.prev().end),
	}, nil
}

// parseBranch parses a then/else branch, which is a single literal.
func (p *parser) parseBranch() (Node, error) {
	return p.parseLiteral()
}

func (p *parser) parseLiteral() (*Literal, error) {
	switch p.cur().kind {
	case tokString:
		t := p.advance()
		return &Literal{
			Text:   t.text[1 : len(t.text)-1],
			Quoted: true,
			src:    t.text,
		}, nil
	case tokIdent:
		t := p.advance()
		return &Literal{Text: t.text, src: t.text}, nil
	default:
		return nil, p.errorf("expected literal, found %q", p.cur().text)
	}
}

func (p *parser) parseList() (*ListLiteral, error) {
	openTok, err := p.expect(tokLBrace, "'{'")
	if err != nil {
		return nil, err
	}

	list := &ListLiteral{}
	for {
		item, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)

		if p.cur().kind != tokComma {
			break
		}
		p.advance()
	}

	if _, err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	list.src = p.src(openTok.start, p.prev().end)
	return list, nil
}
