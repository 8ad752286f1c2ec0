// internal/expr/parser_test.go
package expr

import (
	"errors"
	"testing"

	"github.com/branchwork/rulecase/internal/types"
)

func TestParse_SimpleTernary(t *testing.T) {
	ast, err := Parse("status == 'active' ? 'enabled' : 'disabled'")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	cond, ok := ast.(*Conditional)
	if !ok {
		t.Fatalf("top-level node = %T, want *Conditional", ast)
	}

	cmp, ok := cond.Cond.(*Comparison)
	if !ok {
		t.Fatalf("condition = %T, want *Comparison", cond.Cond)
	}
	if cmp.Op != types.OpEquals {
		t.Errorf("Op = %v, want OpEquals", cmp.Op)
	}
	if cmp.Field.Name != "status" {
		t.Errorf("Field.Name = %q, want %q", cmp.Field.Name, "status")
	}
	if cmp.Value.Text != "active" || !cmp.Value.Quoted {
		t.Errorf("Value = %+v, want quoted 'active'", cmp.Value)
	}

	then, ok := cond.Then.(*Literal)
	if !ok || then.Text != "enabled" {
		t.Errorf("Then = %#v, want literal 'enabled'", cond.Then)
	}
	els, ok := cond.Else.(*Literal)
	if !ok || els.Text != "disabled" {
		t.Errorf("Else = %#v, want literal 'disabled'", cond.Else)
	}
}

func TestParse_ComparisonOperators(t *testing.T) {
	tests := []struct {
		input string
		op    types.Operator
	}{
		{"age == '18' ? 'x' : 'y'", types.OpEquals},
		{"age != '18' ? 'x' : 'y'", types.OpNotEquals},
		{"age > 18 ? 'x' : 'y'", types.OpGreaterThan},
		{"age < 18 ? 'x' : 'y'", types.OpLessThan},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ast, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v, want nil", err)
			}
			cmp := ast.(*Conditional).Cond.(*Comparison)
			if cmp.Op != tt.op {
				t.Errorf("Op = %v, want %v", cmp.Op, tt.op)
			}
		})
	}
}

func TestParse_LogicalChainLeftAssociative(t *testing.T) {
	ast, err := Parse("a == '1' and b == '2' or c == '3' ? 'x' : 'y'")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	// (a and b) or c
	outer, ok := ast.(*Conditional).Cond.(*Logical)
	if !ok {
		t.Fatalf("condition = %T, want *Logical", ast.(*Conditional).Cond)
	}
	if outer.Op != types.LogicalOr {
		t.Errorf("outer Op = %v, want or", outer.Op)
	}

	inner, ok := outer.Left.(*Logical)
	if !ok {
		t.Fatalf("outer.Left = %T, want *Logical", outer.Left)
	}
	if inner.Op != types.LogicalAnd {
		t.Errorf("inner Op = %v, want and", inner.Op)
	}

	right, ok := outer.Right.(*Comparison)
	if !ok || right.Field.Name != "c" {
		t.Errorf("outer.Right = %#v, want comparison on c", outer.Right)
	}
}

func TestParse_ContainsScalar(t *testing.T) {
	ast, err := Parse("name.contains('smith') ? 'match' : 'none'")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	call, ok := ast.(*Conditional).Cond.(*ContainsCall)
	if !ok {
		t.Fatalf("condition = %T, want *ContainsCall", ast.(*Conditional).Cond)
	}
	if call.Field.Name != "name" {
		t.Errorf("Field.Name = %q, want %q", call.Field.Name, "name")
	}
	if call.Scalar == nil || call.Scalar.Text != "smith" {
		t.Errorf("Scalar = %+v, want 'smith'", call.Scalar)
	}
	if call.List != nil {
		t.Errorf("List = %+v, want nil", call.List)
	}
}

func TestParse_ContainsList(t *testing.T) {
	ast, err := Parse("role.contains({'admin','owner'}) ? 'privileged' : 'standard'")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	call := ast.(*Conditional).Cond.(*ContainsCall)
	if call.List == nil {
		t.Fatal("List = nil, want two items")
	}
	if len(call.List.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(call.List.Items))
	}
	if call.List.Items[0].Text != "admin" || call.List.Items[1].Text != "owner" {
		t.Errorf("Items = %q, %q, want admin, owner", call.List.Items[0].Text, call.List.Items[1].Text)
	}
}

func TestParse_BareLiterals(t *testing.T) {
	ast, err := Parse("age > 18 ? eligible : null")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	cond := ast.(*Conditional)
	cmp := cond.Cond.(*Comparison)
	if cmp.Value.Text != "18" || cmp.Value.Quoted {
		t.Errorf("Value = %+v, want bare 18", cmp.Value)
	}
	if cond.Else.(*Literal).Text != "null" {
		t.Errorf("Else = %+v, want bare null", cond.Else)
	}
}

func TestParse_SourceSpans(t *testing.T) {
	input := "status == 'active' and  level > 3 ? 'on' : 'off'"
	ast, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	cond := ast.(*Conditional)
	// Spans slice the input verbatim, double space included
	if got, want := cond.Cond.Source(), "status == 'active' and  level > 3"; got != want {
		t.Errorf("Cond.Source() = %q, want %q", got, want)
	}
	if got, want := cond.Then.Source(), "'on'"; got != want {
		t.Errorf("Then.Source() = %q, want %q", got, want)
	}
	if got, want := cond.Else.Source(), "'off'"; got != want {
		t.Errorf("Else.Source() = %q, want %q", got, want)
	}
	if got := cond.Source(); got != input {
		t.Errorf("Source() = %q, want full input", got)
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no ternary", "status == 'active'"},
		{"missing colon", "status == 'active' ? 'on'"},
		{"missing then", "status == 'active' ? : 'off'"},
		{"nested ternary", "a == '1' ? b == '2' ? 'x' : 'y' : 'z'"},
		{"trailing input", "a == '1' ? 'x' : 'y' garbage"},
		{"single equals", "a = '1' ? 'x' : 'y'"},
		{"stray bang", "a ! '1' ? 'x' : 'y'"},
		{"unterminated string", "a == 'oops ? 'x' : 'y'"},
		{"unknown call", "a.startsWith('x') ? 'y' : 'z'"},
		{"empty list", "a.contains({}) ? 'x' : 'y'"},
		{"unclosed list", "a.contains({'x') ? 'y' : 'z'"},
		{"unclosed call", "a.contains('x' ? 'y' : 'z'"},
		{"unsafe char", "a == 'x'; DROP TABLE users ? 'y' : 'z'"},
		{"missing operand", "a == ? 'x' : 'y'"},
		{"dangling connective", "a == '1' and ? 'x' : 'y'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) error = nil, want syntax error", tt.input)
			}
			if !errors.Is(err, types.ErrInvalidExpressionSyntax) {
				t.Errorf("error = %v, want ErrInvalidExpressionSyntax", err)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"status == 'active' ? 'enabled' : 'disabled'", true},
		{"age > 18 and country == 'US' ? 'eligible' : 'ineligible'", true},
		{"role.contains({'admin','owner'}) ? 'privileged' : 'standard'", true},
		// Literal safety is not a syntax concern: parsing accepts a
		// superset of what the serializer allows back out.
		{"a == 'not%safe!' ? 'x' : 'y'", true},
		{"status == 'active'", false},
		{"", false},
		{"?? : :", false},
	}

	for _, tt := range tests {
		if got := IsValid(tt.input); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
