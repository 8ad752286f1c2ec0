// internal/rules/sqlgen_test.go
package rules

import (
	"testing"

	"github.com/branchwork/rulecase/internal/expr"
)

func TestToSQL_SimpleRule(t *testing.T) {
	ast := mustParse(t, "status == 'active' ? 'on' : 'off'")

	got := ToSQL(ast, "users")
	want := "SELECT CASE WHEN status == 'active' THEN 'on' ELSE 'off' FROM users"
	if got != want {
		t.Errorf("ToSQL() = %q, want %q", got, want)
	}
}

func TestToSQL_VerbatimBranchText(t *testing.T) {
	// Branch text passes through untranslated: '==' and the contains call
	// keep their grammar spellings whether or not a dialect accepts them.
	ast := mustParse(t, "role.contains({'admin','owner'}) and level > 3 ? 'allow' : 'deny'")

	got := ToSQL(ast, "accounts")
	want := "SELECT CASE WHEN role.contains({'admin','owner'}) and level > 3 THEN 'allow' ELSE 'deny' FROM accounts"
	if got != want {
		t.Errorf("ToSQL() = %q, want %q", got, want)
	}
}

func TestToSQL_NonTernaryTopLevel(t *testing.T) {
	// Anything but the three-child conditional yields no fragment.
	node := &expr.Comparison{Field: &expr.FieldRef{Name: "a"}, Value: &expr.Literal{Text: "1"}}

	if got := ToSQL(node, "users"); got != "" {
		t.Errorf("ToSQL() = %q, want empty string", got)
	}
}

func TestToSQL_PreservesSourceSpacing(t *testing.T) {
	ast := mustParse(t, "a == '1'  and  b != '2' ? 'x' : 'y'")

	got := ToSQL(ast, "t")
	want := "SELECT CASE WHEN a == '1'  and  b != '2' THEN 'x' ELSE 'y' FROM t"
	if got != want {
		t.Errorf("ToSQL() = %q, want %q", got, want)
	}
}
