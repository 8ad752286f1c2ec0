// internal/rules/sqlgen.go
package rules

import "github.com/branchwork/rulecase/internal/expr"

// ToSQL maps a strictly ternary rule AST to a CASE-WHEN selection fragment
// over the named table. Returns "" unless the top-level node is the
// three-child conditional.
//
// Branch source text is copied verbatim, including grammar token spellings
// such as '==' for equality. Whether the result is executable depends
// entirely on the target dialect accepting those spellings; no translation
// or normalization happens here.
func ToSQL(ast expr.Node, tableName string) string {
	cond, ok := ast.(*expr.Conditional)
	if !ok {
		return ""
	}

	return "SELECT CASE WHEN " + cond.Cond.Source() +
		" THEN " + cond.Then.Source() +
		" ELSE " + cond.Else.Source() +
		" FROM " + tableName
}
