// internal/rules/serialize.go
package rules

import (
	"strings"

	"github.com/branchwork/rulecase/internal/types"
)

/*
 * Rule serialization: structured statements back to expression text.
 *
 * Inverse of Extract. Every literal that would be re-embedded into
 * expression text must pass the safe-character whitelist; the first failure
 * aborts the whole serialization with no partial output. Parsing accepts a
 * superset of what serializes.
 *
 * An incomplete if or then group returns "" without an error; callers
 * wanting a hard failure check Complete() before serializing.
 */

// Serialize renders a structured rule as expression text. Returns "" when
// the if or then group is incomplete. Fails with
// types.ErrUnsafeLiteralValue when any literal falls outside the whitelist.
func Serialize(rule types.StructuredRule) (string, error) {
	if !rule.If.Complete() || !rule.Then.Complete() {
		return "", nil
	}

	ifText, err := groupText(rule.If)
	if err != nil {
		return "", err
	}
	thenText, err := groupText(rule.Then)
	if err != nil {
		return "", err
	}

	elseText := "null"
	if rule.Else.Complete() {
		elseText, err = groupText(rule.Else)
		if err != nil {
			return "", err
		}
	}

	return ifText + " ? " + thenText + " : " + elseText, nil
}

// groupText renders one statement group left to right, prefixing each
// statement after the first with its joining connective.
func groupText(g types.StatementGroup) (string, error) {
	var b strings.Builder
	for i, st := range g {
		if i > 0 {
			conn := st.LogicalOperator
			if conn == "" {
				conn = types.LogicalAnd
			}
			b.WriteString(" ")
			b.WriteString(string(conn))
			b.WriteString(" ")
		}

		text, err := statementText(st)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func statementText(st types.Statement) (string, error) {
	switch st.Operator {
	case types.OpContainsSet:
		members := strings.Split(st.Value, ",")
		quoted := make([]string, 0, len(members))
		for _, m := range members {
			if err := ValidateLiteral(m); err != nil {
				return "", err
			}
			quoted = append(quoted, "'"+m+"'")
		}
		return st.Field + ".contains({" + strings.Join(quoted, ",") + "})", nil

	case types.OpContainsSubstring:
		if err := ValidateLiteral(st.Value); err != nil {
			return "", err
		}
		return st.Field + ".contains('" + st.Value + "')", nil

	case types.OpEquals, types.OpNotEquals, types.OpGreaterThan, types.OpLessThan:
		if err := ValidateLiteral(st.Value); err != nil {
			return "", err
		}
		return st.Field + " " + operatorText(st.Operator) + " '" + st.Value + "'", nil

	default:
		// Bare branch value.
		if err := ValidateLiteral(st.Value); err != nil {
			return "", err
		}
		return "'" + st.Value + "'", nil
	}
}

func operatorText(op types.Operator) string {
	switch op {
	case types.OpEquals:
		return "=="
	case types.OpNotEquals:
		return "!="
	case types.OpGreaterThan:
		return ">"
	case types.OpLessThan:
		return "<"
	}
	return ""
}
