// Package types provides domain models shared across rulecase components.
//
// Zero-dependency design: types.go, errors.go, and query.go use only the
// standard library so the expression engine can be embedded without pulling
// in the storage stack. ID utilities in ids.go import uuid but are isolated
// for selective inclusion.
package types

// Operator identifies the comparison a statement performs against its value.
// String-typed so a StructuredRule marshals to a readable JSON record; the
// host application persists rules as generic key-ordered records, not a
// dedicated wire format.
type Operator string

const (
	OpEquals            Operator = "equals"
	OpNotEquals         Operator = "notEquals"
	OpGreaterThan       Operator = "greaterThan"
	OpLessThan          Operator = "lessThan"
	OpContainsSubstring Operator = "containsSubstring"
	OpContainsSet       Operator = "containsSet"
)

// LogicalOperator joins a statement to the statement before it in the same
// group. Set on the statement that follows the connective.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "and"
	LogicalOr  LogicalOperator = "or"
)

// Statement is one atomic entry in a statement group: a comparison, a
// containment test, or a bare literal branch value.
//
// Value holds the literal text with quotes stripped. For OpContainsSet it is
// the trimmed, comma-joined member list; the serializer re-splits on commas,
// so a member literal containing a comma is ambiguous on round trip (the
// whitelist permits commas; known limitation, not resolved here).
type Statement struct {
	Field           string          `json:"field,omitempty"`
	Operator        Operator        `json:"operator,omitempty"`
	Value           string          `json:"value,omitempty"`
	LogicalOperator LogicalOperator `json:"logicalOperator,omitempty"`
}

// StatementGroup is an ordered list of statements. Slice position is the
// ordinal statement index and encodes left-to-right source order.
type StatementGroup []Statement

// Complete reports whether the group can be serialized: the first statement
// must carry an operator, or a value for bare literal branches. An
// incomplete if or then group makes the whole rule unserializable.
func (g StatementGroup) Complete() bool {
	if len(g) == 0 {
		return false
	}
	return g[0].Operator != "" || g[0].Value != ""
}

// StructuredRule is the parsed, typed representation of a two-branch
// conditional rule. Else is optional; an incomplete else group serializes as
// the literal null branch.
type StructuredRule struct {
	If   StatementGroup `json:"if"`
	Then StatementGroup `json:"then"`
	Else StatementGroup `json:"else,omitempty"`
}

// Resource limits enforced at the store boundary. Parsing itself accepts any
// well-formed expression; limits apply when a rule enters the system, in the
// same place the host validates everything else about a stored rule.
const (
	// MaxExpressionLength bounds stored expression text. Rules are
	// application-authored and expected shallow; 4KB is generous.
	MaxExpressionLength = 4096

	// MaxConditionTerms bounds the number of comparisons in a stored
	// condition chain. Keeps predicate composition and CASE-WHEN text small.
	MaxConditionTerms = 32

	// MaxSetMembers bounds contains({...}) member lists in stored rules to
	// prevent quadratic membership cost.
	MaxSetMembers = 64

	// MaxRuleNameLength bounds stored rule names.
	MaxRuleNameLength = 128
)
