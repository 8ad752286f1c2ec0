package types

import "errors"

// Sentinel errors for rulecase operations.
var (
	// ErrInvalidExpressionSyntax indicates text that does not match the
	// rule grammar. Raised by the parser, wrapped with position detail.
	ErrInvalidExpressionSyntax = errors.New("expression does not match rule grammar")

	// ErrUnsafeLiteralValue indicates a literal containing characters
	// outside the safe whitelist. Aborts serialization with no output.
	ErrUnsafeLiteralValue = errors.New("literal contains unsafe characters")

	// ErrEmptyExpression indicates an empty or blank expression where a
	// rule was required.
	ErrEmptyExpression = errors.New("expression is empty")

	// ErrExpressionTooLong indicates expression text exceeds MaxExpressionLength.
	ErrExpressionTooLong = errors.New("expression exceeds maximum length")

	// ErrTooManyConditionTerms indicates a condition chain exceeds MaxConditionTerms.
	ErrTooManyConditionTerms = errors.New("condition has too many terms")

	// ErrTooManySetMembers indicates a contains({...}) list exceeds MaxSetMembers.
	ErrTooManySetMembers = errors.New("set literal has too many members")

	// ErrRuleNameTooLong indicates a stored rule name exceeds MaxRuleNameLength.
	ErrRuleNameTooLong = errors.New("rule name too long")

	// ErrRuleNotFound indicates a rule ID with no stored rule.
	ErrRuleNotFound = errors.New("rule not found")
)
