// internal/expr/ast.go
package expr

import "github.com/branchwork/rulecase/internal/types"

/*
 * AST node kinds for the rule grammar.
 *
 * Closed sum type: Node is implemented only by the kinds below, and the
 * unexported marker method keeps the set sealed. Walkers switch exhaustively
 * on the concrete types; a new node kind fails to compile anywhere a walker
 * forgot to handle it rather than silently falling through at runtime.
 *
 * Every node records the source text it was parsed from. The SQL fragment
 * generator copies branch source verbatim, so spans are sliced from the
 * original input, not re-rendered from the tree.
 */

// Node is one node of a parsed rule expression.
type Node interface {
	// Source returns the original expression text this node was parsed from.
	Source() string

	node()
}

// Conditional is the top-level two-branch rule: condition ? then : else.
type Conditional struct {
	Cond Node
	Then Node
	Else Node

	src string
}

// Logical joins two condition operands with and/or. Chains are flat and
// left-associative: a and b or c parses as (a and b) or c.
type Logical struct {
	Op    types.LogicalOperator
	Left  Node
	Right Node

	src string
}

// Comparison tests a field against a literal with ==, !=, > or <.
type Comparison struct {
	Op    types.Operator
	Field *FieldRef
	Value *Literal

	src string
}

// ContainsCall is the field.contains(...) form. Exactly one of Scalar
// (substring containment) or List (set membership) is set.
type ContainsCall struct {
	Field  *FieldRef
	Scalar *Literal
	List   *ListLiteral

	src string
}

// FieldRef names an entity attribute.
type FieldRef struct {
	Name string

	src string
}

// Literal is a quoted or bare literal. Text has surrounding quotes stripped;
// Source keeps them.
type Literal struct {
	Text   string
	Quoted bool

	src string
}

// ListLiteral is a brace-delimited literal list: {'a','b'}.
type ListLiteral struct {
	Items []*Literal

	src string
}

func (n *Conditional) Source() string  { return n.src }
func (n *Logical) Source() string      { return n.src }
func (n *Comparison) Source() string   { return n.src }
func (n *ContainsCall) Source() string { return n.src }
func (n *FieldRef) Source() string     { return n.src }
func (n *Literal) Source() string      { return n.src }
func (n *ListLiteral) Source() string  { return n.src }

func (*Conditional) node()  {}
func (*Logical) node()      {}
func (*Comparison) node()   {}
func (*ContainsCall) node() {}
func (*FieldRef) node()     {}
func (*Literal) node()      {}
func (*ListLiteral) node()  {}
