// internal/rules/extract.go
package rules

import (
	"sort"
	"strings"

	"github.com/branchwork/rulecase/internal/expr"
	"github.com/branchwork/rulecase/internal/types"
)

/*
 * Rule extraction.
 *
 * Walks a parsed rule AST once, producing the structured statement groups
 * and, when a predicate builder is supplied, a composed predicate over
 * entity attributes. Both outputs come from the same recursive pass so they
 * can never disagree about shape.
 *
 * Index bookkeeping: the walk threads a copy-on-write statement accumulator
 * and the next free statement index through every call. A connective writes
 * its tag onto the following index before the right operand fills in that
 * statement's field/operator/value, which is how "logicalOperator joins a
 * statement to its predecessor" ends up on the right statement. Sibling
 * calls never share a mutable map, so extraction is safe for unlimited
 * concurrent invocation.
 *
 * Degenerate shapes (a node kind with no handled leaf beneath it) are not
 * errors: they contribute no statements and a nil predicate, the vacuous
 * disjunction-of-nothing that builders must treat as never-matching.
 */

// Extract produces the structured rule for a parsed AST and, when builder
// is non-nil, the predicate for the condition branch. The predicate is nil
// when builder is nil or the condition shape is degenerate.
func Extract(ast expr.Node, builder types.PredicateBuilder) (types.StructuredRule, types.Predicate) {
	cond, ok := ast.(*expr.Conditional)
	if !ok {
		// No top-level ternary: treat the whole tree as a condition.
		acc, _, pred := walk(ast, 0, nil, builder)
		return types.StructuredRule{If: acc.group()}, pred
	}

	ifAcc, _, pred := walk(cond.Cond, 0, nil, builder)
	thenAcc, _, _ := walk(cond.Then, 0, nil, nil)
	elseAcc, _, _ := walk(cond.Else, 0, nil, nil)

	rule := types.StructuredRule{
		If:   ifAcc.group(),
		Then: thenAcc.group(),
		Else: elseAcc.group(),
	}
	return rule, pred
}

// accumulator is an immutable ordered statement map keyed by ordinal index.
// with returns a new map; the receiver is never mutated, so recursive
// branches can hold references without aliasing hazards.
type accumulator map[int]types.Statement

func (a accumulator) with(idx int, update func(*types.Statement)) accumulator {
	next := make(accumulator, len(a)+1)
	for k, v := range a {
		next[k] = v
	}
	s := next[idx]
	update(&s)
	next[idx] = s
	return next
}

// group flattens the accumulator into source order.
func (a accumulator) group() types.StatementGroup {
	if len(a) == 0 {
		return nil
	}
	keys := make([]int, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	g := make(types.StatementGroup, 0, len(keys))
	for _, k := range keys {
		g = append(g, a[k])
	}
	return g
}

// walk visits one node, returning the updated accumulator, the next free
// statement index, and the subtree's predicate (nil when no builder or no
// handled leaf).
func walk(n expr.Node, idx int, acc accumulator, b types.PredicateBuilder) (accumulator, int, types.Predicate) {
	switch v := n.(type) {
	case *expr.Logical:
		accLeft, next, predLeft := walk(v.Left, idx, acc, b)
		accConn := accLeft.with(next, func(s *types.Statement) {
			s.LogicalOperator = v.Op
		})
		accRight, after, predRight := walk(v.Right, next, accConn, b)

		var pred types.Predicate
		if b != nil {
			if v.Op == types.LogicalOr {
				pred = b.Or(predLeft, predRight)
			} else {
				pred = b.And(predLeft, predRight)
			}
		}
		return accRight, after, pred

	case *expr.Comparison:
		next := acc.with(idx, func(s *types.Statement) {
			s.Field = v.Field.Name
			s.Operator = v.Op
			s.Value = v.Value.Text
		})

		var pred types.Predicate
		if b != nil {
			attr := b.Attribute(v.Field.Name)
			switch v.Op {
			case types.OpEquals:
				pred = b.Equal(attr, v.Value.Text)
			case types.OpNotEquals:
				pred = b.NotEqual(attr, v.Value.Text)
			case types.OpGreaterThan:
				pred = b.GreaterThan(attr, v.Value.Text)
			case types.OpLessThan:
				pred = b.LessThan(attr, v.Value.Text)
			}
		}
		return next, idx + 1, pred

	case *expr.ContainsCall:
		if v.List != nil {
			members := make([]string, 0, len(v.List.Items))
			for _, item := range v.List.Items {
				members = append(members, strings.TrimSpace(item.Text))
			}
			next := acc.with(idx, func(s *types.Statement) {
				s.Field = v.Field.Name
				s.Operator = types.OpContainsSet
				s.Value = strings.Join(members, ",")
			})

			var pred types.Predicate
			if b != nil {
				pred = b.In(b.Attribute(v.Field.Name), members)
			}
			return next, idx + 1, pred
		}

		next := acc.with(idx, func(s *types.Statement) {
			s.Field = v.Field.Name
			s.Operator = types.OpContainsSubstring
			s.Value = v.Scalar.Text
		})

		var pred types.Predicate
		if b != nil {
			pred = b.Like(b.Attribute(v.Field.Name), "%"+v.Scalar.Text+"%")
		}
		return next, idx + 1, pred

	case *expr.Literal:
		// Bare branch value: a statement with no field or operator.
		next := acc.with(idx, func(s *types.Statement) {
			s.Value = v.Text
		})
		return next, idx + 1, nil

	case *expr.Conditional, *expr.FieldRef, *expr.ListLiteral:
		// Nested conditionals are outside the grammar; field refs and list
		// literals only occur inside handled leaves. No statements, vacuous
		// predicate.
		return acc, idx, nil

	default:
		return acc, idx, nil
	}
}
