// internal/query/memory.go
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/branchwork/rulecase/internal/types"
)

/*
 * In-memory predicate backend.
 *
 * Builder implements types.PredicateBuilder with predicates that are plain
 * matching functions over attribute-map entities. Comparison semantics are
 * type-aware: when both sides are numeric the comparison is numeric
 * (float64/int/int64 mixing for JSON compatibility), otherwise both sides
 * are compared as strings.
 *
 * Predicates are plain functions composed with closures. Nil predicates
 * denote the vacuous never-matching case the extractor emits
 * for degenerate condition shapes; And/Or/Matches all treat nil as false.
 */

// Entity is an attribute-name to value map, the in-memory stand-in for an
// object-relational entity row.
type Entity map[string]any

// Predicate matches an entity. The concrete type behind types.Predicate for
// this backend.
type Predicate func(Entity) bool

// Builder builds composable in-memory predicates. Stateless; one Builder
// may serve any number of concurrent extractions.
type Builder struct{}

var _ types.PredicateBuilder = Builder{}

// Attribute resolves an attribute name; the handle is just the name.
func (Builder) Attribute(name string) types.Attribute {
	return name
}

func (Builder) Equal(attr types.Attribute, literal string) types.Predicate {
	return attrPredicate(attr, func(v any) bool {
		return equalValue(v, literal)
	})
}

func (Builder) NotEqual(attr types.Attribute, literal string) types.Predicate {
	return attrPredicate(attr, func(v any) bool {
		return !equalValue(v, literal)
	})
}

func (Builder) GreaterThan(attr types.Attribute, literal string) types.Predicate {
	return attrPredicate(attr, func(v any) bool {
		return orderValue(v, literal) > 0
	})
}

func (Builder) LessThan(attr types.Attribute, literal string) types.Predicate {
	return attrPredicate(attr, func(v any) bool {
		return orderValue(v, literal) < 0
	})
}

// Like matches %-wildcard patterns: %x% contains, x% prefix, %x suffix.
// The extractor always passes %value%.
func (Builder) Like(attr types.Attribute, pattern string) types.Predicate {
	return attrPredicate(attr, func(v any) bool {
		return likeMatch(stringify(v), pattern)
	})
}

func (Builder) In(attr types.Attribute, literals []string) types.Predicate {
	members := make([]string, len(literals))
	copy(members, literals)
	return attrPredicate(attr, func(v any) bool {
		for _, m := range members {
			if equalValue(v, m) {
				return true
			}
		}
		return false
	})
}

func (Builder) And(a, b types.Predicate) types.Predicate {
	pa, pb := asPredicate(a), asPredicate(b)
	return Predicate(func(e Entity) bool {
		return pa != nil && pb != nil && pa(e) && pb(e)
	})
}

func (Builder) Or(a, b types.Predicate) types.Predicate {
	pa, pb := asPredicate(a), asPredicate(b)
	return Predicate(func(e Entity) bool {
		return pa != nil && pa(e) || pb != nil && pb(e)
	})
}

// Matches applies a predicate produced by this backend to an entity.
// A nil predicate never matches (vacuous disjunction).
func Matches(p types.Predicate, e Entity) bool {
	pred := asPredicate(p)
	return pred != nil && pred(e)
}

// attrPredicate looks the attribute up and applies test to its value.
// Missing attributes never match.
func attrPredicate(attr types.Attribute, test func(any) bool) types.Predicate {
	name, _ := attr.(string)
	return Predicate(func(e Entity) bool {
		v, ok := e[name]
		if !ok {
			return false
		}
		return test(v)
	})
}

func asPredicate(p types.Predicate) Predicate {
	pred, _ := p.(Predicate)
	return pred
}

// equalValue compares an entity value against a literal string, numerically
// when both sides parse as numbers.
func equalValue(v any, literal string) bool {
	if nv, nl, ok := asNumbers(v, literal); ok {
		return nv == nl
	}
	return stringify(v) == literal
}

// orderValue performs three-way comparison (-1/0/1). Numeric when both
// sides are numeric, lexicographic otherwise.
func orderValue(v any, literal string) int {
	if nv, nl, ok := asNumbers(v, literal); ok {
		switch {
		case nv < nl:
			return -1
		case nv > nl:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(stringify(v), literal)
}

// asNumbers attempts to treat both the entity value and the literal as
// numbers. Handles float64, int, int64 from JSON unmarshaling plus numeric
// literal text.
func asNumbers(v any, literal string) (float64, float64, bool) {
	nv, okv := toFloat64(v)
	nl, err := strconv.ParseFloat(strings.TrimSpace(literal), 64)
	return nv, nl, okv && err == nil
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// likeMatch interprets % as an anchor wildcard: %x% contains, x% prefix,
// %x suffix, bare x exact.
func likeMatch(value, pattern string) bool {
	hasPrefix := strings.HasPrefix(pattern, "%")
	hasSuffix := strings.HasSuffix(pattern, "%")
	core := strings.TrimSuffix(strings.TrimPrefix(pattern, "%"), "%")

	switch {
	case hasPrefix && hasSuffix:
		return strings.Contains(value, core)
	case hasSuffix:
		return strings.HasPrefix(value, core)
	case hasPrefix:
		return strings.HasSuffix(value, core)
	default:
		return value == pattern
	}
}
