package types

// Attribute is an opaque handle to an entity attribute, produced by a
// PredicateBuilder and consumed only by the same builder's comparison
// methods. The engine never inspects it.
type Attribute any

// Predicate is an opaque composable boolean filter over entity attributes.
// Concrete shape is the builder's choice: the in-memory backend uses a
// matching function, a SQL-bound backend could carry clause text.
type Predicate any

// PredicateBuilder is the entity-attribute accessor collaborator supplied by
// the host application. The rule extractor composes predicates through it
// while walking a parsed condition, one builder call per comparison and one
// And/Or call per connective.
//
// Implementations must be side-effect free; the extractor may call them from
// any number of goroutines concurrently.
type PredicateBuilder interface {
	// Attribute resolves an attribute name to a handle for comparison.
	Attribute(name string) Attribute

	Equal(attr Attribute, literal string) Predicate
	NotEqual(attr Attribute, literal string) Predicate
	GreaterThan(attr Attribute, literal string) Predicate
	LessThan(attr Attribute, literal string) Predicate

	// Like tests substring containment; pattern uses %...% wildcards.
	Like(attr Attribute, pattern string) Predicate

	// In tests set membership against a list of member literals.
	In(attr Attribute, literals []string) Predicate

	// And and Or combine predicates. A nil operand denotes the vacuous
	// never-matching predicate produced for degenerate condition shapes.
	And(a, b Predicate) Predicate
	Or(a, b Predicate) Predicate
}
