package owl

import (
	"sort"
	"strconv"
	"strings"
)

// ClassExpression is a named class or an anonymous class constructor.
type ClassExpression interface {
	String() string
	// IsAnonymous reports whether the expression is not a named class.
	IsAnonymous() bool
}

// Class is a named class.
type Class struct {
	IRI IRI
}

func (c Class) String() string  { return c.IRI.String() }
func (Class) IsAnonymous() bool { return false }

// ObjectIntersectionOf is the conjunction of its operands.
type ObjectIntersectionOf struct {
	Operands []ClassExpression
}

// IntersectionOf returns the intersection of a normalized operand set.
func IntersectionOf(operands ...ClassExpression) ObjectIntersectionOf {
	return ObjectIntersectionOf{Operands: normalizeExpressions(operands)}
}

func (x ObjectIntersectionOf) String() string {
	return naryExpression("ObjectIntersectionOf", x.Operands)
}
func (ObjectIntersectionOf) IsAnonymous() bool { return true }

// ObjectUnionOf is the disjunction of its operands.
type ObjectUnionOf struct {
	Operands []ClassExpression
}

// UnionOf returns the union of a normalized operand set.
func UnionOf(operands ...ClassExpression) ObjectUnionOf {
	return ObjectUnionOf{Operands: normalizeExpressions(operands)}
}

func (x ObjectUnionOf) String() string  { return naryExpression("ObjectUnionOf", x.Operands) }
func (ObjectUnionOf) IsAnonymous() bool { return true }

// ObjectComplementOf is the negation of its operand.
type ObjectComplementOf struct {
	Operand ClassExpression
}

func (x ObjectComplementOf) String() string {
	return "ObjectComplementOf(" + x.Operand.String() + ")"
}
func (ObjectComplementOf) IsAnonymous() bool { return true }

// ObjectSomeValuesFrom is an existential restriction.
type ObjectSomeValuesFrom struct {
	Property IRI
	Filler   ClassExpression
}

func (x ObjectSomeValuesFrom) String() string {
	return "ObjectSomeValuesFrom(" + x.Property.String() + " " + x.Filler.String() + ")"
}
func (ObjectSomeValuesFrom) IsAnonymous() bool { return true }

// ObjectAllValuesFrom is a universal restriction.
type ObjectAllValuesFrom struct {
	Property IRI
	Filler   ClassExpression
}

func (x ObjectAllValuesFrom) String() string {
	return "ObjectAllValuesFrom(" + x.Property.String() + " " + x.Filler.String() + ")"
}
func (ObjectAllValuesFrom) IsAnonymous() bool { return true }

// ObjectHasValue restricts a property to a single individual.
type ObjectHasValue struct {
	Property   IRI
	Individual IRI
}

func (x ObjectHasValue) String() string {
	return "ObjectHasValue(" + x.Property.String() + " " + x.Individual.String() + ")"
}
func (ObjectHasValue) IsAnonymous() bool { return true }

// ObjectExactCardinality is a qualified exact cardinality restriction.
type ObjectExactCardinality struct {
	N        int
	Property IRI
	Filler   ClassExpression
}

func (x ObjectExactCardinality) String() string {
	return cardinality("ObjectExactCardinality", x.N, x.Property, x.Filler)
}
func (ObjectExactCardinality) IsAnonymous() bool { return true }

// ObjectMinCardinality is a qualified minimum cardinality restriction.
type ObjectMinCardinality struct {
	N        int
	Property IRI
	Filler   ClassExpression
}

func (x ObjectMinCardinality) String() string {
	return cardinality("ObjectMinCardinality", x.N, x.Property, x.Filler)
}
func (ObjectMinCardinality) IsAnonymous() bool { return true }

// ObjectMaxCardinality is a qualified maximum cardinality restriction.
type ObjectMaxCardinality struct {
	N        int
	Property IRI
	Filler   ClassExpression
}

func (x ObjectMaxCardinality) String() string {
	return cardinality("ObjectMaxCardinality", x.N, x.Property, x.Filler)
}
func (ObjectMaxCardinality) IsAnonymous() bool { return true }

func cardinality(keyword string, n int, p IRI, filler ClassExpression) string {
	return keyword + "(" + strconv.Itoa(n) + " " + p.String() + " " + filler.String() + ")"
}

func naryExpression(keyword string, operands []ClassExpression) string {
	parts := make([]string, len(operands))
	for i, o := range operands {
		parts[i] = o.String()
	}
	return keyword + "(" + strings.Join(parts, " ") + ")"
}

// normalizeExpressions deduplicates by rendering and sorts.
func normalizeExpressions(xs []ClassExpression) []ClassExpression {
	seen := make(map[string]ClassExpression, len(xs))
	for _, x := range xs {
		if x == nil {
			continue
		}
		seen[x.String()] = x
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]ClassExpression, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}
