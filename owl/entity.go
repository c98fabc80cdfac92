package owl

import "fmt"

// IRI is an absolute internationalized resource identifier.
type IRI string

// String returns the IRI in functional syntax form.
func (i IRI) String() string {
	return "<" + string(i) + ">"
}

func (IRI) annotationValue() {}

// EntityKind identifies what an entity is declared as.
type EntityKind int

// Entity kinds produced by the translator.
const (
	KindClass EntityKind = iota + 1
	KindObjectProperty
	KindAnnotationProperty
	KindNamedIndividual
)

// String returns the functional syntax keyword for the kind.
func (k EntityKind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindObjectProperty:
		return "ObjectProperty"
	case KindAnnotationProperty:
		return "AnnotationProperty"
	case KindNamedIndividual:
		return "NamedIndividual"
	default:
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}
}

// Entity is a named OWL entity.
type Entity struct {
	Kind EntityKind
	IRI  IRI
}

// NewClass returns a class entity.
func NewClass(iri IRI) Entity { return Entity{Kind: KindClass, IRI: iri} }

// NewObjectProperty returns an object property entity.
func NewObjectProperty(iri IRI) Entity { return Entity{Kind: KindObjectProperty, IRI: iri} }

// NewAnnotationProperty returns an annotation property entity.
func NewAnnotationProperty(iri IRI) Entity { return Entity{Kind: KindAnnotationProperty, IRI: iri} }

// NewNamedIndividual returns a named individual entity.
func NewNamedIndividual(iri IRI) Entity { return Entity{Kind: KindNamedIndividual, IRI: iri} }

func (e Entity) String() string {
	return e.Kind.String() + "(" + e.IRI.String() + ")"
}
