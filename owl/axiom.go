package owl

import (
	"fmt"
	"sort"
	"strings"
)

// AxiomKind enumerates the axiom types the translator produces.
type AxiomKind int

// Axiom kinds. AnyKind selects every kind in Sink.Axioms.
const (
	AnyKind AxiomKind = iota
	KindDeclaration
	KindSubClassOf
	KindEquivalentClasses
	KindDisjointClasses
	KindSubObjectPropertyOf
	KindDisjointObjectProperties
	KindEquivalentObjectProperties
	KindInverseObjectProperties
	KindObjectPropertyDomain
	KindObjectPropertyRange
	KindSubPropertyChainOf
	KindTransitiveObjectProperty
	KindReflexiveObjectProperty
	KindSymmetricObjectProperty
	KindAsymmetricObjectProperty
	KindFunctionalObjectProperty
	KindInverseFunctionalObjectProperty
	KindAnnotationAssertion
	KindSubAnnotationPropertyOf
)

var axiomKeywords = map[AxiomKind]string{
	KindDeclaration:                     "Declaration",
	KindSubClassOf:                      "SubClassOf",
	KindEquivalentClasses:               "EquivalentClasses",
	KindDisjointClasses:                 "DisjointClasses",
	KindSubObjectPropertyOf:             "SubObjectPropertyOf",
	KindDisjointObjectProperties:        "DisjointObjectProperties",
	KindEquivalentObjectProperties:      "EquivalentObjectProperties",
	KindInverseObjectProperties:         "InverseObjectProperties",
	KindObjectPropertyDomain:            "ObjectPropertyDomain",
	KindObjectPropertyRange:             "ObjectPropertyRange",
	KindSubPropertyChainOf:              "SubObjectPropertyOf",
	KindTransitiveObjectProperty:        "TransitiveObjectProperty",
	KindReflexiveObjectProperty:         "ReflexiveObjectProperty",
	KindSymmetricObjectProperty:         "SymmetricObjectProperty",
	KindAsymmetricObjectProperty:        "AsymmetricObjectProperty",
	KindFunctionalObjectProperty:        "FunctionalObjectProperty",
	KindInverseFunctionalObjectProperty: "InverseFunctionalObjectProperty",
	KindAnnotationAssertion:             "AnnotationAssertion",
	KindSubAnnotationPropertyOf:         "SubAnnotationPropertyOf",
}

// String returns the functional syntax keyword for the kind.
func (k AxiomKind) String() string {
	if k == KindSubPropertyChainOf {
		return "SubPropertyChainOf"
	}
	if s, ok := axiomKeywords[k]; ok {
		return s
	}
	if k == AnyKind {
		return "Any"
	}
	return fmt.Sprintf("AxiomKind(%d)", int(k))
}

// Axiom is a logical or annotation statement. String renders the axiom in
// functional syntax and serves as its identity.
type Axiom interface {
	Kind() AxiomKind
	Annotations() []Annotation
	String() string
}

// Annotated carries the axiom annotations shared by all axiom types.
type Annotated struct {
	Anns []Annotation
}

// Annotations returns the axiom annotations.
func (a Annotated) Annotations() []Annotation { return a.Anns }

func annotated(anns []Annotation) Annotated {
	return Annotated{Anns: NormalizeAnnotations(anns)}
}

func render(keyword string, anns []Annotation, args ...string) string {
	var sb strings.Builder
	sb.WriteString(keyword)
	sb.WriteString("(")
	first := true
	write := func(s string) {
		if !first {
			sb.WriteString(" ")
		}
		first = false
		sb.WriteString(s)
	}
	for _, a := range anns {
		write(a.String())
	}
	for _, arg := range args {
		write(arg)
	}
	sb.WriteString(")")
	return sb.String()
}

func renderIRIs(iris []IRI) []string {
	out := make([]string, len(iris))
	for i, iri := range iris {
		out[i] = iri.String()
	}
	return out
}

func renderExpressions(xs []ClassExpression) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = x.String()
	}
	return out
}

// Declaration declares an entity.
type Declaration struct {
	Annotated
	Entity Entity
}

// NewDeclaration returns a declaration axiom.
func NewDeclaration(e Entity, anns ...Annotation) *Declaration {
	return &Declaration{Annotated: annotated(anns), Entity: e}
}

func (*Declaration) Kind() AxiomKind { return KindDeclaration }
func (a *Declaration) String() string {
	return render("Declaration", a.Anns, a.Entity.String())
}

// SubClassOf states that Sub is a subclass of Super.
type SubClassOf struct {
	Annotated
	Sub   ClassExpression
	Super ClassExpression
}

// NewSubClassOf returns a subclass axiom.
func NewSubClassOf(sub, super ClassExpression, anns ...Annotation) *SubClassOf {
	return &SubClassOf{Annotated: annotated(anns), Sub: sub, Super: super}
}

func (*SubClassOf) Kind() AxiomKind { return KindSubClassOf }
func (a *SubClassOf) String() string {
	return render("SubClassOf", a.Anns, a.Sub.String(), a.Super.String())
}

// EquivalentClasses states that all operands are equivalent.
type EquivalentClasses struct {
	Annotated
	Classes []ClassExpression
}

// NewEquivalentClasses returns an equivalence axiom over a normalized set.
func NewEquivalentClasses(classes []ClassExpression, anns ...Annotation) *EquivalentClasses {
	return &EquivalentClasses{Annotated: annotated(anns), Classes: normalizeExpressions(classes)}
}

func (*EquivalentClasses) Kind() AxiomKind { return KindEquivalentClasses }
func (a *EquivalentClasses) String() string {
	return render("EquivalentClasses", a.Anns, renderExpressions(a.Classes)...)
}

// DisjointClasses states that the operands share no instances.
type DisjointClasses struct {
	Annotated
	Classes []ClassExpression
}

// NewDisjointClasses returns a disjointness axiom over a normalized set.
func NewDisjointClasses(classes []ClassExpression, anns ...Annotation) *DisjointClasses {
	return &DisjointClasses{Annotated: annotated(anns), Classes: normalizeExpressions(classes)}
}

func (*DisjointClasses) Kind() AxiomKind { return KindDisjointClasses }
func (a *DisjointClasses) String() string {
	return render("DisjointClasses", a.Anns, renderExpressions(a.Classes)...)
}

// SubObjectPropertyOf states that Sub is a subproperty of Super.
type SubObjectPropertyOf struct {
	Annotated
	Sub   IRI
	Super IRI
}

// NewSubObjectPropertyOf returns a subproperty axiom.
func NewSubObjectPropertyOf(sub, super IRI, anns ...Annotation) *SubObjectPropertyOf {
	return &SubObjectPropertyOf{Annotated: annotated(anns), Sub: sub, Super: super}
}

func (*SubObjectPropertyOf) Kind() AxiomKind { return KindSubObjectPropertyOf }
func (a *SubObjectPropertyOf) String() string {
	return render("SubObjectPropertyOf", a.Anns, a.Sub.String(), a.Super.String())
}

// DisjointObjectProperties states that the properties never relate the same pair.
type DisjointObjectProperties struct {
	Annotated
	Properties []IRI
}

// NewDisjointObjectProperties returns a property disjointness axiom.
func NewDisjointObjectProperties(props []IRI, anns ...Annotation) *DisjointObjectProperties {
	return &DisjointObjectProperties{Annotated: annotated(anns), Properties: normalizeIRIs(props)}
}

func (*DisjointObjectProperties) Kind() AxiomKind { return KindDisjointObjectProperties }
func (a *DisjointObjectProperties) String() string {
	return render("DisjointObjectProperties", a.Anns, renderIRIs(a.Properties)...)
}

// EquivalentObjectProperties states that the properties are equivalent.
type EquivalentObjectProperties struct {
	Annotated
	Properties []IRI
}

// NewEquivalentObjectProperties returns a property equivalence axiom.
func NewEquivalentObjectProperties(props []IRI, anns ...Annotation) *EquivalentObjectProperties {
	return &EquivalentObjectProperties{Annotated: annotated(anns), Properties: normalizeIRIs(props)}
}

func (*EquivalentObjectProperties) Kind() AxiomKind { return KindEquivalentObjectProperties }
func (a *EquivalentObjectProperties) String() string {
	return render("EquivalentObjectProperties", a.Anns, renderIRIs(a.Properties)...)
}

// InverseObjectProperties states that Second is the inverse of First.
type InverseObjectProperties struct {
	Annotated
	First  IRI
	Second IRI
}

// NewInverseObjectProperties returns an inverse properties axiom.
func NewInverseObjectProperties(first, second IRI, anns ...Annotation) *InverseObjectProperties {
	return &InverseObjectProperties{Annotated: annotated(anns), First: first, Second: second}
}

func (*InverseObjectProperties) Kind() AxiomKind { return KindInverseObjectProperties }
func (a *InverseObjectProperties) String() string {
	return render("InverseObjectProperties", a.Anns, a.First.String(), a.Second.String())
}

// ObjectPropertyDomain restricts the subjects of a property.
type ObjectPropertyDomain struct {
	Annotated
	Property IRI
	Domain   ClassExpression
}

// NewObjectPropertyDomain returns a domain axiom.
func NewObjectPropertyDomain(p IRI, domain ClassExpression, anns ...Annotation) *ObjectPropertyDomain {
	return &ObjectPropertyDomain{Annotated: annotated(anns), Property: p, Domain: domain}
}

func (*ObjectPropertyDomain) Kind() AxiomKind { return KindObjectPropertyDomain }
func (a *ObjectPropertyDomain) String() string {
	return render("ObjectPropertyDomain", a.Anns, a.Property.String(), a.Domain.String())
}

// ObjectPropertyRange restricts the objects of a property.
type ObjectPropertyRange struct {
	Annotated
	Property IRI
	Range    ClassExpression
}

// NewObjectPropertyRange returns a range axiom.
func NewObjectPropertyRange(p IRI, rng ClassExpression, anns ...Annotation) *ObjectPropertyRange {
	return &ObjectPropertyRange{Annotated: annotated(anns), Property: p, Range: rng}
}

func (*ObjectPropertyRange) Kind() AxiomKind { return KindObjectPropertyRange }
func (a *ObjectPropertyRange) String() string {
	return render("ObjectPropertyRange", a.Anns, a.Property.String(), a.Range.String())
}

// SubPropertyChainOf states that the composition of Chain implies Super.
// Chain order is significant.
type SubPropertyChainOf struct {
	Annotated
	Chain []IRI
	Super IRI
}

// NewSubPropertyChainOf returns a property chain axiom.
func NewSubPropertyChainOf(chain []IRI, super IRI, anns ...Annotation) *SubPropertyChainOf {
	c := make([]IRI, len(chain))
	copy(c, chain)
	return &SubPropertyChainOf{Annotated: annotated(anns), Chain: c, Super: super}
}

func (*SubPropertyChainOf) Kind() AxiomKind { return KindSubPropertyChainOf }
func (a *SubPropertyChainOf) String() string {
	chain := "ObjectPropertyChain(" + strings.Join(renderIRIs(a.Chain), " ") + ")"
	return render("SubObjectPropertyOf", a.Anns, chain, a.Super.String())
}

// PropertyCharacteristic is one of the six object property characteristic
// axioms. Characteristic holds the specific kind.
type PropertyCharacteristic struct {
	Annotated
	Characteristic AxiomKind
	Property       IRI
}

// NewPropertyCharacteristic returns a characteristic axiom. kind must be one
// of the six characteristic kinds.
func NewPropertyCharacteristic(kind AxiomKind, p IRI, anns ...Annotation) *PropertyCharacteristic {
	return &PropertyCharacteristic{Annotated: annotated(anns), Characteristic: kind, Property: p}
}

func (a *PropertyCharacteristic) Kind() AxiomKind { return a.Characteristic }
func (a *PropertyCharacteristic) String() string {
	return render(a.Characteristic.String(), a.Anns, a.Property.String())
}

// AnnotationAssertion annotates Subject with Property and Value.
type AnnotationAssertion struct {
	Annotated
	Property IRI
	Subject  IRI
	Value    AnnotationValue
}

// NewAnnotationAssertion returns an annotation assertion axiom.
func NewAnnotationAssertion(p, subject IRI, value AnnotationValue, anns ...Annotation) *AnnotationAssertion {
	return &AnnotationAssertion{Annotated: annotated(anns), Property: p, Subject: subject, Value: value}
}

func (*AnnotationAssertion) Kind() AxiomKind { return KindAnnotationAssertion }
func (a *AnnotationAssertion) String() string {
	return render("AnnotationAssertion", a.Anns, a.Property.String(), a.Subject.String(), a.Value.String())
}

// SubAnnotationPropertyOf states that Sub is a subproperty of Super.
type SubAnnotationPropertyOf struct {
	Annotated
	Sub   IRI
	Super IRI
}

// NewSubAnnotationPropertyOf returns an annotation subproperty axiom.
func NewSubAnnotationPropertyOf(sub, super IRI, anns ...Annotation) *SubAnnotationPropertyOf {
	return &SubAnnotationPropertyOf{Annotated: annotated(anns), Sub: sub, Super: super}
}

func (*SubAnnotationPropertyOf) Kind() AxiomKind { return KindSubAnnotationPropertyOf }
func (a *SubAnnotationPropertyOf) String() string {
	return render("SubAnnotationPropertyOf", a.Anns, a.Sub.String(), a.Super.String())
}

func normalizeIRIs(iris []IRI) []IRI {
	seen := make(map[IRI]bool, len(iris))
	out := make([]IRI, 0, len(iris))
	for _, i := range iris {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	sortIRIs(out)
	return out
}

func sortIRIs(iris []IRI) {
	sort.Slice(iris, func(i, j int) bool { return iris[i] < iris[j] })
}
