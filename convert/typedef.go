package convert

import (
	"fmt"

	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/owl"
	"github.com/c360studio/oboowl/vocabulary/oio"
)

// metadataProperties holds the IRIs of relations translated as annotation
// properties. Only metadataPass builds one, and the typedef and term passes
// require it, so metadata relations are always known before any
// relationship clause is translated.
type metadataProperties struct {
	iris map[owl.IRI]bool
}

func (m *metadataProperties) contains(iri owl.IRI) bool {
	return m != nil && m.iris[iri]
}

// frameTranslator translates typedef and term frames once metadata
// relations are known.
type frameTranslator struct {
	*session
	props *metadataProperties
}

type propertyHandler func(t *frameTranslator, p owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error)

var typedefHandlers map[obo.Tag]propertyHandler

func init() {
	typedefHandlers = map[obo.Tag]propertyHandler{
		obo.TagIsA:                 subPropertyClause,
		obo.TagRelationship:        propertyRelationshipClause,
		obo.TagDisjointFrom:        disjointPropertyClause,
		obo.TagInverseOf:           inversePropertyClause,
		obo.TagEquivalentTo:        equivalentPropertyClause,
		obo.TagDomain:              domainClause,
		obo.TagRange:               rangeClause,
		obo.TagTransitiveOver:      transitiveOverClause,
		obo.TagHoldsOverChain:      chainClause(false),
		obo.TagEquivalentToChain:   chainClause(true),
		obo.TagIsTransitive:        characteristic(owl.KindTransitiveObjectProperty),
		obo.TagIsReflexive:         characteristic(owl.KindReflexiveObjectProperty),
		obo.TagIsSymmetric:         characteristic(owl.KindSymmetricObjectProperty),
		obo.TagIsAsymmetric:        characteristic(owl.KindAsymmetricObjectProperty),
		obo.TagIsFunctional:        characteristic(owl.KindFunctionalObjectProperty),
		obo.TagIsInverseFunctional: characteristic(owl.KindInverseFunctionalObjectProperty),
	}
}

// metadataPass translates every typedef flagged is_metadata_tag into an
// annotation property and returns the resulting lookup.
func (s *session) metadataPass() (*metadataProperties, error) {
	props := &metadataProperties{iris: make(map[owl.IRI]bool)}
	for _, f := range s.doc.TypedefFrames() {
		if !isMetadata(f) {
			continue
		}
		if err := s.annotationProperty(f, props); err != nil {
			return nil, err
		}
	}
	return props, nil
}

func (s *session) annotationProperty(f *obo.Frame, props *metadataProperties) error {
	if f.ID == "" {
		return fmt.Errorf("%s frame: %w", f.Type, ErrMissingFrameID)
	}
	p, err := s.propertyIRI(f.ID)
	if err != nil {
		return err
	}
	s.declare(owl.NewAnnotationProperty(p))
	s.shorthand(f, p)
	props.iris[p] = true
	s.report.MetadataProperties++

	for _, tag := range f.Tags() {
		for _, c := range f.Clauses(tag) {
			var out outcome
			var err error
			if obo.LookupTag(tag) == obo.TagIsA {
				out = skip(skipMetadataIsA)
			} else {
				out, err = s.genericClause(p, c)
			}
			if fatal := s.apply(f, c, out, err); fatal != nil {
				return fatal
			}
		}
	}
	return nil
}

// typedefPass translates the remaining typedefs into object properties.
func (s *session) typedefPass(props *metadataProperties) error {
	t := &frameTranslator{session: s, props: props}
	for _, f := range s.doc.TypedefFrames() {
		if isMetadata(f) {
			continue
		}
		if err := s.ctx.Err(); err != nil {
			return err
		}
		if err := t.objectProperty(f); err != nil {
			return err
		}
	}
	return nil
}

func (t *frameTranslator) objectProperty(f *obo.Frame) error {
	if f.ID == "" {
		return fmt.Errorf("%s frame: %w", f.Type, ErrMissingFrameID)
	}
	p, err := t.propertyIRI(f.ID)
	if err != nil {
		return err
	}
	t.declare(owl.NewObjectProperty(p))
	t.shorthand(f, p)
	t.report.Typedefs++

	for _, tag := range f.Tags() {
		kind := obo.LookupTag(tag)
		for _, c := range f.Clauses(tag) {
			var out outcome
			var err error
			switch kind {
			case obo.TagIntersectionOf, obo.TagUnionOf:
				out = skip(skipRelationBoolean)
			case obo.TagAltID:
				out, err = t.altID(p, owl.KindObjectProperty, c)
			default:
				out, err = t.typedefClause(p, c)
			}
			if fatal := t.apply(f, c, out, err); fatal != nil {
				return fatal
			}
		}
	}
	return nil
}

func (t *frameTranslator) typedefClause(p owl.IRI, c *obo.Clause) (outcome, error) {
	h, ok := typedefHandlers[c.Kind()]
	if !ok {
		return t.genericClause(p, c)
	}
	return h(t, p, c, t.clauseAnnotations(c))
}

// shorthand labels a relation whose id was expanded through its xrefs.
func (s *session) shorthand(f *obo.Frame, p owl.IRI) {
	if s.expandShorthand(f.ID) == f.ID {
		return
	}
	s.add(owl.NewAnnotationAssertion(s.tagProperty(obo.TagShorthand.String()), p, owl.NewStringLiteral(f.ID)))
}

func isMetadata(f *obo.Frame) bool {
	return f.BoolValue(obo.TagIsMetadataTag.String())
}

func requireValues(c *obo.Clause, n int) error {
	if len(c.Values) < n {
		return fmt.Errorf("%w: %s needs %d", ErrMissingValue, c.Tag, n)
	}
	return nil
}

// otherProperty resolves the i-th clause value as a relation.
func (t *frameTranslator) otherProperty(c *obo.Clause, i int) (owl.IRI, error) {
	if err := requireValues(c, i+1); err != nil {
		return "", err
	}
	return t.propertyIRI(obo.ValueString(c.Values[i]))
}

func subPropertyClause(t *frameTranslator, p owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	super, err := t.otherProperty(c, 0)
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewSubObjectPropertyOf(p, super, anns...)), nil
}

func propertyRelationshipClause(t *frameTranslator, p owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	if err := requireValues(c, 2); err != nil {
		return outcome{}, err
	}
	rel, err := t.resolve(obo.ValueString(c.Values[0]))
	if err != nil {
		return outcome{}, err
	}
	if !t.props.contains(rel) {
		return skip(skipRelationRelationship), nil
	}
	value, err := t.resolve(obo.ValueString(c.Values[1]))
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewAnnotationAssertion(rel, p, value, anns...)), nil
}

func disjointPropertyClause(t *frameTranslator, p owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	other, err := t.otherProperty(c, 0)
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewDisjointObjectProperties([]owl.IRI{p, other}, anns...)), nil
}

func inversePropertyClause(t *frameTranslator, p owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	other, err := t.otherProperty(c, 0)
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewInverseObjectProperties(p, other, anns...)), nil
}

func equivalentPropertyClause(t *frameTranslator, p owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	other, err := t.otherProperty(c, 0)
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewEquivalentObjectProperties([]owl.IRI{p, other}, anns...)), nil
}

func domainClause(t *frameTranslator, p owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	cls, err := t.class(c.StringValue())
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewObjectPropertyDomain(p, cls, anns...)), nil
}

func rangeClause(t *frameTranslator, p owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	cls, err := t.class(c.StringValue())
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewObjectPropertyRange(p, cls, anns...)), nil
}

func transitiveOverClause(t *frameTranslator, p owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	other, err := t.otherProperty(c, 0)
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewSubPropertyChainOf([]owl.IRI{p, other}, p, anns...)), nil
}

// chainClause handles holds_over_chain and, when reversible is set,
// equivalent_to_chain.
func chainClause(reversible bool) propertyHandler {
	return func(t *frameTranslator, p owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
		first, err := t.otherProperty(c, 0)
		if err != nil {
			return outcome{}, err
		}
		second, err := t.otherProperty(c, 1)
		if err != nil {
			return outcome{}, err
		}
		if reversible {
			anns = append(anns, owl.NewAnnotation(oio.IAOReversiblePropertyChain, owl.NewStringLiteral("true")))
		}
		return emit(owl.NewSubPropertyChainOf([]owl.IRI{first, second}, p, anns...)), nil
	}
}

// characteristic emits a characteristic axiom for a true flag. Any other
// value is kept as a plain annotation.
func characteristic(kind owl.AxiomKind) propertyHandler {
	return func(t *frameTranslator, p owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
		if fmt.Sprint(c.Value()) != "true" {
			return t.genericClause(p, c)
		}
		return emit(owl.NewPropertyCharacteristic(kind, p, anns...)), nil
	}
}
