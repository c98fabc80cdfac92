package convert

import (
	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/owl"
)

// classHandler translates a term clause. lhs is the class itself or, under
// the GCI rule, the class intersected with the gci restriction.
type classHandler func(t *frameTranslator, cls owl.Class, lhs owl.ClassExpression, c *obo.Clause, anns []owl.Annotation) (outcome, error)

var termHandlers map[obo.Tag]classHandler

func init() {
	termHandlers = map[obo.Tag]classHandler{
		obo.TagIsA:          subClassClause,
		obo.TagRelationship: relationshipClause,
		obo.TagDisjointFrom: disjointClassClause,
		obo.TagEquivalentTo: equivalentClassClause,
	}
}

// termPass translates every term frame into a class and its axioms.
func (s *session) termPass(props *metadataProperties) error {
	t := &frameTranslator{session: s, props: props}
	for _, f := range s.doc.TermFrames() {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		if err := t.termFrame(f); err != nil {
			return err
		}
	}
	return nil
}

func (t *frameTranslator) termFrame(f *obo.Frame) error {
	iri, err := t.frameSubject(f)
	if err != nil {
		return err
	}
	cls := owl.Class{IRI: iri}
	t.declare(owl.NewClass(iri))
	t.report.Terms++

	for _, c := range f.Clauses(obo.TagAltID.String()) {
		out, err := t.altID(iri, owl.KindClass, c)
		if fatal := t.apply(f, c, out, err); fatal != nil {
			return fatal
		}
	}

	for _, tag := range f.Tags() {
		clauses := f.Clauses(tag)
		if kind := obo.LookupTag(tag); kind == obo.TagIntersectionOf || kind == obo.TagUnionOf {
			out, err := t.booleanDefinition(cls, kind, clauses)
			if fatal := t.apply(f, clauses[0], out, err); fatal != nil {
				return fatal
			}
			continue
		}
		for _, c := range clauses {
			out, err := t.termClause(cls, c)
			if fatal := t.apply(f, c, out, err); fatal != nil {
				return fatal
			}
		}
	}
	return nil
}

// booleanDefinition combines every intersection_of or union_of clause of a
// frame into one equivalence axiom. A one-value clause contributes a class,
// a two-value clause a restriction.
func (t *frameTranslator) booleanDefinition(cls owl.Class, kind obo.Tag, clauses []*obo.Clause) (outcome, error) {
	members := make([]owl.ClassExpression, 0, len(clauses))
	for _, c := range clauses {
		switch len(c.Values) {
		case 0:
			return outcome{}, ErrMissingValue
		case 1:
			member, err := t.class(c.StringValue())
			if err != nil {
				return outcome{}, err
			}
			members = append(members, member)
		default:
			if kind == obo.TagUnionOf {
				t.logger.Warn("union_of with a relation is not standard, converting anyway",
					"class", string(cls.IRI), "clause", c.String())
			}
			r, err := t.restriction(obo.ValueString(c.Values[0]), obo.ValueString(c.Values[1]), c.Qualifiers)
			if err != nil {
				return outcome{}, err
			}
			members = append(members, r)
		}
	}

	var def owl.ClassExpression
	if kind == obo.TagUnionOf {
		def = owl.UnionOf(members...)
	} else {
		def = owl.IntersectionOf(members...)
	}
	return emit(owl.NewEquivalentClasses([]owl.ClassExpression{cls, def}, t.clauseAnnotations(clauses...)...)), nil
}

func (t *frameTranslator) termClause(cls owl.Class, c *obo.Clause) (outcome, error) {
	h, ok := termHandlers[c.Kind()]
	if !ok {
		return t.genericClause(cls.IRI, c)
	}
	lhs, err := t.gciSubject(cls, c)
	if err != nil {
		return outcome{}, err
	}
	return h(t, cls, lhs, c, t.clauseAnnotations(c))
}

// gciSubject applies the GCI rule: a clause qualified with both
// gci_relation and gci_filler holds only for members of cls that also
// satisfy that restriction.
func (t *frameTranslator) gciSubject(cls owl.Class, c *obo.Clause) (owl.ClassExpression, error) {
	rel, _ := c.Qualifier("gci_relation")
	filler, _ := c.Qualifier("gci_filler")
	if rel == "" || filler == "" {
		return cls, nil
	}
	r, err := t.restriction(rel, filler, nil)
	if err != nil {
		return nil, err
	}
	return owl.IntersectionOf(cls, r), nil
}

func subClassClause(t *frameTranslator, _ owl.Class, lhs owl.ClassExpression, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	super, err := t.class(c.StringValue())
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewSubClassOf(lhs, super, anns...)), nil
}

// relationshipClause asserts an annotation when the relation is a metadata
// relation and a restriction otherwise.
func relationshipClause(t *frameTranslator, cls owl.Class, lhs owl.ClassExpression, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	if err := requireValues(c, 2); err != nil {
		return outcome{}, err
	}
	rel, filler := obo.ValueString(c.Values[0]), obo.ValueString(c.Values[1])
	relIRI, err := t.resolve(rel)
	if err != nil {
		return outcome{}, err
	}
	if t.props.contains(relIRI) {
		value, err := t.resolve(filler)
		if err != nil {
			return outcome{}, err
		}
		return emit(owl.NewAnnotationAssertion(relIRI, cls.IRI, value, anns...)), nil
	}
	r, err := t.restriction(rel, filler, c.Qualifiers)
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewSubClassOf(lhs, r, anns...)), nil
}

func disjointClassClause(t *frameTranslator, _ owl.Class, lhs owl.ClassExpression, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	other, err := t.class(c.StringValue())
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewDisjointClasses([]owl.ClassExpression{lhs, other}, anns...)), nil
}

func equivalentClassClause(t *frameTranslator, _ owl.Class, lhs owl.ClassExpression, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	other, err := t.class(c.StringValue())
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewEquivalentClasses([]owl.ClassExpression{lhs, other}, anns...)), nil
}
