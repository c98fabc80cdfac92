package convert

import (
	"strings"

	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/owl"
	"github.com/c360studio/oboowl/vocabulary/oio"
	"github.com/c360studio/semstreams/vocabulary"
)

// annotationHandler translates a clause into annotation assertions on
// subject.
type annotationHandler func(s *session, subject owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error)

// Pseudo tags with vocabulary properties but no clause of their own.
const (
	tagHasSynonymType = "has_synonym_type"
	tagScope          = "scope"
)

// synonymScopes are the scopes with a dedicated vocabulary property.
var synonymScopes = map[string]bool{"EXACT": true, "NARROW": true, "BROAD": true, "RELATED": true}

var genericHandlers map[obo.Tag]annotationHandler

func init() {
	genericHandlers = map[obo.Tag]annotationHandler{
		obo.TagSubset:        subsetClause,
		obo.TagPropertyValue: propertyValueClause,
		obo.TagSynonym:       synonymClause,
		obo.TagXref:          xrefClause,
	}
}

// genericClause translates any clause that has no logical reading into an
// annotation assertion on subject. Name, def and unrecognized tags become
// literal annotations under the tag's property.
func (s *session) genericClause(subject owl.IRI, c *obo.Clause) (outcome, error) {
	anns := s.clauseAnnotations(c)
	if h, ok := genericHandlers[c.Kind()]; ok {
		return h(s, subject, c, anns)
	}
	return emit(owl.NewAnnotationAssertion(s.tagProperty(c.Tag), subject, literal(c.Value()), anns...)), nil
}

func subsetClause(s *session, subject owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	subset, err := s.propertyIRI(c.StringValue())
	if err != nil {
		return outcome{}, err
	}
	return emit(owl.NewAnnotationAssertion(s.tagProperty(c.Tag), subject, subset, anns...)), nil
}

func propertyValueClause(s *session, subject owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	p, value, ok, err := s.propertyValue(c)
	if err != nil || !ok {
		if err == nil {
			return skip(skipPropertyValueArity), nil
		}
		return outcome{}, err
	}
	return emit(owl.NewAnnotationAssertion(p, subject, value, anns...)), nil
}

// propertyValue reads a property_value clause: "rel entity" yields an IRI
// value and "rel value datatype" a typed literal. ok is false for any other
// arity.
func (s *session) propertyValue(c *obo.Clause) (owl.IRI, owl.AnnotationValue, bool, error) {
	switch len(c.Values) {
	case 2:
		p, err := s.propertyIRI(obo.ValueString(c.Values[0]))
		if err != nil {
			return "", nil, false, err
		}
		v, err := s.propertyIRI(obo.ValueString(c.Values[1]))
		if err != nil {
			return "", nil, false, err
		}
		return p, v, true, nil
	case 3:
		p, err := s.propertyIRI(obo.ValueString(c.Values[0]))
		if err != nil {
			return "", nil, false, err
		}
		return p, owl.NewTypedLiteral(obo.ValueString(c.Values[1]), datatypeIRI(obo.ValueString(c.Values[2]))), true, nil
	default:
		return "", nil, false, nil
	}
}

func datatypeIRI(token string) owl.IRI {
	if rest, ok := strings.CutPrefix(token, "xsd:"); ok {
		return owl.IRI(oio.XSDNamespace + rest)
	}
	return owl.IRI(token)
}

func synonymClause(s *session, subject owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	scope := "RELATED"
	if len(c.Values) > 1 {
		scope = obo.ValueString(c.Values[1])
		if len(c.Values) > 2 {
			typ, err := s.propertyIRI(obo.ValueString(c.Values[2]))
			if err != nil {
				return outcome{}, err
			}
			anns = append(anns, owl.NewAnnotation(s.tagProperty(tagHasSynonymType), typ))
		}
	} else {
		s.logger.Warn("Assuming RELATED for synonym without scope", "subject", string(subject), "clause", c.String())
	}

	var p owl.IRI
	if synonymScopes[scope] {
		p = s.tagProperty(scope)
	} else {
		var err error
		if p, err = s.propertyIRI(scope); err != nil {
			return outcome{}, err
		}
	}
	return emit(owl.NewAnnotationAssertion(p, subject, literal(c.Value()), anns...)), nil
}

func xrefClause(s *session, subject owl.IRI, c *obo.Clause, anns []owl.Annotation) (outcome, error) {
	if x, ok := c.Value().(obo.Xref); ok && x.Annotation != "" {
		anns = append(anns, owl.NewAnnotation(vocabulary.RdfsLabel, owl.NewStringLiteral(x.Annotation)))
	}
	return emit(owl.NewAnnotationAssertion(s.tagProperty(c.Tag), subject, literal(c.Value()), anns...)), nil
}
