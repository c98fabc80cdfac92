package convert

import (
	"fmt"
	"time"

	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/owl"
	"github.com/c360studio/oboowl/vocabulary/oio"
)

// structuralQualifiers shape class expressions and never become annotations.
var structuralQualifiers = map[string]bool{
	"gci_relation":   true,
	"gci_filler":     true,
	"cardinality":    true,
	"minCardinality": true,
	"maxCardinality": true,
	"all_some":       true,
	"all_only":       true,
}

// clauseAnnotations translates the xrefs and descriptive qualifiers of
// clauses into axiom annotations.
func (s *session) clauseAnnotations(clauses ...*obo.Clause) []owl.Annotation {
	var anns []owl.Annotation
	for _, c := range clauses {
		for _, x := range c.Xrefs {
			if x.ID == "" {
				continue
			}
			anns = append(anns, owl.NewAnnotation(s.tagProperty(obo.TagXref.String()), literal(x)))
		}
		for _, q := range c.Qualifiers {
			if structuralQualifiers[q.Key] {
				continue
			}
			anns = append(anns, owl.NewAnnotation(s.tagProperty(q.Key), literal(q.Value)))
		}
	}
	return owl.NormalizeAnnotations(anns)
}

// literal converts a clause value to an OWL literal.
func literal(v any) owl.Literal {
	switch x := v.(type) {
	case obo.Xref:
		return owl.NewStringLiteral(x.ID)
	case bool:
		return owl.NewBoolLiteral(x)
	case time.Time:
		return owl.NewTypedLiteral(x.UTC().Format(time.RFC3339), oio.XSDDateTime)
	case string:
		return owl.NewStringLiteral(x)
	case nil:
		return owl.NewStringLiteral("")
	default:
		return owl.NewStringLiteral(fmt.Sprint(x))
	}
}
