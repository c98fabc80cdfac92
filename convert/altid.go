package convert

import (
	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/owl"
	"github.com/c360studio/oboowl/vocabulary/oio"
)

// altID deprecates an alternate identifier of owner. The alternate id is
// declared as the same kind of entity as its owner and always receives the
// deprecated flag, a replaced-by link to owner and the terms-merged
// obsolescence reason.
func (s *session) altID(owner owl.IRI, kind owl.EntityKind, c *obo.Clause) (outcome, error) {
	if c.StringValue() == "" {
		return outcome{}, ErrMissingValue
	}
	alt, err := s.resolve(c.StringValue())
	if err != nil {
		return outcome{}, err
	}
	e := owl.Entity{Kind: kind, IRI: alt}
	s.declared[e.String()] = true
	return emit(
		owl.NewDeclaration(e),
		owl.NewAnnotationAssertion(oio.OWLDeprecated, alt, owl.NewBoolLiteral(true)),
		owl.NewAnnotationAssertion(oio.IAOTermReplacedBy, alt, owner),
		owl.NewAnnotationAssertion(oio.IAOObsolescenceReason, alt, owl.IRI(oio.IAOTermsMerged)),
	), nil
}
