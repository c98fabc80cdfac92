package convert

import (
	"github.com/c360studio/oboowl/owl"
	"github.com/c360studio/oboowl/vocabulary/oio"
)

// postProcess applies the logical-definition-view-relation convention.
// When the ontology names a view relation, every equivalence axiom with
// exactly one named class has its anonymous operands wrapped in an
// existential restriction over that relation. Axiom annotations are kept.
func (s *session) postProcess() error {
	view, err := s.viewRelation()
	if err != nil || view == "" {
		return err
	}

	var remove, add []owl.Axiom
	for _, a := range s.sink.Axioms(owl.KindEquivalentClasses) {
		eq, ok := a.(*owl.EquivalentClasses)
		if !ok {
			continue
		}
		named := 0
		operands := make([]owl.ClassExpression, 0, len(eq.Classes))
		for _, x := range eq.Classes {
			if x.IsAnonymous() {
				operands = append(operands, owl.ObjectSomeValuesFrom{Property: view, Filler: x})
				continue
			}
			named++
			operands = append(operands, x)
		}
		if named != 1 {
			continue
		}
		remove = append(remove, eq)
		add = append(add, owl.NewEquivalentClasses(operands, eq.Annotations()...))
	}
	if len(remove) == 0 {
		return nil
	}

	if err := s.sink.RemoveAxioms(remove); err != nil {
		s.logger.Error("Sink rejected view rewrite", "error", err)
		s.report.SinkErrors++
		return nil
	}
	if err := s.sink.AddAxioms(add); err != nil {
		s.logger.Error("Sink rejected view rewrite", "error", err)
		s.report.SinkErrors++
		return nil
	}
	s.report.Rewritten = len(add)
	s.logger.Debug("Rewrote definitions through view relation", "relation", string(view), "axioms", len(add))
	return nil
}

// viewRelation returns the declared view relation, or "" when there is none.
func (s *session) viewRelation() (owl.IRI, error) {
	for _, a := range s.sink.OntologyAnnotations() {
		if a.Property != oio.OIOLogicalDefinitionViewRelation {
			continue
		}
		switch v := a.Value.(type) {
		case owl.IRI:
			return v, nil
		case owl.Literal:
			return s.resolve(v.Lexical)
		}
	}
	return "", nil
}
