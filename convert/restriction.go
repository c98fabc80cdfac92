package convert

import (
	"fmt"
	"strconv"

	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/owl"
)

// restriction builds the class expression for "rel filler" under the
// structural qualifiers quals. The first matching rule wins:
//
//	cardinality > 0                  exact cardinality
//	cardinality = 0 or max = 0       only the complement of filler
//	min and max                      min and max intersected
//	min                              min cardinality
//	max                              max cardinality
//	all_some and all_only            some and only intersected
//	all_only                         only
//	relation is class level          has value, filler punned as individual
//	otherwise                        some
func (s *session) restriction(rel, filler string, quals []obo.Qualifier) (owl.ClassExpression, error) {
	p, err := s.propertyIRI(rel)
	if err != nil {
		return nil, err
	}
	fillerIRI, err := s.resolve(filler)
	if err != nil {
		return nil, err
	}
	ce := owl.Class{IRI: fillerIRI}

	exact, err := intQualifier(quals, "cardinality")
	if err != nil {
		return nil, err
	}
	minCard, err := intQualifier(quals, "minCardinality")
	if err != nil {
		return nil, err
	}
	maxCard, err := intQualifier(quals, "maxCardinality")
	if err != nil {
		return nil, err
	}
	allSome := boolQualifier(quals, "all_some")
	allOnly := boolQualifier(quals, "all_only")

	// Fillers may dangle in the source document.
	s.declare(owl.NewClass(fillerIRI))

	switch {
	case exact != nil && *exact > 0:
		return owl.ObjectExactCardinality{N: *exact, Property: p, Filler: ce}, nil
	case exact != nil && *exact == 0, maxCard != nil && *maxCard == 0:
		return owl.ObjectAllValuesFrom{Property: p, Filler: owl.ObjectComplementOf{Operand: ce}}, nil
	case minCard != nil && maxCard != nil:
		return owl.IntersectionOf(
			owl.ObjectMinCardinality{N: *minCard, Property: p, Filler: ce},
			owl.ObjectMaxCardinality{N: *maxCard, Property: p, Filler: ce},
		), nil
	case minCard != nil:
		return owl.ObjectMinCardinality{N: *minCard, Property: p, Filler: ce}, nil
	case maxCard != nil:
		return owl.ObjectMaxCardinality{N: *maxCard, Property: p, Filler: ce}, nil
	case allSome && allOnly:
		return owl.IntersectionOf(
			owl.ObjectSomeValuesFrom{Property: p, Filler: ce},
			owl.ObjectAllValuesFrom{Property: p, Filler: ce},
		), nil
	case allOnly:
		return owl.ObjectAllValuesFrom{Property: p, Filler: ce}, nil
	case s.isClassLevel(rel):
		s.declare(owl.NewNamedIndividual(fillerIRI))
		return owl.ObjectHasValue{Property: p, Individual: fillerIRI}, nil
	default:
		return owl.ObjectSomeValuesFrom{Property: p, Filler: ce}, nil
	}
}

func (s *session) isClassLevel(rel string) bool {
	f := s.doc.TypedefFrame(rel)
	return f != nil && f.BoolValue(obo.TagIsClassLevel.String())
}

func qualifier(quals []obo.Qualifier, key string) (string, bool) {
	for _, q := range quals {
		if q.Key == key {
			return q.Value, true
		}
	}
	return "", false
}

func intQualifier(quals []obo.Qualifier, key string) (*int, error) {
	v, ok := qualifier(quals, key)
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidQualifier, key, v)
	}
	return &n, nil
}

func boolQualifier(quals []obo.Qualifier, key string) bool {
	v, ok := qualifier(quals, key)
	if !ok {
		return false
	}
	b, _ := strconv.ParseBool(v)
	return b
}
