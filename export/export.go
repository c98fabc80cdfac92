// Package export serializes converted ontologies.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/c360studio/oboowl/owl"
)

// ErrUnsupportedFormat is returned for formats missing from FormatRegistry.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Source is a readable ontology. *owl.Ontology and the SQLite store
// implement it.
type Source interface {
	IRI() owl.IRI
	VersionIRI() owl.IRI
	Imports() []owl.IRI
	OntologyAnnotations() []owl.Annotation
	Axioms(kind owl.AxiomKind) []owl.Axiom
	RawAxioms() []string
}

var _ Source = (*owl.Ontology)(nil)

// Export serializes src to the specified format.
func Export(src Source, format Format) (string, error) {
	switch format {
	case FormatFunctional:
		return toFunctional(src), nil
	case FormatJSON:
		return toJSON(src)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// WriteTo serializes src to w.
func WriteTo(w io.Writer, src Source, format Format) error {
	out, err := Export(src, format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// axiomOrder is the order in which axiom kinds are written: declarations
// first, then logical axioms, then annotation axioms.
var axiomOrder = []owl.AxiomKind{
	owl.KindDeclaration,
	owl.KindSubClassOf,
	owl.KindEquivalentClasses,
	owl.KindDisjointClasses,
	owl.KindSubObjectPropertyOf,
	owl.KindSubPropertyChainOf,
	owl.KindEquivalentObjectProperties,
	owl.KindDisjointObjectProperties,
	owl.KindInverseObjectProperties,
	owl.KindObjectPropertyDomain,
	owl.KindObjectPropertyRange,
	owl.KindTransitiveObjectProperty,
	owl.KindReflexiveObjectProperty,
	owl.KindSymmetricObjectProperty,
	owl.KindAsymmetricObjectProperty,
	owl.KindFunctionalObjectProperty,
	owl.KindInverseFunctionalObjectProperty,
	owl.KindSubAnnotationPropertyOf,
	owl.KindAnnotationAssertion,
}

// orderedAxioms returns every axiom of src, grouped by kind in axiomOrder
// and sorted by rendering within a kind.
func orderedAxioms(src Source) []owl.Axiom {
	var out []owl.Axiom
	for _, kind := range axiomOrder {
		out = append(out, src.Axioms(kind)...)
	}
	return out
}
