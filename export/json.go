package export

import (
	"encoding/json"

	"github.com/c360studio/oboowl/owl"
)

// JSONDocument is the JSON form of an ontology. Axioms and annotations are
// carried in functional syntax.
type JSONDocument struct {
	Ontology    owl.IRI     `json:"ontology,omitempty"`
	Version     owl.IRI     `json:"version,omitempty"`
	Imports     []owl.IRI   `json:"imports,omitempty"`
	Annotations []string    `json:"annotations,omitempty"`
	Axioms      []JSONAxiom `json:"axioms"`
	Raw         []string    `json:"raw_axioms,omitempty"`
}

// JSONAxiom is one axiom with its kind.
type JSONAxiom struct {
	Kind  string `json:"kind"`
	Axiom string `json:"axiom"`
}

// NewJSONDocument builds the JSON form of src.
func NewJSONDocument(src Source) JSONDocument {
	doc := JSONDocument{
		Ontology: src.IRI(),
		Version:  src.VersionIRI(),
		Imports:  src.Imports(),
		Axioms:   make([]JSONAxiom, 0),
		Raw:      src.RawAxioms(),
	}
	for _, a := range src.OntologyAnnotations() {
		doc.Annotations = append(doc.Annotations, a.String())
	}
	for _, a := range orderedAxioms(src) {
		doc.Axioms = append(doc.Axioms, JSONAxiom{Kind: a.Kind().String(), Axiom: a.String()})
	}
	return doc
}

func toJSON(src Source) (string, error) {
	data, err := json.MarshalIndent(NewJSONDocument(src), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
