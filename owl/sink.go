package owl

// Sink receives the output of a conversion. Implementations must treat
// axioms as a set keyed by their functional syntax rendering. A sink shared
// by concurrent producers is responsible for serializing its own mutations.
type Sink interface {
	// Declare adds a declaration axiom for e. Declaring twice is harmless.
	Declare(e Entity) error
	AddAxiom(a Axiom) error
	AddAxioms(axioms []Axiom) error
	RemoveAxioms(axioms []Axiom) error
	// Axioms returns the stored axioms of the given kind, or all of them
	// for AnyKind.
	Axioms(kind AxiomKind) []Axiom

	AddOntologyAnnotation(a Annotation) error
	OntologyAnnotations() []Annotation
	// SetOntologyIdentity sets the ontology IRI and, when version is
	// non-empty, the version IRI in one step.
	SetOntologyIdentity(iri, version IRI) error
	// RequestImport records an import. Imported content is never fetched.
	RequestImport(iri IRI) error
	// AddRawAxioms stores pre-serialized axiom text verbatim.
	AddRawAxioms(text string) error
}
