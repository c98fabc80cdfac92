package owl

import (
	"errors"
	"sort"
	"sync"
)

// ErrNilAxiom is returned when a nil axiom is added to an ontology.
var ErrNilAxiom = errors.New("nil axiom")

// Ontology is an in-memory Sink. It is safe for concurrent use.
type Ontology struct {
	mu          sync.RWMutex
	iri         IRI
	version     IRI
	axioms      map[string]Axiom
	annotations map[string]Annotation
	imports     []IRI
	raw         []string
}

// NewOntology returns an empty ontology.
func NewOntology() *Ontology {
	return &Ontology{
		axioms:      make(map[string]Axiom),
		annotations: make(map[string]Annotation),
	}
}

var _ Sink = (*Ontology)(nil)

func (o *Ontology) Declare(e Entity) error {
	return o.AddAxiom(NewDeclaration(e))
}

func (o *Ontology) AddAxiom(a Axiom) error {
	if a == nil {
		return ErrNilAxiom
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.axioms[a.String()] = a
	return nil
}

func (o *Ontology) AddAxioms(axioms []Axiom) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, a := range axioms {
		if a == nil {
			return ErrNilAxiom
		}
		o.axioms[a.String()] = a
	}
	return nil
}

func (o *Ontology) RemoveAxioms(axioms []Axiom) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, a := range axioms {
		if a != nil {
			delete(o.axioms, a.String())
		}
	}
	return nil
}

// Axioms returns matching axioms sorted by rendering.
func (o *Ontology) Axioms(kind AxiomKind) []Axiom {
	o.mu.RLock()
	defer o.mu.RUnlock()
	keys := make([]string, 0, len(o.axioms))
	for k, a := range o.axioms {
		if kind == AnyKind || a.Kind() == kind {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]Axiom, len(keys))
	for i, k := range keys {
		out[i] = o.axioms[k]
	}
	return out
}

// Contains reports whether an axiom with the same rendering is stored.
func (o *Ontology) Contains(a Axiom) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.axioms[a.String()]
	return ok
}

// Len returns the number of stored axioms.
func (o *Ontology) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.axioms)
}

func (o *Ontology) AddOntologyAnnotation(a Annotation) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.annotations[a.String()] = a
	return nil
}

// OntologyAnnotations returns the ontology annotations sorted by rendering.
func (o *Ontology) OntologyAnnotations() []Annotation {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Annotation, 0, len(o.annotations))
	for _, a := range o.annotations {
		out = append(out, a)
	}
	return NormalizeAnnotations(out)
}

func (o *Ontology) SetOntologyIdentity(iri, version IRI) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.iri = iri
	o.version = version
	return nil
}

// IRI returns the ontology IRI, empty if unset.
func (o *Ontology) IRI() IRI {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.iri
}

// VersionIRI returns the version IRI, empty if unset.
func (o *Ontology) VersionIRI() IRI {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.version
}

func (o *Ontology) RequestImport(iri IRI) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, existing := range o.imports {
		if existing == iri {
			return nil
		}
	}
	o.imports = append(o.imports, iri)
	return nil
}

// Imports returns the requested imports in request order.
func (o *Ontology) Imports() []IRI {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]IRI, len(o.imports))
	copy(out, o.imports)
	return out
}

func (o *Ontology) AddRawAxioms(text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.raw = append(o.raw, text)
	return nil
}

// RawAxioms returns raw axiom text in insertion order.
func (o *Ontology) RawAxioms() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]string, len(o.raw))
	copy(out, o.raw)
	return out
}
