package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/oboowl/owl"
	"github.com/c360studio/oboowl/vocabulary/oio"
)

// defaultPrefixes returns the standard prefixes of a functional syntax
// document.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"owl":  oio.OWLNamespace,
		"rdf":  oio.RDFNamespace,
		"xml":  "http://www.w3.org/XML/1998/namespace",
		"xsd":  oio.XSDNamespace,
		"rdfs": oio.RDFSNamespace,
	}
}

// FunctionalWriter writes an ontology in OWL functional syntax. Axioms are
// written with full IRIs; the prefix block is informational.
type FunctionalWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewFunctionalWriter creates a new writer with default prefixes.
func NewFunctionalWriter() *FunctionalWriter {
	return &FunctionalWriter{
		prefixes: defaultPrefixes(),
	}
}

// SetPrefix sets a namespace prefix.
func (w *FunctionalWriter) SetPrefix(prefix, iri string) {
	w.prefixes[prefix] = iri
}

// WritePrefixes writes prefix declarations.
func (w *FunctionalWriter) WritePrefixes() {
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		w.sb.WriteString(fmt.Sprintf("Prefix(%s:=<%s>)\n", prefix, w.prefixes[prefix]))
	}
	w.sb.WriteString("\n")
}

// OpenOntology starts the ontology block. Empty IRIs are omitted.
func (w *FunctionalWriter) OpenOntology(iri, version owl.IRI) {
	w.sb.WriteString("Ontology(")
	if iri != "" {
		w.sb.WriteString(iri.String())
		if version != "" {
			w.sb.WriteString("\n")
			w.sb.WriteString(version.String())
		}
	}
	w.sb.WriteString("\n")
}

// WriteImport writes an import declaration.
func (w *FunctionalWriter) WriteImport(iri owl.IRI) {
	w.sb.WriteString(fmt.Sprintf("Import(%s)\n", iri))
}

// WriteAnnotation writes an ontology annotation.
func (w *FunctionalWriter) WriteAnnotation(a owl.Annotation) {
	w.sb.WriteString(a.String())
	w.sb.WriteString("\n")
}

// WriteAxiom writes a single axiom.
func (w *FunctionalWriter) WriteAxiom(a owl.Axiom) {
	w.sb.WriteString(a.String())
	w.sb.WriteString("\n")
}

// WriteRaw writes text verbatim on its own lines.
func (w *FunctionalWriter) WriteRaw(text string) {
	w.sb.WriteString(strings.TrimRight(text, "\n"))
	w.sb.WriteString("\n")
}

// WriteBlank writes a blank line for readability.
func (w *FunctionalWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// CloseOntology ends the ontology block.
func (w *FunctionalWriter) CloseOntology() {
	w.sb.WriteString(")\n")
}

// String returns the accumulated output.
func (w *FunctionalWriter) String() string {
	return w.sb.String()
}

func toFunctional(src Source) string {
	w := NewFunctionalWriter()
	w.WritePrefixes()
	w.OpenOntology(src.IRI(), src.VersionIRI())

	for _, iri := range src.Imports() {
		w.WriteImport(iri)
	}
	for _, a := range src.OntologyAnnotations() {
		w.WriteAnnotation(a)
	}
	w.WriteBlank()

	for _, a := range orderedAxioms(src) {
		w.WriteAxiom(a)
	}
	if raw := src.RawAxioms(); len(raw) > 0 {
		w.WriteBlank()
		for _, text := range raw {
			w.WriteRaw(text)
		}
	}

	w.CloseOntology()
	return w.String()
}
