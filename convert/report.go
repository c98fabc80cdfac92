package convert

import (
	"time"

	"github.com/c360studio/oboowl/owl"
)

// Report summarizes one conversion.
type Report struct {
	SessionID   string  `json:"session_id"`
	OntologyIRI owl.IRI `json:"ontology_iri"`
	VersionIRI  owl.IRI `json:"version_iri,omitempty"`

	Terms              int       `json:"terms"`
	Typedefs           int       `json:"typedefs"`
	MetadataProperties int       `json:"metadata_properties"`
	Instances          int       `json:"instances"`
	Imports            []owl.IRI `json:"imports,omitempty"`

	// Axioms counts axioms handed to the sink by kind name.
	Axioms              map[string]int `json:"axioms"`
	OntologyAnnotations int            `json:"ontology_annotations"`
	RawAxiomBlocks      int            `json:"raw_axiom_blocks"`
	Rewritten           int            `json:"rewritten"`

	// Skipped counts untranslatable clauses by reason.
	Skipped    map[string]int `json:"skipped,omitempty"`
	Errors     int            `json:"errors"`
	SinkErrors int            `json:"sink_errors"`

	Duration time.Duration `json:"duration"`
}

func newReport(sessionID string) *Report {
	return &Report{
		SessionID: sessionID,
		Axioms:    make(map[string]int),
		Skipped:   make(map[string]int),
	}
}

func (r *Report) countAxiom(kind owl.AxiomKind) {
	r.Axioms[kind.String()]++
}

func (r *Report) skip(reason string) {
	r.Skipped[reason]++
}

// AxiomCount returns the total number of axioms handed to the sink.
func (r *Report) AxiomCount() int {
	n := 0
	for _, c := range r.Axioms {
		n += c
	}
	return n
}

// SkippedCount returns the total number of skipped clauses.
func (r *Report) SkippedCount() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

// Clean reports whether the conversion finished without recoverable errors.
func (r *Report) Clean() bool {
	return r.Errors == 0 && r.SinkErrors == 0
}
