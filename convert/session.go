package convert

import (
	"context"
	"log/slog"

	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/owl"
	"github.com/c360studio/oboowl/vocabulary/oio"
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/google/uuid"
)

// session is the state of one conversion. It is created by Convert and
// dropped when Convert returns; no two conversions share one.
type session struct {
	ctx     context.Context
	id      string
	doc     *obo.Document
	header  *obo.Frame
	sink    owl.Sink
	logger  *slog.Logger
	metrics *Metrics
	report  *Report

	defaultIDSpace   string
	idSpaces         map[string]string
	equivalentXrefNS map[string]bool

	// declared holds the rendering of every entity declared so far.
	declared map[string]bool
}

func newSession(ctx context.Context, c *Converter, doc *obo.Document, sink owl.Sink) *session {
	header := doc.Header
	if header == nil {
		header = obo.NewFrame("", obo.HeaderFrame)
	}
	id := uuid.New().String()
	s := &session{
		ctx:              ctx,
		id:               id,
		doc:              doc,
		header:           header,
		sink:             sink,
		logger:           c.logger.With("session", id),
		metrics:          c.metrics,
		report:           newReport(id),
		idSpaces:         make(map[string]string, len(c.idSpaces)),
		equivalentXrefNS: make(map[string]bool, len(c.equivalentXrefNS)),
		declared:         make(map[string]bool),
	}
	for ns, uri := range c.idSpaces {
		s.idSpaces[ns] = uri
	}
	for _, ns := range c.equivalentXrefNS {
		s.equivalentXrefNS[ns] = true
	}
	return s
}

// declare emits a declaration for e once per session.
func (s *session) declare(e owl.Entity) {
	key := e.String()
	if s.declared[key] {
		return
	}
	s.declared[key] = true
	if err := s.sink.Declare(e); err != nil {
		s.sinkFailed(owl.NewDeclaration(e), err)
		return
	}
	s.report.countAxiom(owl.KindDeclaration)
	s.metrics.axiomEmitted(owl.KindDeclaration)
}

// add hands axioms to the sink, logging sink failures.
func (s *session) add(axioms ...owl.Axiom) {
	for _, a := range axioms {
		if a == nil {
			continue
		}
		if err := s.sink.AddAxiom(a); err != nil {
			s.sinkFailed(a, err)
			continue
		}
		s.report.countAxiom(a.Kind())
		s.metrics.axiomEmitted(a.Kind())
	}
}

func (s *session) addOntologyAnnotation(a owl.Annotation) {
	if err := s.sink.AddOntologyAnnotation(a); err != nil {
		s.logger.Error("Sink rejected ontology annotation", "annotation", a.String(), "error", err)
		s.report.SinkErrors++
		return
	}
	s.report.OntologyAnnotations++
}

func (s *session) sinkFailed(a owl.Axiom, err error) {
	s.logger.Error("Sink rejected axiom", "axiom", a.String(), "error", err)
	s.report.SinkErrors++
	s.metrics.sinkError()
}

// tagProperty returns the annotation property for an OBO tag, declaring it
// and attaching its vocabulary label the first time it is used.
func (s *session) tagProperty(tag string) owl.IRI {
	iri := owl.IRI(oio.TagIRI(tag))
	e := owl.NewAnnotationProperty(iri)
	if s.declared[e.String()] {
		return iri
	}
	s.declare(e)
	if t, ok := oio.Lookup(tag); ok && t.Label != "" {
		s.add(owl.NewAnnotationAssertion(vocabulary.RdfsLabel, iri, owl.NewStringLiteral(t.Label)))
	}
	return iri
}

// apply routes the result of translating one clause.
func (s *session) apply(frame *obo.Frame, c *obo.Clause, out outcome, err error) error {
	if err != nil {
		if IsFatal(err) {
			return &ClauseError{Frame: frame.ID, Clause: c.String(), Err: err}
		}
		s.logger.Error("Cannot translate clause",
			"frame", frame.ID, "tag", c.Tag, "clause", c.String(), "error", err)
		s.report.Errors++
		s.metrics.clauseSkipped("error")
		return nil
	}
	if out.skipped() {
		s.logger.Warn("Clause not translated",
			"frame", frame.ID, "tag", c.Tag, "clause", c.String(), "reason", out.skip)
		s.report.skip(out.skip)
		s.metrics.clauseSkipped(out.skip)
		return nil
	}
	s.add(out.axioms...)
	return nil
}
