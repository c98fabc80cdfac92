package convert

import (
	"context"
	"log/slog"
	"time"

	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/owl"
)

// Converter translates OBO documents into OWL axioms. Its configuration is
// fixed at construction; every Convert call runs in a fresh session, so a
// Converter may serve concurrent calls as long as each has its own sink.
type Converter struct {
	logger           *slog.Logger
	metrics          *Metrics
	idSpaces         map[string]string
	equivalentXrefNS []string
	defaultOntology  string
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the Prometheus collectors.
func WithMetrics(m *Metrics) Option {
	return func(c *Converter) { c.metrics = m }
}

// WithIDSpace maps the id space ns to an IRI prefix, overriding the
// default http://purl.obolibrary.org/obo/NS_ convention and any idspace
// header of the document.
func WithIDSpace(ns, prefix string) Option {
	return func(c *Converter) { c.idSpaces[ns] = prefix }
}

// WithEquivalentXrefPrefixes treats relation xrefs in the given namespaces
// as equivalent to the relation, in addition to treat-xrefs-as-equivalent
// header values.
func WithEquivalentXrefPrefixes(prefixes ...string) Option {
	return func(c *Converter) { c.equivalentXrefNS = append(c.equivalentXrefNS, prefixes...) }
}

// WithDefaultOntology names the ontology of documents without an ontology
// header tag. Without it such documents use the TEMP id space.
func WithDefaultOntology(name string) Option {
	return func(c *Converter) { c.defaultOntology = name }
}

// New returns a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		logger:   slog.Default(),
		idSpaces: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert translates doc into sink. A non-nil error means the conversion
// was aborted and sink holds a partial result that must be discarded.
// Untranslatable clauses do not fail the conversion; they are logged and
// counted in the returned Report. doc is only read.
//
// Cancelling ctx aborts the conversion between frames.
func (c *Converter) Convert(ctx context.Context, doc *obo.Document, sink owl.Sink) (*Report, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if sink == nil {
		return nil, ErrNilSink
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s := newSession(ctx, c, doc, sink)
	start := time.Now()
	c.metrics.started()
	s.logger.Debug("Conversion started",
		"terms", len(doc.TermFrames()), "typedefs", len(doc.TypedefFrames()))

	err := s.run(c.defaultOntology)

	s.report.Duration = time.Since(start)
	c.metrics.finished(s.report.Duration, err)
	if err != nil {
		s.logger.Error("Conversion aborted", "error", err)
		return s.report, err
	}
	s.logger.Info("Conversion complete",
		"ontology", string(s.report.OntologyIRI),
		"axioms", s.report.AxiomCount(),
		"skipped", s.report.SkippedCount(),
		"errors", s.report.Errors,
		"duration", s.report.Duration)
	return s.report, nil
}

// run executes the passes in their fixed order. typedefPass and termPass
// take the result of metadataPass, so they cannot run before it.
func (s *session) run(defaultOntology string) error {
	s.loadDirectives()
	s.identity(defaultOntology)
	if err := s.translateHeader(); err != nil {
		return err
	}

	props, err := s.metadataPass()
	if err != nil {
		return err
	}
	if err := s.typedefPass(props); err != nil {
		return err
	}
	if err := s.termPass(props); err != nil {
		return err
	}
	if err := s.ctx.Err(); err != nil {
		return err
	}

	for _, f := range s.doc.InstanceFrames() {
		s.logger.Warn("Instance frames are not translated", "frame", f.ID)
		s.report.Instances++
		s.report.skip(skipInstanceFrame)
		s.metrics.clauseSkipped(skipInstanceFrame)
	}

	s.requestImports()
	if err := s.postProcess(); err != nil {
		return err
	}
	return s.ctx.Err()
}
