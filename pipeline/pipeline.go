// Package pipeline runs a parsed document through conversion, serialization
// and optional persistence.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/c360studio/oboowl/convert"
	"github.com/c360studio/oboowl/export"
	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/owl"
	"github.com/c360studio/oboowl/storage"
)

// Pipeline converts documents and serializes the result.
type Pipeline struct {
	converter *convert.Converter
	format    export.Format
	store     *storage.Store
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStore persists every successful conversion.
func WithStore(s *storage.Store) Option {
	return func(p *Pipeline) { p.store = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a Pipeline writing format.
func New(converter *convert.Converter, format export.Format, opts ...Option) (*Pipeline, error) {
	if _, ok := export.GetFormatInfo(format); !ok {
		return nil, fmt.Errorf("%w: %s", export.ErrUnsupportedFormat, format)
	}
	p := &Pipeline{converter: converter, format: format, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Format returns the output format.
func (p *Pipeline) Format() export.Format { return p.format }

// Result is the outcome of one run.
type Result struct {
	Output   string          `json:"output"`
	Format   export.Format   `json:"format"`
	Report   *convert.Report `json:"report"`
	StoredID string          `json:"stored_id,omitempty"`
}

// sink is what a run writes into: an owl.Sink that can be serialized.
type sink interface {
	owl.Sink
	export.Source
}

// Run converts doc. name labels the stored ontology. An aborted conversion
// produces no output and leaves nothing in the store.
func (p *Pipeline) Run(ctx context.Context, name string, doc *obo.Document) (*Result, error) {
	var (
		target sink = owl.NewOntology()
		stored *storage.Sink
	)
	if p.store != nil {
		s, err := p.store.Begin(ctx, name)
		if err != nil {
			return nil, err
		}
		target, stored = s, s
	}

	discard := func() {
		if stored == nil {
			return
		}
		if derr := stored.Discard(); derr != nil {
			p.logger.Warn("Failed to discard partial ontology", "id", stored.ID(), "error", derr)
		}
	}

	report, err := p.converter.Convert(ctx, doc, target)
	if err != nil {
		discard()
		return &Result{Report: report, Format: p.format}, fmt.Errorf("convert %s: %w", name, err)
	}

	out, err := export.Export(target, p.format)
	if err != nil {
		discard()
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		discard()
		return &Result{Report: report, Format: p.format}, fmt.Errorf("convert %s: %w", name, err)
	}

	res := &Result{Output: out, Format: p.format, Report: report}
	if stored != nil {
		if err := stored.Commit(); err != nil {
			return nil, err
		}
		res.StoredID = stored.ID()
	}
	return res, nil
}

// OntologyName returns the ontology header value of doc, or fallback.
func OntologyName(doc *obo.Document, fallback string) string {
	if doc != nil && doc.Header != nil {
		if name := obo.ValueString(doc.Header.TagValue(obo.TagOntology.String())); name != "" {
			return name
		}
	}
	return fallback
}
