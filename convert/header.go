package convert

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/owl"
	"github.com/c360studio/oboowl/vocabulary/oio"
	"github.com/c360studio/semstreams/vocabulary"
)

// tempIDSpace is the id space of a document without an ontology tag.
const tempIDSpace = "TEMP"

type clauseHandler func(s *session, c *obo.Clause) (outcome, error)

var headerHandlers map[obo.Tag]clauseHandler

func init() {
	headerHandlers = map[obo.Tag]clauseHandler{
		obo.TagOntology:       ignoreClause,
		obo.TagDataVersion:    ignoreClause,
		obo.TagImport:         ignoreClause,
		obo.TagIDSpace:        ignoreClause,
		obo.TagSubsetdef:      subsetdefHeader,
		obo.TagSynonymTypedef: synonymTypedefHeader,
		obo.TagDate:           dateHeader,
		obo.TagPropertyValue:  propertyValueHeader,
		obo.TagRemark:         remarkHeader,
		obo.TagOWLAxioms:      rawAxiomsHeader,
	}
}

// loadDirectives reads the header tags that configure identifier
// resolution. Converter options take precedence over the document.
func (s *session) loadDirectives() {
	hf := s.header
	for _, c := range hf.Clauses(obo.TagIDSpace.String()) {
		if len(c.Values) < 2 {
			s.logger.Warn("Ignoring idspace without URI prefix", "clause", c.String())
			continue
		}
		ns := obo.ValueString(c.Values[0])
		if _, ok := s.idSpaces[ns]; !ok {
			s.idSpaces[ns] = obo.ValueString(c.Values[1])
		}
	}
	for _, v := range hf.TagValues(obo.TagTreatXrefsAsEquivalent.String()) {
		s.equivalentXrefNS[obo.ValueString(v)] = true
	}
}

// identity sets the ontology IRI and version IRI and fixes the default id
// space for the session.
func (s *session) identity(defaultOntology string) {
	hf := s.header
	id := strings.TrimSpace(obo.ValueString(hf.TagValue(obo.TagOntology.String())))
	if id == "" {
		id = defaultOntology
	}

	var iri, version owl.IRI
	switch {
	case id == "":
		s.defaultIDSpace = tempIDSpace
		iri = owl.IRI(oio.OBONamespace + tempIDSpace)
	case strings.Contains(id, ":"):
		s.defaultIDSpace = id
		iri = owl.IRI(id)
	default:
		s.defaultIDSpace = id
		iri = owl.IRI(oio.OBONamespace + id + ".owl")
	}
	if dv := obo.ValueString(hf.TagValue(obo.TagDataVersion.String())); id != "" && dv != "" {
		version = owl.IRI(oio.OBONamespace + id + "/" + dv + "/" + id + ".owl")
	}

	if err := s.sink.SetOntologyIdentity(iri, version); err != nil {
		s.logger.Error("Sink rejected ontology identity", "iri", string(iri), "error", err)
		s.report.SinkErrors++
		return
	}
	s.report.OntologyIRI = iri
	s.report.VersionIRI = version
}

// translateHeader turns header clauses into ontology annotations and
// header-level axioms, in the header's own tag order.
func (s *session) translateHeader() error {
	hf := s.header
	for _, tag := range hf.Tags() {
		h, ok := headerHandlers[obo.LookupTag(tag)]
		if !ok {
			h = literalHeader
		}
		for _, c := range hf.Clauses(tag) {
			out, err := h(s, c)
			if fatal := s.apply(hf, c, out, err); fatal != nil {
				return fatal
			}
		}
	}
	return nil
}

func ignoreClause(*session, *obo.Clause) (outcome, error) {
	return outcome{}, nil
}

func subsetdefHeader(s *session, c *obo.Clause) (outcome, error) {
	if len(c.Values) == 0 {
		return outcome{}, ErrMissingValue
	}
	child, err := s.propertyIRI(c.StringValue())
	if err != nil {
		return outcome{}, err
	}
	s.declare(owl.NewAnnotationProperty(child))
	axioms := []owl.Axiom{
		owl.NewSubAnnotationPropertyOf(child, s.tagProperty(c.Tag), s.clauseAnnotations(c)...),
	}
	if len(c.Values) > 1 {
		axioms = append(axioms,
			owl.NewAnnotationAssertion(s.tagProperty(obo.TagComment.String()), child, literal(c.Value2())))
	}
	return emit(axioms...), nil
}

func synonymTypedefHeader(s *session, c *obo.Clause) (outcome, error) {
	if len(c.Values) == 0 {
		return outcome{}, ErrMissingValue
	}
	child, err := s.propertyIRI(c.StringValue())
	if err != nil {
		return outcome{}, err
	}
	s.declare(owl.NewAnnotationProperty(child))
	axioms := []owl.Axiom{
		owl.NewSubAnnotationPropertyOf(child, s.tagProperty(c.Tag), s.clauseAnnotations(c)...),
	}
	if len(c.Values) > 1 {
		axioms = append(axioms,
			owl.NewAnnotationAssertion(s.tagProperty(obo.TagName.String()), child, literal(c.Value2())))
	}
	if len(c.Values) > 2 {
		if scope := obo.ValueString(c.Values[2]); scope != "" {
			axioms = append(axioms,
				owl.NewAnnotationAssertion(s.tagProperty(tagScope), child, s.tagProperty(scope)))
		}
	}
	return emit(axioms...), nil
}

func dateHeader(s *session, c *obo.Clause) (outcome, error) {
	var date string
	switch v := c.Value().(type) {
	case time.Time:
		date = v.Format(obo.DateLayout)
	case string:
		date = v
	default:
		return outcome{}, ErrInvalidDate
	}
	s.addOntologyAnnotation(owl.NewAnnotation(s.tagProperty(c.Tag), owl.NewStringLiteral(date), s.clauseAnnotations(c)...))
	return outcome{}, nil
}

func propertyValueHeader(s *session, c *obo.Clause) (outcome, error) {
	p, value, ok, err := s.propertyValue(c)
	if err != nil {
		return outcome{}, err
	}
	if !ok {
		return skip(skipPropertyValueArity), nil
	}
	s.addOntologyAnnotation(owl.NewAnnotation(p, value, s.clauseAnnotations(c)...))
	return outcome{}, nil
}

func remarkHeader(s *session, c *obo.Clause) (outcome, error) {
	s.addOntologyAnnotation(owl.NewAnnotation(vocabulary.RdfsComment, literal(c.Value()), s.clauseAnnotations(c)...))
	return outcome{}, nil
}

func rawAxiomsHeader(s *session, c *obo.Clause) (outcome, error) {
	if err := s.sink.AddRawAxioms(c.StringValue()); err != nil {
		s.logger.Error("Sink rejected raw axioms", "error", err)
		s.report.SinkErrors++
		return outcome{}, nil
	}
	s.report.RawAxiomBlocks++
	return outcome{}, nil
}

func literalHeader(s *session, c *obo.Clause) (outcome, error) {
	s.addOntologyAnnotation(owl.NewAnnotation(s.tagProperty(c.Tag), literal(c.Value()), s.clauseAnnotations(c)...))
	return outcome{}, nil
}

// requestImports registers every header import with the sink. Imported
// ontologies are never loaded.
func (s *session) requestImports() {
	for _, v := range s.header.TagValues(obo.TagImport.String()) {
		ref := obo.ValueString(v)
		iri, err := importIRI(ref)
		if err != nil {
			s.logger.Error("Cannot resolve import", "import", ref, "error", err)
			s.report.Errors++
			continue
		}
		if err := s.sink.RequestImport(iri); err != nil {
			s.logger.Error("Sink rejected import", "import", string(iri), "error", err)
			s.report.SinkErrors++
			continue
		}
		s.report.Imports = append(s.report.Imports, iri)
	}
}

// importIRI keeps absolute references and turns anything else into a file
// URI of its absolute path.
func importIRI(ref string) (owl.IRI, error) {
	if strings.HasPrefix(ref, "file:") {
		return owl.IRI(ref), nil
	}
	for _, scheme := range absoluteSchemes {
		if strings.HasPrefix(ref, scheme) {
			return owl.IRI(ref), nil
		}
	}
	abs, err := filepath.Abs(ref)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return owl.IRI(u.String()), nil
}
