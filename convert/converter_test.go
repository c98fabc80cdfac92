package convert

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/c360studio/oboowl/obo"
	"github.com/c360studio/oboowl/owl"
	"github.com/c360studio/oboowl/vocabulary/oio"
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func purl(local string) owl.IRI {
	return owl.IRI(oio.OBONamespace + local)
}

func convert(t *testing.T, src string, opts ...Option) (*owl.Ontology, *Report) {
	t.Helper()
	doc, err := obo.ParseString(src)
	require.NoError(t, err)
	ont := owl.NewOntology()
	opts = append([]Option{WithLogger(quietLogger)}, opts...)
	report, err := New(opts...).Convert(context.Background(), doc, ont)
	require.NoError(t, err)
	return ont, report
}

func renderings(axioms []owl.Axiom) []string {
	out := make([]string, len(axioms))
	for i, a := range axioms {
		out[i] = a.String()
	}
	sort.Strings(out)
	return out
}

func TestConvert_SingleSubClass(t *testing.T) {
	ont, report := convert(t, "[Term]\nid: FOO:1\nis_a: FOO:2\n")

	want := renderings([]owl.Axiom{
		owl.NewDeclaration(owl.NewClass(purl("FOO_1"))),
		owl.NewSubClassOf(owl.Class{IRI: purl("FOO_1")}, owl.Class{IRI: purl("FOO_2")}),
	})
	assert.Equal(t, want, renderings(ont.Axioms(owl.AnyKind)))
	assert.Equal(t, 1, report.Terms)
	assert.True(t, report.Clean())
}

func TestConvert_OntologyIdentity(t *testing.T) {
	t.Run("ontology and data version", func(t *testing.T) {
		ont, report := convert(t, "ontology: go\ndata-version: releases/2020-01-01\n")
		assert.Equal(t, purl("go.owl"), ont.IRI())
		assert.Equal(t, purl("go/releases/2020-01-01/go.owl"), ont.VersionIRI())
		assert.Equal(t, ont.IRI(), report.OntologyIRI)
		assert.Empty(t, ont.OntologyAnnotations(), "identity tags are not annotations")
	})

	t.Run("ontology only", func(t *testing.T) {
		ont, _ := convert(t, "ontology: uberon\n")
		assert.Equal(t, purl("uberon.owl"), ont.IRI())
		assert.Empty(t, ont.VersionIRI())
	})

	t.Run("absolute ontology id", func(t *testing.T) {
		ont, _ := convert(t, "ontology: http://example.org/x.owl\n")
		assert.Equal(t, owl.IRI("http://example.org/x.owl"), ont.IRI())
	})

	t.Run("no ontology tag", func(t *testing.T) {
		ont, _ := convert(t, "[Term]\nid: thing\n")
		assert.Equal(t, purl("TEMP"), ont.IRI())
		assert.True(t, ont.Contains(owl.NewDeclaration(owl.NewClass(purl("TEMP#thing")))))
	})

	t.Run("default ontology option", func(t *testing.T) {
		ont, _ := convert(t, "[Term]\nid: thing\n", WithDefaultOntology("mine"))
		assert.Equal(t, purl("mine.owl"), ont.IRI())
		assert.True(t, ont.Contains(owl.NewDeclaration(owl.NewClass(purl("mine#thing")))))
	})
}

func TestConvert_DeclarationsOnce(t *testing.T) {
	ont, report := convert(t, `[Term]
id: FOO:1
relationship: BFO:0000050 FOO:2
relationship: BFO:0000051 FOO:2

[Term]
id: FOO:2
`)
	assert.True(t, ont.Contains(owl.NewDeclaration(owl.NewClass(purl("FOO_2")))))
	assert.Equal(t, len(ont.Axioms(owl.KindDeclaration)), report.Axioms[owl.KindDeclaration.String()],
		"every declaration reaches the sink once")
	assert.Len(t, ont.Axioms(owl.KindSubClassOf), 2)
}

func TestAltID_Pattern(t *testing.T) {
	s, _ := newTestSession(t, docWithOntology("go"))
	owner := purl("FOO_1")
	out, err := s.altID(owner, owl.KindClass, obo.NewClause("alt_id", "FOO:9"))
	require.NoError(t, err)

	alt := purl("FOO_9")
	want := renderings([]owl.Axiom{
		owl.NewDeclaration(owl.NewClass(alt)),
		owl.NewAnnotationAssertion(oio.OWLDeprecated, alt, owl.NewBoolLiteral(true)),
		owl.NewAnnotationAssertion(oio.IAOTermReplacedBy, alt, owner),
		owl.NewAnnotationAssertion(oio.IAOObsolescenceReason, alt, owl.IRI(oio.IAOTermsMerged)),
	})
	assert.Equal(t, want, renderings(out.axioms))

	out, err = s.altID(purl("BFO_0000050"), owl.KindObjectProperty, obo.NewClause("alt_id", "BFO:0000051"))
	require.NoError(t, err)
	assert.Contains(t, renderings(out.axioms), owl.NewDeclaration(owl.NewObjectProperty(purl("BFO_0000051"))).String())
}

func TestConvert_AltIDOnTerm(t *testing.T) {
	ont, _ := convert(t, "ontology: foo\n[Term]\nid: FOO:1\nalt_id: FOO:9\n")
	alt := purl("FOO_9")
	assert.True(t, ont.Contains(owl.NewDeclaration(owl.NewClass(alt))))
	assert.True(t, ont.Contains(owl.NewAnnotationAssertion(oio.IAOTermReplacedBy, alt, purl("FOO_1"))))
	assert.True(t, ont.Contains(owl.NewAnnotationAssertion(
		owl.IRI(oio.TagIRI("alt_id")), purl("FOO_1"), owl.NewStringLiteral("FOO:9"))),
		"alt_id is also recorded on the owner")
}

func TestTranslation_Idempotent(t *testing.T) {
	frame := obo.NewFrame("FOO:1", obo.TermFrame)
	frame.Add("alt_id", "FOO:9")
	frame.Add("name", "one")
	frame.Add("def", "the first").AddXref(obo.Xref{ID: "PMID:1"})
	frame.Add("synonym", "uno", "EXACT", "FOO:spanish")
	frame.Add("xref", obo.Xref{ID: "Wikipedia:One", Annotation: "wiki"})
	frame.Add("subset", "goslim")
	frame.Add("comment", "x").AddQualifier("source", "me")

	run := func() []string {
		doc := docWithOntology("foo")
		require.NoError(t, doc.AddTermFrame(frame))
		s, ont := newTestSession(t, doc)
		for _, c := range frame.Clauses("alt_id") {
			out, err := s.altID(purl("FOO_1"), owl.KindClass, c)
			require.NoError(t, s.apply(frame, c, out, err))
		}
		for _, tag := range frame.Tags() {
			for _, c := range frame.Clauses(tag) {
				out, err := s.genericClause(purl("FOO_1"), c)
				require.NoError(t, s.apply(frame, c, out, err))
			}
		}
		return renderings(ont.Axioms(owl.AnyKind))
	}

	first := run()
	assert.NotEmpty(t, first)
	assert.Equal(t, first, run())
}

func TestGenericClause(t *testing.T) {
	subject := purl("FOO_1")

	tests := []struct {
		name   string
		clause *obo.Clause
		want   owl.Axiom
	}{
		{
			name:   "name",
			clause: obo.NewClause("name", "one"),
			want:   owl.NewAnnotationAssertion(vocabulary.RdfsLabel, subject, owl.NewStringLiteral("one")),
		},
		{
			name:   "def with xref",
			clause: obo.NewClause("def", "the first").AddXref(obo.Xref{ID: "PMID:1"}),
			want: owl.NewAnnotationAssertion(oio.IAODefinition, subject, owl.NewStringLiteral("the first"),
				owl.NewAnnotation(oio.OIOHasDbXref, owl.NewStringLiteral("PMID:1"))),
		},
		{
			name:   "subset",
			clause: obo.NewClause("subset", "goslim"),
			want:   owl.NewAnnotationAssertion(oio.OIOInSubset, subject, purl("foo#goslim")),
		},
		{
			name:   "property value entity",
			clause: obo.NewClause("property_value", "IAO:0000117", "FOO:2"),
			want:   owl.NewAnnotationAssertion(purl("IAO_0000117"), subject, purl("FOO_2")),
		},
		{
			name:   "property value xsd literal",
			clause: obo.NewClause("property_value", "IAO:0000589", "one (FOO)", "xsd:string"),
			want:   owl.NewAnnotationAssertion(purl("IAO_0000589"), subject, owl.NewStringLiteral("one (FOO)")),
		},
		{
			name:   "property value absolute datatype",
			clause: obo.NewClause("property_value", "IAO:0000589", "3", "http://example.org/dt"),
			want: owl.NewAnnotationAssertion(purl("IAO_0000589"), subject,
				owl.NewTypedLiteral("3", "http://example.org/dt")),
		},
		{
			name:   "synonym with type",
			clause: obo.NewClause("synonym", "uno", "EXACT", "FOO:spanish"),
			want: owl.NewAnnotationAssertion(oio.OIOHasExactSynonym, subject, owl.NewStringLiteral("uno"),
				owl.NewAnnotation(oio.OIOHasSynonymType, purl("FOO_spanish"))),
		},
		{
			name:   "synonym without scope",
			clause: obo.NewClause("synonym", "one-ish"),
			want:   owl.NewAnnotationAssertion(oio.OIOHasRelatedSynonym, subject, owl.NewStringLiteral("one-ish")),
		},
		{
			name:   "synonym custom scope",
			clause: obo.NewClause("synonym", "uno", "FOO:scope"),
			want:   owl.NewAnnotationAssertion(purl("FOO_scope"), subject, owl.NewStringLiteral("uno")),
		},
		{
			name:   "xref with label",
			clause: obo.NewClause("xref", obo.Xref{ID: "Wikipedia:One", Annotation: "wiki"}),
			want: owl.NewAnnotationAssertion(oio.OIOHasDbXref, subject, owl.NewStringLiteral("Wikipedia:One"),
				owl.NewAnnotation(vocabulary.RdfsLabel, owl.NewStringLiteral("wiki"))),
		},
		{
			name:   "obsolete flag",
			clause: obo.NewClause("is_obsolete", true),
			want:   owl.NewAnnotationAssertion(oio.OWLDeprecated, subject, owl.NewBoolLiteral(true)),
		},
		{
			name:   "unknown tag with qualifier",
			clause: obo.NewClause("made_up", "v").AddQualifier("source", "me").AddQualifier("gci_filler", "X:1"),
			want: owl.NewAnnotationAssertion(owl.IRI(oio.OIONamespace+"made_up"), subject, owl.NewStringLiteral("v"),
				owl.NewAnnotation(owl.IRI(oio.OIONamespace+"source"), owl.NewStringLiteral("me"))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t, docWithOntology("foo"))
			out, err := s.genericClause(subject, tt.clause)
			require.NoError(t, err)
			require.Len(t, out.axioms, 1)
			assert.Equal(t, tt.want.String(), out.axioms[0].String())
		})
	}
}

func TestGenericClause_PropertyValueArity(t *testing.T) {
	s, _ := newTestSession(t, docWithOntology("foo"))
	out, err := s.genericClause(purl("FOO_1"), obo.NewClause("property_value", "IAO:0000117"))
	require.NoError(t, err)
	assert.True(t, out.skipped())
	assert.Equal(t, skipPropertyValueArity, out.skip)
}

func TestTagProperty_DeclaredOnceWithLabel(t *testing.T) {
	s, ont := newTestSession(t, docWithOntology("foo"))
	s.tagProperty("def")
	s.tagProperty("def")

	def := owl.IRI(oio.IAODefinition)
	assert.True(t, ont.Contains(owl.NewDeclaration(owl.NewAnnotationProperty(def))))
	assert.True(t, ont.Contains(owl.NewAnnotationAssertion(vocabulary.RdfsLabel, def, owl.NewStringLiteral("definition"))))
	assert.Equal(t, 2, ont.Len())
}

func TestConvert_Header(t *testing.T) {
	ont, report := convert(t, `format-version: 1.2
ontology: go
date: 17:03:2020 10:52
subsetdef: goslim "Generic slim"
synonymtypedef: systematic "Systematic synonym" EXACT
remark: a remark
property_value: IAO:0000700 GO:0005575
import: http://example.org/imported.owl
idspace: GOX http://example.org/gox/
owl-axioms: SubClassOf(<http://example.org/a> <http://example.org/b>)
`)

	anns := map[string]bool{}
	for _, a := range ont.OntologyAnnotations() {
		anns[a.String()] = true
	}
	assert.True(t, anns[owl.NewAnnotation(oio.OIONamespace+"hasOBOFormatVersion", owl.NewStringLiteral("1.2")).String()])
	assert.True(t, anns[owl.NewAnnotation(oio.OIONamespace+"date", owl.NewStringLiteral("17:03:2020 10:52")).String()])
	assert.True(t, anns[owl.NewAnnotation(vocabulary.RdfsComment, owl.NewStringLiteral("a remark")).String()])
	assert.True(t, anns[owl.NewAnnotation(purl("IAO_0000700"), purl("GO_0005575")).String()])
	assert.Len(t, anns, 4, "ontology, idspace, import and owl-axioms are not annotations")

	slim := purl("go#goslim")
	assert.True(t, ont.Contains(owl.NewSubAnnotationPropertyOf(slim, oio.OIOSubsetProperty)))
	assert.True(t, ont.Contains(owl.NewAnnotationAssertion(vocabulary.RdfsComment, slim, owl.NewStringLiteral("Generic slim"))))
	assert.True(t, ont.Contains(owl.NewDeclaration(owl.NewAnnotationProperty(slim))))

	sys := purl("go#systematic")
	assert.True(t, ont.Contains(owl.NewSubAnnotationPropertyOf(sys, oio.OIOSynonymTypeProperty)))
	assert.True(t, ont.Contains(owl.NewAnnotationAssertion(vocabulary.RdfsLabel, sys, owl.NewStringLiteral("Systematic synonym"))))
	assert.True(t, ont.Contains(owl.NewAnnotationAssertion(oio.OIOHasScope, sys, owl.IRI(oio.OIOHasExactSynonym))))

	assert.Equal(t, []owl.IRI{"http://example.org/imported.owl"}, ont.Imports())
	assert.Equal(t, []owl.IRI{"http://example.org/imported.owl"}, report.Imports)
	assert.Equal(t, []string{"SubClassOf(<http://example.org/a> <http://example.org/b>)"}, ont.RawAxioms())
}

func TestHeader_Date(t *testing.T) {
	doc := docWithOntology("go")
	doc.Header.Add("date", time.Date(2021, 4, 5, 6, 7, 0, 0, time.UTC))
	s, ont := newTestSession(t, doc)
	require.NoError(t, s.translateHeader())
	require.Len(t, ont.OntologyAnnotations(), 1)
	assert.Equal(t, owl.NewStringLiteral("05:04:2021 06:07"), ont.OntologyAnnotations()[0].Value)

	bad := docWithOntology("go")
	bad.Header.Add("date", 42)
	s, _ = newTestSession(t, bad)
	require.NoError(t, s.translateHeader(), "a bad date is not fatal")
	assert.Equal(t, 1, s.report.Errors)
}

func TestImportIRI(t *testing.T) {
	iri, err := importIRI("file:/tmp/x.obo")
	require.NoError(t, err)
	assert.Equal(t, owl.IRI("file:/tmp/x.obo"), iri)

	iri, err = importIRI("/data/ro.owl")
	require.NoError(t, err)
	assert.Equal(t, owl.IRI("file:///data/ro.owl"), iri)
}

const typedefDocument = `ontology: foo

[Typedef]
id: part_of
name: part of
xref: BFO:0000050
is_transitive: true
is_symmetric: false
inverse_of: has_part
transitive_over: located_in
holds_over_chain: has_part located_in
equivalent_to_chain: located_in has_part
domain: FOO:1
range: FOO:2
disjoint_from: located_in
is_a: overlaps
intersection_of: overlaps
alt_id: FOO:part
relationship: seeAlso FOO:2
relationship: located_in FOO:3

[Typedef]
id: has_part
xref: BFO:0000051

[Typedef]
id: located_in
xref: RO:0001025

[Typedef]
id: overlaps
xref: RO:0002131

[Typedef]
id: seeAlso
is_metadata_tag: true
is_a: comment_rel
`

func TestConvert_Typedefs(t *testing.T) {
	ont, report := convert(t, typedefDocument)

	partOf := purl("BFO_0000050")
	hasPart := purl("BFO_0000051")
	locatedIn := purl("RO_0001025")
	overlaps := purl("RO_0002131")
	seeAlso := purl("foo#seeAlso")

	expected := []owl.Axiom{
		owl.NewDeclaration(owl.NewObjectProperty(partOf)),
		owl.NewAnnotationAssertion(oio.OIOShorthand, partOf, owl.NewStringLiteral("part_of")),
		owl.NewAnnotationAssertion(vocabulary.RdfsLabel, partOf, owl.NewStringLiteral("part of")),
		owl.NewPropertyCharacteristic(owl.KindTransitiveObjectProperty, partOf),
		owl.NewAnnotationAssertion(oio.OIONamespace+"is_symmetric", partOf, owl.NewBoolLiteral(false)),
		owl.NewInverseObjectProperties(partOf, hasPart),
		owl.NewSubPropertyChainOf([]owl.IRI{partOf, locatedIn}, partOf),
		owl.NewSubPropertyChainOf([]owl.IRI{hasPart, locatedIn}, partOf),
		owl.NewSubPropertyChainOf([]owl.IRI{locatedIn, hasPart}, partOf,
			owl.NewAnnotation(oio.IAOReversiblePropertyChain, owl.NewStringLiteral("true"))),
		owl.NewObjectPropertyDomain(partOf, owl.Class{IRI: purl("FOO_1")}),
		owl.NewObjectPropertyRange(partOf, owl.Class{IRI: purl("FOO_2")}),
		owl.NewDisjointObjectProperties([]owl.IRI{partOf, locatedIn}),
		owl.NewSubObjectPropertyOf(partOf, overlaps),
		owl.NewDeclaration(owl.NewObjectProperty(purl("FOO_part"))),
		owl.NewAnnotationAssertion(seeAlso, partOf, purl("FOO_2")),
		owl.NewDeclaration(owl.NewAnnotationProperty(seeAlso)),
		owl.NewAnnotationAssertion(oio.OIONamespace+"is_metadata_tag", seeAlso, owl.NewBoolLiteral(true)),
	}
	for _, a := range expected {
		assert.True(t, ont.Contains(a), a.String())
	}

	assert.Empty(t, ont.Axioms(owl.KindSubAnnotationPropertyOf), "is_a between metadata relations is not translated")
	assert.Equal(t, 1, report.Skipped[skipRelationBoolean])
	assert.Equal(t, 1, report.Skipped[skipMetadataIsA])
	assert.Equal(t, 1, report.Skipped[skipRelationRelationship])
	assert.Equal(t, 4, report.Typedefs)
	assert.Equal(t, 1, report.MetadataProperties)
	assert.True(t, report.Clean())
}

func TestConvert_TermClauses(t *testing.T) {
	ont, _ := convert(t, `ontology: foo

[Typedef]
id: seeAlso
is_metadata_tag: true

[Term]
id: FOO:1
is_a: FOO:2 {gci_relation="BFO:0000050", gci_filler="FOO:8", source="me"}
relationship: BFO:0000050 FOO:3 {cardinality="2"}
relationship: seeAlso FOO:4
disjoint_from: FOO:5
equivalent_to: FOO:6
`)
	cls := owl.Class{IRI: purl("FOO_1")}
	gci := owl.IntersectionOf(cls, owl.ObjectSomeValuesFrom{Property: purl("BFO_0000050"), Filler: owl.Class{IRI: purl("FOO_8")}})

	expected := []owl.Axiom{
		owl.NewSubClassOf(gci, owl.Class{IRI: purl("FOO_2")},
			owl.NewAnnotation(oio.OIONamespace+"source", owl.NewStringLiteral("me"))),
		owl.NewSubClassOf(cls, owl.ObjectExactCardinality{N: 2, Property: purl("BFO_0000050"), Filler: owl.Class{IRI: purl("FOO_3")}}),
		owl.NewAnnotationAssertion(purl("foo#seeAlso"), cls.IRI, purl("FOO_4")),
		owl.NewDisjointClasses([]owl.ClassExpression{cls, owl.Class{IRI: purl("FOO_5")}}),
		owl.NewEquivalentClasses([]owl.ClassExpression{cls, owl.Class{IRI: purl("FOO_6")}}),
		owl.NewDeclaration(owl.NewClass(purl("FOO_8"))),
		owl.NewDeclaration(owl.NewClass(purl("FOO_3"))),
	}
	for _, a := range expected {
		assert.True(t, ont.Contains(a), a.String())
	}
	assert.Len(t, ont.Axioms(owl.KindSubClassOf), 2)
}

func TestConvert_BooleanDefinitions(t *testing.T) {
	ont, report := convert(t, `ontology: foo

[Term]
id: FOO:1
intersection_of: FOO:2 {source="a"}
intersection_of: BFO:0000050 FOO:3 {source="b"}

[Term]
id: FOO:4
union_of: FOO:5
union_of: FOO:6
`)
	cls := owl.Class{IRI: purl("FOO_1")}
	def := owl.IntersectionOf(owl.Class{IRI: purl("FOO_2")},
		owl.ObjectSomeValuesFrom{Property: purl("BFO_0000050"), Filler: owl.Class{IRI: purl("FOO_3")}})
	src := owl.IRI(oio.OIONamespace + "source")
	assert.True(t, ont.Contains(owl.NewEquivalentClasses([]owl.ClassExpression{cls, def},
		owl.NewAnnotation(src, owl.NewStringLiteral("a")),
		owl.NewAnnotation(src, owl.NewStringLiteral("b")))))

	union := owl.UnionOf(owl.Class{IRI: purl("FOO_5")}, owl.Class{IRI: purl("FOO_6")})
	assert.True(t, ont.Contains(owl.NewEquivalentClasses([]owl.ClassExpression{owl.Class{IRI: purl("FOO_4")}, union})))
	assert.Len(t, ont.Axioms(owl.KindEquivalentClasses), 2)
	assert.Equal(t, 0, report.Rewritten)
}

func TestConvert_ViewRelation(t *testing.T) {
	ont, report := convert(t, `ontology: foo
logical-definition-view-relation: BFO:0000051

[Term]
id: FOO:1
intersection_of: FOO:2
intersection_of: BFO:0000050 FOO:3

[Term]
id: FOO:7
equivalent_to: FOO:8
`)
	view := purl("BFO_0000051")
	def := owl.IntersectionOf(owl.Class{IRI: purl("FOO_2")},
		owl.ObjectSomeValuesFrom{Property: purl("BFO_0000050"), Filler: owl.Class{IRI: purl("FOO_3")}})

	rewritten := owl.NewEquivalentClasses([]owl.ClassExpression{
		owl.Class{IRI: purl("FOO_1")},
		owl.ObjectSomeValuesFrom{Property: view, Filler: def},
	})
	original := owl.NewEquivalentClasses([]owl.ClassExpression{owl.Class{IRI: purl("FOO_1")}, def})

	assert.True(t, ont.Contains(rewritten))
	assert.False(t, ont.Contains(original))
	assert.True(t, ont.Contains(owl.NewEquivalentClasses([]owl.ClassExpression{
		owl.Class{IRI: purl("FOO_7")}, owl.Class{IRI: purl("FOO_8")},
	})), "two named classes are left alone")
	assert.Equal(t, 1, report.Rewritten)
}

func TestConvert_RecoverableErrors(t *testing.T) {
	ont, report := convert(t, `ontology: foo

[Term]
id: FOO:1
property_value: IAO:0000117
relationship: BFO:0000050 FOO:3 {cardinality="lots"}
relationship: BFO:0000050
is_a: FOO:2

[Instance]
id: FOO:i1
`)
	assert.True(t, ont.Contains(owl.NewSubClassOf(owl.Class{IRI: purl("FOO_1")}, owl.Class{IRI: purl("FOO_2")})))
	assert.Equal(t, 2, report.Errors)
	assert.Equal(t, 1, report.Skipped[skipPropertyValueArity])
	assert.Equal(t, 1, report.Skipped[skipInstanceFrame])
	assert.Equal(t, 1, report.Instances)
	assert.False(t, report.Clean())
}

func TestConvert_FatalErrors(t *testing.T) {
	t.Run("space in identifier", func(t *testing.T) {
		doc, err := obo.ParseString("[Term]\nid: FOO:1\nis_a: FOO 2\n")
		require.NoError(t, err)
		_, err = New(WithLogger(quietLogger)).Convert(context.Background(), doc, owl.NewOntology())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIdentifier)
		assert.True(t, IsFatal(err))

		var ce *ClauseError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "FOO:1", ce.Frame)
	})

	t.Run("space in frame id", func(t *testing.T) {
		doc := obo.NewDocument()
		require.NoError(t, doc.AddTermFrame(obo.NewFrame("FOO 1", obo.TermFrame)))
		_, err := New(WithLogger(quietLogger)).Convert(context.Background(), doc, owl.NewOntology())
		assert.ErrorIs(t, err, ErrInvalidIdentifier)
	})

	t.Run("missing frame id", func(t *testing.T) {
		doc := obo.NewDocument()
		require.NoError(t, doc.AddTypedefFrame(obo.NewFrame("", obo.TypedefFrame)))
		_, err := New(WithLogger(quietLogger)).Convert(context.Background(), doc, owl.NewOntology())
		assert.ErrorIs(t, err, ErrMissingFrameID)
	})

	t.Run("nil inputs", func(t *testing.T) {
		_, err := New().Convert(context.Background(), nil, owl.NewOntology())
		assert.ErrorIs(t, err, ErrNilDocument)
		_, err = New().Convert(context.Background(), obo.NewDocument(), nil)
		assert.ErrorIs(t, err, ErrNilSink)
	})
}

// rejectingSink fails every subclass axiom.
type rejectingSink struct {
	*owl.Ontology
}

var errRejected = errors.New("rejected")

func (r rejectingSink) AddAxiom(a owl.Axiom) error {
	if a.Kind() == owl.KindSubClassOf {
		return errRejected
	}
	return r.Ontology.AddAxiom(a)
}

func TestConvert_SinkErrorsAreNotFatal(t *testing.T) {
	doc, err := obo.ParseString("[Term]\nid: FOO:1\nis_a: FOO:2\nname: one\n")
	require.NoError(t, err)
	sink := rejectingSink{owl.NewOntology()}

	report, err := New(WithLogger(quietLogger)).Convert(context.Background(), doc, sink)
	require.NoError(t, err)
	assert.Equal(t, 1, report.SinkErrors)
	assert.Empty(t, sink.Axioms(owl.KindSubClassOf))
	assert.NotEmpty(t, sink.Axioms(owl.KindAnnotationAssertion))
}

func TestConvert_SessionsAreIndependent(t *testing.T) {
	doc, err := obo.ParseString(typedefDocument)
	require.NoError(t, err)
	c := New(WithLogger(quietLogger))

	var wg sync.WaitGroup
	results := make([][]string, 4)
	ids := make([]string, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ont := owl.NewOntology()
			report, err := c.Convert(context.Background(), doc, ont)
			assert.NoError(t, err)
			results[i] = renderings(ont.Axioms(owl.AnyKind))
			ids[i] = report.SessionID
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		assert.Equal(t, results[0], results[i])
		assert.NotEqual(t, ids[0], ids[i])
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics("test", reg)
	require.NoError(t, err)

	convert(t, "[Term]\nid: FOO:1\nis_a: FOO:2\n", WithMetrics(m))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.conversions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.axioms.WithLabelValues("SubClassOf")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.activeSession))

	none, err := NewMetrics("test", nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestConvert_DocumentIsNotModified(t *testing.T) {
	doc := &obo.Document{}
	require.NoError(t, doc.AddTermFrame(obo.NewFrame("FOO:1", obo.TermFrame)))
	c := New(WithLogger(quietLogger))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ont := owl.NewOntology()
			_, err := c.Convert(context.Background(), doc, ont)
			assert.NoError(t, err)
			assert.True(t, ont.Contains(owl.NewDeclaration(owl.NewClass(purl("FOO_1")))))
		}()
	}
	wg.Wait()

	assert.Nil(t, doc.Header, "header-less document keeps a nil header")
}

func TestConvert_Cancelled(t *testing.T) {
	doc, err := obo.ParseString(typedefDocument)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New(WithLogger(quietLogger)).Convert(ctx, doc, owl.NewOntology())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, IsFatal(err))
}
