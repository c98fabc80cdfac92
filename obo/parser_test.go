package obo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `format-version: 1.2
data-version: releases/2020-01-01
date: 17:03:2020 10:52
ontology: go
subsetdef: goslim_generic "Generic GO slim"
synonymtypedef: systematic_synonym "Systematic synonym" EXACT
remark: cellular component

[Term]
id: GO:0000001
name: mitochondrion inheritance ! a comment
def: "The distribution of \"mitochondria\"." [GOC:mcc, PMID:10873824 "paper"]
synonym: "mitochondrial inheritance" EXACT []
xref: Wikipedia:Mitochondrion "wiki page"
is_a: GO:0048308 {source="GOC:jl"}
relationship: part_of GO:0005739 {minCardinality="1", maxCardinality="2"}
is_obsolete: false

[Typedef]
id: part_of
name: part of
xref: BFO:0000050
is_transitive: true

[Instance]
id: inst1
instance_of: GO:0000001
`

func TestParse_Document(t *testing.T) {
	doc, err := ParseString(sampleDocument)
	require.NoError(t, err)

	t.Run("header", func(t *testing.T) {
		assert.Equal(t, "go", doc.Header.TagValue("ontology"))
		assert.Equal(t, "releases/2020-01-01", doc.Header.TagValue("data-version"))

		date, ok := doc.Header.TagValue("date").(time.Time)
		require.True(t, ok, "date parses to time.Time")
		assert.Equal(t, "17:03:2020 10:52", date.Format(DateLayout))

		sd := doc.Header.Clause("subsetdef")
		require.NotNil(t, sd)
		assert.Equal(t, []any{"goslim_generic", "Generic GO slim"}, sd.Values)

		st := doc.Header.Clause("synonymtypedef")
		assert.Equal(t, []any{"systematic_synonym", "Systematic synonym", "EXACT"}, st.Values)
	})

	t.Run("term frame", func(t *testing.T) {
		require.Len(t, doc.TermFrames(), 1)
		f := doc.TermFrame("GO:0000001")
		require.NotNil(t, f)

		assert.Nil(t, f.Clause("id"), "id is not a clause")
		assert.Equal(t, "mitochondrion inheritance", f.TagValue("name"))
		assert.Equal(t, []string{"name", "def", "synonym", "xref", "is_a", "relationship", "is_obsolete"}, f.Tags())

		def := f.Clause("def")
		assert.Equal(t, `The distribution of "mitochondria".`, def.Value())
		assert.Equal(t, []Xref{{ID: "GOC:mcc"}, {ID: "PMID:10873824", Annotation: "paper"}}, def.Xrefs)

		syn := f.Clause("synonym")
		assert.Equal(t, []any{"mitochondrial inheritance", "EXACT"}, syn.Values)
		assert.Empty(t, syn.Xrefs)

		assert.Equal(t, []Xref{{ID: "Wikipedia:Mitochondrion", Annotation: "wiki page"}}, f.Xrefs())

		isa := f.Clause("is_a")
		assert.Equal(t, "GO:0048308", isa.Value())
		src, ok := isa.Qualifier("source")
		assert.True(t, ok)
		assert.Equal(t, "GOC:jl", src)

		rel := f.Clause("relationship")
		assert.Equal(t, []any{"part_of", "GO:0005739"}, rel.Values)
		assert.Equal(t, []Qualifier{{"minCardinality", "1"}, {"maxCardinality", "2"}}, rel.Qualifiers)

		assert.Equal(t, false, f.TagValue("is_obsolete"))
	})

	t.Run("typedef frame", func(t *testing.T) {
		f := doc.TypedefFrame("part_of")
		require.NotNil(t, f)
		assert.Equal(t, TypedefFrame, f.Type)
		assert.True(t, f.BoolValue("is_transitive"))
		assert.Equal(t, []Xref{{ID: "BFO:0000050"}}, f.Xrefs())
	})

	t.Run("instance frame", func(t *testing.T) {
		require.Len(t, doc.InstanceFrames(), 1)
		assert.Equal(t, "inst1", doc.InstanceFrames()[0].ID)
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		err   error
	}{
		{"missing id", "[Term]\nname: x\n", 1, ErrMissingID},
		{"duplicate", "[Term]\nid: A:1\n[Term]\nid: A:1\n", 3, ErrDuplicateFrame},
		{"malformed", "format-version: 1.2\nnot a tag line\n", 2, ErrMalformedLine},
		{"unknown stanza", "[Thing]\n", 1, ErrUnknownStanza},
		{"unterminated quote", "[Term]\nid: A:1\ndef: \"open [X:1]\n", 3, ErrUnterminated},
		{"unterminated qualifiers", "[Term]\nid: A:1\nis_a: A:2 {source=\"x\"\n", 3, ErrUnterminated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, IsParseError(err))

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestParse_InvalidBoolean(t *testing.T) {
	_, err := Parse(strings.NewReader("[Typedef]\nid: r\nis_transitive: maybe\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "invalid boolean")
}

func TestParse_UnparseableDateKeptAsString(t *testing.T) {
	doc, err := ParseString("date: sometime last week\n")
	require.NoError(t, err)
	assert.Equal(t, "sometime last week", doc.Header.TagValue("date"))
}

func TestParse_PropertyValue(t *testing.T) {
	doc, err := ParseString("[Term]\nid: A:1\nproperty_value: IAO:0000589 \"cell (CL)\" xsd:string\nproperty_value: seeAlso A:2\n")
	require.NoError(t, err)

	cs := doc.TermFrame("A:1").Clauses("property_value")
	require.Len(t, cs, 2)
	assert.Equal(t, []any{"IAO:0000589", "cell (CL)", "xsd:string"}, cs[0].Values)
	assert.Equal(t, []any{"seeAlso", "A:2"}, cs[1].Values)
}

func TestLookupTag(t *testing.T) {
	assert.Equal(t, TagIsA, LookupTag("is_a"))
	assert.Equal(t, TagTreatXrefsAsIsA, LookupTag("treat-xrefs-as-is_a"))
	assert.Equal(t, TagUnknown, LookupTag("made_up"))
	assert.Equal(t, "holds_over_chain", TagHoldsOverChain.String())
	assert.True(t, TagIsMetadataTag.IsBoolean())
	assert.False(t, TagName.IsBoolean())

	for tag, name := range tagNames {
		assert.Equal(t, tag, LookupTag(name), name)
	}
}

func TestDocument_DuplicateFrames(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.AddTermFrame(NewFrame("A:1", TermFrame)))
	require.NoError(t, doc.AddTypedefFrame(NewFrame("A:1", TypedefFrame)), "categories are independent")
	assert.ErrorIs(t, doc.AddTermFrame(NewFrame("A:1", TermFrame)), ErrDuplicateFrame)
}

func TestFrame_TagOrder(t *testing.T) {
	f := NewFrame("A:1", TermFrame)
	f.Add("is_a", "A:2")
	f.Add("name", "a")
	f.Add("is_a", "A:3").AddQualifier("source", "x")

	assert.Equal(t, []string{"is_a", "name"}, f.Tags())
	assert.Equal(t, []any{"A:2", "A:3"}, f.TagValues("is_a"))
	assert.Equal(t, "is_a: A:3", f.Clauses("is_a")[1].String())
}
