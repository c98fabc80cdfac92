package oio

import (
	"strings"

	"github.com/c360studio/semstreams/vocabulary"
)

// predicateDomain is the dotted-notation prefix for registered OBO tags.
const predicateDomain = "obo.annotation."

// Term is one row of the tag table.
type Term struct {
	// Tag is the OBO tag name as it appears in a document.
	Tag string

	// IRI is the annotation property that carries the tag in OWL.
	IRI string

	// Label is the rdfs:label emitted for vocabulary properties. Empty for
	// properties owned by another vocabulary (rdfs:label, owl:deprecated).
	Label string
}

// terms is the tag table. It is the only source for tagIndex and is never
// modified after package initialization.
var terms = []Term{
	{Tag: "is_obsolete", IRI: OWLDeprecated},
	{Tag: "name", IRI: vocabulary.RdfsLabel},
	{Tag: "comment", IRI: vocabulary.RdfsComment},

	{Tag: "expand_expression_to", IRI: OBONamespace + "IAO_0000424", Label: "expand expression to"},
	{Tag: "expand_assertion_to", IRI: OBONamespace + "IAO_0000425", Label: "expand assertion to"},
	{Tag: "def", IRI: IAODefinition, Label: "definition"},
	{Tag: "replaced_by", IRI: IAOTermReplacedBy, Label: "term replaced by"},

	{Tag: "consider", IRI: OIONamespace + "consider", Label: "consider"},
	{Tag: "format-version", IRI: OIONamespace + "hasOBOFormatVersion", Label: "has_obo_format_version"},
	{Tag: "treat-xrefs-as-equivalent", IRI: OIONamespace + "treat-xrefs-as-equivalent", Label: "treat-xrefs-as-equivalent"},
	{Tag: "treat-xrefs-as-is_a", IRI: OIONamespace + "treat-xrefs-as-is_a", Label: "treat-xrefs-as-is_a"},
	{Tag: "treat-xrefs-as-genus-differentia", IRI: OIONamespace + "treat-xrefs-as-genus-differentia", Label: "treat-xrefs-as-genus-differentia"},
	{Tag: "treat-xrefs-as-reverse-genus-differentia", IRI: OIONamespace + "treat-xrefs-as-reverse-genus-differentia", Label: "treat-xrefs-as-reverse-genus-differentia"},
	{Tag: "treat-xrefs-as-relationship", IRI: OIONamespace + "treat-xrefs-as-relationship", Label: "treat-xrefs-as-relationship"},
	{Tag: "logical-definition-view-relation", IRI: OIOLogicalDefinitionViewRelation, Label: "logical-definition-view-relation"},
	{Tag: "saved-by", IRI: OIONamespace + "savedBy", Label: "saved-by"},
	{Tag: "auto-generated-by", IRI: OIONamespace + "auto-generated-by", Label: "auto-generated-by"},
	{Tag: "date", IRI: OIONamespace + "date", Label: "date"},
	{Tag: "default-namespace", IRI: OIONamespace + "hasDefaultNamespace", Label: "default-namespace"},
	{Tag: "namespace-id-rule", IRI: OIONamespace + "NamespaceIdRule", Label: "namespace-id-rule"},
	{Tag: "created_by", IRI: OIONamespace + "created_by", Label: "created_by"},
	{Tag: "creation_date", IRI: OIONamespace + "creation_date", Label: "creation_date"},
	{Tag: "subset", IRI: OIOInSubset, Label: "in_subset"},
	{Tag: "shorthand", IRI: OIOShorthand, Label: "shorthand"},
	{Tag: "xref", IRI: OIOHasDbXref, Label: "database_cross_reference"},
	{Tag: "namespace", IRI: OIONamespace + "hasOBONamespace", Label: "has_obo_namespace"},
	{Tag: "alt_id", IRI: OIONamespace + "hasAlternativeId", Label: "has_alternative_id"},
	{Tag: "EXACT", IRI: OIOHasExactSynonym, Label: "has_exact_synonym"},
	{Tag: "NARROW", IRI: OIOHasNarrowSynonym, Label: "has_narrow_synonym"},
	{Tag: "BROAD", IRI: OIOHasBroadSynonym, Label: "has_broad_synonym"},
	{Tag: "RELATED", IRI: OIOHasRelatedSynonym, Label: "has_related_synonym"},
	{Tag: "has_synonym_type", IRI: OIOHasSynonymType, Label: "has_synonym_type"},
	{Tag: "subsetdef", IRI: OIOSubsetProperty, Label: "subset_property"},
	{Tag: "synonymtypedef", IRI: OIOSynonymTypeProperty, Label: "synonym_type_property"},
	{Tag: "scope", IRI: OIOHasScope, Label: "has_scope"},
	{Tag: "is_class_level", IRI: OIONamespace + "is_class_level", Label: "is_class_level"},
	{Tag: "is_metadata_tag", IRI: OIONamespace + "is_metadata_tag", Label: "is_metadata_tag"},
	{Tag: "id", IRI: OIONamespace + "id", Label: "id"},
}

var tagIndex = buildIndex(terms)

func buildIndex(ts []Term) map[string]Term {
	idx := make(map[string]Term, len(ts))
	for _, t := range ts {
		idx[t.Tag] = t
	}
	return idx
}

// TagIRI returns the annotation property IRI for an OBO tag. Tags without an
// entry in the table map into the oboInOwl namespace.
func TagIRI(tag string) string {
	if t, ok := tagIndex[tag]; ok {
		return t.IRI
	}
	return OIONamespace + tag
}

// Lookup returns the table row for a tag.
func Lookup(tag string) (Term, bool) {
	t, ok := tagIndex[tag]
	return t, ok
}

// Terms returns a copy of the tag table in declaration order.
func Terms() []Term {
	out := make([]Term, len(terms))
	copy(out, terms)
	return out
}

// PredicateFor returns the semstreams predicate name registered for a tag.
// Dashes are folded to underscores so the name stays a single dotted segment.
func PredicateFor(tag string) string {
	return predicateDomain + strings.ReplaceAll(strings.ToLower(tag), "-", "_")
}

func init() {
	for _, t := range terms {
		desc := t.Label
		if desc == "" {
			desc = "OBO " + t.Tag + " tag"
		}
		vocabulary.Register(PredicateFor(t.Tag),
			vocabulary.WithDescription(desc),
			vocabulary.WithDataType("string"),
			vocabulary.WithIRI(t.IRI))
	}
}
