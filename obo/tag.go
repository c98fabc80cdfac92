package obo

// Tag is a statement tag from the closed OBO 1.4 vocabulary.
type Tag int

// Tags understood by the parser and translator. TagUnknown covers any tag
// outside the vocabulary; such clauses are still kept and translated
// generically.
const (
	TagUnknown Tag = iota

	// Header tags.
	TagFormatVersion
	TagDataVersion
	TagOntology
	TagDate
	TagSavedBy
	TagAutoGeneratedBy
	TagImport
	TagSubsetdef
	TagSynonymTypedef
	TagIDSpace
	TagDefaultRelationshipIDPrefix
	TagIDMapping
	TagRemark
	TagOWLAxioms
	TagDefaultNamespace
	TagNamespaceIDRule
	TagTreatXrefsAsEquivalent
	TagTreatXrefsAsGenusDifferentia
	TagTreatXrefsAsRelationship
	TagTreatXrefsAsIsA
	TagLogicalDefinitionViewRelation

	// Frame tags.
	TagID
	TagIsAnonymous
	TagName
	TagNamespace
	TagAltID
	TagDef
	TagComment
	TagSubset
	TagSynonym
	TagXref
	TagBuiltin
	TagPropertyValue
	TagIsA
	TagIntersectionOf
	TagUnionOf
	TagEquivalentTo
	TagDisjointFrom
	TagRelationship
	TagCreatedBy
	TagCreationDate
	TagIsObsolete
	TagReplacedBy
	TagConsider
	TagDomain
	TagRange
	TagHoldsOverChain
	TagEquivalentToChain
	TagTransitiveOver
	TagDisjointOver
	TagInverseOf
	TagIsAntiSymmetric
	TagIsCyclic
	TagIsReflexive
	TagIsSymmetric
	TagIsAsymmetric
	TagIsTransitive
	TagIsFunctional
	TagIsInverseFunctional
	TagIsMetadataTag
	TagIsClassLevel
	TagExpandAssertionTo
	TagExpandExpressionTo
	TagInstanceOf
	TagShorthand
)

var tagNames = map[Tag]string{
	TagFormatVersion:                 "format-version",
	TagDataVersion:                   "data-version",
	TagOntology:                      "ontology",
	TagDate:                          "date",
	TagSavedBy:                       "saved-by",
	TagAutoGeneratedBy:               "auto-generated-by",
	TagImport:                        "import",
	TagSubsetdef:                     "subsetdef",
	TagSynonymTypedef:                "synonymtypedef",
	TagIDSpace:                       "idspace",
	TagDefaultRelationshipIDPrefix:   "default-relationship-id-prefix",
	TagIDMapping:                     "id-mapping",
	TagRemark:                        "remark",
	TagOWLAxioms:                     "owl-axioms",
	TagDefaultNamespace:              "default-namespace",
	TagNamespaceIDRule:               "namespace-id-rule",
	TagTreatXrefsAsEquivalent:        "treat-xrefs-as-equivalent",
	TagTreatXrefsAsGenusDifferentia:  "treat-xrefs-as-genus-differentia",
	TagTreatXrefsAsRelationship:      "treat-xrefs-as-relationship",
	TagTreatXrefsAsIsA:               "treat-xrefs-as-is_a",
	TagLogicalDefinitionViewRelation: "logical-definition-view-relation",
	TagID:                            "id",
	TagIsAnonymous:                   "is_anonymous",
	TagName:                          "name",
	TagNamespace:                     "namespace",
	TagAltID:                         "alt_id",
	TagDef:                           "def",
	TagComment:                       "comment",
	TagSubset:                        "subset",
	TagSynonym:                       "synonym",
	TagXref:                          "xref",
	TagBuiltin:                       "builtin",
	TagPropertyValue:                 "property_value",
	TagIsA:                           "is_a",
	TagIntersectionOf:                "intersection_of",
	TagUnionOf:                       "union_of",
	TagEquivalentTo:                  "equivalent_to",
	TagDisjointFrom:                  "disjoint_from",
	TagRelationship:                  "relationship",
	TagCreatedBy:                     "created_by",
	TagCreationDate:                  "creation_date",
	TagIsObsolete:                    "is_obsolete",
	TagReplacedBy:                    "replaced_by",
	TagConsider:                      "consider",
	TagDomain:                        "domain",
	TagRange:                         "range",
	TagHoldsOverChain:                "holds_over_chain",
	TagEquivalentToChain:             "equivalent_to_chain",
	TagTransitiveOver:                "transitive_over",
	TagDisjointOver:                  "disjoint_over",
	TagInverseOf:                     "inverse_of",
	TagIsAntiSymmetric:               "is_anti_symmetric",
	TagIsCyclic:                      "is_cyclic",
	TagIsReflexive:                   "is_reflexive",
	TagIsSymmetric:                   "is_symmetric",
	TagIsAsymmetric:                  "is_asymmetric",
	TagIsTransitive:                  "is_transitive",
	TagIsFunctional:                  "is_functional",
	TagIsInverseFunctional:           "is_inverse_functional",
	TagIsMetadataTag:                 "is_metadata_tag",
	TagIsClassLevel:                  "is_class_level",
	TagExpandAssertionTo:             "expand_assertion_to",
	TagExpandExpressionTo:            "expand_expression_to",
	TagInstanceOf:                    "instance_of",
	TagShorthand:                     "shorthand",
}

var tagsByName = func() map[string]Tag {
	m := make(map[string]Tag, len(tagNames))
	for t, n := range tagNames {
		m[n] = t
	}
	return m
}()

// LookupTag returns the Tag for a tag name, or TagUnknown.
func LookupTag(name string) Tag {
	if t, ok := tagsByName[name]; ok {
		return t
	}
	return TagUnknown
}

// String returns the tag name as written in documents.
func (t Tag) String() string {
	if n, ok := tagNames[t]; ok {
		return n
	}
	return "unknown"
}

// IsBoolean reports whether the tag takes a single boolean value.
func (t Tag) IsBoolean() bool {
	switch t {
	case TagIsAnonymous, TagBuiltin, TagIsObsolete, TagIsAntiSymmetric, TagIsCyclic,
		TagIsReflexive, TagIsSymmetric, TagIsAsymmetric, TagIsTransitive, TagIsFunctional,
		TagIsInverseFunctional, TagIsMetadataTag, TagIsClassLevel:
		return true
	}
	return false
}
