package oio

// Namespace prefixes.
const (
	// OBONamespace is the PURL prefix for OBO identifiers (GO:0001 -> GO_0001).
	OBONamespace = "http://purl.obolibrary.org/obo/"

	// OIONamespace is the oboInOwl namespace for OBO-specific annotation properties.
	OIONamespace = "http://www.geneontology.org/formats/oboInOwl#"

	// OWLNamespace is the OWL 2 namespace.
	OWLNamespace = "http://www.w3.org/2002/07/owl#"

	// RDFSNamespace is the RDF Schema namespace.
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"

	// RDFNamespace is the RDF namespace.
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// XSDNamespace is the XML Schema datatype namespace.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
)

// Standard annotation properties. rdfs:label and rdfs:comment come from
// the semstreams vocabulary package.
const (
	// OWLDeprecated marks an entity as obsolete.
	OWLDeprecated = OWLNamespace + "deprecated"
)

// IAO properties and individuals used by alternate identifier handling.
const (
	// IAOTermReplacedBy points an obsolete term at its replacement.
	IAOTermReplacedBy = OBONamespace + "IAO_0100001"

	// IAOObsolescenceReason records why a term was made obsolete.
	IAOObsolescenceReason = OBONamespace + "IAO_0000231"

	// IAOTermsMerged is the obsolescence reason for merged terms.
	IAOTermsMerged = OBONamespace + "IAO_0000227"

	// IAODefinition is the textual definition property.
	IAODefinition = OBONamespace + "IAO_0000115"

	// IAOReversiblePropertyChain marks an equivalent_to_chain axiom.
	IAOReversiblePropertyChain = OBONamespace + "IAO_isReversiblePropertyChain"
)

// oboInOwl properties the translator refers to directly.
const (
	// OIOHasDbXref carries cross-references.
	OIOHasDbXref = OIONamespace + "hasDbXref"

	// OIOShorthand records the shorthand name of an expanded relation id.
	OIOShorthand = OIONamespace + "shorthand"

	// OIOInSubset links a term to a subset.
	OIOInSubset = OIONamespace + "inSubset"

	// OIOSubsetProperty is the parent of all subset annotation properties.
	OIOSubsetProperty = OIONamespace + "SubsetProperty"

	// OIOSynonymTypeProperty is the parent of all synonym type properties.
	OIOSynonymTypeProperty = OIONamespace + "SynonymTypeProperty"

	// OIOHasSynonymType annotates a synonym with its synonym type.
	OIOHasSynonymType = OIONamespace + "hasSynonymType"

	// OIOHasScope records the default scope of a synonym type.
	OIOHasScope = OIONamespace + "hasScope"

	// OIOLogicalDefinitionViewRelation names the view relation of an ontology.
	OIOLogicalDefinitionViewRelation = OIONamespace + "logical-definition-view-relation"

	// OIOHasExactSynonym and friends carry synonyms by scope.
	OIOHasExactSynonym   = OIONamespace + "hasExactSynonym"
	OIOHasNarrowSynonym  = OIONamespace + "hasNarrowSynonym"
	OIOHasBroadSynonym   = OIONamespace + "hasBroadSynonym"
	OIOHasRelatedSynonym = OIONamespace + "hasRelatedSynonym"
)

// XSD datatypes.
const (
	XSDString   = XSDNamespace + "string"
	XSDBoolean  = XSDNamespace + "boolean"
	XSDDateTime = XSDNamespace + "dateTime"
	XSDInteger  = XSDNamespace + "integer"
)
