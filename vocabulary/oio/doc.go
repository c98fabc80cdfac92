// Package oio provides the OBO-in-OWL vocabulary used when translating OBO
// documents into OWL axioms.
//
// The package holds three things:
//   - Fixed IRIs for the namespaces and individual properties the translator
//     emits (OBO PURLs, oboInOwl, IAO, OWL, RDFS, XSD).
//   - The tag table: an immutable mapping from OBO tag names to the
//     annotation property IRI that carries the tag in OWL (Table 5.8 of the
//     OBO 1.4 mapping). Tags without an entry map into the oboInOwl namespace.
//   - Labels for the vocabulary properties, emitted once when the translator
//     first declares one of them.
//
// # Semstreams Integration
//
// Every mapped tag is registered in init() as a semstreams predicate using
// dotted notation (obo.annotation.<tag>) with the OWL IRI attached through
// vocabulary.WithIRI, so downstream exporters can resolve OBO tags the same
// way they resolve any other predicate:
//
//	meta := vocabulary.GetPredicateMetadata(oio.PredicateFor("def"))
//	// meta.StandardIRI == "http://purl.obolibrary.org/obo/IAO_0000115"
//
// The table is built once at package initialization and never mutated.
package oio
