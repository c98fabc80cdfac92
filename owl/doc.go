// Package owl is the target model of the OBO translator: entities, literals,
// annotations, class expressions and axioms, plus the Sink contract the
// translator writes into and Ontology, the in-memory sink.
//
// Every expression and axiom renders to OWL 2 functional syntax through its
// String method. The rendering doubles as the value's identity: two axioms
// with the same rendering are the same axiom, which is how sinks implement set
// semantics and how duplicate declarations collapse.
//
// n-ary constructs (intersections, unions, equivalent and disjoint classes,
// annotation sets) are sets in OWL. Constructors in this package deduplicate
// their operands and sort them by rendering so equal sets render equally.
package owl
