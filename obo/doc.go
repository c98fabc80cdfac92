// Package obo holds the source document model for OBO flat files and a
// parser for the line-based syntax.
//
// A Document has one header frame and ordered term, typedef and instance
// frames, each indexed by identifier. A Frame keeps its clauses grouped by
// tag in first-seen tag order. Clause values are string, bool, time.Time or
// Xref depending on the tag.
package obo
