package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when an ontology is not found.
	ErrNotFound = errors.New("ontology not found")

	// ErrClosed is returned when a sink is used after Commit or Discard.
	ErrClosed = errors.New("sink closed")
)
