package convert

import (
	"context"
	"errors"
	"fmt"
)

// Fatal errors. Any of these aborts the conversion; the sink contents are
// then incomplete and must be discarded.
var (
	ErrInvalidIdentifier      = errors.New("invalid identifier")
	ErrIdentifierConstruction = errors.New("identifier construction failed")
	ErrMissingFrameID         = errors.New("frame has no identifier")
	ErrNilDocument            = errors.New("nil document")
	ErrNilSink                = errors.New("nil sink")
)

// Recoverable errors. They are logged, counted in the Report and the
// offending clause is dropped.
var (
	ErrInvalidQualifier = errors.New("invalid qualifier value")
	ErrMissingValue     = errors.New("clause has too few values")
	ErrInvalidDate      = errors.New("date is neither a time nor a string")
)

// IdentifierError reports the identifier that could not be resolved.
type IdentifierError struct {
	ID  string
	Err error
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("identifier %q: %v", e.ID, e.Err)
}

func (e *IdentifierError) Unwrap() error {
	return e.Err
}

// ClauseError locates a failure to a single clause of a frame.
type ClauseError struct {
	Frame  string
	Clause string
	Err    error
}

func (e *ClauseError) Error() string {
	return fmt.Sprintf("frame %q clause %q: %v", e.Frame, e.Clause, e.Err)
}

func (e *ClauseError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err must abort a conversion.
func IsFatal(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, ErrInvalidIdentifier) ||
		errors.Is(err, ErrIdentifierConstruction) ||
		errors.Is(err, ErrMissingFrameID)
}

// IsIdentifierError reports whether err is or wraps an IdentifierError.
func IsIdentifierError(err error) bool {
	var ie *IdentifierError
	return errors.As(err, &ie)
}
