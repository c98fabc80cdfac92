package obo

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateFrame is returned when a frame id repeats within a category.
	ErrDuplicateFrame = errors.New("duplicate frame id")
	// ErrMissingID is returned for a stanza without an id tag.
	ErrMissingID = errors.New("frame has no id")
	// ErrMalformedLine is returned for a line that is not a tag-value pair
	// or a stanza header.
	ErrMalformedLine = errors.New("malformed line")
	// ErrUnterminated is returned for an unclosed quote, xref list or
	// qualifier block.
	ErrUnterminated = errors.New("unterminated construct")
	// ErrUnknownStanza is returned for a stanza type other than Term,
	// Typedef or Instance.
	ErrUnknownStanza = errors.New("unknown stanza type")
)

// ParseError locates a parse failure.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
