package groups

import (
	"errors"
	"fmt"
)

// ErrMalformedLine is matched by every ParseError.
var ErrMalformedLine = errors.New("malformed group table line")

// ParseError reports a group table line that could not be parsed.
type ParseError struct {
	// Line is the 1-based line number in the input.
	Line int
	// Fields is the number of colon-separated fields found on the line.
	Fields int
	// Err is the underlying conversion error, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("group table line %d: %v", e.Line, e.Err)
	}

	return fmt.Sprintf("group table line %d: expected %d fields, got %d", e.Line, groupFields, e.Fields)
}

// Is makes errors.Is(err, ErrMalformedLine) true for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedLine
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
