package docpath

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrSyntax matches every *SyntaxError.
	ErrSyntax = errors.New("path syntax error")
	// ErrPropertyNotFound matches every *PropertyNotFoundError.
	ErrPropertyNotFound = errors.New("property not found")
)

// SyntaxError reports an empty or malformed path string.
type SyntaxError struct {
	Input  string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Input, e.Reason)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// PropertyNotFoundError reports traversal into a scalar while path segments
// remain.
type PropertyNotFoundError struct {
	// Path is the full path being extracted.
	Path string
	// Segment is the segment that could not be resolved.
	Segment string
	// Found describes the scalar that blocked traversal.
	Found string
}

func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("property %q not found in path %q: cannot descend into %s", e.Segment, e.Path, e.Found)
}

func (e *PropertyNotFoundError) Unwrap() error { return ErrPropertyNotFound }

func syntaxErr(input, reason string) error {
	return &SyntaxError{Input: input, Reason: reason}
}

func quote(s string) string {
	return strconv.Quote(s)
}
