package validate

import (
	"errors"
	"fmt"

	"docshape/internal/common"
)

// ErrorKind classifies a validation failure.
type ErrorKind int

const (
	MissingRequired ErrorKind = iota + 1
	TypeMismatch
	EnumMismatch
	PatternMismatch
	LengthViolation
	RangeViolation
	FormatMismatch
)

// Sentinels matched by errors.Is for each ErrorKind.
var (
	ErrMissingRequired = errors.New("missing required value")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrEnumMismatch    = errors.New("value not in enum")
	ErrPatternMismatch = errors.New("pattern mismatch")
	ErrLengthViolation = errors.New("length violation")
	ErrRangeViolation  = errors.New("range violation")
	ErrFormatMismatch  = errors.New("format mismatch")
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case MissingRequired:
		return "missing_required"
	case TypeMismatch:
		return "type_mismatch"
	case EnumMismatch:
		return "enum_mismatch"
	case PatternMismatch:
		return "pattern_mismatch"
	case LengthViolation:
		return "length_violation"
	case RangeViolation:
		return "range_violation"
	case FormatMismatch:
		return "format_mismatch"
	default:
		return common.UnknownStr
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingRequired:
		return ErrMissingRequired
	case TypeMismatch:
		return ErrTypeMismatch
	case EnumMismatch:
		return ErrEnumMismatch
	case PatternMismatch:
		return ErrPatternMismatch
	case LengthViolation:
		return ErrLengthViolation
	case RangeViolation:
		return ErrRangeViolation
	case FormatMismatch:
		return ErrFormatMismatch
	default:
		return nil
	}
}

// Error is a single validation failure.
type Error struct {
	Kind ErrorKind
	// Path is the rule path of the offending value ("" for the root).
	Path    string
	Message string
}

func (e *Error) Error() string {
	path := e.Path
	if path == "" {
		path = "(root)"
	}

	return fmt.Sprintf("%s at %s: %s", e.Kind, path, e.Message)
}

func (e *Error) Unwrap() error { return e.Kind.sentinel() }

func newError(kind ErrorKind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
}
