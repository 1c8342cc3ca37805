package ordering

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCircularDependency matches every *CircularDependencyError.
	ErrCircularDependency = errors.New("circular dependency")
	// ErrUnknownType matches every *UnknownTypeError.
	ErrUnknownType = errors.New("unknown directive type")
)

// CircularDependencyError reports a cycle among present directive types.
type CircularDependencyError struct {
	// Cycle lists the types that close the loop, starting and ending with
	// the same type, e.g. [A B A].
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency between directives: %s", strings.Join(e.Cycle, " -> "))
}

func (e *CircularDependencyError) Unwrap() error { return ErrCircularDependency }

// UnknownTypeError reports a present directive type missing from the table.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("directive type %q is not in the dependency table", e.Type)
}

func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }
