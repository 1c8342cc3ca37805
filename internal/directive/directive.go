package directive

import (
	"errors"
	"fmt"

	"docshape/internal/docpath"
)

// ErrBareTarget is returned when a directive targets the document root.
var ErrBareTarget = errors.New("target path cannot be the bare \"[]\" path")

// Directive is an immutable source -> target extraction rule.
type Directive struct {
	typ           string
	source        docpath.Path
	target        docpath.Path
	declaredArray bool
	flatten       bool
}

// Option customizes a Directive at construction time.
type Option func(*Directive)

// WithType records the directive type (usually the schema extension key
// the directive came from). Used for dependency ordering and diagnostics.
func WithType(name string) Option {
	return func(d *Directive) {
		d.typ = name
	}
}

// WithDeclaredArray marks the target as array-typed even when the target
// path carries no "[]" marker.
func WithDeclaredArray() Option {
	return func(d *Directive) {
		d.declaredArray = true
	}
}

// WithFlatten splices nested sequences of the extracted value into the
// result, one level deep: [[a, b], c] becomes [a, b, c]. The target is
// array-typed.
func WithFlatten() Option {
	return func(d *Directive) {
		d.flatten = true
		d.declaredArray = true
	}
}

// New parses source and target and returns the directive.
func New(source, target string, opts ...Option) (Directive, error) {
	src, err := docpath.Parse(source)
	if err != nil {
		return Directive{}, fmt.Errorf("invalid source path: %w", err)
	}

	dst, err := docpath.Parse(target)
	if err != nil {
		return Directive{}, fmt.Errorf("invalid target path: %w", err)
	}

	return FromPaths(src, dst, opts...)
}

// FromPaths builds a directive from already-parsed paths.
func FromPaths(source, target docpath.Path, opts ...Option) (Directive, error) {
	if source.IsZero() {
		return Directive{}, errors.New("invalid source path: empty path")
	}

	if target.IsZero() {
		return Directive{}, errors.New("invalid target path: empty path")
	}

	if target.IsBareExpansion() {
		return Directive{}, ErrBareTarget
	}

	d := Directive{source: source, target: target}
	for _, opt := range opts {
		opt(&d)
	}

	return d, nil
}

// Type returns the directive type, or "" when none was set.
func (d Directive) Type() string { return d.typ }

// Source returns the source path.
func (d Directive) Source() docpath.Path { return d.source }

// Target returns the target path.
func (d Directive) Target() docpath.Path { return d.target }

// DeclaredArray reports whether the target was declared array-typed.
func (d Directive) DeclaredArray() bool { return d.declaredArray }

// Flatten reports whether nested sequences are flattened before writing.
func (d Directive) Flatten() bool { return d.flatten }

// ArrayTarget reports whether the target receives a sequence.
func (d Directive) ArrayTarget() bool {
	return d.declaredArray || d.target.HasExpansion()
}

// String returns a readable representation, e.g. "x-derived-from: items[].name -> names[]".
func (d Directive) String() string {
	s := fmt.Sprintf("%s -> %s", d.source, d.target)
	if d.typ != "" {
		s = d.typ + ": " + s
	}

	return s
}

// Error reports a failure while applying a single directive.
type Error struct {
	Directive Directive
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("apply %s: %v", e.Directive, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
