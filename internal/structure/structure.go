// Package structure builds nested document fragments from key paths.
package structure

import (
	"errors"

	"docshape/internal/common"
	"docshape/internal/docpath"
)

// ErrEmptySegments is returned when there is no key to nest under.
var ErrEmptySegments = errors.New("cannot build structure from empty segments")

// BuildNested wraps payload in one single-key map per segment, innermost
// last: ["a", "b"] and 1 give {"a": {"b": 1}}. It never merges with
// existing data; callers merge the result where they need to.
func BuildNested(segments []string, payload any) (map[string]any, error) {
	if common.IsEmpty(segments) {
		return nil, ErrEmptySegments
	}

	value := payload
	for i := len(segments) - 1; i > 0; i-- {
		value = map[string]any{segments[i]: value}
	}

	return map[string]any{segments[0]: value}, nil
}

// BuildNestedPath is BuildNested for a parsed path. Expansion markers are
// ignored; only segment names are used.
func BuildNestedPath(p docpath.Path, payload any) (map[string]any, error) {
	return BuildNested(p.Names(), payload)
}
