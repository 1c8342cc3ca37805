package docpath

import (
	"strings"
)

// ExpandMarker is the array-expansion suffix.
const ExpandMarker = "[]"

// Segment is a single step of a Path.
type Segment struct {
	// Name is the map key to descend into. Empty only for the bare "[]" path.
	Name string
	// Expand is true when the segment carries the "[]" marker.
	Expand bool
}

// String returns the segment in path notation.
func (s Segment) String() string {
	if s.Expand {
		return s.Name + ExpandMarker
	}

	return s.Name
}

// Path is an immutable, parsed document path.
type Path struct {
	raw      string
	segments []Segment
}

// Parse parses a path string into a Path.
// Supports: "title", "meta.author", "tags[]", "items[].name", "[]".
func Parse(s string) (Path, error) {
	if s == "" {
		return Path{}, syntaxErr(s, "empty path")
	}

	if s == ExpandMarker {
		return Path{raw: s, segments: []Segment{{Expand: true}}}, nil
	}

	var segments []Segment

	for part := range strings.SplitSeq(s, ".") {
		if part == "" {
			return Path{}, syntaxErr(s, "empty segment")
		}

		expand := false
		name := part

		if strings.HasSuffix(part, ExpandMarker) {
			expand = true
			name = strings.TrimSuffix(part, ExpandMarker)

			if name == "" {
				return Path{}, syntaxErr(s, "array marker without field name")
			}
		}

		if !isValidIdent(name) {
			return Path{}, syntaxErr(s, "invalid identifier "+quote(name))
		}

		segments = append(segments, Segment{Name: name, Expand: expand})
	}

	return Path{raw: s, segments: segments}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level literals.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return p
}

// FromSegments builds a Path from already-validated segments.
func FromSegments(segments []Segment) Path {
	segs := append([]Segment(nil), segments...)

	parts := make([]string, len(segs))
	for i, seg := range segs {
		parts[i] = seg.String()
	}

	return Path{raw: strings.Join(parts, "."), segments: segs}
}

// String returns the path in its textual form.
func (p Path) String() string {
	return p.raw
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// Names returns the segment names without markers.
func (p Path) Names() []string {
	names := make([]string, len(p.segments))
	for i, seg := range p.segments {
		names[i] = seg.Name
	}

	return names
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// IsZero reports whether p is the zero Path (never produced by Parse).
func (p Path) IsZero() bool {
	return len(p.segments) == 0
}

// IsBareExpansion reports whether p is the anonymous "[]" path.
func (p Path) IsBareExpansion() bool {
	return len(p.segments) == 1 && p.segments[0].Name == "" && p.segments[0].Expand
}

// HasExpansion reports whether any segment carries the array marker.
func (p Path) HasExpansion() bool {
	return hasExpansion(p.segments)
}

// Split returns the segments up to and including the first expanded
// segment, and the segments after it. ok is false when p has no marker.
func (p Path) Split() (pre, post []Segment, ok bool) {
	i := firstExpansion(p.segments)
	if i < 0 {
		return p.Segments(), nil, false
	}

	return append([]Segment(nil), p.segments[:i+1]...), append([]Segment(nil), p.segments[i+1:]...), true
}

func hasExpansion(segments []Segment) bool {
	return firstExpansion(segments) >= 0
}

func firstExpansion(segments []Segment) int {
	for i, seg := range segments {
		if seg.Expand {
			return i
		}
	}

	return -1
}

// isValidIdent checks the segment grammar: letter or underscore first,
// then letters, digits or underscores.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isLetter(r) && r != '_' {
				return false
			}
		} else {
			if !isLetter(r) && !isDigit(r) && r != '_' {
				return false
			}
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
