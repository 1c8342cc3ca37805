package docpath

import "fmt"

// Extract walks doc along p and returns the value found there.
//
// ok is false when the value is absent: a missing key, or a null anywhere
// along the way. Absence is not an error. Descending into a scalar (or a
// sequence without "[]") while segments remain returns a
// *PropertyNotFoundError.
//
// Paths with "[]" always yield a []any: the value at the expanded segment is
// normalized to a sequence (null -> empty, non-sequence -> one element) and
// the remaining segments are applied per element. Elements yielding no value
// are dropped; nested expansions are flattened one level.
func Extract(doc any, p Path) (any, bool, error) {
	if p.IsZero() {
		return nil, false, syntaxErr("", "empty path")
	}

	if p.IsBareExpansion() {
		return []any{}, true, nil
	}

	return extract(doc, p.segments, p.raw)
}

// ExtractString is a convenience wrapper that parses s before extracting.
func ExtractString(doc any, s string) (any, bool, error) {
	p, err := Parse(s)
	if err != nil {
		return nil, false, err
	}

	return Extract(doc, p)
}

// AsSequence normalizes v to a sequence: nil becomes an empty sequence,
// a sequence is returned unchanged and anything else is wrapped.
func AsSequence(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		return t
	default:
		return []any{t}
	}
}

func extract(doc any, segments []Segment, raw string) (any, bool, error) {
	i := firstExpansion(segments)
	if i < 0 {
		return walk(doc, segments, raw)
	}

	root, _, err := walk(doc, segments[:i+1], raw)
	if err != nil {
		return nil, false, err
	}

	seq := AsSequence(root)

	post := segments[i+1:]
	if len(post) == 0 {
		return seq, true, nil
	}

	out := make([]any, 0, len(seq))

	if !hasExpansion(post) {
		for _, elem := range seq {
			v, ok, err := walk(elem, post, raw)
			if err != nil {
				return nil, false, err
			}

			if ok {
				out = append(out, v)
			}
		}

		return out, true, nil
	}

	// Nested expansion: elements that fail or yield nothing are skipped.
	for _, elem := range seq {
		v, ok, err := extract(elem, post, raw)
		if err != nil || !ok {
			continue
		}

		if nested, isSeq := v.([]any); isSeq {
			out = append(out, nested...)
		} else {
			out = append(out, v)
		}
	}

	return out, true, nil
}

// walk follows segment names through nested maps, ignoring markers.
func walk(doc any, segments []Segment, raw string) (any, bool, error) {
	current := doc

	for _, seg := range segments {
		if current == nil {
			return nil, false, nil
		}

		m, ok := current.(map[string]any)
		if !ok {
			return nil, false, &PropertyNotFoundError{
				Path:    raw,
				Segment: seg.Name,
				Found:   describe(current),
			}
		}

		current, ok = m[seg.Name]
		if !ok {
			return nil, false, nil
		}
	}

	if current == nil {
		return nil, false, nil
	}

	return current, true, nil
}

func describe(v any) string {
	switch v.(type) {
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
