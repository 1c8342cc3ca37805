package directive

import (
	"docshape/internal/diagnostic"
	"docshape/internal/docpath"
)

// Apply extracts the directive's source value from doc and writes a copy of
// it at the target location. doc is modified in place; the source data is
// never shared with the target.
//
// Non-array targets are left untouched when the source yields no value, so
// an explicit null is never written. Array targets always receive a
// sequence (null -> empty, scalar -> one element).
func Apply(doc map[string]any, d Directive) error {
	value, ok, err := docpath.Extract(doc, d.source)
	if err != nil {
		return &Error{Directive: d, Err: err}
	}

	if d.ArrayTarget() {
		value = docpath.AsSequence(value)
	} else if !ok {
		return nil
	}

	if d.flatten {
		value = flatten(value.([]any))
	}

	write(doc, d.target.Segments(), deepCopy(value))

	return nil
}

type applyConfig struct {
	policy diagnostic.Policy
}

// ApplyOption configures ApplyAll.
type ApplyOption func(*applyConfig)

// WithPolicy selects the error policy. The default is diagnostic.FailFast.
func WithPolicy(p diagnostic.Policy) ApplyOption {
	return func(c *applyConfig) {
		c.policy = p
	}
}

// ApplyAll applies directives strictly in the given order.
//
// With the default fail-fast policy the first failure aborts the batch and
// is returned unchanged; directives before it have already been applied.
// With diagnostic.CollectAll every directive is attempted and the failures
// are returned together (the result unwraps to each *Error).
func ApplyAll(doc map[string]any, directives []Directive, opts ...ApplyOption) error {
	cfg := applyConfig{policy: diagnostic.FailFast}
	for _, opt := range opts {
		opt(&cfg)
	}

	diags := &diagnostic.Diagnostics{}

	for _, d := range directives {
		err := Apply(doc, d)
		if err == nil {
			continue
		}

		if cfg.policy == diagnostic.FailFast {
			return err
		}

		diags.AddCause("directive_failed", d.Type(), d.Target().String(), err)
	}

	return diags.Err()
}

// write stores value at segments under container, creating maps and
// sequences along the way.
func write(container map[string]any, segments []docpath.Segment, value any) {
	i := expansionIndex(segments)
	if i < 0 {
		setSimple(container, segments, value)
		return
	}

	parent := ensureMaps(container, segments[:i])
	name := segments[i].Name
	post := segments[i+1:]
	src := docpath.AsSequence(value)

	if len(post) == 0 {
		parent[name] = src
		return
	}

	dst, _ := parent[name].([]any)
	if dst == nil {
		dst = make([]any, 0, len(src))
	}

	for idx, elem := range src {
		if idx >= len(dst) {
			dst = append(dst, map[string]any{})
		}

		m, ok := dst[idx].(map[string]any)
		if !ok {
			m = map[string]any{}
			dst[idx] = m
		}

		if expansionIndex(post) >= 0 {
			write(m, post, elem)
			continue
		}

		if elem == nil {
			continue
		}

		setSimple(m, post, elem)
	}

	parent[name] = dst
}

// setSimple sets the leaf of segments, replacing non-map intermediates.
func setSimple(container map[string]any, segments []docpath.Segment, value any) {
	if len(segments) == 0 {
		return
	}

	parent := ensureMaps(container, segments[:len(segments)-1])
	parent[segments[len(segments)-1].Name] = value
}

// ensureMaps descends through segments, creating or replacing maps, and
// returns the innermost one.
func ensureMaps(container map[string]any, segments []docpath.Segment) map[string]any {
	current := container

	for _, seg := range segments {
		next, ok := current[seg.Name].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[seg.Name] = next
		}

		current = next
	}

	return current
}

func expansionIndex(segments []docpath.Segment) int {
	for i, seg := range segments {
		if seg.Expand {
			return i
		}
	}

	return -1
}

// flatten splices nested sequences one level deep.
func flatten(seq []any) []any {
	out := make([]any, 0, len(seq))

	for _, elem := range seq {
		if nested, ok := elem.([]any); ok {
			out = append(out, nested...)
		} else {
			out = append(out, elem)
		}
	}

	return out
}

// deepCopy copies maps and sequences recursively. Scalars are returned as is.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = deepCopy(child)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = deepCopy(child)
		}

		return out
	default:
		return v
	}
}
