package schema

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ResolveRefs returns a copy of the decoded schema root with every local
// "$ref" ("#/definitions/x", "#/$defs/x", any JSON pointer into the root)
// replaced by the referenced subtree. Sibling keys of a "$ref" (such as
// extensions) are kept and override the referenced subtree's keys.
//
// Recursive references are left as "$ref" at the point where they would
// recurse, so the result stays finite. Non-local references are untouched.
func ResolveRefs(root any) (any, error) {
	r := &refResolver{root: root}
	return r.resolve(root, nil)
}

type refResolver struct {
	root any
}

func (r *refResolver) resolve(v any, active []string) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if ref, ok := t["$ref"].(string); ok && strings.HasPrefix(ref, "#") {
			return r.resolveRef(t, ref, active)
		}

		out := make(map[string]any, len(t))

		for key, child := range t {
			if key == "definitions" || key == "$defs" {
				out[key] = child
				continue
			}

			resolved, err := r.resolve(child, active)
			if err != nil {
				return nil, err
			}

			out[key] = resolved
		}

		return out, nil
	case []any:
		out := make([]any, len(t))

		for i, child := range t {
			resolved, err := r.resolve(child, active)
			if err != nil {
				return nil, err
			}

			out[i] = resolved
		}

		return out, nil
	default:
		return v, nil
	}
}

func (r *refResolver) resolveRef(node map[string]any, ref string, active []string) (any, error) {
	if slices.Contains(active, ref) {
		return node, nil
	}

	target, err := lookupPointer(r.root, strings.TrimPrefix(ref, "#"))
	if err != nil {
		return nil, &Error{Pointer: ref, Reason: err.Error()}
	}

	resolved, err := r.resolve(target, append(slices.Clone(active), ref))
	if err != nil {
		return nil, err
	}

	if len(node) == 1 {
		return resolved, nil
	}

	m, ok := resolved.(map[string]any)
	if !ok {
		return resolved, nil
	}

	merged := make(map[string]any, len(m)+len(node))
	for k, v := range m {
		merged[k] = v
	}

	for k, v := range node {
		if k == "$ref" {
			continue
		}

		if k == "definitions" || k == "$defs" {
			merged[k] = v
			continue
		}

		sub, err := r.resolve(v, active)
		if err != nil {
			return nil, err
		}

		merged[k] = sub
	}

	return merged, nil
}

// lookupPointer follows a JSON pointer ("/a/b/0") from root.
func lookupPointer(root any, pointer string) (any, error) {
	if pointer == "" {
		return root, nil
	}

	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("unsupported reference %q", "#"+pointer)
	}

	current := root

	for _, token := range strings.Split(pointer[1:], "/") {
		token = unescapePointer(token)

		switch t := current.(type) {
		case map[string]any:
			next, ok := t[token]
			if !ok {
				return nil, fmt.Errorf("reference target %q not found", "#"+pointer)
			}

			current = next
		case []any:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(t) {
				return nil, fmt.Errorf("reference index %q out of range", token)
			}

			current = t[i]
		default:
			return nil, fmt.Errorf("reference %q traverses a scalar", "#"+pointer)
		}
	}

	return current, nil
}
