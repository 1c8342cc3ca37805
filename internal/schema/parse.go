package schema

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ExtensionPrefix marks custom keys kept in Common.Extensions.
const ExtensionPrefix = "x-"

// ErrInvalidSchema matches every *Error returned by FromValue.
var ErrInvalidSchema = errors.New("invalid schema")

// Error reports a malformed schema node.
type Error struct {
	// Pointer is the JSON-pointer-like location of the node, "" for the root.
	Pointer string
	Reason  string
}

func (e *Error) Error() string {
	loc := e.Pointer
	if loc == "" {
		loc = "#"
	}

	return fmt.Sprintf("invalid schema at %s: %s", loc, e.Reason)
}

func (e *Error) Unwrap() error { return ErrInvalidSchema }

// FromValue converts a decoded schema (maps, slices, scalars) into a Node
// tree. Local references should be resolved first (see ResolveRefs); any
// "$ref" left in place becomes a Ref node.
func FromValue(v any) (Node, error) {
	return parseNode(v, "")
}

func parseNode(v any, ptr string) (Node, error) {
	switch t := v.(type) {
	case bool:
		if !t {
			return nil, &Error{Pointer: ptr, Reason: "the false schema is not supported"}
		}

		return &Any{}, nil
	case map[string]any:
		return parseMap(t, ptr)
	default:
		return nil, &Error{Pointer: ptr, Reason: fmt.Sprintf("expected object, got %T", v)}
	}
}

func parseMap(m map[string]any, ptr string) (Node, error) {
	common, err := parseCommon(m, ptr)
	if err != nil {
		return nil, err
	}

	if ref, ok := m["$ref"]; ok {
		s, ok := ref.(string)
		if !ok || s == "" {
			return nil, &Error{Pointer: ptr, Reason: "$ref must be a non-empty string"}
		}

		return &Ref{Common: common, Ref: s}, nil
	}

	if values, ok := m["enum"]; ok {
		return parseEnum(m, values, common, ptr)
	}

	kind, err := detectKind(m, ptr)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindString:
		return parseString(m, common, ptr)
	case KindNumber:
		lo, hi, err := parseRange(m, ptr)
		if err != nil {
			return nil, err
		}

		return &Number{Common: common, Minimum: lo, Maximum: hi}, nil
	case KindInteger:
		lo, hi, err := parseRange(m, ptr)
		if err != nil {
			return nil, err
		}

		return &Integer{Common: common, Minimum: lo, Maximum: hi}, nil
	case KindBoolean:
		return &Boolean{Common: common}, nil
	case KindArray:
		return parseArray(m, common, ptr)
	case KindObject:
		return parseObject(m, common, ptr)
	case KindNull:
		return &Null{Common: common}, nil
	case KindAny:
		return &Any{Common: common}, nil
	case KindEnum, KindRef:
	}

	return nil, &Error{Pointer: ptr, Reason: fmt.Sprintf("unsupported kind %s", kind)}
}

// detectKind reads "type", falling back to structural hints.
func detectKind(m map[string]any, ptr string) (Kind, error) {
	raw, ok := m["type"]
	if !ok {
		switch {
		case m["properties"] != nil:
			return KindObject, nil
		case m["items"] != nil:
			return KindArray, nil
		default:
			return KindAny, nil
		}
	}

	names, err := typeNames(raw)
	if err != nil {
		return 0, &Error{Pointer: ptr, Reason: err.Error()}
	}

	// ["string", "null"] means an optional string.
	var kinds []Kind

	for _, name := range names {
		k, ok := KindFromType(name)
		if !ok {
			return 0, &Error{Pointer: ptr, Reason: fmt.Sprintf("unknown type %q", name)}
		}

		if k == KindNull && len(names) > 1 {
			continue
		}

		kinds = append(kinds, k)
	}

	if len(kinds) == 1 {
		return kinds[0], nil
	}

	return KindAny, nil
}

func typeNames(raw any) ([]string, error) {
	switch t := raw.(type) {
	case string:
		return []string{t}, nil
	case []any:
		names := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("type list entries must be strings, got %T", item)
			}

			names = append(names, s)
		}

		if len(names) == 0 {
			return nil, errors.New("type list is empty")
		}

		return names, nil
	case []string:
		if len(t) == 0 {
			return nil, errors.New("type list is empty")
		}

		return t, nil
	default:
		return nil, fmt.Errorf("type must be a string or a list, got %T", raw)
	}
}

func parseCommon(m map[string]any, ptr string) (Common, error) {
	var c Common

	if v, ok := m["title"]; ok {
		s, ok := v.(string)
		if !ok {
			return c, &Error{Pointer: ptr, Reason: "title must be a string"}
		}

		c.Title = s
	}

	if v, ok := m["description"]; ok {
		s, ok := v.(string)
		if !ok {
			return c, &Error{Pointer: ptr, Reason: "description must be a string"}
		}

		c.Description = s
	}

	c.Default = m["default"]

	for key, v := range m {
		if !strings.HasPrefix(key, ExtensionPrefix) {
			continue
		}

		if c.Extensions == nil {
			c.Extensions = map[string]any{}
		}

		c.Extensions[key] = v
	}

	return c, nil
}

func parseString(m map[string]any, common Common, ptr string) (Node, error) {
	n := &String{Common: common}

	if v, ok := m["pattern"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, &Error{Pointer: ptr, Reason: "pattern must be a string"}
		}

		re, err := regexp.Compile(s)
		if err != nil {
			return nil, &Error{Pointer: ptr, Reason: fmt.Sprintf("invalid pattern: %v", err)}
		}

		n.Pattern = re
	}

	var err error

	if n.MinLength, err = nonNegativeInt(m, "minLength", ptr); err != nil {
		return nil, err
	}

	if n.MaxLength, err = nonNegativeInt(m, "maxLength", ptr); err != nil {
		return nil, err
	}

	if n.MinLength != nil && n.MaxLength != nil && *n.MinLength > *n.MaxLength {
		return nil, &Error{Pointer: ptr, Reason: "minLength exceeds maxLength"}
	}

	if v, ok := m["format"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, &Error{Pointer: ptr, Reason: "format must be a string"}
		}

		n.Format = s
	}

	return n, nil
}

func parseRange(m map[string]any, ptr string) (*float64, *float64, error) {
	lo, err := optionalNumber(m, "minimum", ptr)
	if err != nil {
		return nil, nil, err
	}

	hi, err := optionalNumber(m, "maximum", ptr)
	if err != nil {
		return nil, nil, err
	}

	if lo != nil && hi != nil && *lo > *hi {
		return nil, nil, &Error{Pointer: ptr, Reason: "minimum exceeds maximum"}
	}

	return lo, hi, nil
}

func parseArray(m map[string]any, common Common, ptr string) (Node, error) {
	n := &Array{Common: common}

	raw, ok := m["items"]
	if !ok || raw == nil {
		return n, nil
	}

	if _, isList := raw.([]any); isList {
		return nil, &Error{Pointer: ptr + "/items", Reason: "tuple items are not supported"}
	}

	items, err := parseNode(raw, ptr+"/items")
	if err != nil {
		return nil, err
	}

	n.Items = items

	return n, nil
}

func parseObject(m map[string]any, common Common, ptr string) (Node, error) {
	n := &Object{Common: common}

	if raw, ok := m["properties"]; ok && raw != nil {
		props, ok := raw.(map[string]any)
		if !ok {
			return nil, &Error{Pointer: ptr, Reason: fmt.Sprintf("properties must be an object, got %T", raw)}
		}

		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			child, err := parseNode(props[name], ptr+"/properties/"+escapePointer(name))
			if err != nil {
				return nil, err
			}

			n.Properties = append(n.Properties, Property{Name: name, Schema: child})
		}
	}

	if raw, ok := m["required"]; ok && raw != nil {
		names, err := stringList(raw)
		if err != nil {
			return nil, &Error{Pointer: ptr, Reason: "required: " + err.Error()}
		}

		n.Required = names
	}

	return n, nil
}

func parseEnum(m map[string]any, raw any, common Common, ptr string) (Node, error) {
	values, ok := raw.([]any)
	if !ok || len(values) == 0 {
		return nil, &Error{Pointer: ptr, Reason: "enum must be a non-empty list"}
	}

	n := &Enum{Common: common, Values: values, BaseKind: inferBaseKind(values)}

	if _, hasType := m["type"]; hasType {
		k, err := detectKind(m, ptr)
		if err != nil {
			return nil, err
		}

		if !k.IsScalar() && k != KindAny {
			return nil, &Error{Pointer: ptr, Reason: fmt.Sprintf("enum base type must be scalar, got %s", k)}
		}

		n.BaseKind = k
	}

	return n, nil
}

// inferBaseKind picks the common scalar kind of values, or KindAny.
func inferBaseKind(values []any) Kind {
	var kind Kind

	for _, v := range values {
		k := ValueKind(v)
		if k == KindInteger {
			k = KindNumber
		}

		if kind == 0 {
			kind = k
			continue
		}

		if kind != k {
			return KindAny
		}
	}

	if kind == KindNumber && allWhole(values) {
		return KindInteger
	}

	return kind
}

func allWhole(values []any) bool {
	for _, v := range values {
		f, ok := ToFloat(v)
		if !ok || f != math.Trunc(f) {
			return false
		}
	}

	return true
}

func nonNegativeInt(m map[string]any, key, ptr string) (*int, error) {
	f, err := optionalNumber(m, key, ptr)
	if err != nil || f == nil {
		return nil, err
	}

	if *f < 0 || *f != math.Trunc(*f) {
		return nil, &Error{Pointer: ptr, Reason: key + " must be a non-negative integer"}
	}

	i := int(*f)

	return &i, nil
}

func optionalNumber(m map[string]any, key, ptr string) (*float64, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}

	f, ok := ToFloat(raw)
	if !ok {
		return nil, &Error{Pointer: ptr, Reason: fmt.Sprintf("%s must be a number, got %T", key, raw)}
	}

	return &f, nil
}

func stringList(raw any) ([]string, error) {
	switch t := raw.(type) {
	case []string:
		return append([]string(nil), t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", item)
			}

			out = append(out, s)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", raw)
	}
}
