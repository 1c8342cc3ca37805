package validate

import (
	"math"
	"reflect"
	"unicode/utf8"

	"docshape/internal/common"
	"docshape/internal/rules"
	"docshape/internal/schema"
)

// checker implements rules.Visitor for one value. It may replace value
// with its normalized form.
type checker struct {
	value    any
	present  bool
	path     string
	required bool
}

// missing reports whether the value is absent. A nil value counts as
// absent. It returns an error when the value is absent but required.
func (c *checker) missing() (bool, error) {
	if c.present && c.value != nil {
		return false, nil
	}

	if c.required {
		return true, newError(MissingRequired, c.path, "value is required")
	}

	return true, nil
}

func (c *checker) mismatch(want schema.Kind) error {
	return newError(TypeMismatch, c.path, "expected %s, got %s", want, schema.ValueKind(c.value))
}

func (c *checker) VisitString(r *rules.StringRule) error {
	if absent, err := c.missing(); absent {
		return err
	}

	s, ok := c.value.(string)
	if !ok {
		return c.mismatch(schema.KindString)
	}

	n := utf8.RuneCountInString(s)
	if r.MinLength != nil && n < *r.MinLength {
		return newError(LengthViolation, c.path, "length %d is less than %d", n, *r.MinLength)
	}

	if r.MaxLength != nil && n > *r.MaxLength {
		return newError(LengthViolation, c.path, "length %d is greater than %d", n, *r.MaxLength)
	}

	if r.Pattern != nil && !r.Pattern.MatchString(s) {
		return newError(PatternMismatch, c.path, "%q does not match %s", s, r.Pattern)
	}

	if r.Format != "" {
		if err := checkFormat(r.Format, s); err != nil {
			return newError(FormatMismatch, c.path, "%q is not a valid %s: %v", s, r.Format, err)
		}
	}

	return nil
}

func (c *checker) VisitNumber(r *rules.NumberRule) error {
	if absent, err := c.missing(); absent {
		return err
	}

	f, ok := schema.ToFloat(c.value)
	if !ok {
		return c.mismatch(schema.KindNumber)
	}

	return c.checkRange(f, r.Minimum, r.Maximum)
}

func (c *checker) VisitInteger(r *rules.IntegerRule) error {
	if absent, err := c.missing(); absent {
		return err
	}

	f, ok := schema.ToFloat(c.value)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return c.mismatch(schema.KindInteger)
	}

	return c.checkRange(f, r.Minimum, r.Maximum)
}

func (c *checker) checkRange(f float64, lo, hi *float64) error {
	if lo != nil && f < *lo {
		return newError(RangeViolation, c.path, "%g is less than minimum %g", f, *lo)
	}

	if hi != nil && f > *hi {
		return newError(RangeViolation, c.path, "%g is greater than maximum %g", f, *hi)
	}

	return nil
}

// VisitBoolean unwraps a single-element boolean sequence, as produced by
// front matter parsers for `key: [true]`, before checking the type.
func (c *checker) VisitBoolean(*rules.BooleanRule) error {
	if seq, ok := c.value.([]any); ok && common.IsSingle(seq) {
		if b, ok := seq[0].(bool); ok {
			c.value = b
		}
	}

	if absent, err := c.missing(); absent {
		return err
	}

	if _, ok := c.value.(bool); !ok {
		return c.mismatch(schema.KindBoolean)
	}

	return nil
}

func (c *checker) VisitArray(*rules.ArrayRule) error {
	if absent, err := c.missing(); absent {
		return err
	}

	if _, ok := c.value.([]any); !ok {
		return c.mismatch(schema.KindArray)
	}

	return nil
}

func (c *checker) VisitObject(*rules.ObjectRule) error {
	if absent, err := c.missing(); absent {
		return err
	}

	if _, ok := c.value.(map[string]any); !ok {
		return c.mismatch(schema.KindObject)
	}

	return nil
}

func (c *checker) VisitEnum(r *rules.EnumRule) error {
	if absent, err := c.missing(); absent {
		return err
	}

	for _, allowed := range r.Values {
		if equalValues(c.value, allowed) {
			return nil
		}
	}

	return newError(EnumMismatch, c.path, "%v is not one of %v", c.value, r.Values)
}

func (c *checker) VisitRef(*rules.RefRule) error {
	_, err := c.missing()
	return err
}

func (c *checker) VisitAny(*rules.AnyRule) error {
	_, err := c.missing()
	return err
}

// VisitNull accepts an explicit null. Only a missing key can fail a
// required null rule.
func (c *checker) VisitNull(*rules.NullRule) error {
	if !c.present {
		if c.required {
			return newError(MissingRequired, c.path, "value is required")
		}

		return nil
	}

	if c.value != nil {
		return c.mismatch(schema.KindNull)
	}

	return nil
}

// equalValues compares decoded values, treating numbers of different Go
// types as equal when their values match.
func equalValues(a, b any) bool {
	fa, aNum := schema.ToFloat(a)
	fb, bNum := schema.ToFloat(b)

	if aNum || bNum {
		return aNum && bNum && fa == fb
	}

	return reflect.DeepEqual(a, b)
}
