package rules

import (
	"regexp"

	"docshape/internal/schema"
)

// Rule is a compiled, path-tagged constraint. The set of implementations is
// closed: only the ten variants in this package satisfy it.
type Rule interface {
	// Kind returns the variant tag.
	Kind() schema.Kind
	// Path is the document location the rule constrains.
	Path() string
	// Required reports whether a value must be present at Path.
	Required() bool
	// Accept calls the Visitor method matching the variant.
	Accept(v Visitor) error

	sealed()
}

// Visitor has one method per rule variant.
type Visitor interface {
	VisitString(r *StringRule) error
	VisitNumber(r *NumberRule) error
	VisitInteger(r *IntegerRule) error
	VisitBoolean(r *BooleanRule) error
	VisitArray(r *ArrayRule) error
	VisitObject(r *ObjectRule) error
	VisitEnum(r *EnumRule) error
	VisitRef(r *RefRule) error
	VisitNull(r *NullRule) error
	VisitAny(r *AnyRule) error
}

type base struct {
	path     string
	required bool
}

func (b *base) Path() string   { return b.path }
func (b *base) Required() bool { return b.required }
func (*base) sealed()          {}

// StringRule constrains a string value.
type StringRule struct {
	base
	Pattern   *regexp.Regexp
	MinLength *int
	MaxLength *int
	Format    string
}

// NumberRule constrains any numeric value.
type NumberRule struct {
	base
	Minimum *float64
	Maximum *float64
}

// IntegerRule constrains a whole-number value.
type IntegerRule struct {
	base
	Minimum *float64
	Maximum *float64
}

// BooleanRule constrains a boolean value.
type BooleanRule struct {
	base
}

// ArrayRule constrains a sequence. Element rules live at ItemsOf(Path()).
type ArrayRule struct {
	base
}

// ObjectRule constrains a map. Keys lists the declared properties; their
// rules live at JoinKey(Path(), key).
type ObjectRule struct {
	base
	Keys []string
}

// EnumRule restricts a value to Values, all of kind BaseKind.
type EnumRule struct {
	base
	Values   []any
	BaseKind schema.Kind
}

// RefRule marks a reference left unresolved at compile time. It accepts
// any value.
type RefRule struct {
	base
	Ref string
}

// NullRule requires a null value.
type NullRule struct {
	base
}

// AnyRule accepts any value.
type AnyRule struct {
	base
}

func (*StringRule) Kind() schema.Kind  { return schema.KindString }
func (*NumberRule) Kind() schema.Kind  { return schema.KindNumber }
func (*IntegerRule) Kind() schema.Kind { return schema.KindInteger }
func (*BooleanRule) Kind() schema.Kind { return schema.KindBoolean }
func (*ArrayRule) Kind() schema.Kind   { return schema.KindArray }
func (*ObjectRule) Kind() schema.Kind  { return schema.KindObject }
func (*EnumRule) Kind() schema.Kind    { return schema.KindEnum }
func (*RefRule) Kind() schema.Kind     { return schema.KindRef }
func (*NullRule) Kind() schema.Kind    { return schema.KindNull }
func (*AnyRule) Kind() schema.Kind     { return schema.KindAny }

func (r *StringRule) Accept(v Visitor) error  { return v.VisitString(r) }
func (r *NumberRule) Accept(v Visitor) error  { return v.VisitNumber(r) }
func (r *IntegerRule) Accept(v Visitor) error { return v.VisitInteger(r) }
func (r *BooleanRule) Accept(v Visitor) error { return v.VisitBoolean(r) }
func (r *ArrayRule) Accept(v Visitor) error   { return v.VisitArray(r) }
func (r *ObjectRule) Accept(v Visitor) error  { return v.VisitObject(r) }
func (r *EnumRule) Accept(v Visitor) error    { return v.VisitEnum(r) }
func (r *RefRule) Accept(v Visitor) error     { return v.VisitRef(r) }
func (r *NullRule) Accept(v Visitor) error    { return v.VisitNull(r) }
func (r *AnyRule) Accept(v Visitor) error     { return v.VisitAny(r) }
