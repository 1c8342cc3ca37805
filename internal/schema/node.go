package schema

import "regexp"

// Node is a schema tree node. The set of implementations is closed: only
// the ten variants in this package satisfy it.
type Node interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Base returns the metadata shared by all variants.
	Base() *Common
	// Accept calls the Visitor method matching the variant.
	Accept(v Visitor)

	sealed()
}

// Visitor has one method per variant.
type Visitor interface {
	VisitString(n *String)
	VisitNumber(n *Number)
	VisitInteger(n *Integer)
	VisitBoolean(n *Boolean)
	VisitArray(n *Array)
	VisitObject(n *Object)
	VisitEnum(n *Enum)
	VisitRef(n *Ref)
	VisitNull(n *Null)
	VisitAny(n *Any)
}

// Common holds the keys every variant may carry.
type Common struct {
	Title       string
	Description string
	Default     any
	// Extensions holds the custom "x-*" keys, undecoded. Their meaning is
	// owned by the extension registry.
	Extensions map[string]any
}

// Base returns c.
func (c *Common) Base() *Common { return c }

// Extension returns the raw value of an extension key.
func (c *Common) Extension(key string) (any, bool) {
	v, ok := c.Extensions[key]
	return v, ok
}

func (*Common) sealed() {}

// String is a "type: string" node.
type String struct {
	Common
	Pattern   *regexp.Regexp
	MinLength *int
	MaxLength *int
	Format    string
}

// Number is a "type: number" node.
type Number struct {
	Common
	Minimum *float64
	Maximum *float64
}

// Integer is a "type: integer" node.
type Integer struct {
	Common
	Minimum *float64
	Maximum *float64
}

// Boolean is a "type: boolean" node.
type Boolean struct {
	Common
}

// Array is a "type: array" node. Items is nil when unconstrained.
type Array struct {
	Common
	Items Node
}

// Property is a named object member.
type Property struct {
	Name   string
	Schema Node
}

// Object is a "type: object" node. Properties are sorted by name.
type Object struct {
	Common
	Properties []Property
	Required   []string
}

// IsRequired reports whether name is listed in the node's required keys.
func (o *Object) IsRequired(name string) bool {
	for _, r := range o.Required {
		if r == name {
			return true
		}
	}

	return false
}

// Property returns the schema of the named property.
func (o *Object) Property(name string) (Node, bool) {
	for _, p := range o.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}

	return nil, false
}

// Enum is a node carrying an "enum" list. BaseKind is the scalar kind of
// the allowed values, or KindAny when they are mixed.
type Enum struct {
	Common
	Values   []any
	BaseKind Kind
}

// Ref is an unresolved "$ref" node.
type Ref struct {
	Common
	Ref string
}

// Null is a "type: null" node.
type Null struct {
	Common
}

// Any is a node with no type constraint.
type Any struct {
	Common
}

func (*String) Kind() Kind  { return KindString }
func (*Number) Kind() Kind  { return KindNumber }
func (*Integer) Kind() Kind { return KindInteger }
func (*Boolean) Kind() Kind { return KindBoolean }
func (*Array) Kind() Kind   { return KindArray }
func (*Object) Kind() Kind  { return KindObject }
func (*Enum) Kind() Kind    { return KindEnum }
func (*Ref) Kind() Kind     { return KindRef }
func (*Null) Kind() Kind    { return KindNull }
func (*Any) Kind() Kind     { return KindAny }

func (n *String) Accept(v Visitor)  { v.VisitString(n) }
func (n *Number) Accept(v Visitor)  { v.VisitNumber(n) }
func (n *Integer) Accept(v Visitor) { v.VisitInteger(n) }
func (n *Boolean) Accept(v Visitor) { v.VisitBoolean(n) }
func (n *Array) Accept(v Visitor)   { v.VisitArray(n) }
func (n *Object) Accept(v Visitor)  { v.VisitObject(n) }
func (n *Enum) Accept(v Visitor)    { v.VisitEnum(n) }
func (n *Ref) Accept(v Visitor)     { v.VisitRef(n) }
func (n *Null) Accept(v Visitor)    { v.VisitNull(n) }
func (n *Any) Accept(v Visitor)     { v.VisitAny(n) }
