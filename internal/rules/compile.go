package rules

import (
	"docshape/internal/schema"
)

// Compile flattens node into one rule per reachable schema path, starting
// at prefix. It only looks at the schema, never at a document.
//
// Object children are emitted with their final required flag; the flag is
// read from the parent's required list before descending. Array items are
// compiled at ItemsOf(prefix) unless they are an unresolved reference.
func Compile(node schema.Node, prefix string) []Rule {
	c := &compiler{path: prefix}
	c.emit(node, prefix, false)

	return c.out
}

// CompileSet compiles node from the root and indexes the result.
func CompileSet(node schema.Node) *RuleSet {
	return NewRuleSet(Compile(node, RootPath))
}

// compiler implements schema.Visitor. path and required describe the node
// being visited.
type compiler struct {
	path     string
	required bool
	out      []Rule
}

func (c *compiler) emit(node schema.Node, path string, required bool) {
	if node == nil {
		return
	}

	savedPath, savedRequired := c.path, c.required
	c.path, c.required = path, required

	node.Accept(c)

	c.path, c.required = savedPath, savedRequired
}

func (c *compiler) base() base {
	return base{path: c.path, required: c.required}
}

func (c *compiler) VisitString(n *schema.String) {
	c.out = append(c.out, &StringRule{
		base:      c.base(),
		Pattern:   n.Pattern,
		MinLength: n.MinLength,
		MaxLength: n.MaxLength,
		Format:    n.Format,
	})
}

func (c *compiler) VisitNumber(n *schema.Number) {
	c.out = append(c.out, &NumberRule{base: c.base(), Minimum: n.Minimum, Maximum: n.Maximum})
}

func (c *compiler) VisitInteger(n *schema.Integer) {
	c.out = append(c.out, &IntegerRule{base: c.base(), Minimum: n.Minimum, Maximum: n.Maximum})
}

func (c *compiler) VisitBoolean(*schema.Boolean) {
	c.out = append(c.out, &BooleanRule{base: c.base()})
}

func (c *compiler) VisitArray(n *schema.Array) {
	c.out = append(c.out, &ArrayRule{base: c.base()})

	if n.Items == nil || n.Items.Kind() == schema.KindRef {
		return
	}

	c.emit(n.Items, ItemsOf(c.path), false)
}

func (c *compiler) VisitObject(n *schema.Object) {
	keys := make([]string, 0, len(n.Properties))
	for _, p := range n.Properties {
		keys = append(keys, p.Name)
	}

	c.out = append(c.out, &ObjectRule{base: c.base(), Keys: keys})

	required := make(map[string]bool, len(n.Required))
	for _, name := range n.Required {
		required[name] = true
	}

	path := c.path
	for _, p := range n.Properties {
		c.emit(p.Schema, JoinKey(path, p.Name), required[p.Name])
	}
}

func (c *compiler) VisitEnum(n *schema.Enum) {
	c.out = append(c.out, &EnumRule{
		base:     c.base(),
		Values:   append([]any(nil), n.Values...),
		BaseKind: n.BaseKind,
	})
}

func (c *compiler) VisitRef(n *schema.Ref) {
	c.out = append(c.out, &RefRule{base: c.base(), Ref: n.Ref})
}

func (c *compiler) VisitNull(*schema.Null) {
	c.out = append(c.out, &NullRule{base: c.base()})
}

func (c *compiler) VisitAny(*schema.Any) {
	c.out = append(c.out, &AnyRule{base: c.base()})
}
