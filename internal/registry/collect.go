package registry

import (
	"fmt"
	"strings"

	"docshape/internal/directive"
	"docshape/internal/rules"
	"docshape/internal/schema"
)

// Collect walks the properties of node and builds one directive per
// registered extension found on them. The target of each directive is the
// property's path (array items use "[]"). Directives are returned in
// schema order (properties sorted by name), then registration order.
//
// Extensions on the root node are ignored: a directive always needs a
// named target. Marker extensions are rejected inside array items.
func (r *Registry) Collect(node schema.Node) ([]directive.Directive, error) {
	c := &collector{registry: r}
	if err := c.walk(node, rules.RootPath); err != nil {
		return nil, err
	}

	return c.out, nil
}

type collector struct {
	registry *Registry
	out      []directive.Directive
}

func (c *collector) walk(node schema.Node, path string) error {
	if node == nil {
		return nil
	}

	if path != rules.RootPath {
		if err := c.collect(node, path); err != nil {
			return err
		}
	}

	switch n := node.(type) {
	case *schema.Object:
		for _, p := range n.Properties {
			if err := c.walk(p.Schema, rules.JoinKey(path, p.Name)); err != nil {
				return err
			}
		}
	case *schema.Array:
		return c.walk(n.Items, rules.ItemsOf(path))
	}

	return nil
}

func (c *collector) collect(node schema.Node, path string) error {
	ext := node.Base().Extensions

	for _, e := range c.registry.entries {
		value, ok := ext[e.Key]
		if !ok {
			continue
		}

		d, build, err := e.directive(value, path, node.Kind() == schema.KindArray)
		if err != nil {
			return fmt.Errorf("%s at %s: %w", e.Key, path, err)
		}

		if build {
			c.out = append(c.out, d)
		}
	}

	return nil
}

// directive builds the directive for one extension value. It reports
// false for a marker set to false.
func (e Entry) directive(value any, path string, array bool) (directive.Directive, bool, error) {
	opts := []directive.Option{directive.WithType(e.Type)}
	if array {
		opts = append(opts, directive.WithDeclaredArray())
	}

	if e.Flatten {
		opts = append(opts, directive.WithFlatten())
	}

	if e.Marker {
		if strings.Contains(path, rules.ItemsMarker) {
			return directive.Directive{}, false, fmt.Errorf("%w: marker cannot be used inside array items", ErrInvalidEntry)
		}

		on, ok := value.(bool)
		if !ok {
			return directive.Directive{}, false, fmt.Errorf("%w: marker value must be a boolean", ErrInvalidEntry)
		}

		if !on {
			return directive.Directive{}, false, nil
		}

		d, err := directive.New(path, path, append(opts, directive.WithDeclaredArray())...)

		return d, err == nil, err
	}

	source, ok := value.(string)
	if !ok {
		return directive.Directive{}, false, fmt.Errorf("%w: source path must be a string", ErrInvalidEntry)
	}

	d, err := directive.New(source, path, opts...)

	return d, err == nil, err
}
