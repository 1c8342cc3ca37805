package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"docshape/internal/cache"
	"docshape/internal/schema"
)

// RuleSet is an immutable, path-indexed collection of rules.
type RuleSet struct {
	rules    []Rule
	byPath   map[string][]Rule
	children map[string][]string
}

// NewRuleSet indexes rules by path.
func NewRuleSet(rules []Rule) *RuleSet {
	rs := &RuleSet{
		rules:    slices.Clone(rules),
		byPath:   make(map[string][]Rule, len(rules)),
		children: map[string][]string{},
	}

	for _, r := range rs.rules {
		rs.byPath[r.Path()] = append(rs.byPath[r.Path()], r)

		obj, ok := r.(*ObjectRule)
		if !ok {
			continue
		}

		for _, k := range obj.Keys {
			if !slices.Contains(rs.children[r.Path()], k) {
				rs.children[r.Path()] = append(rs.children[r.Path()], k)
			}
		}
	}

	return rs
}

// At returns the rules for path. The result must not be modified.
func (rs *RuleSet) At(path string) []Rule {
	return rs.byPath[path]
}

// ChildKeys returns the declared property keys of the object at path.
// The result must not be modified.
func (rs *RuleSet) ChildKeys(path string) []string {
	return rs.children[path]
}

// Rules returns all rules in compile order.
func (rs *RuleSet) Rules() []Rule {
	return slices.Clone(rs.rules)
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Paths returns the distinct rule paths in compile order.
func (rs *RuleSet) Paths() []string {
	var paths []string

	for _, r := range rs.rules {
		if !slices.Contains(paths, r.Path()) {
			paths = append(paths, r.Path())
		}
	}

	return paths
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump returns a detailed, human-readable dump of every rule.
func (rs *RuleSet) Dump() string {
	return dumpConfig.Sdump(rs.rules)
}

// Describe returns a one-line summary of r, e.g.
// `tags[] string required minLength=1`.
func Describe(r Rule) string {
	d := &describer{}
	_ = r.Accept(d)

	parts := []string{displayPath(r.Path()), r.Kind().String()}
	if r.Required() {
		parts = append(parts, "required")
	}

	return strings.Join(append(parts, d.attrs...), " ")
}

func displayPath(p string) string {
	if p == RootPath {
		return "(root)"
	}

	return p
}

// describer implements Visitor to collect variant-specific attributes.
type describer struct {
	attrs []string
}

func (d *describer) add(format string, args ...any) {
	d.attrs = append(d.attrs, fmt.Sprintf(format, args...))
}

func (d *describer) addRange(lo, hi *float64) {
	if lo != nil {
		d.add("minimum=%g", *lo)
	}

	if hi != nil {
		d.add("maximum=%g", *hi)
	}
}

func (d *describer) VisitString(r *StringRule) error {
	if r.Pattern != nil {
		d.add("pattern=%s", r.Pattern)
	}

	if r.MinLength != nil {
		d.add("minLength=%d", *r.MinLength)
	}

	if r.MaxLength != nil {
		d.add("maxLength=%d", *r.MaxLength)
	}

	if r.Format != "" {
		d.add("format=%s", r.Format)
	}

	return nil
}

func (d *describer) VisitNumber(r *NumberRule) error {
	d.addRange(r.Minimum, r.Maximum)
	return nil
}

func (d *describer) VisitInteger(r *IntegerRule) error {
	d.addRange(r.Minimum, r.Maximum)
	return nil
}

func (d *describer) VisitBoolean(*BooleanRule) error { return nil }
func (d *describer) VisitArray(*ArrayRule) error     { return nil }

func (d *describer) VisitObject(r *ObjectRule) error {
	if len(r.Keys) > 0 {
		d.add("keys=%s", strings.Join(r.Keys, ","))
	}

	return nil
}

func (d *describer) VisitEnum(r *EnumRule) error {
	d.add("base=%s", r.BaseKind)
	d.add("values=%v", r.Values)

	return nil
}

func (d *describer) VisitRef(r *RefRule) error {
	d.add("ref=%s", r.Ref)
	return nil
}

func (d *describer) VisitNull(*NullRule) error { return nil }
func (d *describer) VisitAny(*AnyRule) error   { return nil }

// Cache keeps compiled rule sets keyed by schema identity (a file path,
// a "$id" or any other stable name chosen by the caller).
type Cache struct {
	sets *cache.Cache[*RuleSet]
}

// NewCache creates a rule-set cache.
func NewCache(opts cache.Options) (*Cache, error) {
	c, err := cache.New[*RuleSet](opts)
	if err != nil {
		return nil, err
	}

	return &Cache{sets: c}, nil
}

// Get returns the rule set compiled for id, compiling node on a miss.
func (c *Cache) Get(id string, node schema.Node) *RuleSet {
	rs, _ := c.sets.GetOrLoad(id, func() (*RuleSet, error) {
		return CompileSet(node), nil
	})

	return rs
}

// Stats returns cache counters.
func (c *Cache) Stats() cache.Stats {
	return c.sets.Stats()
}
