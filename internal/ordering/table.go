package ordering

import (
	"errors"
	"fmt"
	"slices"

	"docshape/internal/diagnostic"
)

// Dependency declares how one directive type is ordered.
type Dependency struct {
	// Type is the directive type, e.g. "x-derived-from".
	Type string `yaml:"type"`
	// DependsOn lists types that must be applied first.
	DependsOn []string `yaml:"dependsOn,omitempty"`
	// Stage groups types that may be considered together.
	Stage int `yaml:"stage"`
	// Description is a human-readable summary of the stage's purpose.
	Description string `yaml:"description,omitempty"`
}

// Table is an immutable dependency table. Build it with NewTable,
// ParseTable or LoadTable; it is read-only afterwards.
type Table struct {
	entries []Dependency
	index   map[string]int
}

// NewTable validates deps and snapshots them into a Table. The order of deps
// is preserved and used for every tie-break.
func NewTable(deps []Dependency) (*Table, error) {
	t := &Table{
		entries: make([]Dependency, 0, len(deps)),
		index:   make(map[string]int, len(deps)),
	}

	for i, d := range deps {
		if d.Type == "" {
			return nil, fmt.Errorf("dependency table entry %d: empty directive type", i)
		}

		if _, dup := t.index[d.Type]; dup {
			return nil, fmt.Errorf("dependency table entry %d: duplicate directive type %q", i, d.Type)
		}

		d.DependsOn = slices.Clone(d.DependsOn)
		t.index[d.Type] = len(t.entries)
		t.entries = append(t.entries, d)
	}

	if len(t.entries) == 0 {
		return nil, errors.New("dependency table is empty")
	}

	return t, nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Types returns the directive types in table order.
func (t *Table) Types() []string {
	types := make([]string, len(t.entries))
	for i, d := range t.entries {
		types[i] = d.Type
	}

	return types
}

// Entries returns a copy of the table entries.
func (t *Table) Entries() []Dependency {
	out := make([]Dependency, len(t.entries))
	for i, d := range t.entries {
		d.DependsOn = slices.Clone(d.DependsOn)
		out[i] = d
	}

	return out
}

// Lookup returns the entry for typ.
func (t *Table) Lookup(typ string) (Dependency, bool) {
	i, ok := t.index[typ]
	if !ok {
		return Dependency{}, false
	}

	d := t.entries[i]
	d.DependsOn = slices.Clone(d.DependsOn)

	return d, true
}

// Contains reports whether typ has an entry.
func (t *Table) Contains(typ string) bool {
	_, ok := t.index[typ]
	return ok
}

// Check reports suspicious but legal table content as warnings:
// prerequisites with no entry of their own, and prerequisites placed in a
// later stage than their dependents.
func (t *Table) Check() *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	for _, d := range t.entries {
		for _, dep := range d.DependsOn {
			j, ok := t.index[dep]
			if !ok {
				res.AddWarning("unknown_prerequisite",
					fmt.Sprintf("prerequisite %q has no table entry", dep), d.Type, "")

				continue
			}

			if t.entries[j].Stage > d.Stage {
				res.AddWarning("stage_inversion",
					fmt.Sprintf("prerequisite %q is in stage %d, after stage %d", dep, t.entries[j].Stage, d.Stage),
					d.Type, "")
			}
		}
	}

	return res
}

// DefaultTable returns the stock directive table.
func DefaultTable() *Table {
	t, err := NewTable([]Dependency{
		{
			Type:        "x-frontmatter-part",
			Stage:       1,
			Description: "Select the frontmatter records to process",
		},
		{
			Type:        "x-flatten-arrays",
			DependsOn:   []string{"x-frontmatter-part"},
			Stage:       2,
			Description: "Normalize and flatten record arrays",
		},
		{
			Type:        "x-jmespath-filter",
			DependsOn:   []string{"x-frontmatter-part"},
			Stage:       2,
			Description: "Filter records by expression",
		},
		{
			Type:        "x-derived-from",
			DependsOn:   []string{"x-frontmatter-part", "x-flatten-arrays", "x-jmespath-filter"},
			Stage:       3,
			Description: "Derive aggregated values",
		},
		{
			Type:        "x-derived-unique",
			DependsOn:   []string{"x-derived-from"},
			Stage:       3,
			Description: "Derive aggregated values",
		},
		{
			Type:        "x-template",
			DependsOn:   []string{"x-derived-from", "x-derived-unique"},
			Stage:       4,
			Description: "Render output templates",
		},
		{
			Type:        "x-template-items",
			DependsOn:   []string{"x-template"},
			Stage:       4,
			Description: "Render output templates",
		},
	})
	if err != nil {
		panic(err)
	}

	return t
}
