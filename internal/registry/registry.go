package registry

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"docshape/internal/schema"
)

// ErrInvalidEntry is returned for malformed registry entries.
var ErrInvalidEntry = errors.New("invalid registry entry")

// Entry binds one extension key to a directive type.
type Entry struct {
	// Key is the schema extension key, e.g. "x-derived-from".
	Key string `yaml:"key"`
	// Type is the directive type used for ordering. Defaults to Key.
	Type string `yaml:"type,omitempty"`
	// Marker entries take a boolean value and normalize the annotated
	// property into a sequence. They cannot be used inside array items.
	// Other entries take a source path.
	Marker bool `yaml:"marker,omitempty"`
	// Flatten entries splice nested sequences of the source value into the
	// target, one level deep.
	Flatten bool `yaml:"flatten,omitempty"`
}

// Registry is an immutable set of entries in registration order.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// New validates entries and builds a Registry.
func New(entries []Entry) (*Registry, error) {
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if !strings.HasPrefix(e.Key, schema.ExtensionPrefix) {
			return nil, fmt.Errorf("%w: key %q must start with %q", ErrInvalidEntry, e.Key, schema.ExtensionPrefix)
		}

		if e.Marker && e.Flatten {
			return nil, fmt.Errorf("%w: key %q cannot be both marker and flatten", ErrInvalidEntry, e.Key)
		}

		if _, dup := r.index[e.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidEntry, e.Key)
		}

		if e.Type == "" {
			e.Type = e.Key
		}

		r.index[e.Key] = len(r.entries)
		r.entries = append(r.entries, e)
	}

	return r, nil
}

// Default returns the stock registry.
func Default() *Registry {
	r, err := New([]Entry{
		{Key: "x-frontmatter-part", Marker: true},
		{Key: "x-flatten-arrays", Flatten: true},
		{Key: "x-derived-from"},
	})
	if err != nil {
		panic(err)
	}

	return r
}

// Lookup returns the entry registered for key.
func (r *Registry) Lookup(key string) (Entry, bool) {
	i, ok := r.index[key]
	if !ok {
		return Entry{}, false
	}

	return r.entries[i], true
}

// Entries returns a copy of the entries in registration order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// registryFile is the YAML layout of a registry:
//
//	extensions:
//	  - key: x-frontmatter-part
//	    marker: true
//	  - key: x-flatten-arrays
//	    flatten: true
//	  - key: x-derived-from
type registryFile struct {
	Extensions []Entry `yaml:"extensions"`
}

// Load loads and parses a YAML registry file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Registry.
func Parse(data []byte) (*Registry, error) {
	var rf registryFile

	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse registry YAML: %w", err)
	}

	return New(rf.Extensions)
}

// Marshal serializes a Registry to YAML.
func Marshal(r *Registry) ([]byte, error) {
	return yaml.Marshal(registryFile{Extensions: r.Entries()})
}
