package ordering

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the YAML layout of a dependency table:
//
//	directives:
//	  - type: x-frontmatter-part
//	    stage: 1
//	    description: Select the frontmatter records to process
//	  - type: x-derived-from
//	    dependsOn: [x-frontmatter-part]
//	    stage: 3
type tableFile struct {
	Directives []Dependency `yaml:"directives"`
}

// LoadTable loads and parses a YAML dependency table from the given path.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dependency table %s: %w", path, err)
	}

	return ParseTable(data)
}

// ParseTable parses YAML data into a Table.
func ParseTable(data []byte) (*Table, error) {
	var tf tableFile

	err := yaml.Unmarshal(data, &tf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dependency table YAML: %w", err)
	}

	applyDefaults(&tf)

	return NewTable(tf.Directives)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(tf *tableFile) {
	for i := range tf.Directives {
		d := &tf.Directives[i]
		if d.Description == "" {
			d.Description = d.Type
		}
	}
}

// MarshalTable serializes a Table to YAML.
func MarshalTable(t *Table) ([]byte, error) {
	return yaml.Marshal(tableFile{Directives: t.Entries()})
}
