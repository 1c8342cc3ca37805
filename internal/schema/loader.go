package schema

import (
	"fmt"

	"docshape/internal/codec"
)

// LoadFile loads a JSON or YAML schema file, resolves its local references
// and converts it into a Node tree.
func LoadFile(path string) (Node, error) {
	raw, err := codec.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	return Build(raw)
}

// Load decodes data in the given format and converts it into a Node tree.
func Load(data []byte, format codec.Format) (Node, error) {
	raw, err := codec.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	return Build(raw)
}

// Build resolves local references in an already-decoded schema and
// converts it into a Node tree.
func Build(raw any) (Node, error) {
	resolved, err := ResolveRefs(raw)
	if err != nil {
		return nil, err
	}

	return FromValue(resolved)
}
