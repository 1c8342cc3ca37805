// Package codec decodes and encodes the JSON and YAML documents handled by
// the pipeline and the CLI. Decoded values always use the document model:
// map[string]any, []any and scalars.
package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"

	"docshape/internal/common"
)

// Format is a serialization format.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return common.UnknownStr
	}
}

// ParseFormat maps a name ("json", "yaml", "yml") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatUnknown, fmt.Errorf("unknown format %q", name)
	}
}

// FormatFromPath guesses the format from a file extension. Unknown
// extensions are treated as YAML, which is a superset of JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (any, error) {
	switch format {
	case FormatJSON:
		v, err := oj.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}

		return v, nil
	case FormatYAML:
		var v any

		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}

		return Normalize(v)
	default:
		return nil, fmt.Errorf("cannot decode format %s", format)
	}
}

// DecodeFile reads and decodes a file, picking the format by extension.
func DecodeFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	v, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

// Encode serializes v. JSON output is indented with sorted keys.
func Encode(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return []byte(oj.JSON(v, &ojg.Options{Indent: 2, Sort: true})), nil
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("cannot encode format %s", format)
	}
}

// Normalize converts map[any]any nodes (produced by YAML for non-string
// keys) into map[string]any, recursively.
func Normalize(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			n, err := Normalize(child)
			if err != nil {
				return nil, err
			}

			t[k] = n
		}

		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))

		for k, child := range t {
			n, err := Normalize(child)
			if err != nil {
				return nil, err
			}

			out[fmt.Sprint(k)] = n
		}

		return out, nil
	case []any:
		for i, child := range t {
			n, err := Normalize(child)
			if err != nil {
				return nil, err
			}

			t[i] = n
		}

		return t, nil
	default:
		return v, nil
	}
}
