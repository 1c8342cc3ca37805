// Package docpath implements the path micro-language used by extraction
// directives and the extractor that walks documents with it.
//
// # Path Syntax
//
// Paths are dot-separated identifiers. A trailing "[]" on a segment marks
// array expansion: the value at that segment is treated as a sequence and
// the remaining segments are applied to every element.
//
//   - Simple fields: "title"
//   - Nested fields: "meta.author"
//   - Sequence values: "tags[]"
//   - Fields inside sequence elements: "items[].name"
//   - Nested expansion: "sections[].items[].id"
//
// Segment names follow [A-Za-z_][A-Za-z0-9_]*. The bare path "[]" is valid
// and always extracts an empty sequence.
//
// # Documents
//
// Documents are trees of map[string]any, []any and scalars. Missing or null
// intermediates are not errors; extraction simply yields no value. Walking
// into a scalar while segments remain is an error (PropertyNotFoundError).
package docpath
