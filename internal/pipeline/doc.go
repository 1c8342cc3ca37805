// Package pipeline runs the full document flow for one schema: directives
// declared by the schema are collected, ordered and applied, then the
// result is validated and optionally wrapped under an output path.
//
// A Processor is built once per schema and is safe for concurrent use.
// Documents are processed independently; the only shared state is the
// rule-set and path caches.
package pipeline
