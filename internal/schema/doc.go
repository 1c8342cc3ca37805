// Package schema models JSON-Schema-like definitions as a sealed tree of
// ten node variants: string, number, integer, boolean, array, object, enum,
// ref, null and any.
//
// Dispatch over variants goes through Visitor. Adding a variant means
// adding a Visitor method, which breaks every visitor until it handles the
// new kind.
//
// FromValue builds the tree from a decoded document (maps, slices and
// scalars). ResolveRefs inlines local "#/..." references beforehand; Load
// and LoadFile do decoding, resolution and conversion in one step.
package schema
