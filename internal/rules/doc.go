// Package rules compiles schema trees into flat, path-tagged validation
// rules.
//
// Every reachable schema node yields exactly one Rule whose Path is the
// document location it constrains:
//
//   - "" for the document root
//   - "title" for a root property
//   - "meta.author" for nested properties
//   - "tags[]" for the elements of an array
//   - "items[].name" for properties of array elements
//
// Rules are a closed set of ten variants mirroring schema kinds. Compiled
// rule sets are immutable and can be shared between goroutines; Cache keeps
// them keyed by schema identity.
package rules
