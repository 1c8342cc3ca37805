// Package validate checks documents against compiled rule sets and returns
// their normalized form.
//
// Validation walks the document recursively. At every location it applies
// the rules compiled for that path, then descends into sequences (at
// "path[]") and maps (at "path.key", over declared and present keys).
// Locations without rules pass through untouched.
//
// The input document is never modified; containers on the way to a
// normalized value are copied.
package validate
