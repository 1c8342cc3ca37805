// Package directive implements extraction directives: validated
// source-path -> target-path pairs, and the applier that copies values
// between locations of the same document.
//
// Source and target paths share the docpath grammar. A target carrying
// "[]" (or a directive declared as array-typed) always receives a
// sequence; other targets are written only when the source yields a value.
//
// ApplyAll applies directives in the order given. Ordering across directive
// types is the job of package ordering. Failures abort the batch unless the
// collect-all policy is selected explicitly.
package directive
