// Package diagnostic provides structured warnings and errors for the
// directive engine, and the error policy shared by the applier and the
// validator.
//
// Key capabilities:
//   - Fail-fast (default) versus collect-all error reporting
//   - Dependency table warnings (unknown prerequisites, stage inversions)
//   - Aggregated directive and validation failures that still unwrap to
//     their typed causes
package diagnostic
