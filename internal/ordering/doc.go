// Package ordering resolves the application order of directive types.
//
// A Table lists every known directive type with its prerequisites and its
// numeric stage. The table is built once (from code or YAML) and is
// read-only afterwards; a Resolver only ever reads it, so one table can be
// shared by any number of goroutines.
//
// DetermineOrder restricts the dependency graph to the directive types
// actually present, rejects cycles, sorts topologically and groups the
// result by stage. Every traversal follows table insertion order, so the
// same input always yields the same plan.
package ordering
