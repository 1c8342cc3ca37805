// Package registry maps schema extension keys to directive types and
// collects the directives a schema declares.
//
// A Registry is built once (Default, New or Parse) and is read-only
// afterwards, so one value can be shared by every worker.
package registry
