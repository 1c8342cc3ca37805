// Package main provides the docshape command line.
//
// docshape applies the extraction directives declared in a schema to
// frontmatter documents and validates the result:
//   - validate: process documents against a schema
//   - order: show the stage plan for a set of directive types
//   - rules: list the rules compiled from a schema
//   - extract: read a path from a document
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error: ")
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
