// Package typescope infers the shape of a template's context value.
//
// While the compiler walks the template left to right it records every
// property path it renders. The Scope keeps a tree of typed nodes with:
//   - a required flag (required always wins over optional)
//   - an element subtree for paths that are iterated
//   - loop bindings that alias an element subtree while their frame is open
//
// The finished tree renders as a JSON Schema document whose properties keep
// first-reference order, and as a kin-openapi schema for validating data.
package typescope
