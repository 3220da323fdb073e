// Package codegen compiles a template source into a Go expression and a
// description of the context shape it needs.
//
// Compilation runs in two steps:
//   - the scanner tokens are turned into a coalesced part sequence, offering
//     every tag to the directive-tag resolver before re-emitting it as markup
//   - one left-to-right fold over the parts builds the expression text while
//     recording every property path in a typescope.Scope
//
// The expression only references the context parameter, loop element
// identifiers and functions of the htmlrt runtime package.
package codegen
