// Package preview renders compiled templates without building them.
//
// The generated expression is parsed with go/parser and interpreted over
// the small grammar the compiler emits: string literals joined with "+",
// identifiers for the context and loop elements, single-return function
// literals and calls into the runtime package. The runtime calls dispatch to
// the real htmlrt functions, so a preview renders exactly what the generated
// Go code would.
//
// Data for previews is loaded from YAML or JSON and can be checked against
// the inferred schema before rendering.
package preview
