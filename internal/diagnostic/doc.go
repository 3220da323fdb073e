// Package diagnostic defines the compile error taxonomy shared by the
// scanner, the part model, the type scope and the code generator.
//
// Every failure is fatal for the template being compiled. Errors carry:
//   - a Category (lexical, structural, semantic, directive)
//   - a short machine-readable Code
//   - the offending token, attribute or tag and its source offset
//
// Diagnostics aggregates failures across several templates for batch tools.
package diagnostic
