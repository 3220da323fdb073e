// Package gen turns a directory of templates into one Go source file.
//
// Every template becomes a render function named after its file, plus an
// optional JSON Schema constant describing the context it reads. Generation
// uses text/template + imports.Process (or go/format) for readable,
// deterministic output:
//   - templates are discovered and emitted in sorted path order
//   - function names are camel-cased file paths with a common prefix
//   - colliding names and compile errors are reported per file
package gen
