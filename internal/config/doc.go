// Package config loads the htmlc.yaml project file.
//
// The file tells the gen command where templates live, how to name the
// generated functions and which package to write them into:
//
//	version: "1"
//	templates: ./templates
//	output: ./templates/templates_gen.go
//	package: templates
//	ext: .html
//	prefix: Template
//	context: data
//	namespace: "hc:"
//	schemas: true
//
// Omitted fields take the values of Default.
package config
