package typescope

import (
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const indentUnit = "  "

// GenerateType renders the recorded shape as a JSON Schema document.
func (s *Scope) GenerateType() string {
	var b strings.Builder

	writeNode(&b, s.root, 0, true)

	return b.String()
}

// Schema returns the recorded shape as a kin-openapi schema. Every property
// below the root is nullable, so absent and null values both validate.
func (s *Scope) Schema() *openapi3.Schema {
	return buildSchema(s.root, true)
}

func nodeType(n *Node, root bool) string {
	switch {
	case root:
		return openapi3.TypeObject
	case len(n.keys) > 0 && n.Elem == nil:
		return openapi3.TypeObject
	case len(n.keys) == 0 && n.Elem != nil:
		return openapi3.TypeArray
	default:
		return ""
	}
}

func requiredKeys(n *Node) []string {
	var out []string

	for _, k := range n.keys {
		if n.fields[k].Required {
			out = append(out, k)
		}
	}

	return out
}

func writeNode(b *strings.Builder, n *Node, depth int, root bool) {
	typ := nodeType(n, root)
	req := requiredKeys(n)

	if typ == "" && len(n.keys) == 0 && n.Elem == nil {
		b.WriteString("{}")
		return
	}

	inner := strings.Repeat(indentUnit, depth+1)
	first := true

	entry := func(key string) {
		if !first {
			b.WriteString(",")
		}

		first = false

		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString(strconv.Quote(key))
		b.WriteString(": ")
	}

	b.WriteString("{")

	if typ != "" {
		entry("type")
		b.WriteString(strconv.Quote(typ))
	}

	if len(n.keys) > 0 {
		entry("properties")
		b.WriteString("{")

		for i, k := range n.keys {
			if i > 0 {
				b.WriteString(",")
			}

			b.WriteString("\n")
			b.WriteString(strings.Repeat(indentUnit, depth+2))
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			writeNode(b, n.fields[k], depth+2, false)
		}

		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString("}")
	}

	if len(req) > 0 {
		entry("required")
		b.WriteString("[")

		for i, k := range req {
			if i > 0 {
				b.WriteString(",")
			}

			b.WriteString("\n")
			b.WriteString(strings.Repeat(indentUnit, depth+2))
			b.WriteString(strconv.Quote(k))
		}

		b.WriteString("\n")
		b.WriteString(inner)
		b.WriteString("]")
	}

	if n.Elem != nil {
		entry("items")
		writeNode(b, n.Elem, depth+1, false)
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString("}")
}

func buildSchema(n *Node, root bool) *openapi3.Schema {
	var s *openapi3.Schema

	switch nodeType(n, root) {
	case openapi3.TypeObject:
		s = openapi3.NewObjectSchema()
	case openapi3.TypeArray:
		s = openapi3.NewArraySchema()
	default:
		s = openapi3.NewSchema()
	}

	for _, k := range n.keys {
		s.WithProperty(k, buildSchema(n.fields[k], false))
	}

	s.Required = requiredKeys(n)

	if n.Elem != nil {
		s.WithItems(buildSchema(n.Elem, false))
	}

	if !root {
		s.Nullable = true
	}

	return s
}
