package typescope

import (
	"strings"
)

// TypePath builds a readable path string for a recorded property.
// Examples:
//   - "user" for a top-level field
//   - "user.name" for a nested field
//   - "items[]" for the elements of an iterated field
//   - "items[].label" for a field within iterated elements
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a top-level field name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	if p == nil {
		return NewTypePath(name)
	}

	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Elem appends an element indicator "[]" to the path.
func (p *TypePath) Elem() *TypePath {
	if p == nil || len(p.parts) == 0 {
		return &TypePath{parts: []string{"[]"}}
	}

	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] += "[]"

	return &TypePath{parts: newParts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	if p == nil {
		return ""
	}

	return strings.Join(p.parts, ".")
}

// PathInfo describes one recorded property.
type PathInfo struct {
	Path     string
	Required bool
	Iterable bool
}

// Paths lists every recorded property depth-first in first-reference order.
func (s *Scope) Paths() []PathInfo {
	var out []PathInfo

	collectPaths(s.root, nil, &out)

	return out
}

func collectPaths(n *Node, path *TypePath, out *[]PathInfo) {
	for _, k := range n.keys {
		child := n.fields[k]
		childPath := path.Field(k)

		*out = append(*out, PathInfo{
			Path:     childPath.String(),
			Required: child.Required,
			Iterable: child.Iterable(),
		})

		collectPaths(child, childPath, out)
	}

	if n.Elem != nil && path != nil {
		collectPaths(n.Elem, path.Elem(), out)
	}
}
