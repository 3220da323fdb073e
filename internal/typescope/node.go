package typescope

// Node is one property of the inferred context shape.
type Node struct {
	// Required is set once any reference needs the property present.
	Required bool
	// Elem is the element type when the property is iterated.
	Elem *Node

	keys    []string
	fields  map[string]*Node
	aliases int
}

func newNode() *Node {
	return &Node{fields: make(map[string]*Node)}
}

// Child returns the named field.
func (n *Node) Child(name string) (*Node, bool) {
	c, ok := n.fields[name]
	return c, ok
}

// Keys returns field names in first-reference order.
func (n *Node) Keys() []string {
	return append([]string(nil), n.keys...)
}

// Iterable reports whether the property is ever iterated.
func (n *Node) Iterable() bool {
	return n.Elem != nil
}

// Local reports whether a loop binding currently aliases this node.
func (n *Node) Local() bool {
	return n.aliases > 0
}

// child returns the named field, creating it on first reference.
func (n *Node) child(name string) *Node {
	if c, ok := n.fields[name]; ok {
		return c
	}

	c := newNode()
	n.fields[name] = c
	n.keys = append(n.keys, name)

	return c
}

// elem returns the element subtree, creating it on first use.
func (n *Node) elem() *Node {
	if n.Elem == nil {
		n.Elem = newNode()
	}

	return n.Elem
}
