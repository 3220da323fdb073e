package typescope

import (
	"fmt"
	"strings"

	"html-template-compiler/internal/diagnostic"
)

// Binding is a loop variable that resolves to an iterable's element type.
type Binding struct {
	// Name is the binding as written in the template.
	Name string
	// Ident is the Go identifier generated code uses for the element.
	Ident string
	// Node is the aliased element subtree.
	Node *Node
}

// FrameKind tags the cleanup a Frame performs when popped.
type FrameKind int

const (
	// FrameEmpty brackets a block without a binding.
	FrameEmpty FrameKind = iota
	// FrameBinding restores the binding it shadowed, or removes its own.
	FrameBinding
)

// Frame is the bookkeeping for one open loop or conditional.
type Frame struct {
	Kind FrameKind
	// Name, Bound and Prev are set for FrameBinding.
	Name  string
	Bound *Binding
	Prev  *Binding
}

// Scope tracks referenced property paths and open blocks for one compilation.
type Scope struct {
	root     *Node
	bindings map[string]*Binding
	frames   []Frame
	idents   int
}

// New creates an empty Scope.
func New() *Scope {
	return &Scope{
		root:     newNode(),
		bindings: make(map[string]*Binding),
	}
}

// Root returns the context node.
func (s *Scope) Root() *Node {
	return s.root
}

// Depth returns the number of open frames.
func (s *Scope) Depth() int {
	return len(s.frames)
}

// IsLocal reports whether name currently resolves to a loop binding rather
// than a context field.
func (s *Scope) IsLocal(name string) bool {
	_, ok := s.bindings[name]
	return ok
}

// Lookup returns the active binding for name.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Record marks path as referenced and returns its node. The first segment
// resolves against active bindings before the context root. A required
// reference marks every node on the path.
func (s *Scope) Record(path string, required bool) (*Node, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	segs := strings.Split(path, ".")

	cur := s.root
	if b, ok := s.bindings[segs[0]]; ok {
		cur = b.Node
		segs = segs[1:]
	}

	if required {
		cur.Required = true
	}

	for _, seg := range segs {
		cur = cur.child(seg)
		if required {
			cur.Required = true
		}
	}

	return cur, nil
}

// MarkIterable records path and gives it an element subtree.
func (s *Scope) MarkIterable(path string) (*Node, error) {
	n, err := s.Record(path, false)
	if err != nil {
		return nil, err
	}

	n.elem()

	return n, nil
}

// NestIterable opens a loop over path. A non-empty binding resolves to the
// element subtree until the frame is popped, shadowing any context field or
// outer binding of the same name. An empty binding opens a plain frame.
func (s *Scope) NestIterable(path, binding string) (*Binding, error) {
	if strings.Contains(binding, ".") {
		return nil, diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeInvalidBinding, binding,
			"can't bind dotted name %q", binding)
	}

	n, err := s.MarkIterable(path)
	if err != nil {
		return nil, err
	}

	if binding == "" {
		s.NestEmpty()
		return nil, nil
	}

	s.idents++
	b := &Binding{
		Name:  binding,
		Ident: fmt.Sprintf("%s%d", LoopIdentPrefix, s.idents),
		Node:  n.Elem,
	}
	b.Node.aliases++

	s.frames = append(s.frames, Frame{
		Kind:  FrameBinding,
		Name:  binding,
		Bound: b,
		Prev:  s.bindings[binding],
	})
	s.bindings[binding] = b

	return b, nil
}

// NestEmpty opens a frame without a binding.
func (s *Scope) NestEmpty() {
	s.frames = append(s.frames, Frame{Kind: FrameEmpty})
}

// Pop closes the innermost frame and runs its cleanup.
func (s *Scope) Pop() error {
	if len(s.frames) == 0 {
		return diagnostic.Errorf(diagnostic.Structural, diagnostic.CodeUnmatchedClose, "",
			"close without an open block")
	}

	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]

	if top.Kind != FrameBinding {
		return nil
	}

	if s.bindings[top.Name] != top.Bound {
		return fmt.Errorf("bad cleanup: unexpected binding in %q", top.Name)
	}

	top.Bound.Node.aliases--

	if top.Prev != nil {
		s.bindings[top.Name] = top.Prev
	} else {
		delete(s.bindings, top.Name)
	}

	return nil
}

// AnyRequired reports whether any recorded path is required.
func (s *Scope) AnyRequired() bool {
	for _, k := range s.root.keys {
		if s.root.fields[k].Required {
			return true
		}
	}

	return false
}
