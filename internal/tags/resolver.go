package tags

import (
	"fmt"
	"strings"

	"html-template-compiler/internal/diagnostic"
	"html-template-compiler/internal/match"
	"html-template-compiler/internal/part"
	"html-template-compiler/internal/scan"
)

// Resolver converts a parsed tag into control parts. ok is false when the
// tag is not a directive and must be emitted as markup.
type Resolver interface {
	ResolveTag(tag *scan.TagDef) (parts []part.Part, ok bool, err error)
}

// Passthrough recognizes no tags.
type Passthrough struct{}

// ResolveTag implements Resolver.
func (Passthrough) ResolveTag(*scan.TagDef) ([]part.Part, bool, error) {
	return nil, false, nil
}

// DefaultPrefix is the namespace used by NewNamespace when prefix is empty.
const DefaultPrefix = "hc:"

// Directive tag local names.
const (
	TagLoop = "loop"
	TagIf   = "if"
	TagElse = "else"
)

// Directive tag attributes.
const (
	AttrIter  = "iter"
	AttrValue = "v"
)

// Namespace resolves the closed set of directive tags under Prefix. An empty
// Prefix behaves as DefaultPrefix.
type Namespace struct {
	Prefix string
}

// NewNamespace creates a Namespace resolver for prefix (DefaultPrefix if
// empty).
func NewNamespace(prefix string) *Namespace {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Namespace{Prefix: prefix}
}

func (n *Namespace) prefix() string {
	if n.Prefix == "" {
		return DefaultPrefix
	}

	return n.Prefix
}

// ResolveTag implements Resolver.
func (n *Namespace) ResolveTag(tag *scan.TagDef) ([]part.Part, bool, error) {
	prefix := n.prefix()

	local, ok := strings.CutPrefix(tag.Name, prefix)
	if !ok {
		return nil, false, nil
	}

	var (
		p   part.Part
		err error
	)

	switch local {
	case TagLoop:
		p, err = n.loop(tag)
	case TagIf:
		p, err = n.conditional(tag)
	case TagElse:
		p, err = n.otherwise(tag)
	default:
		err = diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeUnknownTag, tag.Name,
			"unknown directive tag %q%s", tag.Name, hint(local, prefix, TagLoop, TagIf, TagElse))
	}

	if err != nil {
		if derr, ok := err.(*diagnostic.Error); ok {
			return nil, true, derr.At(tag.Offset)
		}

		return nil, true, err
	}

	return []part.Part{p.At(tag.Offset)}, true, nil
}

func (n *Namespace) loop(tag *scan.TagDef) (part.Part, error) {
	if tag.Close {
		return part.Close(), noAttrs(tag)
	}

	if tag.SelfClosing {
		return part.Part{}, diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeUnknownTag, tag.Name,
			"%s must not be self-closing", tag.Name)
	}

	if err := allowAttrs(tag, AttrIter, AttrValue); err != nil {
		return part.Part{}, err
	}

	iter, ok := value(tag, AttrIter)
	if !ok || iter == "" {
		return part.Part{}, missingAttr(tag, AttrIter)
	}

	binding := part.DefaultBinding
	if v, ok := value(tag, AttrValue); ok {
		binding = v
	}

	return part.Loop(iter, binding), nil
}

func (n *Namespace) conditional(tag *scan.TagDef) (part.Part, error) {
	if tag.Close {
		return part.Close(), noAttrs(tag)
	}

	if tag.SelfClosing {
		return part.Part{}, diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeUnknownTag, tag.Name,
			"%s must not be self-closing", tag.Name)
	}

	if err := allowAttrs(tag, AttrIter, AttrValue); err != nil {
		return part.Part{}, err
	}

	v, hasValue := value(tag, AttrValue)
	iter, hasIter := value(tag, AttrIter)

	if hasValue == hasIter {
		return part.Part{}, diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeTagAttribute, tag.Name,
			"%s needs exactly one of %s= or %s=", tag.Name, AttrValue, AttrIter)
	}

	path := v
	if hasIter {
		path = iter
	}

	invert := strings.HasPrefix(path, "!")
	if invert {
		path = strings.TrimSpace(path[1:])
	}

	if path == "" {
		return part.Part{}, missingAttr(tag, AttrValue)
	}

	return part.Conditional(path, invert, hasIter), nil
}

func (n *Namespace) otherwise(tag *scan.TagDef) (part.Part, error) {
	if tag.Close || !tag.SelfClosing {
		return part.Part{}, diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeUnknownTag, tag.Name,
			"%s must be written as <%s/>", tag.Name, tag.Name)
	}

	return part.Else(), noAttrs(tag)
}

// value returns the attribute value with surrounding whitespace and an
// optional {{…}} wrapper removed.
func value(tag *scan.TagDef, key string) (string, bool) {
	a, ok := tag.Get(key)
	if !ok || a.Flag {
		return "", ok
	}

	v := strings.TrimSpace(a.Value)
	if strings.HasPrefix(v, "{{") && strings.HasSuffix(v, "}}") && len(v) >= 4 {
		v = strings.TrimSpace(v[2 : len(v)-2])
	}

	return v, true
}

func allowAttrs(tag *scan.TagDef, allowed ...string) error {
	for _, a := range tag.Attrs {
		found := false

		for _, name := range allowed {
			if a.Key == name {
				found = true
				break
			}
		}

		if !found {
			return diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeTagAttribute, a.Key,
				"attribute %q is not allowed on %s%s", a.Key, tag.Name, hint(a.Key, "", allowed...))
		}
	}

	return nil
}

func noAttrs(tag *scan.TagDef) error {
	return allowAttrs(tag)
}

func missingAttr(tag *scan.TagDef, key string) error {
	return diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeTagAttribute, tag.Name,
		"%s needs a %s= attribute", tag.Name, key)
}

// hint returns a "did you mean" suffix naming the known name closest to got.
func hint(got, prefix string, known ...string) string {
	if name, ok := match.Suggest(got, known); ok {
		return fmt.Sprintf("; did you mean %q?", prefix+name)
	}

	return ""
}
