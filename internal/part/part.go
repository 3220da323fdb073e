package part

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind tags the variant a Part holds.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindRaw              // raw
	KindHTML             // html
	KindComment          // comment
	KindAttr             // attr
	KindAttrRender       // attr-render
	KindAttrBoolean      // attr-boolean
	KindLogicConditional // logic-conditional
	KindLogicLoop        // logic-loop
	KindLogicElse        // logic-else
	KindLogicClose       // logic-close
)

// IsLogic reports whether k is a control directive.
func (k Kind) IsLogic() bool {
	switch k {
	case KindLogicConditional, KindLogicLoop, KindLogicElse, KindLogicClose:
		return true
	default:
		return false
	}
}

// Part is one unit of the compiled output sequence. Only the fields relevant
// to Kind are set.
type Part struct {
	Kind Kind
	// Text is the literal markup of a raw part.
	Text string
	// Path is the property path rendered, checked or iterated.
	Path string
	// Attr is the attribute name of attr-render and attr-boolean parts.
	Attr string
	// Segments is the odd literal/expression split of an attr part.
	Segments []string
	// Invert negates a conditional.
	Invert bool
	// IterCheck makes a conditional test that Path is a non-empty iterable.
	IterCheck bool
	// Binding names the loop element.
	Binding string
	// Offset is the source offset of the token that produced the part.
	Offset int
}

// DefaultBinding is the loop binding used when none is given.
const DefaultBinding = "_"

// Raw returns a literal part.
func Raw(text string) Part {
	return Part{Kind: KindRaw, Text: text}
}

// HTML returns an escaped body interpolation.
func HTML(path string) Part {
	return Part{Kind: KindHTML, Path: path}
}

// Comment returns an escaped interpolation inside a comment.
func Comment(path string) Part {
	return Part{Kind: KindComment, Path: path}
}

// Attr returns a composite attribute value.
func Attr(segments []string) Part {
	return Part{Kind: KindAttr, Segments: segments}
}

// AttrRender returns an attribute that is omitted when path is undefined.
func AttrRender(attr, path string) Part {
	return Part{Kind: KindAttrRender, Attr: attr, Path: path}
}

// AttrBoolean returns an attribute emitted only when path is truthy.
func AttrBoolean(attr, path string) Part {
	return Part{Kind: KindAttrBoolean, Attr: attr, Path: path}
}

// Conditional opens a conditional block.
func Conditional(path string, invert, iterCheck bool) Part {
	return Part{Kind: KindLogicConditional, Path: path, Invert: invert, IterCheck: iterCheck}
}

// Loop opens a loop block binding each element to binding.
func Loop(path, binding string) Part {
	return Part{Kind: KindLogicLoop, Path: path, Binding: binding}
}

// Else separates the two branches of a block.
func Else() Part {
	return Part{Kind: KindLogicElse}
}

// Close ends a block.
func Close() Part {
	return Part{Kind: KindLogicClose}
}

// At returns p positioned at offset.
func (p Part) At(offset int) Part {
	p.Offset = offset
	return p
}

// String returns a compact description of the part.
func (p Part) String() string {
	switch p.Kind {
	case KindRaw:
		return fmt.Sprintf("raw(%q)", p.Text)
	case KindHTML, KindComment:
		return fmt.Sprintf("%s(%s)", p.Kind, p.Path)
	case KindAttr:
		return fmt.Sprintf("attr(%q)", strings.Join(p.Segments, "|"))
	case KindAttrRender, KindAttrBoolean:
		return fmt.Sprintf("%s(%s, %s)", p.Kind, p.Attr, p.Path)
	case KindLogicConditional:
		mod := ""
		if p.Invert {
			mod = "!"
		}

		if p.IterCheck {
			mod += "iter:"
		}

		return fmt.Sprintf("logic-conditional(%s%s)", mod, p.Path)
	case KindLogicLoop:
		return fmt.Sprintf("logic-loop(%s as %s)", p.Path, p.Binding)
	default:
		return p.Kind.String()
	}
}

// Coalesce merges adjacent raw parts and drops empty ones. Other parts are
// left untouched. Coalesce(Coalesce(x)) equals Coalesce(x).
func Coalesce(parts []Part) []Part {
	out := make([]Part, 0, len(parts))

	for _, p := range parts {
		if p.Kind == KindRaw {
			if p.Text == "" {
				continue
			}

			if n := len(out); n > 0 && out[n-1].Kind == KindRaw {
				out[n-1].Text += p.Text
				continue
			}
		}

		out = append(out, p)
	}

	return out
}
