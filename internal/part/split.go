package part

import (
	"errors"
	"strings"

	"html-template-compiler/internal/diagnostic"
)

// Context says where a run of text appears.
type Context int

const (
	// ContextText is element body text.
	ContextText Context = iota
	// ContextComment is the inside of a comment or doctype.
	ContextComment
)

// DirectiveResolver turns a brace expression that does not start with an
// identifier character into one or more parts.
type DirectiveResolver interface {
	ResolveDirective(expr string) ([]Part, error)
}

// segment is one element of an odd split with its source offset.
type segment struct {
	text   string
	offset int
}

// OddSplit splits raw on "{{…}}" into literal, expression, literal, …
// The result always has odd length. Expressions are trimmed.
//
//   - "{{foo}}" => ["", "foo", ""]
//   - "Hello {{attr}}" => ["Hello ", "attr", ""]
//   - "What {{is}} up {{name}}" => ["What ", "is", " up ", "name", ""]
func OddSplit(raw string) ([]string, error) {
	segs, err := splitBraces(raw, 0)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.text
	}

	return out, nil
}

func splitBraces(raw string, base int) ([]segment, error) {
	var out []segment

	index := 0

	for {
		open := strings.Index(raw[index:], "{{")
		if open < 0 {
			return append(out, segment{text: raw[index:], offset: base + index}), nil
		}

		open += index

		end := strings.Index(raw[open+2:], "}}")
		if end < 0 || strings.IndexByte(raw[open+2:open+2+end], '\n') >= 0 {
			return nil, diagnostic.Errorf(diagnostic.Lexical, diagnostic.CodeUnterminated, snippet(raw[open:]),
				"unterminated expression").At(base + open)
		}

		end += open + 2

		out = append(out,
			segment{text: raw[index:open], offset: base + index},
			segment{text: strings.TrimSpace(raw[open+2 : end]), offset: base + open},
		)
		index = end + 2
	}
}

// SplitForParts converts a text or comment run into parts. base is the
// source offset of raw. A nil resolver means InlineDirectives.
func SplitForParts(raw string, ctx Context, resolver DirectiveResolver, base int) ([]Part, error) {
	if resolver == nil {
		resolver = InlineDirectives{}
	}

	segs, err := splitBraces(raw, base)
	if err != nil {
		return nil, err
	}

	var out []Part

	for i, seg := range segs {
		if i%2 == 0 {
			if seg.text != "" {
				out = append(out, Raw(seg.text).At(seg.offset))
			}

			continue
		}

		expr := seg.text
		if expr == "" {
			return nil, diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeInvalidPath, "{{}}",
				"empty expression").At(seg.offset)
		}

		if IsIdentStart(expr[0]) {
			p := HTML(expr)
			if ctx == ContextComment {
				p = Comment(expr)
			}

			out = append(out, p.At(seg.offset))

			continue
		}

		parts, err := resolver.ResolveDirective(expr)
		if err != nil {
			var derr *diagnostic.Error
			if errors.As(err, &derr) {
				return nil, derr.At(seg.offset)
			}

			return nil, err
		}

		if len(parts) == 0 {
			return nil, unknownDirective(expr).At(seg.offset)
		}

		for _, p := range parts {
			out = append(out, p.At(seg.offset))
		}
	}

	return out, nil
}

// IsIdentStart reports whether an expression starting with c is a plain
// value interpolation rather than a directive.
func IsIdentStart(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func unknownDirective(expr string) *diagnostic.Error {
	return diagnostic.Errorf(diagnostic.Directive, diagnostic.CodeUnknownDirective, "{{"+expr+"}}",
		"unrecognized directive %q", expr)
}

func snippet(s string) string {
	const maxLen = 24

	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}

	if len(s) > maxLen {
		return s[:maxLen] + "…"
	}

	return s
}
