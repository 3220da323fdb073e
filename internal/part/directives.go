package part

import (
	"strings"

	"html-template-compiler/internal/diagnostic"
)

// InlineDirectives resolves the brace directive grammar:
//
//	{{~cond}}  {{~!cond}}  conditional, optionally inverted
//	{{>items}} {{>items x}} loop, binding defaults to "_"
//	{{|}}                  else
//	{{<}}                  close
type InlineDirectives struct{}

// ResolveDirective implements DirectiveResolver.
func (InlineDirectives) ResolveDirective(expr string) ([]Part, error) {
	switch expr[0] {
	case '~':
		rest := expr[1:]

		invert := strings.HasPrefix(rest, "!")
		if invert {
			rest = rest[1:]
		}

		path := strings.TrimSpace(rest)
		if path == "" {
			return nil, diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeInvalidPath, "{{"+expr+"}}",
				"conditional needs a path")
		}

		return []Part{Conditional(path, invert, false)}, nil

	case '>':
		fields := strings.Fields(expr[1:])

		switch len(fields) {
		case 1:
			return []Part{Loop(fields[0], DefaultBinding)}, nil
		case 2:
			return []Part{Loop(fields[0], fields[1])}, nil
		case 0:
			return nil, diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeInvalidPath, "{{"+expr+"}}",
				"loop needs an iterable path")
		default:
			return nil, diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeInvalidBinding, "{{"+expr+"}}",
				"loop takes an iterable and at most one binding, got %d words", len(fields))
		}

	case '|':
		if expr != "|" {
			return nil, unknownDirective(expr)
		}

		return []Part{Else()}, nil

	case '<':
		if expr != "<" {
			return nil, unknownDirective(expr)
		}

		return []Part{Close()}, nil
	}

	return nil, unknownDirective(expr)
}
