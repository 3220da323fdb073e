package codegen

import (
	"fmt"
	"go/token"

	"github.com/getkin/kin-openapi/openapi3"

	"html-template-compiler/internal/part"
	"html-template-compiler/internal/scan"
	"html-template-compiler/internal/tags"
	"html-template-compiler/internal/typescope"
)

// Config holds configuration for compilation.
type Config struct {
	// ContextName is the parameter the expression reads the context from.
	ContextName string
	// RuntimeAlias is the package name runtime calls are qualified with.
	RuntimeAlias string
	// Tags resolves directive tags. Nil recognizes none.
	Tags tags.Resolver
	// Directives resolves inline brace directives. Nil means
	// part.InlineDirectives.
	Directives part.DirectiveResolver
}

// DefaultConfig returns the default compiler configuration.
func DefaultConfig() Config {
	return Config{
		ContextName:  "data",
		RuntimeAlias: "htmlrt",
		Tags:         tags.NewNamespace(tags.DefaultPrefix),
		Directives:   part.InlineDirectives{},
	}
}

// Compiler compiles templates. It holds no per-compilation state and may be
// shared between goroutines.
type Compiler struct {
	config Config
}

// NewCompiler creates a Compiler. Empty names fall back to DefaultConfig.
func NewCompiler(config Config) *Compiler {
	def := DefaultConfig()

	if config.ContextName == "" {
		config.ContextName = def.ContextName
	}

	if config.RuntimeAlias == "" {
		config.RuntimeAlias = def.RuntimeAlias
	}

	if config.Tags == nil {
		config.Tags = tags.Passthrough{}
	}

	if config.Directives == nil {
		config.Directives = def.Directives
	}

	return &Compiler{config: config}
}

// Config returns the effective configuration.
func (c *Compiler) Config() Config {
	return c.config
}

// Result is the output of one compilation.
type Result struct {
	// Expression is a Go expression of type string.
	Expression string
	// TypeDescription is a JSON Schema document for the context value.
	TypeDescription string
	// Schema mirrors TypeDescription for validating data.
	Schema *openapi3.Schema
	// Paths lists every referenced property.
	Paths []typescope.PathInfo
}

// Compile compiles src with the default configuration.
func Compile(src string) (*Result, error) {
	return NewCompiler(DefaultConfig()).Compile(src)
}

// Compile compiles one template source. Any error aborts the compilation.
func (c *Compiler) Compile(src string) (*Result, error) {
	if !token.IsIdentifier(c.config.ContextName) {
		return nil, fmt.Errorf("context name %q is not a Go identifier", c.config.ContextName)
	}

	if c.config.ContextName == c.config.RuntimeAlias {
		return nil, fmt.Errorf("context name %q collides with the runtime package name", c.config.ContextName)
	}

	if typescope.IsLoopIdent(c.config.ContextName) {
		return nil, fmt.Errorf("context name %q is reserved for loop variables", c.config.ContextName)
	}

	parts, err := c.Parts(src)
	if err != nil {
		return nil, err
	}

	scope := typescope.New()

	expr, err := newFolder(c.config, scope).fold(parts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Expression:      expr,
		TypeDescription: scope.GenerateType(),
		Schema:          scope.Schema(),
		Paths:           scope.Paths(),
	}, nil
}

// Parts scans src and returns its coalesced part sequence.
func (c *Compiler) Parts(src string) ([]part.Part, error) {
	s := scan.New(src)

	var out []part.Part

	for {
		tok, err := s.ConsumeTopLevel()
		if err != nil {
			return nil, err
		}

		var parts []part.Part

		switch tok.Kind {
		case scan.TokenEnd:
			return part.Coalesce(out), nil
		case scan.TokenText:
			parts, err = part.SplitForParts(tok.Text, part.ContextText, c.config.Directives, tok.Offset)
		case scan.TokenComment:
			parts, err = part.SplitForParts(tok.Text, part.ContextComment, c.config.Directives, tok.Offset)
		case scan.TokenTag:
			parts, err = c.tagParts(tok.Tag)
		}

		if err != nil {
			return nil, err
		}

		out = append(out, parts...)
	}
}

// tagParts resolves a directive tag or rebuilds the tag as markup.
func (c *Compiler) tagParts(tag *scan.TagDef) ([]part.Part, error) {
	parts, ok, err := c.config.Tags.ResolveTag(tag)
	if err != nil {
		return nil, err
	}

	if ok {
		return parts, nil
	}

	open := "<"
	if tag.Close {
		open = "</"
	}

	out := []part.Part{part.Raw(open + tag.Name).At(tag.Offset)}

	for _, a := range tag.Attrs {
		attrParts, err := part.RenderAttrKeyValue(a, tag.Offset)
		if err != nil {
			return nil, err
		}

		out = append(out, attrParts...)
	}

	end := ">"
	if tag.SelfClosing {
		end = " />"
	}

	return append(out, part.Raw(end).At(tag.Offset)), nil
}
