package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/imports"

	"html-template-compiler/internal/codegen"
	"html-template-compiler/internal/common"
	"html-template-compiler/internal/diagnostic"
	"html-template-compiler/internal/tags"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputFile is the path of the generated Go file.
	OutputFile string
	// FuncPrefix is prepended to every render function name.
	FuncPrefix string
	// Ext is the template file extension, including the dot.
	Ext string
	// ContextName is the parameter name of render functions.
	ContextName string
	// Namespace is the directive tag prefix.
	Namespace string
	// RuntimeImport is the import path of the runtime package.
	RuntimeImport string
	// Schemas emits a JSON Schema constant next to each function.
	Schemas bool
	// SkipImports uses format.Source instead of imports.Process (faster for tests).
	SkipImports bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:   "templates",
		OutputFile:    "templates_gen.go",
		FuncPrefix:    "Template",
		Ext:           ".html",
		ContextName:   "data",
		Namespace:     tags.DefaultPrefix,
		RuntimeImport: "html-template-compiler/htmlrt",
		Schemas:       true,
	}
}

// Generator compiles templates and renders them into a Go file.
type Generator struct {
	config   GeneratorConfig
	compiler *codegen.Compiler
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		compiler: codegen.NewCompiler(codegen.Config{
			ContextName:  config.ContextName,
			RuntimeAlias: common.PkgAlias(config.RuntimeImport),
			Tags:         tags.NewNamespace(config.Namespace),
		}),
	}
}

// Template is one template source.
type Template struct {
	// Path is the slash-separated path relative to the templates directory.
	Path string
	// Source is the template text.
	Source string
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Path is where the file is written.
	Path string
	// Content is the formatted Go source code.
	Content []byte
	// Funcs lists the generated function names in output order.
	Funcs []string
}

// Discover reads every file under dir with the configured extension, in
// sorted path order. Hidden directories are skipped.
func (g *Generator) Discover(dir string) ([]Template, error) {
	var out []Template

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.EqualFold(filepath.Ext(p), g.config.Ext) {
			return nil
		}

		src, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}

		out = append(out, Template{Path: filepath.ToSlash(rel), Source: string(src)})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering templates in %s: %w", dir, err)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out, nil
}

// Generate compiles every template and renders the Go file. Compile errors
// are collected for all templates before failing.
func (g *Generator) Generate(templates []Template) (*GeneratedFile, error) {
	names, err := g.funcNames(templates)
	if err != nil {
		return nil, err
	}

	data := &templateData{
		PackageName:   g.config.PackageName,
		RuntimeImport: g.config.RuntimeImport,
		RuntimeAlias:  common.PkgAlias(g.config.RuntimeImport),
		ContextName:   g.config.ContextName,
		Schemas:       g.config.Schemas,
	}

	var diags diagnostic.Diagnostics

	for i, t := range templates {
		res, err := g.compiler.Compile(t.Source)
		if err != nil {
			diags.Add(t.Path, err)
			continue
		}

		data.Templates = append(data.Templates, templateFunc{
			Name:       names[i],
			Source:     t.Path,
			Expression: res.Expression,
			Schema:     res.TypeDescription,
		})
	}

	if diags.HasErrors() {
		return nil, diags.Err()
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := g.format(buf.Bytes())
	if err != nil {
		_ = writeDebugUnformatted(g.config.OutputFile, buf.Bytes())

		return &GeneratedFile{
			Path:    g.config.OutputFile,
			Content: buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	file := &GeneratedFile{
		Path:    g.config.OutputFile,
		Content: formatted,
	}

	for _, t := range data.Templates {
		file.Funcs = append(file.Funcs, t.Name)
	}

	return file, nil
}

// GenerateDir discovers templates in dir and generates the file.
func (g *Generator) GenerateDir(dir string) (*GeneratedFile, error) {
	templates, err := g.Discover(dir)
	if err != nil {
		return nil, err
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("no %s templates in %s", g.config.Ext, dir)
	}

	return g.Generate(templates)
}

func (g *Generator) format(src []byte) ([]byte, error) {
	if g.config.SkipImports {
		return format.Source(src)
	}

	return imports.Process(g.config.OutputFile, src, nil)
}

// funcNames returns the function name of every template, failing when two
// templates map to the same name.
func (g *Generator) funcNames(templates []Template) ([]string, error) {
	names := make([]string, len(templates))
	seen := make(map[string]string, len(templates))

	var diags diagnostic.Diagnostics

	for i, t := range templates {
		name, err := FuncName(g.config.FuncPrefix, t.Path)
		if err != nil {
			diags.Add(t.Path, err)
			continue
		}

		if prev, ok := seen[name]; ok {
			diags.Add(t.Path, fmt.Errorf("function name %s already used by %s", name, prev))
			continue
		}

		seen[name] = t.Path
		names[i] = name
	}

	if diags.HasErrors() {
		return nil, diags.Err()
	}

	return names, nil
}
