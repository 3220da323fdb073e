package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) GeneratorConfig {
	t.Helper()

	cfg := DefaultGeneratorConfig()
	cfg.OutputFile = filepath.Join(t.TempDir(), "templates_gen.go")
	cfg.SkipImports = true

	return cfg
}

func writeTemplates(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, src := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(src), 0o600))
	}

	return dir
}

func TestFuncName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"page.html", "TemplatePage"},
		{"page-header.html", "TemplatePageHeader"},
		{"emails/welcome_back.html", "TemplateEmailsWelcomeBack"},
		{"v2/list.html", "TemplateV2List"},
		{"card.tpl.html", "TemplateCardTpl"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			name, err := FuncName("Template", tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}

	_, err := FuncName("", "1st.html")
	require.Error(t, err)

	_, err = FuncName("Template", "---.html")
	require.Error(t, err)
}

func TestGenerator_Discover(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"b.html":          "b",
		"a.html":          "a",
		"nested/c.HTML":   "c",
		"notes.txt":       "skip",
		".hidden/d.html":  "skip",
		"nested/.e/f.htm": "skip",
	})

	g := NewGenerator(testConfig(t))

	templates, err := g.Discover(dir)
	require.NoError(t, err)

	paths := make([]string, 0, len(templates))
	for _, tpl := range templates {
		paths = append(paths, tpl.Path)
	}

	if diff := cmp.Diff([]string{"a.html", "b.html", "nested/c.HTML"}, paths); diff != "" {
		t.Errorf("discovered paths mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "a", templates[0].Source)

	_, err = g.Discover(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator(testConfig(t))

	file, err := g.Generate([]Template{
		{Path: "greeting.html", Source: `<p>{{name}}</p>`},
		{Path: "list-view.html", Source: `<ul>{{>items x}}<li>{{x.label}}</li>{{<}}</ul>`},
	})
	require.NoError(t, err)

	content := string(file.Content)

	assert.Contains(t, content, "// Code generated by htmlc. DO NOT EDIT.")
	assert.Contains(t, content, "package templates")
	assert.Contains(t, content, `htmlrt "html-template-compiler/htmlrt"`)
	assert.Contains(t, content, "func TemplateGreeting(data any) htmlrt.Unsafe {")
	assert.Contains(t, content,
		`return htmlrt.MakeUnsafe("<p>" + htmlrt.RenderBody(htmlrt.Get(data, "name")) + "</p>")`)
	assert.Contains(t, content, "func TemplateListView(data any) htmlrt.Unsafe {")
	assert.Contains(t, content, "const TemplateGreetingSchema = `{")
	assert.Contains(t, content, `"name": {}`)
	assert.Equal(t, []string{"TemplateGreeting", "TemplateListView"}, file.Funcs)
	assert.Equal(t, g.config.OutputFile, file.Path)

	parsed, err := parser.ParseFile(token.NewFileSet(), "gen.go", file.Content, 0)
	require.NoError(t, err)

	var funcs []string

	for _, decl := range parsed.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			funcs = append(funcs, fn.Name.Name)
		}
	}

	assert.Equal(t, file.Funcs, funcs)
}

func TestGenerator_Generate_CustomNames(t *testing.T) {
	cfg := testConfig(t)
	cfg.PackageName = "views"
	cfg.FuncPrefix = "View"
	cfg.ContextName = "ctx"
	cfg.Namespace = "t-"
	cfg.RuntimeImport = "example.com/web/rt"
	cfg.Schemas = false

	file, err := NewGenerator(cfg).Generate([]Template{
		{Path: "home.html", Source: `<t-if v="ok">yes</t-if>`},
	})
	require.NoError(t, err)

	content := string(file.Content)

	assert.Contains(t, content, "package views")
	assert.Contains(t, content, `rt "example.com/web/rt"`)
	assert.Contains(t, content, "func ViewHome(ctx any) rt.Unsafe {")
	assert.Contains(t, content, `rt.IfCheck(rt.Get(ctx, "ok")`)
	assert.NotContains(t, content, "Schema")
}

func TestGenerator_Generate_Diagnostics(t *testing.T) {
	g := NewGenerator(testConfig(t))

	_, err := g.Generate([]Template{
		{Path: "ok.html", Source: `fine`},
		{Path: "open.html", Source: `{{~a}}never closed`},
		{Path: "close.html", Source: `{{<}}`},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open.html: structural error [unclosed-block]")
	assert.Contains(t, err.Error(), "close.html: structural error [unmatched-close]")
	assert.NotContains(t, err.Error(), "ok.html")
}

func TestGenerator_Generate_DuplicateNames(t *testing.T) {
	g := NewGenerator(testConfig(t))

	_, err := g.Generate([]Template{
		{Path: "page-a.html", Source: "a"},
		{Path: "page_a.html", Source: "b"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already used by page-a.html")
}

func TestGenerator_GenerateDir(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"card.html": `<div class="card {{kind}}">{{title}}</div>`,
	})

	file, err := NewGenerator(testConfig(t)).GenerateDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"TemplateCard"}, file.Funcs)

	_, err = NewGenerator(testConfig(t)).GenerateDir(t.TempDir())
	require.Error(t, err)
}

func TestGoString(t *testing.T) {
	assert.Equal(t, "`a\"b`", goString(`a"b`))
	assert.Equal(t, "\"a`b\"", goString("a`b"))
}

func TestWriteFile(t *testing.T) {
	file := &GeneratedFile{
		Path:    filepath.Join(t.TempDir(), "out", "templates_gen.go"),
		Content: []byte("package templates\n"),
	}

	written, err := WriteFile(file)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteFile(file)
	require.NoError(t, err)
	assert.False(t, written)

	file.Content = []byte("package templates\n\n// changed\n")
	written, err = WriteFile(file)
	require.NoError(t, err)
	assert.True(t, written)

	got, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, file.Content, got)
}

func TestWriteDebugUnformatted(t *testing.T) {
	out := filepath.Join(t.TempDir(), "templates_gen.go")

	require.NoError(t, writeDebugUnformatted(out, []byte("broken {")))

	got, err := os.ReadFile(filepath.Join(filepath.Dir(out), "templates_gen.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "broken {", string(got))

	assert.NoError(t, writeDebugUnformatted("", nil))
}

func TestGenerator_ExampleIsUpToDate(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "basic")

	cfg := DefaultGeneratorConfig()
	cfg.PackageName = "basic"
	cfg.OutputFile = filepath.Join(dir, "templates_gen.go")
	cfg.SkipImports = true

	file, err := NewGenerator(cfg).GenerateDir(dir)
	require.NoError(t, err)

	want, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	if diff := cmp.Diff(string(want), string(file.Content)); diff != "" {
		t.Errorf("examples/basic is stale, run go generate (-want +got):\n%s", diff)
	}
}
