package gen

import (
	"fmt"
	"go/token"
	"path"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

// templateData holds all data needed for the file template.
type templateData struct {
	PackageName   string
	RuntimeImport string
	RuntimeAlias  string
	ContextName   string
	Schemas       bool
	Templates     []templateFunc
}

// templateFunc is one generated render function.
type templateFunc struct {
	Name       string
	Source     string
	Expression string
	Schema     string
}

// FuncName derives a render function name from a template path:
// "page-header.html" becomes prefix+"PageHeader" and "emails/welcome.html"
// becomes prefix+"EmailsWelcome".
func FuncName(prefix, templatePath string) (string, error) {
	base := strings.TrimSuffix(templatePath, path.Ext(templatePath))

	var b strings.Builder

	b.WriteString(prefix)

	for _, word := range strings.FieldsFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		b.WriteString(capitalize(word))
	}

	name := b.String()
	if name == prefix || !token.IsIdentifier(name) {
		return "", fmt.Errorf("can't derive a Go function name from %q", templatePath)
	}

	return name, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// goString renders s as a raw string literal when it has no backquote.
func goString(s string) string {
	if strings.Contains(s, "`") || strings.Contains(s, "\r") {
		return strconv.Quote(s)
	}

	return "`" + s + "`"
}

var fileTemplate = template.Must(template.New("file").Funcs(template.FuncMap{
	"goString": goString,
}).Parse(`// Code generated by htmlc. DO NOT EDIT.

package {{.PackageName}}

import (
	{{.RuntimeAlias}} "{{.RuntimeImport}}"
)
{{range .Templates}}
{{if $.Schemas}}// {{.Name}}Schema is the JSON Schema of the context {{.Name}} reads.
const {{.Name}}Schema = {{goString .Schema}}

{{end}}// {{.Name}} renders {{.Source}}.
func {{.Name}}({{$.ContextName}} any) {{$.RuntimeAlias}}.Unsafe {
	return {{$.RuntimeAlias}}.MakeUnsafe({{.Expression}})
}
{{end}}`))
