package htmlrt

import (
	"errors"
	"iter"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;&amp;&quot;&#39;", Escape(`<b>&"'`))
	assert.Equal(t, "plain", Escape("plain"))
	assert.Equal(t, "&amp;lt;", Escape("&lt;"))
}

func TestRenderBody(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected string
	}{
		{"nil", nil, ""},
		{"string escaped", "<b>", "&lt;b&gt;"},
		{"unsafe verbatim", MakeUnsafe("<b>"), "<b>"},
		{"number", 3.0, "3"},
		{"fraction", 1.5, "1.5"},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"slice concatenated", []any{"a", "<", MakeUnsafe("<i>")}, "a&lt;<i>"},
		{"typed slice", []string{"x", "y"}, "xy"},
		{"nested", []any{[]any{"a"}, "b"}, "ab"},
		{"typed nil", (*int)(nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RenderBody(tt.raw))
		})
	}
}

func TestRenderBody_Seq(t *testing.T) {
	var seq iter.Seq[any] = func(yield func(any) bool) {
		_ = yield("a") && yield("&")
	}

	assert.Equal(t, "a&amp;", RenderBody(seq))
}

func TestMakeUnsafe(t *testing.T) {
	u := MakeUnsafe("<p>")
	assert.Equal(t, "<p>", u.String())
	assert.Equal(t, u, MakeUnsafe(u))
	assert.Equal(t, "", MakeUnsafe(nil).String())
}

func TestSanitize(t *testing.T) {
	out := Sanitize(`<p onclick="x()">hi<script>alert(1)</script></p>`)
	assert.Equal(t, "<p>hi</p>", out.String())
	assert.Equal(t, "<p>hi</p>", RenderBody(out))
}

func TestTruthy(t *testing.T) {
	falsy := []any{nil, false, 0, 0.0, math.NaN(), "", []any{}, MakeUnsafe(""), (*string)(nil), map[string]any(nil)}
	truthy := []any{true, 1, -1, 0.5, "0", "x", []any{nil}, MakeUnsafe("x"), map[string]any{}, struct{}{}}

	for _, v := range falsy {
		assert.False(t, Truthy(v), "%#v", v)
		assert.True(t, Not(v), "%#v", v)
	}

	for _, v := range truthy {
		assert.True(t, Truthy(v), "%#v", v)
		assert.False(t, Not(v), "%#v", v)
	}
}

type panicky struct{}

func (*panicky) String() string { panic(errors.New("boom")) }

func TestTruthy_StringerPanicFallsBack(t *testing.T) {
	assert.True(t, Truthy(&panicky{}))
	assert.Equal(t, "", Stringify(&panicky{}))
}

func TestIfDefined(t *testing.T) {
	wrap := func(v string) string { return ` href="` + v + `"` }

	assert.Equal(t, "", IfDefined(nil, wrap))
	assert.Equal(t, ` href=""`, IfDefined("", wrap))
	assert.Equal(t, ` href="a&amp;b"`, IfDefined("a&b", wrap))
	assert.Equal(t, "0", IfDefined(0, nil))
	assert.Equal(t, "&lt;i&gt;", IfDefined(MakeUnsafe("<i>"), nil))
}

func TestIfCheck(t *testing.T) {
	yes := func() string { return "yes" }
	no := func() string { return "no" }

	assert.Equal(t, "yes", IfCheck(true, yes, no))
	assert.Equal(t, "no", IfCheck("", yes, no))
	assert.Equal(t, "", IfCheck(nil, yes, nil))
	assert.Equal(t, "no", IfCheck(MakeUnsafe(""), yes, no))
}

func TestLoop(t *testing.T) {
	body := func(x any) string { return "[" + RenderBody(x) + "]" }
	empty := func() string { return "none" }

	assert.Equal(t, "[a][b]", Loop([]any{"a", "b"}, body, empty))
	assert.Equal(t, "[1][2]", Loop([]int{1, 2}, body, nil))
	assert.Equal(t, "none", Loop([]any{}, body, empty))
	assert.Equal(t, "none", Loop(nil, body, empty))
	assert.Equal(t, "none", Loop("abc", body, empty), "strings are not iterated")
	assert.Equal(t, "", Loop(nil, body, nil))
}

func TestNonEmpty(t *testing.T) {
	assert.True(t, NonEmpty([]any{0}))
	assert.True(t, NonEmpty([2]int{}))
	assert.False(t, NonEmpty([]any{}))
	assert.False(t, NonEmpty("abc"))
	assert.False(t, NonEmpty(nil))
	assert.False(t, NonEmpty(map[string]any{"a": 1}))
}

type profile struct {
	DisplayName string `htmlc:"name"`
	Email       string `json:"email,omitempty"`
	Age         int
	Tags        []string
	hidden      string
}

func TestGet(t *testing.T) {
	p := &profile{DisplayName: "Ann", Email: "a@x", Age: 7, Tags: []string{"x", "y"}, hidden: "h"}
	data := map[string]any{
		"user":   p,
		"counts": map[string]int{"a": 1},
		"list":   []any{"zero", map[string]any{"k": "v"}},
	}

	assert.Equal(t, "Ann", Get(data, "user", "name"))
	assert.Equal(t, "a@x", Get(data, "user", "email"))
	assert.Equal(t, 7, Get(data, "user", "Age"))
	assert.Equal(t, 7, Get(data, "user", "age"))
	assert.Equal(t, "y", Get(data, "user", "tags", "1"))
	assert.Equal(t, 1, Get(data, "counts", "a"))
	assert.Equal(t, "v", Get(data, "list", "1", "k"))
	assert.Same(t, p, Get(data, "user"))
	assert.Equal(t, data, Get(data))

	assert.Nil(t, Get(data, "user", "hidden"))
	assert.Nil(t, Get(data, "missing", "deeper"))
	assert.Nil(t, Get(data, "list", "9"))
	assert.Nil(t, Get(data, "user", "name", "more"))
	assert.Nil(t, Get(nil, "a"))
	assert.Nil(t, Get((*profile)(nil), "name"))
}

type pageBase struct {
	URL  string
	Lang string
}

type Meta struct {
	Author string
}

type page struct {
	pageBase
	*Meta
	Title string `json:"title"`
	Lang  string
}

func TestGet_EmbeddedFields(t *testing.T) {
	p := page{pageBase: pageBase{URL: "/x", Lang: "de"}, Meta: &Meta{Author: "Ann"}, Title: "T", Lang: "en"}

	assert.Equal(t, "/x", Get(p, "URL"))
	assert.Equal(t, "/x", Get(&p, "uRL"))
	assert.Equal(t, "T", Get(p, "title"))
	assert.Equal(t, "Ann", Get(p, "author"))
	assert.Equal(t, "en", Get(p, "lang"))
	assert.NotNil(t, Get(p, "Meta"))

	assert.Nil(t, Get(page{}, "author"))
	assert.Nil(t, Get(p, "pageBase"))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "2", Stringify(2.0))
	assert.Equal(t, "false", Stringify(false))
	assert.Equal(t, "x", Stringify([]byte("x")))
	assert.Equal(t, "5", Stringify(ptr(5)))
	assert.True(t, strings.HasPrefix(Stringify(map[string]int{"a": 1}), "map["))
}

func ptr[T any](v T) *T { return &v }
