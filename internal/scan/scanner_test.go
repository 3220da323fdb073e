package scan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"html-template-compiler/internal/diagnostic"
)

func TestScanner_ConsumeTopLevel_Kinds(t *testing.T) {
	s := New(`<!doctype html>hello <b>there</b>`)

	var kinds []TokenKind

	for {
		tok, err := s.ConsumeTopLevel()
		require.NoError(t, err)

		kinds = append(kinds, tok.Kind)
		if tok.Kind == TokenEnd {
			break
		}
	}

	assert.Equal(t, []TokenKind{
		TokenComment, TokenText, TokenTag, TokenText, TokenTag, TokenEnd,
	}, kinds)
}

func TestScanner_TextOnlyAndUninteresting(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"plain", "just text"},
		{"less than space", "a < b"},
		{"less than symbol", "a <= b <"},
		{"trailing", "x<"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := New(tt.src).Tokens()
			require.NoError(t, err)
			require.Len(t, toks, 1)
			assert.Equal(t, TokenText, toks[0].Kind)
			assert.Equal(t, tt.src, toks[0].Text)
		})
	}
}

func TestScanner_CommentEndsAtFirstGreaterThan(t *testing.T) {
	toks, err := New(`<!-- a > b -->rest`).Tokens()
	require.NoError(t, err)
	require.Len(t, toks, 2)

	assert.Equal(t, TokenComment, toks[0].Kind)
	assert.Equal(t, `<!-- a >`, toks[0].Text)
	assert.Equal(t, TokenText, toks[1].Kind)
	assert.Equal(t, ` b -->rest`, toks[1].Text)
}

func TestScanner_UnterminatedCommentRunsToEnd(t *testing.T) {
	toks, err := New(`<!-- open`).Tokens()
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, `<!-- open`, toks[0].Text)
}

func TestScanner_TagAttributes(t *testing.T) {
	toks, err := New(`<input type=text value="{{v}}" data-x='y' disabled ?checked={{on}}>`).Tokens()
	require.NoError(t, err)
	require.Len(t, toks, 1)

	tag := toks[0].Tag
	require.NotNil(t, tag)
	assert.Equal(t, "input", tag.Name)
	assert.False(t, tag.Close)
	assert.False(t, tag.SelfClosing)
	assert.Equal(t, []Attr{
		{Key: "type", Value: "text"},
		{Key: "value", Value: "{{v}}"},
		{Key: "data-x", Value: "y"},
		{Key: "disabled", Flag: true},
		{Key: "?checked", Value: "{{on}}"},
	}, tag.Attrs)
}

func TestScanner_BraceValueKeepsSpacesAndQuotes(t *testing.T) {
	toks, err := New(`<a href={{ a.b }}>`).Tokens()
	require.NoError(t, err)

	attr, ok := toks[0].Tag.Get("href")
	require.True(t, ok)
	assert.Equal(t, "{{ a.b }}", attr.Value)
}

func TestScanner_RepeatedAttributeKeepsPosition(t *testing.T) {
	toks, err := New(`<a x=1 y=2 x=3>`).Tokens()
	require.NoError(t, err)

	assert.Equal(t, []Attr{{Key: "x", Value: "3"}, {Key: "y", Value: "2"}}, toks[0].Tag.Attrs)
}

func TestScanner_SelfClosingForms(t *testing.T) {
	tests := []struct {
		src   string
		name  string
		close bool
	}{
		{"<br/>", "br", false},
		{"<br />", "br", false},
		{"<img src=x />", "img", false},
		{"<hc:else/>", "hc:else", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, err := New(tt.src).Tokens()
			require.NoError(t, err)
			require.Len(t, toks, 1)

			assert.Equal(t, tt.name, toks[0].Tag.Name)
			assert.True(t, toks[0].Tag.SelfClosing)
			assert.Equal(t, tt.close, toks[0].Tag.Close)
		})
	}
}

func TestScanner_ClosingTag(t *testing.T) {
	toks, err := New(`</div >`).Tokens()
	require.NoError(t, err)

	assert.True(t, toks[0].Tag.Close)
	assert.Equal(t, "div", toks[0].Tag.Name)
}

func TestScanner_UnmatchedValueFormsArePermissive(t *testing.T) {
	// the quote never closes on this line, so the value is empty and the
	// remaining characters are read as further attribute keys
	toks, err := New("<a title=\"oops\nnext>").Tokens()
	require.NoError(t, err)

	attr, ok := toks[0].Tag.Get("title")
	require.True(t, ok)
	assert.Empty(t, attr.Value)
}

func TestScanner_MalformedTerminator(t *testing.T) {
	tests := []struct {
		src string
		tag string
	}{
		{`<a / b>`, "a"},
		{`<a href=x/y>`, "a"},
		{`<div`, "div"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := New(tt.src).Tokens()
			require.Error(t, err)

			var derr *diagnostic.Error
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, diagnostic.Lexical, derr.Category)
			assert.Equal(t, diagnostic.CodeTagTerminator, derr.Code)
			assert.Equal(t, tt.tag, derr.Token)
		})
	}
}

func TestScanner_Offsets(t *testing.T) {
	toks, err := New(`ab<i>cd`).Tokens()
	require.NoError(t, err)
	require.Len(t, toks, 3)

	assert.Equal(t, 0, toks[0].Offset)
	assert.Equal(t, 2, toks[1].Offset)
	assert.Equal(t, 2, toks[1].Tag.Offset)
	assert.Equal(t, 5, toks[2].Offset)
}

func TestTagDef_String(t *testing.T) {
	tag := &TagDef{Name: "hc:loop", Attrs: []Attr{{Key: "iter", Value: "items"}, {Key: "x", Flag: true}}}
	assert.Equal(t, `<hc:loop iter="items" x>`, tag.String())
}
