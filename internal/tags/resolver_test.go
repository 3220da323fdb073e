package tags

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"html-template-compiler/internal/diagnostic"
	"html-template-compiler/internal/part"
	"html-template-compiler/internal/scan"
)

func firstTag(t *testing.T, src string) *scan.TagDef {
	t.Helper()

	toks, err := scan.New(src).Tokens()
	require.NoError(t, err)
	require.NotEmpty(t, toks)
	require.Equal(t, scan.TokenTag, toks[0].Kind)

	return toks[0].Tag
}

func TestPassthrough_RecognizesNothing(t *testing.T) {
	parts, ok, err := Passthrough{}.ResolveTag(firstTag(t, `<hc:loop iter="x">`))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, parts)
}

func TestNamespace_ResolveTag(t *testing.T) {
	tests := []struct {
		src      string
		expected part.Part
	}{
		{`<hc:loop iter="items">`, part.Loop("items", "_")},
		{`<hc:loop iter="items" v="item">`, part.Loop("items", "item")},
		{`<hc:loop iter={{ items }} v=item>`, part.Loop("items", "item")},
		{`</hc:loop>`, part.Close()},
		{`<hc:if v="show">`, part.Conditional("show", false, false)},
		{`<hc:if v="!show">`, part.Conditional("show", true, false)},
		{`<hc:if iter="items">`, part.Conditional("items", false, true)},
		{`<hc:if iter="!items">`, part.Conditional("items", true, true)},
		{`</hc:if>`, part.Close()},
		{`<hc:else/>`, part.Else()},
		{`<hc:else />`, part.Else()},
	}

	ns := NewNamespace("")

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			parts, ok, err := ns.ResolveTag(firstTag(t, tt.src))
			require.NoError(t, err)
			require.True(t, ok)
			require.Len(t, parts, 1)

			if diff := cmp.Diff(tt.expected, parts[0], cmpopts.IgnoreFields(part.Part{}, "Offset")); diff != "" {
				t.Errorf("ResolveTag mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNamespace_IgnoresOtherTags(t *testing.T) {
	for _, src := range []string{`<div>`, `<loop iter="x">`, `<x:loop iter="x">`} {
		_, ok, err := NewNamespace("").ResolveTag(firstTag(t, src))
		require.NoError(t, err)
		assert.False(t, ok, src)
	}
}

func TestNamespace_ZeroValueUsesDefaultPrefix(t *testing.T) {
	ns := &Namespace{}

	_, ok, err := ns.ResolveTag(firstTag(t, `<div class="x">`))
	require.NoError(t, err)
	assert.False(t, ok)

	parts, ok, err := ns.ResolveTag(firstTag(t, `<hc:if v="x">`))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, part.KindLogicConditional, parts[0].Kind)
}

func TestNamespace_CustomPrefix(t *testing.T) {
	ns := NewNamespace("t-")

	parts, ok, err := ns.ResolveTag(firstTag(t, `<t-loop iter="rows">`))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, part.KindLogicLoop, parts[0].Kind)

	_, ok, err = ns.ResolveTag(firstTag(t, `<hc:loop iter="rows">`))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNamespace_Errors(t *testing.T) {
	tests := []struct {
		src   string
		code  string
		token string
	}{
		{`<hc:for iter="x">`, diagnostic.CodeUnknownTag, "hc:for"},
		{`<hc:loop>`, diagnostic.CodeTagAttribute, "hc:loop"},
		{`<hc:loop iter="x" as="y">`, diagnostic.CodeTagAttribute, "as"},
		{`<hc:loop iter="x"/>`, diagnostic.CodeUnknownTag, "hc:loop"},
		{`</hc:loop iter="x">`, diagnostic.CodeTagAttribute, "iter"},
		{`<hc:if>`, diagnostic.CodeTagAttribute, "hc:if"},
		{`<hc:if v="a" iter="b">`, diagnostic.CodeTagAttribute, "hc:if"},
		{`<hc:if v="!">`, diagnostic.CodeTagAttribute, "hc:if"},
		{`<hc:if v="a" class="b">`, diagnostic.CodeTagAttribute, "class"},
		{`<hc:else>`, diagnostic.CodeUnknownTag, "hc:else"},
		{`</hc:else>`, diagnostic.CodeUnknownTag, "hc:else"},
		{`<hc:else x />`, diagnostic.CodeTagAttribute, "x"},
	}

	ns := NewNamespace("")

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, ok, err := ns.ResolveTag(firstTag(t, tt.src))
			require.Error(t, err)
			assert.True(t, ok)

			var derr *diagnostic.Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, diagnostic.Semantic, derr.Category)
			assert.Equal(t, tt.code, derr.Code)
			assert.Equal(t, tt.token, derr.Token)
			assert.Equal(t, 0, derr.Offset)
		})
	}
}

func TestNamespace_Hints(t *testing.T) {
	ns := NewNamespace("x-")

	tests := []struct {
		src      string
		expected string
	}{
		{`<x-lop iter="a">`, `did you mean "x-loop"?`},
		{`<x-iff v="a">`, `did you mean "x-if"?`},
		{`<x-loop itr="a">`, `did you mean "iter"?`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, _, err := ns.ResolveTag(firstTag(t, tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}

	_, _, err := ns.ResolveTag(firstTag(t, `<x-template>`))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}
