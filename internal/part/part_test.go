package part

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	in := []Part{
		Raw("<a"),
		Raw(""),
		Raw(" b"),
		HTML("x"),
		Raw(""),
		Raw(">"),
		Raw("</a>"),
		Close(),
		Raw(""),
	}

	expected := []Part{
		Raw("<a b"),
		HTML("x"),
		Raw("></a>"),
		Close(),
	}

	got := Coalesce(in)
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Coalesce mismatch (-want +got):\n%s", diff)
	}
}

func TestCoalesce_Idempotent(t *testing.T) {
	inputs := [][]Part{
		nil,
		{Raw("")},
		{Raw("a"), Raw("b"), Else(), Raw("c")},
		{HTML("a"), HTML("b"), Raw("x"), Raw("y"), Attr([]string{"", "z", ""})},
	}

	for _, in := range inputs {
		once := Coalesce(in)
		twice := Coalesce(once)
		assert.Equal(t, once, twice)
	}
}

func TestCoalesce_DoesNotMutateInput(t *testing.T) {
	in := []Part{Raw("a"), Raw("b")}
	_ = Coalesce(in)

	assert.Equal(t, "a", in[0].Text)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "raw", KindRaw.String())
	assert.Equal(t, "attr-render", KindAttrRender.String())
	assert.Equal(t, "logic-close", KindLogicClose.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
	assert.True(t, KindLogicLoop.IsLogic())
	assert.False(t, KindAttr.IsLogic())
}

func TestPart_String(t *testing.T) {
	assert.Equal(t, `raw("<p>")`, Raw("<p>").String())
	assert.Equal(t, "logic-conditional(!iter:items)", Conditional("items", true, true).String())
	assert.Equal(t, "logic-loop(items as x)", Loop("items", "x").String())
	assert.Equal(t, "attr-boolean(checked, on)", AttrBoolean("checked", "on").String())
}
