package scan

import "strings"

// Attr is one attribute of a tag.
type Attr struct {
	Key string
	// Value is the raw attribute value. Brace values keep their braces.
	Value string
	// Flag is set for attributes written without "=" (e.g. "disabled").
	Flag bool
}

// TagDef is a parsed tag. It is transient: the compiler turns it into parts
// immediately.
type TagDef struct {
	Name        string
	Attrs       []Attr
	Close       bool
	SelfClosing bool
	// Offset is the byte offset of the leading '<'.
	Offset int
}

// Set stores a valued attribute. A repeated key keeps its first position.
func (t *TagDef) Set(key, value string) {
	t.put(Attr{Key: key, Value: value})
}

// SetFlag stores a presence-only attribute.
func (t *TagDef) SetFlag(key string) {
	t.put(Attr{Key: key, Flag: true})
}

func (t *TagDef) put(a Attr) {
	for i := range t.Attrs {
		if t.Attrs[i].Key == a.Key {
			t.Attrs[i] = a
			return
		}
	}

	t.Attrs = append(t.Attrs, a)
}

// Get returns the attribute stored under key.
func (t *TagDef) Get(key string) (Attr, bool) {
	for _, a := range t.Attrs {
		if a.Key == key {
			return a, true
		}
	}

	return Attr{}, false
}

// String reconstructs a compact form of the tag for diagnostics.
func (t *TagDef) String() string {
	var b strings.Builder

	b.WriteByte('<')

	if t.Close {
		b.WriteByte('/')
	}

	b.WriteString(t.Name)

	for _, a := range t.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)

		if !a.Flag {
			b.WriteString(`="`)
			b.WriteString(a.Value)
			b.WriteByte('"')
		}
	}

	if t.SelfClosing {
		b.WriteString(" /")
	}

	b.WriteByte('>')

	return b.String()
}
