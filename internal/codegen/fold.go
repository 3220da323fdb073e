package codegen

import (
	"strconv"
	"strings"

	"html-template-compiler/internal/diagnostic"
	"html-template-compiler/internal/part"
	"html-template-compiler/internal/typescope"
)

// sequence is a concatenation of Go string expressions. Adjacent literals
// are merged before quoting.
type sequence struct {
	items []string
	lit   strings.Builder
	inLit bool
}

func (s *sequence) literal(text string) {
	if text == "" {
		return
	}

	s.lit.WriteString(text)
	s.inLit = true
}

func (s *sequence) expr(e string) {
	s.flush()
	s.items = append(s.items, e)
}

func (s *sequence) flush() {
	if !s.inLit {
		return
	}

	s.items = append(s.items, strconv.Quote(s.lit.String()))
	s.lit.Reset()
	s.inLit = false
}

func (s *sequence) String() string {
	s.flush()

	if len(s.items) == 0 {
		return `""`
	}

	return strings.Join(s.items, " + ")
}

// block is an open conditional or loop.
type block struct {
	kind   part.Kind
	// head is the call up to and including the body function's "return ".
	head   string
	body   *sequence
	other  *sequence
	offset int
}

type folder struct {
	config Config
	scope  *typescope.Scope
	root   *sequence
	blocks []*block
}

func newFolder(config Config, scope *typescope.Scope) *folder {
	return &folder{
		config: config,
		scope:  scope,
		root:   &sequence{},
	}
}

// current returns the sequence parts are appended to.
func (f *folder) current() *sequence {
	if len(f.blocks) == 0 {
		return f.root
	}

	top := f.blocks[len(f.blocks)-1]
	if top.other != nil {
		return top.other
	}

	return top.body
}

func (f *folder) rt(name string) string {
	return f.config.RuntimeAlias + "." + name
}

func (f *folder) fold(parts []part.Part) (string, error) {
	for _, p := range parts {
		if err := f.foldPart(p); err != nil {
			return "", at(err, p.Offset)
		}
	}

	if n := len(f.blocks); n > 0 {
		top := f.blocks[n-1]

		return "", diagnostic.Errorf(diagnostic.Structural, diagnostic.CodeUnclosedBlock, top.kind.String(),
			"%d block(s) not closed at end of input", n).At(top.offset)
	}

	return f.root.String(), nil
}

func (f *folder) foldPart(p part.Part) error {
	cur := f.current()

	switch p.Kind {
	case part.KindRaw:
		cur.literal(p.Text)

	case part.KindHTML:
		acc, err := f.access(p.Path, false)
		if err != nil {
			return err
		}

		cur.expr(f.rt("RenderBody") + "(" + acc + ")")

	case part.KindComment:
		acc, err := f.access(p.Path, false)
		if err != nil {
			return err
		}

		cur.expr(f.rt("IfDefined") + "(" + acc + ", nil)")

	case part.KindAttr:
		cur.literal(`"`)

		for i, seg := range p.Segments {
			if i%2 == 0 {
				cur.literal(seg)
				continue
			}

			acc, err := f.access(seg, true)
			if err != nil {
				return err
			}

			cur.expr(f.rt("IfDefined") + "(" + acc + ", nil)")
		}

		cur.literal(`"`)

	case part.KindAttrRender:
		acc, err := f.access(p.Path, false)
		if err != nil {
			return err
		}

		cur.expr(f.rt("IfDefined") + "(" + acc + ", func(v string) string { return " +
			strconv.Quote(" "+p.Attr+`="`) + ` + v + "\"" })`)

	case part.KindAttrBoolean:
		acc, err := f.access(p.Path, false)
		if err != nil {
			return err
		}

		cur.expr(f.rt("IfCheck") + "(" + acc + ", func() string { return " +
			strconv.Quote(" "+p.Attr) + " }, nil)")

	case part.KindLogicConditional:
		return f.openConditional(p)

	case part.KindLogicLoop:
		return f.openLoop(p)

	case part.KindLogicElse:
		return f.otherwise()

	case part.KindLogicClose:
		return f.close()

	default:
		return diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeUnknownDirective, p.String(),
			"unexpected part %s", p.Kind)
	}

	return nil
}

func (f *folder) openConditional(p part.Part) error {
	cond, err := f.access(p.Path, false)
	if err != nil {
		return err
	}

	if p.IterCheck {
		if _, err := f.scope.MarkIterable(p.Path); err != nil {
			return err
		}

		cond = f.rt("NonEmpty") + "(" + cond + ")"
	}

	if p.Invert {
		cond = f.rt("Not") + "(" + cond + ")"
	}

	f.scope.NestEmpty()
	f.blocks = append(f.blocks, &block{
		kind:   p.Kind,
		head:   f.rt("IfCheck") + "(" + cond + ", func() string { return ",
		body:   &sequence{},
		offset: p.Offset,
	})

	return nil
}

func (f *folder) openLoop(p part.Part) error {
	if p.Binding == f.config.ContextName {
		return diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeReservedBinding, p.Binding,
			"loop binding %q collides with the context parameter", p.Binding)
	}

	if err := typescope.ValidateBinding(p.Binding); err != nil {
		return err
	}

	acc, err := f.access(p.Path, false)
	if err != nil {
		return err
	}

	b, err := f.scope.NestIterable(p.Path, p.Binding)
	if err != nil {
		return err
	}

	f.blocks = append(f.blocks, &block{
		kind:   p.Kind,
		head:   f.rt("Loop") + "(" + acc + ", func(" + b.Ident + " any) string { return ",
		body:   &sequence{},
		offset: p.Offset,
	})

	return nil
}

func (f *folder) otherwise() error {
	if len(f.blocks) == 0 {
		return diagnostic.Errorf(diagnostic.Structural, diagnostic.CodeUnmatchedElse, part.KindLogicElse.String(),
			"else without an open block")
	}

	top := f.blocks[len(f.blocks)-1]
	if top.other != nil {
		return diagnostic.Errorf(diagnostic.Structural, diagnostic.CodeDuplicateElse, part.KindLogicElse.String(),
			"second else in one %s block", top.kind)
	}

	if err := f.scope.Pop(); err != nil {
		return err
	}

	f.scope.NestEmpty()
	top.other = &sequence{}

	return nil
}

func (f *folder) close() error {
	if len(f.blocks) == 0 {
		return diagnostic.Errorf(diagnostic.Structural, diagnostic.CodeUnmatchedClose, part.KindLogicClose.String(),
			"close without an open block")
	}

	if err := f.scope.Pop(); err != nil {
		return err
	}

	top := f.blocks[len(f.blocks)-1]
	f.blocks = f.blocks[:len(f.blocks)-1]

	other := "nil"
	if top.other != nil {
		other = "func() string { return " + top.other.String() + " }"
	}

	f.current().expr(top.head + top.body.String() + " }, " + other + ")")

	return nil
}

// access records path and returns the Go expression reading it. The first
// segment resolves to a loop element before the context parameter.
func (f *folder) access(path string, required bool) (string, error) {
	if _, err := f.scope.Record(path, required); err != nil {
		return "", err
	}

	segs := strings.Split(path, ".")
	root := f.config.ContextName

	if b, ok := f.scope.Lookup(segs[0]); ok {
		root = b.Ident
		segs = segs[1:]
	}

	if len(segs) == 0 {
		return root, nil
	}

	args := make([]string, 0, len(segs)+1)
	args = append(args, root)

	for _, s := range segs {
		args = append(args, strconv.Quote(s))
	}

	return f.rt("Get") + "(" + strings.Join(args, ", ") + ")", nil
}

// at positions a diagnostic error that has no offset yet.
func at(err error, offset int) error {
	if derr, ok := err.(*diagnostic.Error); ok {
		return derr.At(offset)
	}

	return err
}
