package preview

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"

	"html-template-compiler/htmlrt"
)

// Evaluator interprets compiled template expressions.
type Evaluator struct {
	contextName  string
	runtimeAlias string
}

// NewEvaluator creates an Evaluator for expressions that read the context
// from contextName and qualify runtime calls with runtimeAlias.
func NewEvaluator(contextName, runtimeAlias string) *Evaluator {
	return &Evaluator{contextName: contextName, runtimeAlias: runtimeAlias}
}

// Render evaluates expr with data bound to contextName, using the default
// runtime alias.
func Render(expr, contextName string, data any) (string, error) {
	return NewEvaluator(contextName, "htmlrt").Render(expr, data)
}

// Render evaluates expr with data as the context value.
func (e *Evaluator) Render(expr string, data any) (string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return "", fmt.Errorf("parsing expression: %w", err)
	}

	r := &run{Evaluator: e}

	v, err := r.eval(node, &env{name: e.contextName, value: data})
	if err != nil {
		return "", err
	}

	if r.err != nil {
		return "", r.err
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expression yields %T, not string", v)
	}

	return s, nil
}

// env is a chain of bound identifiers.
type env struct {
	name   string
	value  any
	parent *env
}

func (en *env) lookup(name string) (any, bool) {
	for cur := en; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.value, true
		}
	}

	return nil, false
}

func (en *env) bind(name string, value any) *env {
	return &env{name: name, value: value, parent: en}
}

// run holds the state of one evaluation. Errors raised inside callbacks are
// kept in err since the runtime callbacks cannot return them.
type run struct {
	*Evaluator
	err error
}

func (r *run) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *run) eval(node ast.Expr, en *env) (any, error) {
	switch n := node.(type) {
	case *ast.BasicLit:
		if n.Kind != token.STRING {
			return nil, fmt.Errorf("unsupported literal %s at %d", n.Value, n.Pos())
		}

		return strconv.Unquote(n.Value)

	case *ast.ParenExpr:
		return r.eval(n.X, en)

	case *ast.Ident:
		if n.Name == "nil" {
			return nil, nil
		}

		v, ok := en.lookup(n.Name)
		if !ok {
			return nil, fmt.Errorf("undefined identifier %q", n.Name)
		}

		return v, nil

	case *ast.BinaryExpr:
		if n.Op != token.ADD {
			return nil, fmt.Errorf("unsupported operator %s", n.Op)
		}

		left, err := r.evalString(n.X, en)
		if err != nil {
			return nil, err
		}

		right, err := r.evalString(n.Y, en)
		if err != nil {
			return nil, err
		}

		return left + right, nil

	case *ast.CallExpr:
		return r.call(n, en)

	default:
		return nil, fmt.Errorf("unsupported expression %T", node)
	}
}

func (r *run) evalString(node ast.Expr, en *env) (string, error) {
	v, err := r.eval(node, en)
	if err != nil {
		return "", err
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("operand of + is %T, not string", v)
	}

	return s, nil
}

func (r *run) call(n *ast.CallExpr, en *env) (any, error) {
	sel, ok := n.Fun.(*ast.SelectorExpr)
	if !ok {
		return nil, fmt.Errorf("unsupported call target %T", n.Fun)
	}

	pkg, ok := sel.X.(*ast.Ident)
	if !ok || pkg.Name != r.runtimeAlias {
		return nil, fmt.Errorf("call outside the runtime package: %s", exprString(sel))
	}

	name := sel.Sel.Name

	switch name {
	case "Get":
		if len(n.Args) == 0 {
			return nil, arity(name, len(n.Args))
		}

		root, err := r.eval(n.Args[0], en)
		if err != nil {
			return nil, err
		}

		path := make([]string, 0, len(n.Args)-1)

		for _, a := range n.Args[1:] {
			s, err := r.evalString(a, en)
			if err != nil {
				return nil, err
			}

			path = append(path, s)
		}

		return htmlrt.Get(root, path...), nil

	case "RenderBody", "Escape", "Stringify", "MakeUnsafe", "Sanitize", "NonEmpty", "Not", "Truthy":
		if len(n.Args) != 1 {
			return nil, arity(name, len(n.Args))
		}

		v, err := r.eval(n.Args[0], en)
		if err != nil {
			return nil, err
		}

		return unary(name, v), nil

	case "IfDefined":
		if len(n.Args) != 2 {
			return nil, arity(name, len(n.Args))
		}

		v, err := r.eval(n.Args[0], en)
		if err != nil {
			return nil, err
		}

		render, err := r.func1(n.Args[1], en)
		if err != nil {
			return nil, err
		}

		var fn func(string) string
		if render != nil {
			fn = func(s string) string { return render(s) }
		}

		return htmlrt.IfDefined(v, fn), nil

	case "IfCheck":
		if len(n.Args) != 3 {
			return nil, arity(name, len(n.Args))
		}

		v, err := r.eval(n.Args[0], en)
		if err != nil {
			return nil, err
		}

		truthy, err := r.func0(n.Args[1], en)
		if err != nil {
			return nil, err
		}

		falsy, err := r.func0(n.Args[2], en)
		if err != nil {
			return nil, err
		}

		if truthy == nil {
			return nil, fmt.Errorf("%s needs a truthy callback", name)
		}

		return htmlrt.IfCheck(v, truthy, falsy), nil

	case "Loop":
		if len(n.Args) != 3 {
			return nil, arity(name, len(n.Args))
		}

		v, err := r.eval(n.Args[0], en)
		if err != nil {
			return nil, err
		}

		body, err := r.func1(n.Args[1], en)
		if err != nil {
			return nil, err
		}

		empty, err := r.func0(n.Args[2], en)
		if err != nil {
			return nil, err
		}

		if body == nil {
			return nil, fmt.Errorf("%s needs a body callback", name)
		}

		return htmlrt.Loop(v, body, empty), nil

	default:
		return nil, fmt.Errorf("unknown runtime function %s.%s", r.runtimeAlias, name)
	}
}

func unary(name string, v any) any {
	switch name {
	case "RenderBody":
		return htmlrt.RenderBody(v)
	case "Escape":
		return htmlrt.Escape(htmlrt.Stringify(v))
	case "Stringify":
		return htmlrt.Stringify(v)
	case "MakeUnsafe":
		return htmlrt.MakeUnsafe(v)
	case "Sanitize":
		return htmlrt.Sanitize(v)
	case "NonEmpty":
		return htmlrt.NonEmpty(v)
	case "Not":
		return htmlrt.Not(v)
	default:
		return htmlrt.Truthy(v)
	}
}

// func0 turns a parameterless function literal into a callback. nil stays
// nil.
func (r *run) func0(node ast.Expr, en *env) (func() string, error) {
	lit, ret, err := funcLit(node, 0)
	if err != nil || lit == nil {
		return nil, err
	}

	return func() string {
		return r.callback(ret, en)
	}, nil
}

// func1 turns a one-parameter function literal into a callback. The
// parameter type is not checked: string and any callbacks share one shape.
func (r *run) func1(node ast.Expr, en *env) (func(any) string, error) {
	lit, ret, err := funcLit(node, 1)
	if err != nil || lit == nil {
		return nil, err
	}

	param := lit.Type.Params.List[0].Names[0].Name

	return func(v any) string {
		return r.callback(ret, en.bind(param, v))
	}, nil
}

func (r *run) callback(ret ast.Expr, en *env) string {
	if r.err != nil {
		return ""
	}

	s, err := r.evalString(ret, en)
	if err != nil {
		r.fail(err)
		return ""
	}

	return s
}

// funcLit unpacks func(params) string { return X }. A nil identifier
// returns a nil literal.
func funcLit(node ast.Expr, params int) (*ast.FuncLit, ast.Expr, error) {
	if id, ok := node.(*ast.Ident); ok && id.Name == "nil" {
		return nil, nil, nil
	}

	lit, ok := node.(*ast.FuncLit)
	if !ok {
		return nil, nil, fmt.Errorf("expected function literal, got %T", node)
	}

	got := 0

	for _, f := range lit.Type.Params.List {
		if len(f.Names) == 0 {
			got++
		}

		got += len(f.Names)
	}

	if got != params {
		return nil, nil, fmt.Errorf("function literal takes %d parameters, want %d", got, params)
	}

	if params == 1 && len(lit.Type.Params.List[0].Names) == 0 {
		return nil, nil, fmt.Errorf("function literal parameter must be named")
	}

	if len(lit.Body.List) != 1 {
		return nil, nil, fmt.Errorf("function literal must be a single return")
	}

	ret, ok := lit.Body.List[0].(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return nil, nil, fmt.Errorf("function literal must be a single return")
	}

	return lit, ret.Results[0], nil
}

func arity(name string, got int) error {
	return fmt.Errorf("wrong number of arguments to %s: %d", name, got)
}

func exprString(sel *ast.SelectorExpr) string {
	if id, ok := sel.X.(*ast.Ident); ok {
		return id.Name + "." + sel.Sel.Name
	}

	return sel.Sel.Name
}
