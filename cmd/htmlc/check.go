package main

import (
	"fmt"
	"os"
	"strings"

	"html-template-compiler/internal/codegen"
	"html-template-compiler/internal/tags"
)

// compilerFlags holds the flags shared by check and render.
type compilerFlags struct {
	context   string
	namespace string
}

func (a *app) compileFile(path string, cf compilerFlags) (*codegen.Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	c := codegen.NewCompiler(codegen.Config{
		ContextName: cf.context,
		Tags:        tags.NewNamespace(cf.namespace),
	})

	a.logger.Debug("compiling", "file", path, "bytes", len(src))

	res, err := c.Compile(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return res, nil
}

func (a *app) check(args []string) error {
	var (
		verbose bool
		cf      compilerFlags
	)

	flags := a.newFlagSet("check", &verbose)
	flags.StringVar(&cf.context, "context", "data", "context parameter name")
	flags.StringVar(&cf.namespace, "namespace", tags.DefaultPrefix, "directive tag prefix")

	if err := a.parse(flags, args, &verbose); err != nil {
		return err
	}

	path, err := fileArg(flags)
	if err != nil {
		return err
	}

	res, err := a.compileFile(path, cf)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "expression:\n%s\n\ntype:\n%s\n", res.Expression, res.TypeDescription)

	if len(res.Paths) == 0 {
		return nil
	}

	fmt.Fprintln(a.stdout, "\npaths:")

	for _, p := range res.Paths {
		var marks []string
		if p.Required {
			marks = append(marks, "required")
		}

		if p.Iterable {
			marks = append(marks, "iterable")
		}

		if len(marks) == 0 {
			fmt.Fprintf(a.stdout, "  %s\n", p.Path)
		} else {
			fmt.Fprintf(a.stdout, "  %s (%s)\n", p.Path, strings.Join(marks, ", "))
		}
	}

	return nil
}
