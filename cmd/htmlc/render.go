package main

import (
	"fmt"

	"html-template-compiler/htmlrt"
	"html-template-compiler/internal/preview"
	"html-template-compiler/internal/tags"
)

func (a *app) render(args []string) error {
	var (
		verbose bool
		cf      compilerFlags
	)

	flags := a.newFlagSet("render", &verbose)
	flags.StringVar(&cf.context, "context", "data", "context parameter name")
	flags.StringVar(&cf.namespace, "namespace", tags.DefaultPrefix, "directive tag prefix")
	dataPath := flags.String("data", "", "YAML or JSON file with the context value")
	validate := flags.Bool("validate", false, "check the data against the template's schema first")
	sanitize := flags.Bool("sanitize", false, "pass the output through the UGC sanitizer")

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

	data, err := preview.LoadData(*dataPath)
	if err != nil {
		return err
	}

	if *validate {
		if err := preview.Validate(res.Schema, data); err != nil {
			return err
		}

		a.logger.Debug("data matches schema", "file", *dataPath)
	}

	out, err := preview.NewEvaluator(cf.context, "htmlrt").Render(res.Expression, data)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}

	if *sanitize {
		out = htmlrt.Sanitize(out).String()
	}

	fmt.Fprintln(a.stdout, out)

	return nil
}
