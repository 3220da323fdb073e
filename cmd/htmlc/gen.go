package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"path/filepath"

	"html-template-compiler/internal/config"
	"html-template-compiler/internal/gen"
)

func (a *app) gen(args []string) error {
	var verbose bool

	flags := a.newFlagSet("gen", &verbose)
	cfgPath := flags.String("config", config.DefaultFile, "project config file")
	dir := flags.String("dir", "", "template directory (overrides config)")
	out := flags.String("out", "", "generated Go file (overrides config)")
	pkg := flags.String("pkg", "", "generated package name (overrides config)")
	namespace := flags.String("namespace", "", "directive tag prefix (overrides config)")

	if err := a.parse(flags, args, &verbose); err != nil {
		return err
	}

	if flags.NArg() != 0 {
		return fmt.Errorf("%w: gen takes no positional arguments", errUsage)
	}

	explicit := false

	flags.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	cfg, err := loadConfig(*cfgPath, explicit)
	if err != nil {
		return err
	}

	if *dir != "" {
		cfg.Templates = *dir
		if *out == "" {
			cfg.Output = filepath.Join(*dir, cfg.Package+"_gen.go")
		}
	}

	if *pkg != "" {
		cfg.Package = *pkg
	}

	if *out != "" {
		cfg.Output = *out
	}

	if *namespace != "" {
		cfg.Namespace = *namespace
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.logger.Debug("generating", "templates", cfg.Templates, "output", cfg.Output, "package", cfg.Package)

	g := gen.NewGenerator(generatorConfig(cfg))

	file, err := g.GenerateDir(cfg.Templates)
	if err != nil {
		return err
	}

	written, err := gen.WriteFile(file)
	if err != nil {
		return err
	}

	if written {
		a.logger.Info("wrote generated file", "path", file.Path, "functions", len(file.Funcs))
	} else {
		a.logger.Info("generated file is up to date", "path", file.Path)
	}

	for _, name := range file.Funcs {
		a.logger.Debug("generated function", "name", name)
	}

	return nil
}

// loadConfig reads the project file. A missing default file yields the
// default configuration; a missing explicit file is an error.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err == nil {
		return cfg, nil
	}

	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}

	return nil, err
}

func generatorConfig(cfg *config.Config) gen.GeneratorConfig {
	return gen.GeneratorConfig{
		PackageName:   cfg.Package,
		OutputFile:    cfg.Output,
		FuncPrefix:    cfg.Prefix,
		Ext:           cfg.Ext,
		ContextName:   cfg.Context,
		Namespace:     cfg.Namespace,
		RuntimeImport: cfg.Runtime,
		Schemas:       cfg.WithSchemas(),
		SkipImports:   cfg.SkipImports,
	}
}
