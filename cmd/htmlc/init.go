package main

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"html-template-compiler/internal/config"
)

// asker runs the interactive questions; tests replace it.
var asker = survey.Ask

func (a *app) initConfig(args []string) error {
	var verbose bool

	flags := a.newFlagSet("init", &verbose)
	cfgPath := flags.String("config", config.DefaultFile, "project config file to write")
	yes := flags.Bool("yes", false, "write the defaults without prompting")
	force := flags.Bool("force", false, "overwrite an existing config file")

	if err := a.parse(flags, args, &verbose); err != nil {
		return err
	}

	if exists(*cfgPath) && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", *cfgPath)
	}

	cfg := config.Default()

	if !*yes {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.WriteFile(cfg, *cfgPath); err != nil {
		return err
	}

	a.logger.Info("wrote config", "path", *cfgPath)

	return nil
}

type initAnswers struct {
	Templates string `survey:"templates"`
	Package   string `survey:"package"`
	Prefix    string `survey:"prefix"`
	Namespace string `survey:"namespace"`
	Schemas   bool   `survey:"schemas"`
}

func promptConfig(cfg *config.Config) error {
	answers := initAnswers{
		Templates: cfg.Templates,
		Package:   cfg.Package,
		Prefix:    cfg.Prefix,
		Namespace: cfg.Namespace,
		Schemas:   cfg.WithSchemas(),
	}

	questions := []*survey.Question{
		{
			Name:   "templates",
			Prompt: &survey.Input{Message: "Template directory:", Default: answers.Templates},
		},
		{
			Name:     "package",
			Prompt:   &survey.Input{Message: "Generated package name:", Default: answers.Package},
			Validate: survey.ComposeValidators(survey.Required, identifier),
		},
		{
			Name:     "prefix",
			Prompt:   &survey.Input{Message: "Function name prefix:", Default: answers.Prefix},
			Validate: identifier,
		},
		{
			Name:   "namespace",
			Prompt: &survey.Input{Message: "Directive tag prefix:", Default: answers.Namespace},
		},
		{
			Name:   "schemas",
			Prompt: &survey.Confirm{Message: "Generate JSON Schema constants?", Default: answers.Schemas},
		},
	}

	if err := asker(questions, &answers); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}

	cfg.Templates = answers.Templates
	cfg.Package = answers.Package
	cfg.Prefix = answers.Prefix
	cfg.Namespace = answers.Namespace
	cfg.Schemas = &answers.Schemas
	cfg.Output = ""

	return normalize(cfg)
}

// normalize re-derives defaults after answers changed the base fields.
func normalize(cfg *config.Config) error {
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	out, err := config.Parse(data)
	if err != nil {
		return err
	}

	*cfg = *out

	return nil
}

func identifier(v any) error {
	s, ok := v.(string)
	if !ok {
		return errors.New("expected a string")
	}

	if s != "" && !token.IsIdentifier(strings.TrimSpace(s)) {
		return fmt.Errorf("%q is not a Go identifier", s)
	}

	return nil
}

// exists reports whether path names an existing file.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
