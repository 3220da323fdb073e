package config

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"html-template-compiler/internal/common"
	"html-template-compiler/internal/typescope"
)

// DefaultFile is the project file name looked up by the CLI.
const DefaultFile = "htmlc.yaml"

// DefaultRuntime is the import path of the runtime package.
const DefaultRuntime = "html-template-compiler/htmlrt"

// Config is the htmlc.yaml project configuration.
type Config struct {
	Version string `yaml:"version"`
	// Templates is the directory searched for template files.
	Templates string `yaml:"templates"`
	// Output is the generated Go file. Relative paths resolve against the
	// config file's directory.
	Output string `yaml:"output"`
	// Package is the package name of the generated file.
	Package string `yaml:"package"`
	// Ext is the template file extension.
	Ext string `yaml:"ext"`
	// Prefix is prepended to every generated function name.
	Prefix string `yaml:"prefix"`
	// Context is the parameter name of generated functions.
	Context string `yaml:"context"`
	// Namespace is the directive tag prefix.
	Namespace string `yaml:"namespace"`
	// Runtime is the import path of the runtime package.
	Runtime string `yaml:"runtime,omitempty"`
	// Schemas emits a JSON Schema constant per template.
	Schemas *bool `yaml:"schemas,omitempty"`
	// SkipImports formats with go/format instead of goimports.
	SkipImports bool `yaml:"skip_imports,omitempty"`
}

// Default returns the configuration used for omitted fields.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and parses a YAML config file from the given path.
// Relative Templates and Output paths are resolved against the file's
// directory.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.resolve(filepath.Dir(path))

	return cfg, nil
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	if cfg.Templates == "" {
		cfg.Templates = "."
	}

	if cfg.Package == "" {
		cfg.Package = "templates"
	}

	if cfg.Output == "" {
		cfg.Output = filepath.Join(cfg.Templates, cfg.Package+"_gen.go")
	}

	if cfg.Ext == "" {
		cfg.Ext = ".html"
	}

	if !strings.HasPrefix(cfg.Ext, ".") {
		cfg.Ext = "." + cfg.Ext
	}

	if cfg.Prefix == "" {
		cfg.Prefix = "Template"
	}

	if cfg.Context == "" {
		cfg.Context = "data"
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "hc:"
	}

	if cfg.Runtime == "" {
		cfg.Runtime = DefaultRuntime
	}

	if cfg.Schemas == nil {
		on := true
		cfg.Schemas = &on
	}
}

// WithSchemas reports whether schema constants are generated.
func (c *Config) WithSchemas() bool {
	return c.Schemas == nil || *c.Schemas
}

// Validate checks field values.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != "1" {
		errs = append(errs, fmt.Errorf("unsupported config version %q", c.Version))
	}

	if !token.IsIdentifier(c.Package) {
		errs = append(errs, fmt.Errorf("package %q is not a Go identifier", c.Package))
	}

	if !token.IsIdentifier(c.Context) {
		errs = append(errs, fmt.Errorf("context %q is not a Go identifier", c.Context))
	}

	if c.Context == common.PkgAlias(c.Runtime) {
		errs = append(errs, fmt.Errorf("context %q collides with the runtime package name", c.Context))
	}

	if typescope.IsLoopIdent(c.Context) {
		errs = append(errs, fmt.Errorf("context %q is reserved for loop variables", c.Context))
	}

	if c.Prefix != "" && !token.IsIdentifier(c.Prefix) {
		errs = append(errs, fmt.Errorf("prefix %q is not a Go identifier", c.Prefix))
	}

	if strings.ContainsAny(c.Namespace, " \t\n>/=") {
		errs = append(errs, fmt.Errorf("namespace %q can't contain spaces or tag delimiters", c.Namespace))
	}

	return errors.Join(errs...)
}

func (c *Config) resolve(dir string) {
	if !filepath.IsAbs(c.Templates) {
		c.Templates = filepath.Join(dir, c.Templates)
	}

	if !filepath.IsAbs(c.Output) {
		c.Output = filepath.Join(dir, c.Output)
	}
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes a Config to the given path.
func WriteFile(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
