package typescope

import (
	"strings"

	"html-template-compiler/internal/diagnostic"
)

// ValidatePath checks a dot-separated property path: it must start with a
// letter, '$' or '_' and contain only word characters, '$' and non-empty
// dot-separated segments.
func ValidatePath(path string) error {
	if err := validateName(path, diagnostic.CodeInvalidPath, "path"); err != nil {
		return err
	}

	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeInvalidPath, path,
				"path %q has an empty segment", path)
		}
	}

	return nil
}

// ValidateBinding checks a loop binding name. Bindings follow path rules
// but may not contain dots.
func ValidateBinding(name string) error {
	if err := validateName(name, diagnostic.CodeInvalidBinding, "binding"); err != nil {
		return err
	}

	if strings.Contains(name, ".") {
		return diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeInvalidBinding, name,
			"binding %q can't be a dotted name", name)
	}

	return nil
}

// LoopIdentPrefix starts every Go identifier generated for a loop element.
const LoopIdentPrefix = "it"

// IsLoopIdent reports whether name has the form of a generated loop
// identifier ("it" followed by digits), which a context parameter must not
// use.
func IsLoopIdent(name string) bool {
	rest, ok := strings.CutPrefix(name, LoopIdentPrefix)
	if !ok || rest == "" {
		return false
	}

	for i := range len(rest) {
		if !isDigit(rest[i]) {
			return false
		}
	}

	return true
}

func validateName(name, code, what string) error {
	if name == "" {
		return diagnostic.Errorf(diagnostic.Semantic, code, name, "empty %s", what)
	}

	c := name[0]
	if !isLetter(c) && c != '$' && c != '_' {
		return diagnostic.Errorf(diagnostic.Semantic, code, name,
			"%s %q starts with invalid character", what, name)
	}

	for i := 1; i < len(name); i++ {
		c := name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' && c != '$' && c != '.' {
			return diagnostic.Errorf(diagnostic.Semantic, code, name,
				"%s %q has invalid character %q", what, name, c)
		}
	}

	return nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
