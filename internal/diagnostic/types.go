package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"html-template-compiler/internal/common"
)

// Category classifies a compile error.
type Category int

const (
	// Lexical errors come from malformed tags or expressions.
	Lexical Category = iota
	// Structural errors come from unbalanced open/else/close directives.
	Structural
	// Semantic errors come from invalid names, paths or tag configuration.
	Semantic
	// Directive errors come from unrecognized inline directive characters.
	Directive
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case Lexical:
		return "lexical"
	case Structural:
		return "structural"
	case Semantic:
		return "semantic"
	case Directive:
		return "directive"
	default:
		return common.UnknownStr
	}
}

// Error codes.
const (
	CodeTagTerminator    = "tag-terminator"
	CodeUnterminated     = "unterminated-expression"
	CodeUnmatchedClose   = "unmatched-close"
	CodeUnmatchedElse    = "unmatched-else"
	CodeDuplicateElse    = "duplicate-else"
	CodeUnclosedBlock    = "unclosed-block"
	CodeUnknownTag       = "unknown-tag"
	CodeTagAttribute     = "tag-attribute"
	CodeReservedBinding  = "reserved-binding"
	CodeInvalidBinding   = "invalid-binding"
	CodeInvalidPath      = "invalid-path"
	CodeEmptyAttribute   = "empty-attribute"
	CodeUnknownDirective = "unknown-directive"
)

// Error is a single fatal compile error.
type Error struct {
	// Category of the error.
	Category Category
	// Code is a unique identifier for this type of error.
	Code string
	// Message is the human-readable description.
	Message string
	// Token is the offending source fragment, tag or attribute (if any).
	Token string
	// Offset is the byte offset into the template source, or -1 if unknown.
	Offset int
}

// Errorf builds an Error with a formatted message and no position.
func Errorf(category Category, code, token, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Token:    token,
		Offset:   -1,
	}
}

// At returns a copy of e positioned at offset. A known offset is kept.
func (e *Error) At(offset int) *Error {
	if e.Offset >= 0 {
		return e
	}

	out := *e
	out.Offset = offset

	return &out
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error [%s] %s", e.Category, e.Code, e.Message)
	if e.Token != "" {
		msg += fmt.Sprintf(" (near %q", e.Token)
		if e.Offset >= 0 {
			msg += fmt.Sprintf(" at offset %d", e.Offset)
		}

		msg += ")"
	} else if e.Offset >= 0 {
		msg += fmt.Sprintf(" (at offset %d)", e.Offset)
	}

	return msg
}

// Is reports whether target is an *Error with the same category and code.
// An empty code in target matches any code of the same category.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Category == e.Category && (t.Code == "" || t.Code == e.Code)
}

// CategoryOf returns the category of the first *Error in err's chain.
func CategoryOf(err error) (Category, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Category, true
	}

	return 0, false
}

// Diagnostics holds compile failures from a batch of templates.
type Diagnostics struct {
	Errors []Diagnostic
}

// Diagnostic associates a compile error with the template it came from.
type Diagnostic struct {
	// Source identifies the template (usually a file path).
	Source string
	// Err is the compile error.
	Err error
}

// Add records a failure for source.
func (d *Diagnostics) Add(source string, err error) {
	d.Errors = append(d.Errors, Diagnostic{Source: source, Err: err})
}

// HasErrors returns true if there are any errors.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
}

// Err returns a combined error from all diagnostics, or nil if there are none.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	if d.Source == "" {
		return d.Err.Error()
	}

	return d.Source + ": " + d.Err.Error()
}
