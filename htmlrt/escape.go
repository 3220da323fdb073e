package htmlrt

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var escaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five markup-significant characters with entities.
func Escape(raw string) string {
	return escaper.Replace(raw)
}

// Unsafe is text that is emitted verbatim by RenderBody.
type Unsafe struct {
	text string
}

// MakeUnsafe wraps the string form of raw as trusted markup.
func MakeUnsafe(raw any) Unsafe {
	if u, ok := raw.(Unsafe); ok {
		return u
	}

	return Unsafe{text: Stringify(raw)}
}

// String returns the wrapped markup.
func (u Unsafe) String() string {
	return u.text
}

var (
	sanitizePolicyOnce sync.Once
	sanitizePolicy     *bluemonday.Policy
)

// Sanitize strips unsafe markup from the string form of raw and marks the
// result as trusted. Use it for user-supplied rich text.
func Sanitize(raw any) Unsafe {
	return Unsafe{text: sanitizer().Sanitize(Stringify(raw))}
}

func sanitizer() *bluemonday.Policy {
	sanitizePolicyOnce.Do(func() {
		sanitizePolicy = bluemonday.UGCPolicy()
	})

	return sanitizePolicy
}
