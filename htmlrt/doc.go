// Package htmlrt is the runtime used by compiled templates.
//
// A compiled template is a single Go expression over a context value. The
// expression only calls into this package: Get reads a property path, the
// Render/If/Loop helpers produce escaped markup, and Unsafe marks text that
// is already markup and must not be escaped again.
//
// Values follow loose truthiness: nil, false, zero numbers, NaN, empty
// strings and empty sequences are false, everything else is true.
package htmlrt
