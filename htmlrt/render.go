package htmlrt

import (
	"fmt"
	"iter"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Stringify returns the display form of raw. nil becomes the empty string
// and floats drop a trailing ".0".
func Stringify(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case Unsafe:
		return v.text
	case fmt.Stringer:
		out, _ := safeString(v)
		return out
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case []byte:
		return string(v)
	}

	rv := indirect(reflect.ValueOf(raw))
	if !rv.IsValid() {
		return ""
	}

	return fmt.Sprint(rv.Interface())
}

// Truthy reports whether raw counts as true in a condition. Stringers are
// tested by their string form, so an empty Unsafe is false.
func Truthy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case Unsafe:
		return v.text != ""
	case fmt.Stringer:
		if s, ok := safeString(v); ok {
			return s != ""
		}
	}

	rv := indirect(reflect.ValueOf(raw))
	if !rv.IsValid() {
		return false
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Slice, reflect.Array:
		return rv.Len() > 0
	case reflect.Map, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	default:
		return true
	}
}

// Not negates Truthy.
func Not(raw any) bool {
	return !Truthy(raw)
}

// NonEmpty reports whether raw is a sequence with at least one element.
func NonEmpty(raw any) bool {
	for range each(raw) {
		return true
	}

	return false
}

// RenderBody renders raw as element text. Unsafe values are emitted as-is,
// sequences render each element in turn, everything else is escaped.
func RenderBody(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case Unsafe:
		return v.text
	case string:
		return Escape(v)
	}

	if isSequence(raw) {
		var b strings.Builder

		for x := range each(raw) {
			b.WriteString(RenderBody(x))
		}

		return b.String()
	}

	return Escape(Stringify(raw))
}

// IfDefined escapes raw and passes it through render. A nil render returns
// the escaped value. An absent value renders nothing.
func IfDefined(raw any, render func(string) string) string {
	if isNil(raw) {
		return ""
	}

	out := Escape(Stringify(raw))
	if render == nil {
		return out
	}

	return render(out)
}

// IfCheck returns truthy() when raw is truthy and falsy() otherwise. A nil
// falsy renders nothing.
func IfCheck(raw any, truthy, falsy func() string) string {
	if Truthy(raw) {
		return truthy()
	}

	if falsy == nil {
		return ""
	}

	return falsy()
}

// Loop renders body for every element of raw. When raw has no elements
// empty is rendered instead, if given.
func Loop(raw any, body func(any) string, empty func() string) string {
	var (
		b strings.Builder
		n int
	)

	for x := range each(raw) {
		b.WriteString(body(x))
		n++
	}

	if n == 0 && empty != nil {
		return empty()
	}

	return b.String()
}

// each yields the elements of slices, arrays and iter.Seq[any] values.
// Strings are not sequences.
func each(raw any) iter.Seq[any] {
	return func(yield func(any) bool) {
		switch v := raw.(type) {
		case nil, string, []byte, Unsafe:
			return
		case []any:
			for _, x := range v {
				if !yield(x) {
					return
				}
			}

			return
		case iter.Seq[any]:
			v(yield)
			return
		}

		rv := indirect(reflect.ValueOf(raw))
		if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
			return
		}

		for i := range rv.Len() {
			if !yield(rv.Index(i).Interface()) {
				return
			}
		}
	}
}

func isSequence(raw any) bool {
	switch raw.(type) {
	case nil, string, []byte, Unsafe:
		return false
	case []any, iter.Seq[any]:
		return true
	}

	rv := indirect(reflect.ValueOf(raw))

	return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array)
}

func isNil(raw any) bool {
	if raw == nil {
		return true
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// indirect follows pointers and interfaces. It returns the zero Value for
// nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}

		v = v.Elem()
	}

	return v
}

func safeString(s fmt.Stringer) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()

	return s.String(), true
}
