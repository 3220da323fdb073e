package htmlrt

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TagName is the struct tag consulted first when resolving a field.
const TagName = "htmlc"

// Get walks path from root and returns the value found, or nil when any step
// is missing. Each step reads a map key, a struct field or a sequence index.
//
// Struct fields match, in order, the htmlc tag, the json tag, the exact field
// name and the name with its first letter upper-cased. Fields promoted from
// embedded structs are found as encoding/json finds them.
func Get(root any, path ...string) any {
	cur := root

	for _, seg := range path {
		if cur == nil {
			return nil
		}

		if m, ok := cur.(map[string]any); ok {
			cur = m[seg]
			continue
		}

		next, ok := step(reflect.ValueOf(cur), seg)
		if !ok {
			return nil
		}

		cur = next
	}

	return cur
}

func step(v reflect.Value, seg string) (any, bool) {
	v = indirect(v)
	if !v.IsValid() {
		return nil, false
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}

		got := v.MapIndex(reflect.ValueOf(seg).Convert(v.Type().Key()))
		if !got.IsValid() {
			return nil, false
		}

		return got.Interface(), true

	case reflect.Struct:
		f, ok := fieldByName(v, seg)
		if !ok {
			return nil, false
		}

		return f.Interface(), true

	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= v.Len() {
			return nil, false
		}

		return v.Index(i).Interface(), true

	default:
		return nil, false
	}
}

// fieldByName resolves name against the exported fields of v, including
// fields promoted from embedded structs. Shallower fields win within each
// matching rule.
func fieldByName(v reflect.Value, name string) (reflect.Value, bool) {
	fields := reflect.VisibleFields(v.Type())
	sort.SliceStable(fields, func(i, j int) bool {
		return len(fields[i].Index) < len(fields[j].Index)
	})

	for _, match := range []func(reflect.StructField) bool{
		func(f reflect.StructField) bool { return tagName(f, TagName) == name },
		func(f reflect.StructField) bool { return tagName(f, "json") == name },
		func(f reflect.StructField) bool { return f.Name == name },
		func(f reflect.StructField) bool { return f.Name == upperFirst(name) },
	} {
		for _, f := range fields {
			if !f.IsExported() || !match(f) {
				continue
			}

			fv, err := v.FieldByIndexErr(f.Index)
			if err != nil || !fv.CanInterface() {
				continue
			}

			return fv, true
		}
	}

	return reflect.Value{}, false
}

func tagName(f reflect.StructField, key string) string {
	tag, ok := f.Tag.Lookup(key)
	if !ok {
		return ""
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}

	return name
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
