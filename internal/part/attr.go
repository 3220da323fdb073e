package part

import (
	"strings"

	"html-template-compiler/internal/diagnostic"
	"html-template-compiler/internal/scan"
)

// RenderAttrKeyValue converts one tag attribute into parts. offset is the
// source offset of the owning tag.
//
// Rules, in priority order:
//   - "?name": boolean attribute when the value is exactly one expression,
//     otherwise the bare name is emitted unconditionally
//   - ":name": shorthand for name="{{name}}" that is omitted when undefined
//   - presence flag: the bare name
//   - literal value: name="value"
//   - a single expression: omitted when undefined
//   - anything else: a composite value
func RenderAttrKeyValue(a scan.Attr, offset int) ([]Part, error) {
	key := a.Key

	if name, ok := strings.CutPrefix(key, "?"); ok {
		if a.Flag {
			return nil, nil
		}

		segs, err := OddSplit(a.Value)
		if err != nil {
			return nil, positioned(err, offset)
		}

		if len(segs) == 3 && segs[0] == "" && segs[2] == "" {
			return []Part{AttrBoolean(name, segs[1]).At(offset)}, nil
		}

		// permissive fallback: a malformed boolean value still emits the name
		return []Part{Raw(" " + name).At(offset)}, nil
	}

	if name, ok := strings.CutPrefix(key, ":"); ok {
		if name == "" {
			return nil, diagnostic.Errorf(diagnostic.Semantic, diagnostic.CodeEmptyAttribute, key,
				"shorthand attribute needs a name").At(offset)
		}

		return []Part{AttrRender(name, name).At(offset)}, nil
	}

	if a.Flag {
		return []Part{Raw(" " + key).At(offset)}, nil
	}

	segs, err := OddSplit(a.Value)
	if err != nil {
		return nil, positioned(err, offset)
	}

	// values are re-emitted double-quoted
	for i := 0; i < len(segs); i += 2 {
		segs[i] = strings.ReplaceAll(segs[i], `"`, "&quot;")
	}

	switch {
	case len(segs) == 1:
		return []Part{Raw(" " + key + `="` + segs[0] + `"`).At(offset)}, nil
	case len(segs) == 3 && segs[0] == "" && segs[2] == "":
		return []Part{AttrRender(key, segs[1]).At(offset)}, nil
	default:
		return []Part{
			Raw(" " + key + "=").At(offset),
			Attr(segs).At(offset),
		}, nil
	}
}

func positioned(err error, offset int) error {
	if derr, ok := err.(*diagnostic.Error); ok {
		out := *derr
		out.Offset = offset

		return &out
	}

	return err
}
