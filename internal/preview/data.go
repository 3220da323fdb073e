package preview

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// LoadData reads preview data from a YAML or JSON file. An empty path yields
// an empty object.
func LoadData(path string) (any, error) {
	if path == "" {
		return map[string]any{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	return ParseData(data, filepath.Ext(path))
}

// ParseData decodes preview data. ext selects JSON for ".json" and YAML
// otherwise; YAML is a superset of JSON so both decode either way.
func ParseData(data []byte, ext string) (any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]any{}, nil
	}

	var v any

	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing JSON data: %w", err)
		}

		return v, nil
	}

	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing YAML data: %w", err)
	}

	return Normalize(v), nil
}

// Normalize converts YAML maps with non-string keys into map[string]any so
// the value can be walked like decoded JSON.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, x := range t {
			t[k] = Normalize(x)
		}

		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[fmt.Sprint(k)] = Normalize(x)
		}

		return out
	case []any:
		for i, x := range t {
			t[i] = Normalize(x)
		}

		return t
	default:
		return v
	}
}

// Validate checks data against schema and reports every violation. Data is
// first round-tripped through JSON so Go structs validate like documents.
func Validate(schema *openapi3.Schema, data any) error {
	if schema == nil {
		return nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding data: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding data: %w", err)
	}

	if err := schema.VisitJSON(doc, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("data does not match template schema: %w", err)
	}

	return nil
}
