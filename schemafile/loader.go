// Package schemafile loads formstate schema trees from YAML or JSON
// documents. A mapping that carries both "label" and "rule" is a field spec;
// a plain mapping nests; anything else is skipped so documents may carry
// incidental keys.
//
// Field spec shape:
//
//	email:
//	  label: Email
//	  description: Work address preferred.
//	  default: ""
//	  required: true
//	  rule: 'value contains "@"'
//	  message: must contain an @ sign
//
// Validators in files are expression rules (see package rule); asynchronous
// validators cannot be declared in a document and must be attached in code.
package schemafile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	formstate "github.com/ostrander/formstate"
	"github.com/ostrander/formstate/rule"
)

// LoadFile loads a schema document, choosing the decoder by file extension
// (.json = JSON, anything else = YAML).
func LoadFile(path string) (formstate.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(data)
	}
	return LoadYAML(data)
}

// LoadYAML decodes a YAML schema document.
func LoadYAML(data []byte) (formstate.Group, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemafile: decode yaml: %w", err)
	}
	return convert(doc)
}

// LoadJSON decodes a JSON schema document.
func LoadJSON(data []byte) (formstate.Group, error) {
	var doc map[string]any
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemafile: decode json: %w", err)
	}
	return convert(doc)
}

func convert(doc map[string]any) (formstate.Group, error) {
	out := formstate.Group{}
	for key, v := range doc {
		m, ok := asMap(v)
		if !ok {
			continue
		}
		if isFieldSpec(m) {
			fd, err := buildField(key, m)
			if err != nil {
				return nil, err
			}
			out[key] = fd
			continue
		}
		nested, err := convert(m)
		if err != nil {
			return nil, err
		}
		out[key] = nested
	}
	return out, nil
}

// asMap normalizes decoder map shapes; yaml.v3 may produce map[any]any for
// non-string keys, which we reject by skipping those entries.
func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, mv := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = mv
		}
		return out, true
	default:
		return nil, false
	}
}

func isFieldSpec(m map[string]any) bool {
	_, hasLabel := m["label"]
	_, hasRule := m["rule"]
	return hasLabel && hasRule
}

func buildField(key string, m map[string]any) (formstate.Field, error) {
	fd := formstate.Field{
		Label:       formstate.InputString(m["label"]),
		Description: formstate.InputString(m["description"]),
		Default:     formstate.InputString(m["default"]),
	}
	src := formstate.InputString(m["rule"])
	message := formstate.InputString(m["message"])
	v, err := rule.Expr(src, message)
	if err != nil {
		return formstate.Field{}, fmt.Errorf("schemafile: field %q: compile rule: %w", key, err)
	}
	if required, _ := m["required"].(bool); required {
		v = rule.All(rule.Required(), v)
	}
	fd.Validate = v
	return fd, nil
}
