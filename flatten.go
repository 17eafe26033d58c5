package formstate

import (
	"sort"

	"github.com/ostrander/formstate/i18n"
)

// maxSchemaDepth bounds schema recursion. Deeper trees indicate schema
// authoring gone wrong (for example an aliased map), not legitimate forms.
const maxSchemaDepth = 10

// flatSchema is the derived lookup view over a Group tree: one entry per
// recognized Field leaf, keyed by the dot-joined path from root to leaf.
type flatSchema struct {
	fields   map[string]Field
	defaults map[string]string
	// paths holds every field path in deterministic order: depth-first with
	// keys sorted at each level. Error listings and whole-form validation
	// dispatch follow this order.
	paths []string
}

// flatten walks the tree and returns its flat view. Invalid keys and
// excessive depth fail fast with Issues; anything that is neither a usable
// Field nor a Group is skipped so schemas may carry incidental non-field
// entries.
func flatten(root Group) (*flatSchema, error) {
	fs := &flatSchema{
		fields:   map[string]Field{},
		defaults: map[string]string{},
	}
	if err := fs.walk(root, "", 1); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *flatSchema) walk(g Group, prefix string, depth int) error {
	if depth > maxSchemaDepth {
		return Issues{{
			Path:    prefix,
			Code:    CodeDepthExceeded,
			Message: i18n.T(CodeDepthExceeded, nil),
			Params:  map[string]any{"max": maxSchemaDepth},
		}}
	}
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !IsValidKey(k) {
			return Issues{{
				Path:    joinPath(prefix, k),
				Code:    CodeBadKey,
				Message: i18n.T(CodeBadKey, map[string]string{"key": k}),
				Params:  map[string]any{"key": k},
			}}
		}
		path := joinPath(prefix, k)
		switch n := g[k].(type) {
		case Field:
			if n.Label == "" || n.Validate == nil {
				// Not a recognized leaf; tolerate and skip.
				continue
			}
			fs.fields[path] = n
			fs.defaults[path] = n.Default
			fs.paths = append(fs.paths, path)
		case Group:
			if err := fs.walk(n, path, depth+1); err != nil {
				return err
			}
		default:
			// nil or foreign node type: skip.
		}
	}
	return nil
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
