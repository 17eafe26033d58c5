package formstate

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// InputString converts an accepted default-value type to its string display
// form. nil becomes ""; numbers and booleans use their canonical text form.
func InputString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case gojson.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Entry is one captured name/value pair from a submitted form, the stand-in
// for a DOM FormData entry.
type Entry struct {
	Name  string
	Value string
}

// EntriesFromValues converts url.Values into submission entries, keeping only
// the first occurrence of each name. Names are emitted in sorted order since
// url.Values carries no ordering of its own.
func EntriesFromValues(values url.Values) []Entry {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		vs := values[name]
		if len(vs) == 0 {
			continue
		}
		out = append(out, Entry{Name: name, Value: vs[0]})
	}
	return out
}

// PayloadEntries converts a flat value map into transmittable entries. A key
// is included only when its value is non-nil; all included values are
// stringified. Note the asymmetry with InputString: a nil default displays as
// "" but is excluded, not included-as-empty, when building a payload.
func PayloadEntries(values map[string]any) []Entry {
	keys := make([]string, 0, len(values))
	for k, v := range values {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{Name: k, Value: InputString(values[k])})
	}
	return out
}

// MarshalPayload encodes a flat value map as a JSON object of strings,
// applying the same nil-exclusion rule as PayloadEntries.
func MarshalPayload(values map[string]any) ([]byte, error) {
	flat := make(map[string]string, len(values))
	for k, v := range values {
		if v == nil {
			continue
		}
		flat[k] = InputString(v)
	}
	return gojson.Marshal(flat)
}
