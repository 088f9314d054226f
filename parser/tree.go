package parser

// Accessors for decoded JSON trees. None of them modify the tree, and all
// of them tolerate a nil or wrongly-typed input by returning the zero value.

// AsMap returns v as a JSON object, or nil if v is not one.
func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// GetMap returns m[key] as a JSON object, or nil.
func GetMap(m map[string]any, key string) map[string]any {
	return AsMap(m[key])
}

// GetString returns m[key] as a string, or "".
func GetString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// GetSlice returns m[key] as a JSON array, or nil.
func GetSlice(m map[string]any, key string) []any {
	s, _ := m[key].([]any)
	return s
}

// Lookup follows keys through nested objects and returns the value found,
// or nil if any step is missing or not an object.
func Lookup(v any, keys ...string) any {
	for _, k := range keys {
		m := AsMap(v)
		if m == nil {
			return nil
		}
		v = m[k]
	}
	return v
}

// IsEmpty reports whether v carries no content: nil, false, 0, "", or an
// empty object or array.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
