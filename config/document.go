// Package config loads structured configuration files (TOML, YAML) into a
// shared nested Document and provides dotted-path navigation over it.
package config

// Document represents a decoded configuration file: string keys mapping to
// scalars, sequences, or nested documents. Documents are materialized fresh
// for each check invocation and are never mutated in place.
type Document map[string]any

// Value walks the given key path and returns the raw value at the end of it.
func (d Document) Value(path ...string) (any, bool) {
	if len(path) == 0 {
		return d, true
	}
	current := d
	for i, key := range path {
		value, ok := current[key]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return value, true
		}
		current, ok = asDocument(value)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

// Table returns the nested document at the given key path.
func (d Document) Table(path ...string) (Document, bool) {
	value, ok := d.Value(path...)
	if !ok {
		return nil, false
	}
	return asDocument(value)
}

// String returns the string value at the given key path.
func (d Document) String(path ...string) (string, bool) {
	value, ok := d.Value(path...)
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

// Bool returns the boolean value at the given key path.
func (d Document) Bool(path ...string) (bool, bool) {
	value, ok := d.Value(path...)
	if !ok {
		return false, false
	}
	flag, ok := value.(bool)
	return flag, ok
}

// Slice returns the sequence value at the given key path. TOML arrays of
// tables decode as []map[string]any, so those are normalized too.
func (d Document) Slice(path ...string) ([]any, bool) {
	value, ok := d.Value(path...)
	if !ok {
		return nil, false
	}
	switch typed := value.(type) {
	case []any:
		return typed, true
	case []map[string]any:
		items := make([]any, len(typed))
		for i, item := range typed {
			items[i] = item
		}
		return items, true
	}
	return nil, false
}

// StringSlice returns the sequence at the given key path with every element
// coerced to a string; non-string elements are skipped.
func (d Document) StringSlice(path ...string) ([]string, bool) {
	items, ok := d.Slice(path...)
	if !ok {
		return nil, false
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if text, ok := item.(string); ok {
			result = append(result, text)
		}
	}
	return result, true
}

// Has reports whether any value exists at the given key path.
func (d Document) Has(path ...string) bool {
	_, ok := d.Value(path...)
	return ok
}

// AsDocument converts one decoded mapping value to a Document. Decoders
// differ in the concrete map type they produce for nested mappings —
// map[string]any, Document itself, or map[any]any — so callers navigating
// elements of a raw slice go through this instead of a type assertion.
func AsDocument(value any) (Document, bool) {
	return asDocument(value)
}

func asDocument(value any) (Document, bool) {
	switch typed := value.(type) {
	case Document:
		return typed, true
	case map[string]any:
		return Document(typed), true
	case map[any]any:
		converted := Document{}
		for key, item := range typed {
			name, ok := key.(string)
			if !ok {
				return nil, false
			}
			converted[name] = item
		}
		return converted, true
	}
	return nil, false
}
