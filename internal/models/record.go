package models

import (
	"encoding/json"
	"strings"
)

// Record is the untyped view of any backend entity. The admin console works on
// records so one form renderer can serve every content type.
type Record map[string]any

// ID returns the backend identifier, or "" for singletons and new records.
func (r Record) ID() string {
	if id, ok := r["_id"].(string); ok {
		return id
	}
	return ""
}

// Lookup resolves a dotted path such as "socials.github".
func (r Record) Lookup(path string) (any, bool) {
	var cur any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set assigns a value at a dotted path, creating intermediate objects.
func (r Record) Set(path string, value any) {
	parts := strings.Split(path, ".")
	m := map[string]any(r)
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(m[part])
		if !ok {
			next = map[string]any{}
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// Decode converts the record into a typed model through its JSON form.
func (r Record) Decode(target any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	}
	return nil, false
}
