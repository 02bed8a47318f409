package entity

import (
	"net/url"
	"strings"
)

// Fields is a flat field name to value mapping that remembers insertion order.
// Replacing a value keeps the position of the first insertion.
type Fields struct {
	keys   []string
	values map[string]string
}

func NewFields() *Fields {
	return &Fields{values: make(map[string]string)}
}

// FieldsOf builds Fields from alternating key, value arguments; a trailing key without value is ignored.
func FieldsOf(kv ...string) *Fields {
	f := NewFields()
	for i := 0; i+1 < len(kv); i += 2 {
		f.Set(kv[i], kv[i+1])
	}
	return f
}

func (f *Fields) Set(key, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

func (f *Fields) Get(key string) (string, bool) {
	if f == nil {
		return "", false
	}
	value, ok := f.values[key]
	return value, ok
}

func (f *Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

func (f *Fields) Delete(key string) {
	if !f.Has(key) {
		return
	}
	delete(f.values, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
}

// Keys returns field names in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	keys := make([]string, len(f.keys))
	copy(keys, f.keys)
	return keys
}

func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Merge copies all fields of other into f, other wins on conflict.
func (f *Fields) Merge(other *Fields) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		f.Set(key, other.values[key])
	}
}

func (f *Fields) Clone() *Fields {
	clone := NewFields()
	clone.Merge(f)
	return clone
}

// Map returns a plain copy of the fields; order is lost.
func (f *Fields) Map() map[string]string {
	m := make(map[string]string, f.Len())
	if f == nil {
		return m
	}
	for key, value := range f.values {
		m[key] = value
	}
	return m
}

// Encode returns the fields in application/x-www-form-urlencoded form, in insertion order.
func (f *Fields) Encode() string {
	if f.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for i, key := range f.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(f.values[key]))
	}
	return sb.String()
}
