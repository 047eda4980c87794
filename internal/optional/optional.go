// Package optional provides a JSON-aware wrapper that distinguishes a field
// that was absent from a payload, present with a value, and present as null.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value holds an optional T. The zero Value is absent.
type Value[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns a present, non-null Value.
func Some[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// Null returns a Value that is present and explicitly null.
func Null[T any]() Value[T] {
	return Value[T]{set: true, null: true}
}

// IsSet reports whether the field appeared in the payload (null included).
func (v Value[T]) IsSet() bool { return v.set }

// IsNull reports whether the field appeared as an explicit null.
func (v Value[T]) IsNull() bool { return v.set && v.null }

// Get returns the value and true when the field is present and not null.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.set && !v.null
}

// UnmarshalJSON is only invoked by encoding/json when the key is present.
func (v *Value[T]) UnmarshalJSON(b []byte) error {
	v.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		v.null = true
		var zero T
		v.value = zero
		return nil
	}
	v.null = false
	return json.Unmarshal(b, &v.value)
}

// MarshalJSON encodes absent and null values as JSON null.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set || v.null {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
