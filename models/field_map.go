package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// FieldValue is a tagged wrapper for a single field in a client payload.
// It distinguishes "field set to JSON null" (Null == true) from "field
// carries a value" — a field that was omitted entirely is simply absent
// from the enclosing FieldMap.
type FieldValue struct {
	// Value is the raw JSON encoding of the field. Empty when Null is true.
	Value json.RawMessage

	// Null marks a field explicitly set to null by the client.
	Null bool
}

// MarshalJSON encodes the wrapped value, emitting a JSON null for
// explicitly-null fields.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.Null || len(v.Value) == 0 {
		return []byte("null"), nil
	}
	return v.Value, nil
}

// UnmarshalJSON records an explicit null as Null == true; any other token
// is kept verbatim as raw JSON.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = FieldValue{Null: true}
		return nil
	}

	raw := make(json.RawMessage, len(trimmed))
	copy(raw, trimmed)
	*v = FieldValue{Value: raw}
	return nil
}

// Equal reports whether two field values are semantically identical.
// Values are compared after canonicalization so that formatting
// differences (whitespace, object key order) do not register as edits.
func (v FieldValue) Equal(other FieldValue) bool {
	if v.Null || other.Null {
		return v.Null == other.Null
	}
	return v.canonical() == other.canonical()
}

// canonical returns a normalized string form of the value. Decoding into
// `any` and re-encoding sorts object keys and strips whitespace; if the
// raw JSON is malformed the raw bytes are used as-is.
func (v FieldValue) canonical() string {
	if v.Null {
		return "null"
	}

	var decoded any
	if err := json.Unmarshal(v.Value, &decoded); err != nil {
		return string(v.Value)
	}

	normalized, err := json.Marshal(decoded)
	if err != nil {
		return string(v.Value)
	}

	return string(normalized)
}

// FieldMap is the field-name → value mapping carried by sync operations,
// entity snapshots, and conflict records. Absence of a key means the
// client did not mention the field at all.
type FieldMap map[string]FieldValue

// SortedKeys returns the field names in lexicographic order so that
// iteration over a FieldMap is deterministic.
func (m FieldMap) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the map. Raw JSON values are immutable
// by convention, so sharing the underlying bytes is safe.
func (m FieldMap) Clone() FieldMap {
	if m == nil {
		return nil
	}
	out := make(FieldMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge returns a new map holding the receiver's entries overlaid with
// every entry of overlay. The receiver is not modified.
func (m FieldMap) Merge(overlay FieldMap) FieldMap {
	out := make(FieldMap, len(m)+len(overlay))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}
