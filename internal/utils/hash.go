package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/edusync/statesync/models"
)

// DataChecksum returns the hex-encoded SHA-256 digest of the canonical
// encoding of a field map: field names in lexicographic order, each value
// normalized the way FieldValue comparison normalizes it. Two maps with
// the same fields and values always produce the same checksum regardless
// of the JSON formatting the client used.
func DataChecksum(data models.FieldMap) string {
	h := sha256.New()

	for _, key := range data.SortedKeys() {
		h.Write([]byte(key))
		h.Write([]byte{0})
		h.Write(canonicalValue(data[key]))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}

// canonicalValue normalizes a single field value by decoding and
// re-encoding it: object keys come out sorted and whitespace is stripped.
// Malformed JSON is hashed verbatim.
func canonicalValue(v models.FieldValue) []byte {
	if v.Null {
		return []byte("null")
	}

	var decoded any
	if err := json.Unmarshal(v.Value, &decoded); err != nil {
		return v.Value
	}

	normalized, err := json.Marshal(decoded)
	if err != nil {
		return v.Value
	}

	return normalized
}

// VerifyChecksum reports whether the provided hex digest matches the
// canonical checksum of data. An empty expected digest passes: the
// checksum field is optional on sync operations.
func VerifyChecksum(data models.FieldMap, expected string) bool {
	if expected == "" {
		return true
	}
	return DataChecksum(data) == expected
}
