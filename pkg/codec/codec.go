// Package codec translates between typed collections and the string
// values the key-value store holds. Decoding is deliberately fail-open:
// an absent or corrupted value yields an empty collection rather than an
// error, so a damaged store degrades to "acts as if empty" instead of
// blocking the user.
package codec

import "encoding/json"

// DecodeCollection parses a stored JSON array into a slice of T. Invalid
// input yields an empty, non-nil slice.
func DecodeCollection[T any](raw string) []T {
	if raw == "" {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// EncodeCollection serializes a slice of T as a JSON array.
func EncodeCollection[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeBool parses a stored boolean flag. Anything but "true" is false.
func DecodeBool(raw string) bool {
	return raw == "true"
}

// EncodeBool serializes a boolean flag.
func EncodeBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
