package utils

import "github.com/google/uuid"

// NewID generates an opaque entity identifier. Uniqueness is the only
// property callers rely on.
func NewID() string {
	return uuid.New().String()
}
