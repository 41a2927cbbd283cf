package utils

import "github.com/google/uuid"

// NewID returns prefix-<uuid>; an empty prefix yields a bare uuid.
func NewID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "-" + uuid.NewString()
}
