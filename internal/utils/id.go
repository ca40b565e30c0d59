package utils

import "github.com/google/uuid"

// NewID returns a fresh session identifier.
// Only uniqueness matters; callers must not parse it.
func NewID() string {
	return uuid.NewString()
}
