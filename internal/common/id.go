package common

import "github.com/google/uuid"

// NewID returns a fresh random (v4) identifier for a new entity.
func NewID() string {
	return uuid.NewString()
}
