package utils

import (
	"github.com/google/uuid"
)

// NewID returns a random identifier used as a document _id.
func NewID() string {
	return uuid.NewString()
}
