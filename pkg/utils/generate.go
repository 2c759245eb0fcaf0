package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new random identifier for a stored record.
func GenerateID() string {
	return uuid.New().String()
}
