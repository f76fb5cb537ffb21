package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// GenerateRequestID generates a unique request ID for tracking
func GenerateRequestID() string {
	return uuid.New().String()
}

// NewObjectID returns a 24-character hex identifier for persisted records,
// shape-compatible with the document-store IDs the public API exposes.
func NewObjectID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to a UUID-derived value rather than panicking.
		u := uuid.New()
		return hex.EncodeToString(u[:12])
	}
	return hex.EncodeToString(b)
}

// Contains checks if a string slice contains a specific string
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// GetStringOrDefault returns the value if not empty, otherwise returns the default
func GetStringOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
