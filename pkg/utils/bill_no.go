package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateBillNo generates a unique bill number
func GenerateBillNo() string {
	return "BILL-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateItemCode generates a unique catalog item code with the given prefix
func GenerateItemCode(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}
