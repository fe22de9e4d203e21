package utils

import (
	"os"
	"strings"

	"github.com/google/uuid"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// NewReferenceCode generates a booking reference like "BK-9F2A1C7E".
// Derived from a v4 uuid so collisions are not a practical concern.
func NewReferenceCode() string {
	id := uuid.New()
	return "BK-" + strings.ToUpper(id.String()[:8])
}

// PtrFloat returns pointer to float64
func PtrFloat(f float64) *float64 { return &f }
