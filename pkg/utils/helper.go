package utils

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// IsNumericCode reports whether s is made of digits only with the given length.
func IsNumericCode(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// GenerateIdempotencyKey creates a client-side key attached to mutating
// backend calls so a manual retry of the same submission is deduplicated.
func GenerateIdempotencyKey() string {
	return uuid.New().String()
}

// NormalizeSpaces trims and collapses inner whitespace runs to single spaces.
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
