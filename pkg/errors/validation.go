package errors

import (
	"strings"
	"unicode"
)

// maxKeyLength bounds storage keys so they stay valid file names everywhere.
const maxKeyLength = 128

// ValidateKey validates a style storage key for safety.
// Keys become file names in the file store and key suffixes in redis/mongo,
// so they must be a single plain path element.
//
// Validation rules:
//   - No empty keys
//   - Maximum length of 128 characters
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - No leading dot (hidden files, "." and "..")
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidKey, "key too long (max %d characters)", maxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "key contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidKey, "key contains invalid characters: %q", pattern)
		}
	}

	if strings.HasPrefix(key, ".") {
		return New(ErrCodeInvalidKey, "key cannot start with a dot")
	}

	return nil
}

// ValidateFontSize checks that a font size is usable for layout.
func ValidateFontSize(size float64) error {
	if !(size > 0) {
		return New(ErrCodeInvalidInput, "font size must be positive, got %v", size)
	}
	return nil
}
