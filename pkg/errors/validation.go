package errors

import (
	"strings"
	"unicode"
)

// ValidateIdentifier validates a campaign or product identifier for safety.
// Identifiers become directory names under the output base path, so names
// that could be used for path traversal or injection are rejected.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No path separators or null bytes
//   - Maximum length of 256 characters
func ValidateIdentifier(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidBrief, "%s cannot be empty", kind)
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidBrief, "%s too long (max 256 characters)", kind)
	}

	// Check for control characters and null bytes
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidBrief, "%s contains invalid control characters", kind)
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidBrief, "%s contains invalid characters: %q", kind, pattern)
		}
	}

	return nil
}

// ValidateLocale validates a locale code such as "en-US" or "de-DE".
// An empty locale is valid and means the brief's default settings.
func ValidateLocale(locale string) error {
	if locale == "" {
		return nil
	}
	if len(locale) > 16 {
		return New(ErrCodeInvalidLocale, "locale too long: %q", locale)
	}
	for _, r := range locale {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return New(ErrCodeInvalidLocale, "locale contains invalid character: %q", locale)
		}
	}
	return nil
}
