package errors

import (
	"strings"
	"unicode"
)

// ValidateWorkspaceID validates a workspace or document identifier for
// safety before it reaches storage backends or URL paths.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateWorkspaceID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "workspace ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "workspace ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "workspace ID contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "workspace ID contains invalid characters")
	}

	return nil
}

// ValidateChallengeFilename validates a challenge filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateChallengeFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidChallenge, "challenge filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidChallenge, "challenge filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidChallenge, "challenge filename cannot be a hidden file")
	}

	return nil
}
