package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxInputSize bounds requirements text accepted from untrusted callers.
const maxInputSize = 1 << 20

// pythonPackageNameRegex matches valid Python package names (PEP 508).
var pythonPackageNameRegex = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// ValidatePackageName validates a Python package name per PEP 508. Names
// that could be used for path traversal or injection are rejected before
// the name reaches a cache key or an index URL.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", "..")
	}
	if !pythonPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid Python package name: %q", name)
	}
	return nil
}

// ValidateRequirementsText checks text submitted for parsing.
func ValidateRequirementsText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidInput, "requirements text cannot be empty")
	}
	if len(text) > maxInputSize {
		return New(ErrCodeInvalidInput, "requirements text too large (max %d bytes)", maxInputSize)
	}
	if strings.ContainsRune(text, '\x00') {
		return New(ErrCodeInvalidInput, "requirements text contains null bytes")
	}
	return nil
}

// ValidateResultID checks a stored-result identifier taken from a URL.
func ValidateResultID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "result id cannot be empty")
	}
	if len(id) > 64 || strings.ContainsAny(id, "/\\.\x00") {
		return New(ErrCodeInvalidInput, "invalid result id: %q", id)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}
