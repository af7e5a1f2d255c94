package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a file path referenced from inside a record file.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// prefixRegex matches report id prefixes such as "AIS".
var prefixRegex = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,7}$`)

// ValidatePrefix validates a report id prefix.
func ValidatePrefix(prefix string) error {
	if !prefixRegex.MatchString(prefix) {
		return New(ErrCodeInvalidConfig, "invalid report prefix %q (2-8 uppercase letters or digits)", prefix)
	}
	return nil
}

// reportIDRegex matches generated report ids (PREFIX-YYYYMM-NNNN).
var reportIDRegex = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,7}-\d{4}(0[1-9]|1[0-2])-\d{4}$`)

// ValidateReportID validates a generated report id.
func ValidateReportID(id string) error {
	if !reportIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid report id: %q", id)
	}
	return nil
}

// hexColorRegex matches #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateHexColor validates a #rrggbb color string.
func ValidateHexColor(s string) error {
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidConfig, "invalid color %q (expected #rrggbb)", s)
	}
	return nil
}
