package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier supplied by external input
// (API paths, CLI arguments). Graph-internal uniqueness is checked by the
// graph package; this guards against IDs that are unsafe to echo into
// logs, file names, or URLs.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "node id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains control characters")
		}
	}
	return nil
}

// ValidateSnapshotName validates a user-supplied snapshot name.
// Names become file basenames in the file store, so path components and
// traversal sequences are rejected outright.
func ValidateSnapshotName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "snapshot name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "snapshot name too long (max 128 characters)")
	}

	dangerous := []string{"..", "/", "\\", "\x00"}
	for _, pattern := range dangerous {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "snapshot name contains invalid characters: %q", pattern)
		}
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "snapshot name contains control characters")
		}
	}
	return nil
}

// ValidateDimensions validates viewport dimensions from external input.
func ValidateDimensions(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "dimensions must be positive, got %gx%g", width, height)
	}
	const maxDim = 100000
	if width > maxDim || height > maxDim {
		return New(ErrCodeInvalidInput, "dimensions too large (max %d)", maxDim)
	}
	return nil
}
