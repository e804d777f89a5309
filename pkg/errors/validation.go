package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateElementID validates a semantic element or shape identifier.
//
// Identifiers are opaque to the engine, but they must be non-empty, free of
// control characters and whitespace, and at most 256 characters long.
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "element id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "element id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "element id contains invalid characters: %q", id)
		}
	}

	return nil
}

// ValidateSnapGrid validates snap grid steps.
// A disabled grid accepts any steps; an enabled grid needs finite, positive steps.
func ValidateSnapGrid(enabled bool, x, y float64) error {
	if !enabled {
		return nil
	}
	for _, v := range []float64{x, y} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidConfig, "snap grid steps must be positive, got %vx%v", x, y)
		}
	}
	return nil
}

// ValidatePage validates a diagram page index against the number of pages.
func ValidatePage(page, pages int) error {
	if page < 0 || page >= pages {
		return New(ErrCodeNotFound, "diagram page %d out of range (document has %d)", page, pages)
	}
	return nil
}

// ValidateFlavorName validates a diagram flavor name.
func ValidateFlavorName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFlavor, "flavor cannot be empty")
	}
	if strings.ToLower(name) != name {
		return New(ErrCodeInvalidFlavor, "flavor names are lowercase: %q", name)
	}
	return nil
}
