package errors

import (
	"math"
	"unicode"
)

// maxNameLength bounds region identifiers and labels read from datasets.
const maxNameLength = 256

// ValidateName checks a region identifier or label read from a dataset.
//
// The rules are:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "region name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "region name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "region name contains invalid control characters")
		}
	}
	return nil
}

// ValidateMagnitude checks that v is a finite, non-negative number.
// what names the attribute in the error message (e.g. "area of Maule").
func ValidateMagnitude(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number, got %v", what, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative, got %v", what, v)
	}
	return nil
}

// ValidatePositive checks that v is a finite number strictly greater than zero.
func ValidatePositive(what string, v float64) error {
	if err := ValidateMagnitude(what, v); err != nil {
		return err
	}
	if v == 0 {
		return New(ErrCodeInvalidInput, "%s must be greater than zero", what)
	}
	return nil
}
