package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var medicardIDRegex = regexp.MustCompile(`^MED\d+$`)

// ValidateMedicardID validates the patient-visible Medicard identifier format
func ValidateMedicardID(medicardID string) error {
	if medicardID == "" {
		return fmt.Errorf("medicard ID cannot be empty")
	}
	if len(medicardID) > 64 {
		return fmt.Errorf("medicard ID too long (max 64 characters)")
	}
	if !medicardIDRegex.MatchString(medicardID) {
		return fmt.Errorf("invalid medicard ID format")
	}
	return nil
}

// ValidateRequestID validates a consent request ID
func ValidateRequestID(requestID string) error {
	if requestID == "" {
		return fmt.Errorf("request ID cannot be empty")
	}
	if len(requestID) > 255 {
		return fmt.Errorf("request ID too long (max 255 characters)")
	}
	return nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// SanitizeString removes dangerous characters from user input
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")
	// Trim whitespace
	input = strings.TrimSpace(input)
	return input
}

// ValidateRequired validates that a field is not empty
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateMaxLength validates maximum string length
func ValidateMaxLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%s exceeds maximum length of %d characters", fieldName, maxLength)
	}
	return nil
}

// ValidateMinLength validates minimum string length
func ValidateMinLength(fieldName, value string, minLength int) error {
	if len(value) < minLength {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLength)
	}
	return nil
}
