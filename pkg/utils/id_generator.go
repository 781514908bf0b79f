package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// GenerateID generates a new UUID for internal record IDs
func GenerateID() string {
	return uuid.New().String()
}

// GenerateRequestID generates a unique consent request ID
func GenerateRequestID() string {
	return "REQ-" + uuid.New().String()
}

// GenerateRuleID generates a unique drug rule ID
func GenerateRuleID() string {
	return "RULE-" + uuid.New().String()
}

// GenerateMedicardID generates a patient-visible Medicard identifier.
// Format follows the historical scheme: MED + epoch millis + 3 random digits.
func GenerateMedicardID() string {
	return fmt.Sprintf("MED%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
