package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID_IsUUID(t *testing.T) {
	id := GenerateID()
	assert.True(t, IsValidUUID(id))
}

func TestGenerateRequestID_HasPrefix(t *testing.T) {
	id := GenerateRequestID()
	assert.Regexp(t, `^REQ-[0-9a-f-]{36}$`, id)
}

func TestGenerateRuleID_HasPrefix(t *testing.T) {
	id := GenerateRuleID()
	assert.Regexp(t, `^RULE-[0-9a-f-]{36}$`, id)
}

func TestGenerateMedicardID_FormatAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		id := GenerateMedicardID()
		assert.NoError(t, ValidateMedicardID(id))
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestValidateMedicardID(t *testing.T) {
	assert.NoError(t, ValidateMedicardID("MED1700000000000042"))
	assert.Error(t, ValidateMedicardID(""))
	assert.Error(t, ValidateMedicardID("MED"))
	assert.Error(t, ValidateMedicardID("med123"))
	assert.Error(t, ValidateMedicardID("PAT123"))
	assert.Error(t, ValidateMedicardID("MED12a3"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("jane@example.com"))
	assert.Error(t, ValidateEmail("jane@"))
	assert.Error(t, ValidateEmail(""))
}

func TestSanitizeString_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "Jane Perera", SanitizeString("  Jane Perera\n"))
}

func TestIsExpired(t *testing.T) {
	assert.True(t, IsExpired(time.Now().Add(-time.Minute).UnixMilli()))
	assert.False(t, IsExpired(time.Now().Add(time.Minute).UnixMilli()))
	assert.False(t, IsExpired(0))
}

func TestDaysFromNow(t *testing.T) {
	now := GetCurrentTimeMillis()
	in7 := DaysFromNow(7)

	assert.Greater(t, in7, now)
	assert.InDelta(t, 7*24*time.Hour.Milliseconds(), in7-now, 1000)
}

func TestMillisRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Millisecond)
	assert.Equal(t, now.UnixMilli(), TimeToMillis(MillisToTime(now.UnixMilli())))
}
