package models

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverity_Rank(t *testing.T) {
	assert.Equal(t, 1, SeverityMild.Rank())
	assert.Equal(t, 2, SeverityModerate.Rank())
	assert.Equal(t, 3, SeveritySevere.Rank())
	assert.Equal(t, 4, SeverityCritical.Rank())
	assert.Equal(t, 0, Severity("Unknown").Rank())
}

func TestHTTPStatusForErrorCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatusForErrorCode(ErrCodeBadRequest))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatusForErrorCode(ErrCodeUnauthorized))
	assert.Equal(t, http.StatusForbidden, HTTPStatusForErrorCode(ErrCodeForbidden))
	assert.Equal(t, http.StatusNotFound, HTTPStatusForErrorCode(ErrCodeNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatusForErrorCode(ErrCodeConflict))
	assert.Equal(t, http.StatusGone, HTTPStatusForErrorCode(ErrCodeRequestExpired))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatusForErrorCode(ErrCodeTooManyRequests))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForErrorCode("SOMETHING_ELSE"))
}
