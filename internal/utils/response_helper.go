package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medicard/patient-record-api/internal/models"
)

// SendSuccessResponse sends a successful JSON response
func SendSuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendErrorResponse sends an error JSON response
func SendErrorResponse(c *gin.Context, statusCode int, errCode, message, details string) {
	c.JSON(statusCode, models.ErrorResponse{
		Code:    errCode,
		Message: message,
		Details: details,
	})
}

// SendCreatedResponse sends a 201 Created response
func SendCreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendOKResponse sends a 200 OK response
func SendOKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendBadRequestError sends a 400 Bad Request error
func SendBadRequestError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeBadRequest, message, details)
}

// SendValidationError sends a validation error response
func SendValidationError(c *gin.Context, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeValidationError, "Validation failed", details)
}

// SendUnauthorizedError sends a 401 Unauthorized error
func SendUnauthorizedError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusUnauthorized, models.ErrCodeUnauthorized, message, "")
}

// SendForbiddenError sends a 403 Forbidden error
func SendForbiddenError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusForbidden, models.ErrCodeForbidden, message, "")
}

// SendNotFoundError sends a 404 Not Found error
func SendNotFoundError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusNotFound, models.ErrCodeNotFound, message, "")
}

// SendConflictError sends a 409 Conflict error
func SendConflictError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusConflict, models.ErrCodeConflict, message, "")
}

// SendGoneError sends a 410 Gone error
func SendGoneError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusGone, models.ErrCodeRequestExpired, message, "")
}

// SendTooManyRequestsError sends a 429 Too Many Requests error
func SendTooManyRequestsError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusTooManyRequests, models.ErrCodeTooManyRequests, message, "")
}

// SendInternalServerError sends a 500 Internal Server Error
func SendInternalServerError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusInternalServerError, models.ErrCodeInternalError, message, details)
}

// Context keys set by the authentication middleware
const (
	ContextKeyUserID       = "userID"
	ContextKeyRole         = "role"
	ContextKeyMedicardID   = "medicardID"
	ContextKeyHospitalName = "hospitalName"
)

// GetUserIDFromContext extracts the authenticated subject's internal ID
func GetUserIDFromContext(c *gin.Context) string {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return ""
	}
	return userID.(string)
}

// GetRoleFromContext extracts the authenticated subject's role
func GetRoleFromContext(c *gin.Context) string {
	role, exists := c.Get(ContextKeyRole)
	if !exists {
		return ""
	}
	return role.(string)
}

// GetMedicardIDFromContext extracts the patient's MediCard ID, empty for hospitals
func GetMedicardIDFromContext(c *gin.Context) string {
	medicardID, exists := c.Get(ContextKeyMedicardID)
	if !exists {
		return ""
	}
	return medicardID.(string)
}

// GetHospitalNameFromContext extracts the hospital's name, empty for patients
func GetHospitalNameFromContext(c *gin.Context) string {
	hospitalName, exists := c.Get(ContextKeyHospitalName)
	if !exists {
		return ""
	}
	return hospitalName.(string)
}
