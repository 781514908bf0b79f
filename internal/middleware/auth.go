package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medicard/patient-record-api/internal/auth"
	"github.com/medicard/patient-record-api/internal/utils"
)

// JWTAuth verifies the bearer token and stores the caller's identity on the
// gin context for handlers to read.
func JWTAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.SendUnauthorizedError(c, "Authorization header is required")
			c.Abort()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			utils.SendUnauthorizedError(c, "Authorization header must be a bearer token")
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(jwtSecret, tokenString)
		if err != nil {
			utils.SendUnauthorizedError(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(utils.ContextKeyUserID, claims.Subject)
		c.Set(utils.ContextKeyRole, claims.Role)
		if claims.MedicardID != "" {
			c.Set(utils.ContextKeyMedicardID, claims.MedicardID)
		}
		if claims.HospitalName != "" {
			c.Set(utils.ContextKeyHospitalName, claims.HospitalName)
		}

		c.Next()
	}
}

// RequireRole rejects authenticated callers whose role does not match
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.GetRoleFromContext(c) != role {
			utils.SendForbiddenError(c, "Insufficient permissions for this resource")
			c.Abort()
			return
		}
		c.Next()
	}
}
