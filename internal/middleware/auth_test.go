package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicard/patient-record-api/internal/auth"
	"github.com/medicard/patient-record-api/internal/utils"
)

const testSecret = "test-secret-0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(secret, requiredRole string) *gin.Engine {
	router := gin.New()
	group := router.Group("/protected", JWTAuth(secret))
	if requiredRole != "" {
		group.Use(RequireRole(requiredRole))
	}
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": utils.GetUserIDFromContext(c),
			"role":   utils.GetRoleFromContext(c),
		})
	})
	return router
}

func patientToken(t *testing.T, secret string, validity time.Duration) string {
	t.Helper()
	token, err := auth.NewToken(secret, validity, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "pat-001"},
		Role:             auth.RolePatient,
		MedicardID:       "MED123",
	})
	require.NoError(t, err)
	return token
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := newProtectedRouter(testSecret, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	router := newProtectedRouter(testSecret, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	router := newProtectedRouter(testSecret, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken(t, "some-other-secret", time.Hour))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	router := newProtectedRouter(testSecret, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken(t, testSecret, -time.Minute))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidTokenSetsContext(t *testing.T) {
	router := newProtectedRouter(testSecret, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken(t, testSecret, time.Hour))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pat-001")
	assert.Contains(t, w.Body.String(), auth.RolePatient)
}

func TestRequireRole_RejectsWrongRole(t *testing.T) {
	router := newProtectedRouter(testSecret, auth.RoleHospital)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken(t, testSecret, time.Hour))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	router := newProtectedRouter(testSecret, auth.RolePatient)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+patientToken(t, testSecret, time.Hour))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCorrelationID_GeneratesAndEchoes(t *testing.T) {
	router := gin.New()
	router.Use(CorrelationID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
}

func TestCorrelationID_PropagatesIncoming(t *testing.T) {
	router := gin.New()
	router.Use(CorrelationID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "corr-42")
	router.ServeHTTP(w, req)

	assert.Equal(t, "corr-42", w.Header().Get("X-Correlation-ID"))
}

func TestRateLimiter_RejectsWhenBucketEmpty(t *testing.T) {
	// Capacity one and a negligible refill rate: the second request must fail.
	limiter := NewRateLimiter(0.0001, 1)

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
