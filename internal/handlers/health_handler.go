package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medicard/patient-record-api/internal/database"
)

// HealthHandler reports service liveness including database connectivity
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.db.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
