package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medicard/patient-record-api/internal/metrics"
)

// Metrics records request counts, latency, and in-flight gauge per route.
// The route template (not the raw path) is used as the path label so patient
// and request IDs do not explode the cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestInFlight.Inc()

		c.Next()

		metrics.HTTPRequestInFlight.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestTotals.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
