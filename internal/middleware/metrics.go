package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"smart-agriculture/internal/metrics"
)

// RequestMetrics records request counts and latency by route template.
// Unmatched routes are grouped under "unmatched".
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// MetricsHandler exposes the Prometheus registry.
func MetricsHandler(m *metrics.Metrics) gin.HandlerFunc {
	return gin.WrapH(m.Handler())
}
