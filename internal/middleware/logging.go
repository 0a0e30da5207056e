package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StructuredLoggingMiddleware provides structured logging with request latency and query parameters
func StructuredLoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		logger.Debug("request started",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("query_params", c.Request.URL.Query().Encode()),
			zap.String("remote_addr", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", statusCode),
			zap.Int64("latency_ms", latency.Milliseconds()),
			zap.Duration("latency", latency),
			zap.Int("bytes_written", c.Writer.Size()),
		}
		switch {
		case statusCode >= 500:
			logger.Error("request completed", fields...)
		case statusCode >= 400:
			logger.Warn("request completed", fields...)
		default:
			logger.Info("request completed", fields...)
		}

		for _, err := range c.Errors {
			logger.Error("request error",
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err.Err),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
	}
}
