package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sid-client/internal/common"
)

// RequestIDHeader carries the request correlation id
const RequestIDHeader = "X-Request-ID"

// LoggingMiddleware logs every request with its latency and attaches a
// request scoped logger to the request context
func LoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		reqLogger := logger.With("requestID", requestID)
		c.Request = c.Request.WithContext(common.ContextWithLogger(c.Request.Context(), reqLogger))

		c.Next()

		reqLogger.Debug("request served",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(startTime))
	}
}
