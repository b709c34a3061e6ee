package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requestIDKey is the key used to store the request ID in context
type requestIDKey struct{}

// RequestID ensures every request has a stable request ID.
// - Reads X-Request-Id header if present
// - Otherwise generates a new one
// - Stores it in both Gin context and standard context as "request_id"
// - Echoes it back in response header X-Request-Id
// - Logs request details (method, path, status, latency)
func RequestID(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-Id")
		if strings.TrimSpace(rid) == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)

		ctx := context.WithValue(c.Request.Context(), requestIDKey{}, rid)
		c.Request = c.Request.WithContext(ctx)

		c.Writer.Header().Set("X-Request-Id", rid)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("id", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// GetRequestID extracts the request ID from a standard context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}
