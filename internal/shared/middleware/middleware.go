package middleware

import (
	"strings"
	"time"

	"busbook/internal/upstream"
	"busbook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID attaches a request id to the context and response headers
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestLogger logs each request through the shared logger
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.LogHTTPRequest(c, time.Since(start))
	}
}

// BearerToken lifts the Authorization bearer token into the request context
// so upstream calls carry it through. The token is opaque here; the booking
// backend owns its validation.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				ctx := upstream.ContextWithToken(c.Request.Context(), parts[1])
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}
