package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"safetybot/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags every request/response pair with an id for log
// correlation, minting one when the client did not send one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// MetricsMiddleware counts requests and responses per route pattern.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHttpRequest(c.Request.Method, path)
		c.Next()
		metrics.RecordHttpResponse(c.Request.Method, path, c.Writer.Status())
	}
}
