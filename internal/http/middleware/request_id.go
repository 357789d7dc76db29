package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"basegraph.app/backoffice/common/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates the caller's request id, or assigns one, and tags
// every log line of the request with it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{RequestID: &requestID})
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}
