package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"basegraph.app/backoffice/internal/metrics"
)

// Metrics counts requests by route template rather than raw path.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.Request(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
