package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/elimufine/elimu-backend/internal/metrics"
)

// RequestMetrics counts served requests by matched route template.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}
