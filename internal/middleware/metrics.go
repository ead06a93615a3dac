package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/greenhouse-labs/catalog/pkg/metrics"
)

// Metrics records request counts and latency per matched route template.
// Unmatched requests are grouped under "unmatched".
func Metrics(store metrics.MetricsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		store.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
