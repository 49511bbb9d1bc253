package middleware

import (
	"strconv"
	"time"

	"guesthouse/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request latency by route template, so /rooms/3 and
// /rooms/4 share a series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
