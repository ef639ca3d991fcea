package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"gripinvest/internal/metrics"
)

// Metrics records request count and latency for every handled route.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		collector.RecordRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
