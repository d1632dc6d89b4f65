package middleware

import (
	"strconv"
	"time"

	"solana-token-tracker/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware tracks request counts and latency on the collector and,
// when prom is non-nil, on the Prometheus collectors keyed by route pattern.
func MetricsMiddleware(collector *metrics.MetricsCollector, prom *metrics.Prometheus) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		collector.RecordRequest()

		c.Next()

		duration := time.Since(startTime)
		status := c.Writer.Status()
		collector.RecordRequestComplete(duration, status < 400)

		if prom != nil {
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			labels := []string{c.Request.Method, route, strconv.Itoa(status)}
			prom.APIRequestTotal.WithLabelValues(labels...).Inc()
			prom.APIRequestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
		}
	}
}
