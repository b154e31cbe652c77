package middleware

import (
	"strconv"
	"time"

	"github.com/fruitstore/fruit-api/pkg/logger"
	"github.com/fruitstore/fruit-api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request and records it in the HTTP metrics.
// Routes are labelled by their pattern; unmatched paths share one label.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())
		logger.Infof("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, elapsed)
	}
}
