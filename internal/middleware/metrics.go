package middleware

import (
	"strconv"
	"time"

	"prodplan/internal/infra"

	"github.com/gin-gonic/gin"
)

// Metrics records request latency by matched route template, so /v1/plans/:id
// is one series no matter how many plans exist.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		infra.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, routeOf(c), strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
