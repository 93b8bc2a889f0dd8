package middleware

import (
	"net/http"
	"time"

	"prodplan/internal/apierror"
	"prodplan/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler answers 500 for errors handlers attached with c.Error
// instead of writing a response. The cause is logged, never returned.
// When the handler already wrote a status, only the log entry is kept.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		route := routeOf(c)
		log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("route", route).
			Str("method", c.Request.Method).
			Str("actor", Actor(c)).
			Err(err.Err).
			Msg("unhandled error")

		if c.Writer.Written() {
			return
		}
		infra.UnhandledErrors.WithLabelValues(route, "error").Inc()
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

// Recovery converts a panic into a 500 with a generic body.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				route := routeOf(c)
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("route", route).
					Interface("panic", r).
					Msg("panic recovered")
				infra.UnhandledErrors.WithLabelValues(route, "panic").Inc()
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Internal server error"))
			}
		}()
		c.Next()
	}
}

// routeOf is the matched route pattern, or "unmatched" for 404s, so metric
// labels stay bounded.
func routeOf(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return "unmatched"
}

// Logger logs each request with method, path, status, latency, and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
