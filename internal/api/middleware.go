package api

import (
	"log/slog"
	"time"

	"gorestaurant/internal/logger"

	"github.com/gin-gonic/gin"
)

const requestIDKey = "request_id"

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// requestMiddleware tags each request with an id, logs it and records its metrics
func (s *Server) requestMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = logger.GenerateRequestID()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		s.metrics.ObserveRequest(c.Request.Method, route, status, elapsed)
		s.log.Debug("http_request", id, "Request served",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("elapsed", elapsed),
		)
	}
}
