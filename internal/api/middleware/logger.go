package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	applog "goal-forecast/internal/log"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID reuses the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Logger logs one line per request with method, path, status and duration.
func Logger(logger *applog.Logger) gin.HandlerFunc {
	log := logger.WithComponent(applog.ComponentHTTP)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := applog.NewFields().
			WithHTTP(c.Request.Method, c.Request.URL.Path, status, time.Since(start).Milliseconds())
		fields[applog.FieldClientIP] = c.ClientIP()
		if id := c.GetString(RequestIDKey); id != "" {
			fields[applog.FieldRequestID] = id
		}
		if len(c.Errors) > 0 {
			fields[applog.FieldError] = c.Errors.String()
		}

		switch {
		case status >= 500:
			log.ErrorContext(c.Request.Context(), "request failed", fields.ToSlice()...)
		case status >= 400:
			log.WarnContext(c.Request.Context(), "request rejected", fields.ToSlice()...)
		default:
			log.InfoContext(c.Request.Context(), "request handled", fields.ToSlice()...)
		}
	}
}
