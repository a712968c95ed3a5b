package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// requestID reuses the caller's X-Request-Id or generates one, echoes it back
// and stores it in the request context for logging.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// requestLogger logs each request at a level chosen by its status. Health
// checks are skipped.
func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
			"client", c.ClientIP(),
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			l.Error(ctx, "request completed", args...)
		case status >= http.StatusBadRequest:
			l.Warn(ctx, "request completed", args...)
		default:
			l.Info(ctx, "request completed", args...)
		}
	}
}

// recovery turns a handler panic into a 500 envelope.
func recovery(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				l.Error(c.Request.Context(), "panic recovered", "panic", fmt.Sprint(r), "path", c.Request.URL.Path)
				abort(c, http.StatusInternalServerError, msgInternal)
			}
		}()
		c.Next()
	}
}
