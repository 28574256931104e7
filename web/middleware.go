package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kilianp07/socest/core/monitoring"
	"github.com/kilianp07/socest/infra/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the id assigned by the request id middleware.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err := fmt.Errorf("panic: %v", recovered)
		log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		monitoring.CaptureException(err, map[string]string{
			"path":       c.Request.URL.Path,
			"request_id": RequestIDFrom(c),
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	})
}

func accessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// other handlers can change c.Request.URL.Path
		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		fields := map[string]any{
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"method":     c.Request.Method,
			"path":       path,
			"size":       max(c.Writer.Size(), 0),
			"request_id": RequestIDFrom(c),
		}
		switch {
		case len(c.Errors) > 0:
			log.Errorf("%s %s %d: %s", c.Request.Method, path, status, c.Errors.ByType(gin.ErrorTypePrivate).String())
		case status >= http.StatusInternalServerError:
			log.Errorf("%s %s %d", c.Request.Method, path, status)
		case status >= http.StatusBadRequest:
			log.Warnf("%s %s %d", c.Request.Method, path, status)
		default:
			log.Debugw("request", fields)
		}
	}
}
