package audit

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func InjectRecorderMiddleware(r *Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r != nil && c.Request != nil {
			c.Request = c.Request.WithContext(WithRecorder(c.Request.Context(), r))
		}
		c.Next()
	}
}

// WriteAuditMiddleware records mutating API calls after they complete.
func WriteAuditMiddleware(r *Recorder, logger *zap.Logger) gin.HandlerFunc {
	if r == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		method := strings.ToUpper(c.Request.Method)
		if !strings.HasPrefix(path, "/api/") {
			return
		}
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			return
		}

		r.Record(c.Request.Context(), Entry{
			Action:   "http_write",
			Level:    levelFromStatus(c.Writer.Status()),
			Method:   method,
			Path:     path,
			Status:   c.Writer.Status(),
			Duration: time.Since(start),
		})
	}
}

// LogBestEffort lets handlers attach a named action to the audit trail.
func LogBestEffort(c *gin.Context, action, level string, details map[string]any) {
	if c == nil || c.Request == nil {
		return
	}
	r := RecorderFromContext(c.Request.Context())
	if r == nil {
		return
	}
	r.Record(c.Request.Context(), Entry{
		Action:  action,
		Level:   level,
		Method:  strings.ToUpper(c.Request.Method),
		Path:    c.Request.URL.Path,
		Status:  c.Writer.Status(),
		Details: details,
	})
}

func levelFromStatus(status int) string {
	if status >= 500 {
		return "error"
	}
	if status >= 400 {
		return "warn"
	}
	return "info"
}
