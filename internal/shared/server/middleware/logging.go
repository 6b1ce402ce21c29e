package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"healthtrack-backend/internal/shared/metrics"
	"healthtrack-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), status, latency.Seconds())

		userID, _ := c.Get(userIDKey)
		documentID, _ := c.Get("documentId")
		analysisKind, _ := c.Get("analysisKind")

		telemetry.Info("request.complete", map[string]any{
			"request_id":    reqID,
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"status":        status,
			"duration_ms":   float64(latency.Microseconds()) / 1000.0,
			"user_id":       userID,
			"document_id":   documentID,
			"analysis_kind": analysisKind,
			"client_ip":     c.ClientIP(),
			"user_agent":    c.Request.UserAgent(),
		})
	}
}
