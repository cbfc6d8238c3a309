package logger

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// LogHTTPError logs an error raised while serving an HTTP request, enriched
// with request metadata so log lines can be correlated with traces.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	log := GetLogger()

	fields := []interface{}{
		"error", err,
		"status_code", statusCode,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"client_ip", c.ClientIP(),
		"headers", filterSensitiveHeaders(c.Request.Header),
	}

	if requestID := c.GetString("request_id"); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if userID := c.GetString("user_id"); userID != "" {
		fields = append(fields, "user_id", userID)
	}

	log.Errorw(message, fields...)
}

// filterSensitiveHeaders strips credentials-bearing headers before logging.
func filterSensitiveHeaders(headers map[string][]string) map[string]string {
	filtered := make(map[string]string, len(headers))
	for k, v := range headers {
		switch strings.ToLower(k) {
		case "authorization", "cookie", "apikey":
			filtered[k] = "[REDACTED]"
		default:
			filtered[k] = strings.Join(v, ",")
		}
	}
	return filtered
}
