package middlewares

import (
	"strconv"
	"time"

	"socio_verify_api/metrics"
	"socio_verify_api/tools"
	"socio_verify_api/types"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
)

// RequestLoggingMiddleware records the latency of every request and logs it.
// Errors are logged by the handlers themselves.
func RequestLoggingMiddleware(logger tools.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.ObserveLatency(route, c.Request.Method, status, latency.Seconds())

		logger.Log(logging.Entry{
			Severity: logging.Debug,
			Payload:  c.Request.Method + " " + c.Request.URL.Path,
			Labels: map[string]string{
				"route":     route,
				"status":    status,
				"latency":   latency.String(),
				"requestId": c.GetString(types.REQUEST_ID_CONTEXT_KEY),
			},
		})
	}
}
