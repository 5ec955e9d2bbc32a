package tools

import (
	"net/http"
	"strconv"

	"socio_verify_api/types"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
)

// LogError answers the request with {"error": message}. Server errors are
// logged as faults with the underlying cause; client errors are only noted.
func LogError(logger Logger, c *gin.Context, status int, message string, err error) {
	severity := logging.Info
	if status >= http.StatusInternalServerError {
		severity = logging.Error
	}

	labels := map[string]string{
		"status": strconv.Itoa(status),
		"path":   c.FullPath(),
	}
	if requestId := c.GetString(types.REQUEST_ID_CONTEXT_KEY); requestId != "" {
		labels["requestId"] = requestId
	}
	if kind := c.GetString(types.ERROR_KIND_CONTEXT_KEY); kind != "" {
		labels["kind"] = kind
	}
	payload := message
	if err != nil {
		labels["error"] = err.Error()
		payload = message + ": " + err.Error()
	}

	logger.Log(logging.Entry{
		Severity: severity,
		Payload:  payload,
		Labels:   labels,
	})

	c.JSON(status, gin.H{
		"error": message,
	})
}
