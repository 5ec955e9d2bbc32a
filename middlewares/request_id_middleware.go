package middlewares

import (
	"socio_verify_api/tools"
	"socio_verify_api/types"

	"github.com/gin-gonic/gin"
)

// RequestIdMiddleware reuses the caller's X-Request-ID or assigns a new one,
// and echoes it on the response.
func RequestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(types.REQUEST_ID_HEADER)
		if requestId == "" || len(requestId) > 128 {
			requestId = tools.GenerateRequestId()
		}

		c.Set(types.REQUEST_ID_CONTEXT_KEY, requestId)
		c.Header(types.REQUEST_ID_HEADER, requestId)
		c.Next()
	}
}
