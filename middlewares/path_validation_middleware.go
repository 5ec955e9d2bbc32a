package middlewares

import (
	"net/http"

	"socio_verify_api/content"
	"socio_verify_api/tools"
	"socio_verify_api/types"

	"github.com/gin-gonic/gin"
)

// Validate the :id path parameter, a 40 character hex verification id
func VerificationIdParamMiddleware(logger tools.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !types.VerificationIdPattern.MatchString(c.Param("id")) {
			tools.LogError(logger, c, http.StatusBadRequest, "invalid verification id", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Validate the :cid path parameter before anything is fetched for it
func CidParamMiddleware(logger tools.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := content.ParseCid(c.Param("cid")); err != nil {
			tools.LogError(logger, c, http.StatusBadRequest, "invalid cid", err)
			c.Abort()
			return
		}
		c.Next()
	}
}
