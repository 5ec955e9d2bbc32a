package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"socio_verify_api/tools"
	"socio_verify_api/types"
	"socio_verify_api/verification"

	"github.com/gin-gonic/gin"
)

type Verifier interface {
	Verify(ctx context.Context, req types.VerificationRequest) (verification.VerifyResult, error)
}

func VerifyContentHandler(logger tools.Logger, verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// An empty body is an empty submission, reported as missing fields
		var req types.VerificationRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			tools.LogError(logger, c, http.StatusBadRequest, "invalid request body", err)
			return
		}

		result, err := verifier.Verify(c.Request.Context(), req)
		if err != nil {
			respondVerificationError(logger, c, err)
			return
		}

		switch r := result.(type) {
		case verification.Verified:
			c.JSON(http.StatusOK, gin.H{"success": true, "verificationId": r.VerificationId})
		default:
			c.JSON(http.StatusOK, gin.H{"success": false})
		}
	}
}

// respondVerificationError answers with the error's own status and message.
// The underlying cause is logged, never sent.
func respondVerificationError(logger tools.Logger, c *gin.Context, err error) {
	var verr *verification.Error
	if !errors.As(err, &verr) {
		tools.LogError(logger, c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.Set(types.ERROR_KIND_CONTEXT_KEY, string(verr.Kind))
	tools.LogError(logger, c, verr.Kind.Status(), verr.Message, verr.Err)
}
