package handlers

import (
	"context"
	"net/http"
	"strconv"

	"socio_verify_api/presentation"
	"socio_verify_api/tools"
	"socio_verify_api/types"
	"socio_verify_api/verification"

	"github.com/gin-gonic/gin"
)

type PostLookup interface {
	Lookup(ctx context.Context, verificationId string) (verification.LookupResult, error)
}

type ViewRenderer interface {
	Render(ctx context.Context, post *types.Post, content *types.Content, opts presentation.Options) presentation.View
}

func GetPostHandler(logger tools.Logger, lookup PostLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := lookup.Lookup(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondVerificationError(logger, c, err)
			return
		}

		found, ok := result.(verification.Found)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"post":    found.Post,
			"content": found.Content,
		})
	}
}

// GetPostViewHandler is the lookup followed by presentation. Query params
// standalone and expanded select the truncation mode.
func GetPostViewHandler(logger tools.Logger, lookup PostLookup, renderer ViewRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		standalone, err := queryBool(c, "standalone")
		if err != nil {
			tools.LogError(logger, c, http.StatusBadRequest, "invalid standalone", err)
			return
		}
		expanded, err := queryBool(c, "expanded")
		if err != nil {
			tools.LogError(logger, c, http.StatusBadRequest, "invalid expanded", err)
			return
		}

		result, err := lookup.Lookup(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondVerificationError(logger, c, err)
			return
		}

		found, ok := result.(verification.Found)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}

		view := renderer.Render(c.Request.Context(), found.Post, found.Content, presentation.Options{
			Standalone: standalone,
			Expanded:   expanded,
		})
		c.JSON(http.StatusOK, gin.H{"success": true, "view": view})
	}
}

func queryBool(c *gin.Context, key string) (bool, error) {
	value, ok := c.GetQuery(key)
	if !ok || value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}
