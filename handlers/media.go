package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"socio_verify_api/content"
	"socio_verify_api/presentation"
	"socio_verify_api/tools"

	"github.com/gin-gonic/gin"
)

// Previews are only rendered for sources up to this size.
const maxPreviewSourceBytes = 5 << 20

// Content addressed media never changes under the same cid.
const immutableCacheControl = "public, max-age=31536000, immutable"

type MediaFetcher interface {
	FetchMedia(ctx context.Context, cid string) (io.ReadCloser, string, error)
}

func GetMediaHandler(logger tools.Logger, media MediaFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, contentType, ok := openMedia(logger, c, media)
		if !ok {
			return
		}
		defer rc.Close()

		headers := map[string]string{"Cache-Control": immutableCacheControl}
		contentType, inline := inlineMediaType(contentType)
		if !inline {
			headers["Content-Disposition"] = "attachment"
		}
		setMediaSecurityHeaders(c)
		c.DataFromReader(http.StatusOK, -1, contentType, rc, headers)
	}
}

// GetMediaPreviewHandler serves an image scaled to the display height with
// its EXIF orientation applied, as JPEG.
func GetMediaPreviewHandler(logger tools.Logger, media MediaFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, _, ok := openMedia(logger, c, media)
		if !ok {
			return
		}
		defer rc.Close()

		data, err := io.ReadAll(io.LimitReader(rc, maxPreviewSourceBytes+1))
		if err != nil {
			tools.LogError(logger, c, http.StatusBadGateway, "Failed to read media", err)
			return
		}
		if len(data) > maxPreviewSourceBytes {
			tools.LogError(logger, c, http.StatusRequestEntityTooLarge, "Media is too large to preview", nil)
			return
		}

		var buf bytes.Buffer
		err = tools.ResizeImageToHeight(logger, data, int(presentation.ImageDisplayHeight), &buf)
		if errors.Is(err, tools.ErrImageTooLarge) {
			tools.LogError(logger, c, http.StatusRequestEntityTooLarge, "Media is too large to preview", err)
			return
		}
		if err != nil {
			tools.LogError(logger, c, http.StatusUnsupportedMediaType, "Media is not a supported image", err)
			return
		}

		setMediaSecurityHeaders(c)
		c.Header("Cache-Control", immutableCacheControl)
		c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
	}
}

// inlineMediaType keeps image and video types and downgrades everything
// else, SVG included, to an opaque download.
func inlineMediaType(contentType string) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "application/octet-stream", false
	}
	if mediaType == "image/svg+xml" {
		return "application/octet-stream", false
	}
	if strings.HasPrefix(mediaType, "image/") || strings.HasPrefix(mediaType, "video/") {
		return mediaType, true
	}
	return "application/octet-stream", false
}

// Media is user supplied and served from the API origin.
func setMediaSecurityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Security-Policy", "sandbox")
}

func openMedia(logger tools.Logger, c *gin.Context, media MediaFetcher) (io.ReadCloser, string, bool) {
	cid := c.Param("cid")

	rc, contentType, err := media.FetchMedia(c.Request.Context(), cid)
	switch {
	case errors.Is(err, content.ErrNotFound):
		tools.LogError(logger, c, http.StatusNotFound, "Media not found", nil)
		return nil, "", false
	case errors.Is(err, content.ErrInvalidCID):
		tools.LogError(logger, c, http.StatusBadRequest, "invalid cid", nil)
		return nil, "", false
	case err != nil:
		tools.LogError(logger, c, http.StatusBadGateway, "Failed to fetch media", fmt.Errorf("media %s: %w", cid, err))
		return nil, "", false
	}
	return rc, contentType, true
}

// MediaPreviewPath is the route GetMediaPreviewHandler is mounted on.
func MediaPreviewPath(cid string) string {
	return "/api/media/" + cid + "/preview"
}
