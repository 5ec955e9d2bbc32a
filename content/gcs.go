package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"socio_verify_api/tools"
	"socio_verify_api/types"

	"cloud.google.com/go/storage"
)

// GCSGateway reads pinned objects mirrored into a bucket, named
// <prefix><cid>.
type GCSGateway struct {
	storage   *storage.Client
	bucket    string
	prefix    string
	mediaBase string
}

// NewGCSGateway builds a gateway over bucket. Media URLs point at mediaBase
// when set, otherwise at the public storage.googleapis.com endpoint.
func NewGCSGateway(client *storage.Client, bucket, prefix, mediaBase string) *GCSGateway {
	return &GCSGateway{
		storage:   client,
		bucket:    bucket,
		prefix:    prefix,
		mediaBase: strings.TrimRight(mediaBase, "/"),
	}
}

func (g *GCSGateway) FetchContent(ctx context.Context, cid string) (*types.Content, error) {
	rc, _, err := g.open(ctx, cid)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return decodeContent(rc)
}

func (g *GCSGateway) FetchMedia(ctx context.Context, cid string) (io.ReadCloser, string, error) {
	return g.open(ctx, cid)
}

func (g *GCSGateway) MediaURL(cid string) string {
	if g.mediaBase != "" {
		return g.mediaBase + "/" + cid
	}
	return "https://storage.googleapis.com/" + g.bucket + "/" + url.PathEscape(g.objectName(cid))
}

func (g *GCSGateway) objectName(cid string) string {
	return g.prefix + cid
}

func (g *GCSGateway) open(ctx context.Context, cid string) (io.ReadCloser, string, error) {
	if _, err := ParseCid(cid); err != nil {
		return nil, "", err
	}

	rc, err := tools.GetObjectFromStorage(ctx, g.storage, g.bucket, g.objectName(cid))
	if errors.Is(err, tools.ErrObjectNotExist) {
		return nil, "", fmt.Errorf("%w: gs://%s/%s", ErrNotFound, g.bucket, g.objectName(cid))
	}
	if err != nil {
		return nil, "", fmt.Errorf("content: open gs://%s/%s: %w", g.bucket, g.objectName(cid), err)
	}

	contentType := ""
	if r, ok := rc.(*storage.Reader); ok {
		contentType = r.Attrs.ContentType
	}
	return rc, contentType, nil
}
