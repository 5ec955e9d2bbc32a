package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"socio_verify_api/types"
)

// IPFSGateway reads from an HTTP gateway such as Pinata, addressing objects
// as <base>/<cid>.
type IPFSGateway struct {
	contentBase string
	mediaBase   string
	client      *http.Client
}

func NewIPFSGateway(contentBase, mediaBase string, timeout time.Duration) *IPFSGateway {
	if mediaBase == "" {
		mediaBase = contentBase
	}
	return &IPFSGateway{
		contentBase: strings.TrimRight(contentBase, "/"),
		mediaBase:   strings.TrimRight(mediaBase, "/"),
		client:      &http.Client{Timeout: timeout},
	}
}

func (g *IPFSGateway) FetchContent(ctx context.Context, cid string) (*types.Content, error) {
	if _, err := ParseCid(cid); err != nil {
		return nil, err
	}

	body, _, err := g.get(ctx, g.contentBase+"/"+cid, "application/json")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return decodeContent(body)
}

func (g *IPFSGateway) FetchMedia(ctx context.Context, cid string) (io.ReadCloser, string, error) {
	if _, err := ParseCid(cid); err != nil {
		return nil, "", err
	}
	return g.get(ctx, g.MediaURL(cid), "")
}

func (g *IPFSGateway) MediaURL(cid string) string {
	return g.mediaBase + "/" + cid
}

func (g *IPFSGateway) get(ctx context.Context, url, accept string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("content: build request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("content: get %s: %w", url, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, "", fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, "", fmt.Errorf("content: get %s: unexpected status %d", url, resp.StatusCode)
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}
