// Package content fetches post payloads and media from content-addressed
// storage, either an IPFS HTTP gateway or a GCS bucket mirroring it.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"socio_verify_api/types"

	"github.com/ipfs/go-cid"
)

var (
	ErrNotFound   = errors.New("content: not found")
	ErrInvalidCID = errors.New("content: invalid cid")
)

// Payloads above this size are rejected rather than decoded.
const maxPayloadBytes = 4 << 20

type Gateway interface {
	FetchContent(ctx context.Context, cid string) (*types.Content, error)
	// FetchMedia streams a media file. The caller closes the reader.
	FetchMedia(ctx context.Context, cid string) (io.ReadCloser, string, error)
	MediaURL(cid string) string
}

// ParseCid accepts CIDv0 ("Qm...") and CIDv1 strings.
func ParseCid(s string) (cid.Cid, error) {
	c, err := cid.Decode(s)
	if err != nil {
		return cid.Undef, fmt.Errorf("%w: %q: %v", ErrInvalidCID, s, err)
	}
	return c, nil
}

func decodeContent(r io.Reader) (*types.Content, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("content: read payload: %w", err)
	}
	if len(data) > maxPayloadBytes {
		return nil, fmt.Errorf("content: payload exceeds %d bytes", maxPayloadBytes)
	}

	var payload types.Content
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("content: decode payload: %w", err)
	}
	return &payload, nil
}
