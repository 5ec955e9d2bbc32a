// Package store reads post records, joined with their creator, from the
// database the publishing app writes to. Nothing here writes.
package store

import (
	"context"
	"errors"

	"socio_verify_api/types"
)

var ErrNotFound = errors.New("store: post not found")

type PostStore interface {
	// FindByVerificationId returns the post registered under id with its
	// creator joined, or ErrNotFound.
	FindByVerificationId(ctx context.Context, id string) (*types.Post, error)
}
