package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"socio_verify_api/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectPostByVerificationId = `
SELECT p.id, p.signature, p.verification_id, p.cid, p.created_at, p.replying_to,
       u.id, u.address, u.username, u.name, u.bio, u.email, u.profile_picture, u.website, u.created_at
FROM posts p
JOIN users u ON u.id = p.creator_id
WHERE p.verification_id = $1
LIMIT 1`

type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresPool creates a connection pool for the posts database.
func NewPostgresPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("store: parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 20
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store: connect postgres: %w", err)
	}
	return pool, nil
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) FindByVerificationId(ctx context.Context, id string) (*types.Post, error) {
	row := s.pool.QueryRow(ctx, selectPostByVerificationId, id)

	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: query post: %w", err)
	}
	return post, nil
}

func scanPost(row pgx.Row) (*types.Post, error) {
	var (
		post       types.Post
		replyingTo []byte
		name       *string
		bio        *string
		email      *string
		picture    *string
		website    *string
		joined     time.Time
	)

	err := row.Scan(
		&post.Id, &post.Signature, &post.VerificationId, &post.Cid, &post.Timestamp, &replyingTo,
		&post.Creator.Id, &post.Creator.Address, &post.Creator.Username,
		&name, &bio, &email, &picture, &website, &joined,
	)
	if err != nil {
		return nil, err
	}

	post.Creator.Name = deref(name)
	post.Creator.Bio = deref(bio)
	post.Creator.Email = deref(email)
	post.Creator.ProfilePicture = deref(picture)
	post.Creator.Website = deref(website)
	post.Creator.Timestamp = joined

	if len(replyingTo) > 0 {
		if err := json.Unmarshal(replyingTo, &post.ReplyingTo); err != nil {
			return nil, fmt.Errorf("decode replying_to: %w", err)
		}
	}
	return &post, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
