package database

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(26) PRIMARY KEY,
		username VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(100) NOT NULL,
		avatar TEXT NOT NULL DEFAULT '',
		post_ids TEXT[] NOT NULL DEFAULT '{}',
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS follows (
		follower_id VARCHAR(26) NOT NULL REFERENCES users(id),
		following_id VARCHAR(26) NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (follower_id, following_id)
	)`,
	`CREATE INDEX IF NOT EXISTS follows_following_idx ON follows (following_id)`,
	`CREATE TABLE IF NOT EXISTS posts (
		seq BIGSERIAL UNIQUE,
		id VARCHAR(26) PRIMARY KEY,
		poster_id VARCHAR(26) NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		comment_ids TEXT[] NOT NULL DEFAULT '{}',
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS posts_poster_idx ON posts (poster_id)`,
	`CREATE INDEX IF NOT EXISTS posts_created_idx ON posts (created_at)`,
	`CREATE TABLE IF NOT EXISTS post_likes (
		post_id VARCHAR(26) NOT NULL REFERENCES posts(id),
		user_id VARCHAR(26) NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (post_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS post_likes_user_idx ON post_likes (user_id)`,
	`CREATE TABLE IF NOT EXISTS comments (
		seq BIGSERIAL UNIQUE,
		id VARCHAR(26) PRIMARY KEY,
		commenter_id VARCHAR(26) NOT NULL REFERENCES users(id),
		post_id VARCHAR(26) NOT NULL REFERENCES posts(id),
		content TEXT NOT NULL,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS comments_post_idx ON comments (post_id)`,
	`CREATE TABLE IF NOT EXISTS comment_likes (
		comment_id VARCHAR(26) NOT NULL REFERENCES comments(id),
		user_id VARCHAR(26) NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (comment_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS comment_likes_user_idx ON comment_likes (user_id)`,
}

// Migrate creates the schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, stmt := range migrations {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return tx.Commit()
}
