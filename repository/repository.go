// Package repository defines the persistence contracts the services depend on.
package repository

import (
	"context"
	"errors"
	"time"

	"masterboxer.com/project-social-blog/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store groups the repositories. RunInTx scopes every write made through
// the tx Store to one transaction; fn's error rolls it back.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Comments() CommentRepository
	RunInTx(ctx context.Context, fn func(tx Store) error) error
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	// Get returns the user even when soft-deleted.
	Get(ctx context.Context, id string) (*models.User, error)
	GetForUpdate(ctx context.Context, id string) (*models.User, error)
	// GetByEmail only returns non-deleted users.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetMany returns the users found among ids, deleted ones included.
	GetMany(ctx context.Context, ids []string) (map[string]*models.User, error)
	UpdateProfile(ctx context.Context, u *models.User) error
	SoftDelete(ctx context.Context, id string, at time.Time) error

	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	// ListFollowedBy pages through the non-deleted users whose followers
	// contain followerID, ordered by id.
	ListFollowedBy(ctx context.Context, followerID string, skip, limit int) ([]*models.User, int, error)

	AppendPost(ctx context.Context, userID, postID string) error
	RemovePost(ctx context.Context, userID, postID string) error
}

// PostFilter selects posts. A nil PosterIDs matches every poster, an empty
// non-nil one matches none.
type PostFilter struct {
	PosterIDs      []string
	Query          string
	IncludeDeleted bool
	Sort           SortOrder
}

type SortOrder int

const (
	// SortStorage is insertion order.
	SortStorage SortOrder = iota
	SortNewest
	SortOldest
)

type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	// Get returns the post even when soft-deleted.
	Get(ctx context.Context, id string) (*models.Post, error)
	GetForUpdate(ctx context.Context, id string) (*models.Post, error)
	// Count is the total number of posts ever created, deleted included.
	Count(ctx context.Context) (int, error)
	Find(ctx context.Context, f PostFilter, skip, limit int) ([]*models.Post, int, error)
	UpdateContent(ctx context.Context, id, content string, at time.Time) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	SoftDeleteByPoster(ctx context.Context, posterID string, at time.Time) error

	AppendComment(ctx context.Context, postID, commentID string) error
	RemoveComment(ctx context.Context, postID, commentID string) error

	// AddLike and RemoveLike update both the post's likes and the
	// user's post likes.
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
}

type CommentFilter struct {
	PostID         string
	IncludeDeleted bool
}

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	Get(ctx context.Context, id string) (*models.Comment, error)
	GetForUpdate(ctx context.Context, id string) (*models.Comment, error)
	Find(ctx context.Context, f CommentFilter, skip, limit int) ([]*models.Comment, int, error)
	UpdateContent(ctx context.Context, id, content string, at time.Time) error
	SoftDelete(ctx context.Context, id string, at time.Time) error

	AddLike(ctx context.Context, commentID, userID string) error
	RemoveLike(ctx context.Context, commentID, userID string) error
}
