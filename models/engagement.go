package models

import "time"

type Comment struct {
	ID          string    `json:"id"`
	CommenterID string    `json:"commenter_id"`
	PostID      string    `json:"post_id"`
	Content     string    `json:"content"`
	Likes       IDSet     `json:"likes"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Comment) Clone() *Comment {
	cc := *c
	cc.Likes = c.Likes.Clone()
	return &cc
}

type CommentView struct {
	ID                      string      `json:"id"`
	Content                 string      `json:"content"`
	LikesCount              int         `json:"likes_count"`
	Commenter               UserSummary `json:"commenter"`
	PostID                  string      `json:"post_id"`
	Post                    *PostRef    `json:"post,omitempty"`
	IsLikedByAuthorizedUser bool        `json:"is_liked_by_authorized_user"`
	IsCommenter             bool        `json:"is_commenter"`
	IsDeleted               bool        `json:"is_deleted,omitempty"`
	CreatedAt               time.Time   `json:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at"`
}

// EntityKind names a likeable entity type.
type EntityKind string

const (
	KindPost    EntityKind = "post"
	KindComment EntityKind = "comment"
)

// LikeStatus is the direction a like toggle took.
type LikeStatus string

const (
	LikeAdded   LikeStatus = "ADD"
	LikeRemoved LikeStatus = "REMOVE"
)

type LikeResult struct {
	Status LikeStatus `json:"status"`
}
