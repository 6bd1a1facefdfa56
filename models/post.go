package models

import "time"

type Post struct {
	ID        string    `json:"id"`
	PosterID  string    `json:"poster_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Comments  []string  `json:"comments"`
	Likes     IDSet     `json:"likes"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Post) Clone() *Post {
	c := *p
	c.Likes = p.Likes.Clone()
	c.Comments = append([]string(nil), p.Comments...)
	return &c
}

// PostView is the projection returned by every post read path. Content is
// set for single-post reads and search, ShortContent for the feed only.
type PostView struct {
	ID                      string      `json:"id"`
	Title                   string      `json:"title"`
	Content                 string      `json:"content,omitempty"`
	ShortContent            string      `json:"short_content,omitempty"`
	Poster                  UserSummary `json:"poster"`
	CommentsCount           int         `json:"comments_count"`
	LikesCount              int         `json:"likes_count"`
	IsLikedByAuthorizedUser bool        `json:"is_liked_by_authorized_user"`
	IsPoster                bool        `json:"is_poster,omitempty"`
	IsDeleted               bool        `json:"is_deleted,omitempty"`
	CreatedAt               time.Time   `json:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at"`
}

// PostRef is the short post summary embedded in comment views.
type PostRef struct {
	ID                      string    `json:"id"`
	Title                   string    `json:"title"`
	CommentsCount           int       `json:"comments_count"`
	LikesCount              int       `json:"likes_count"`
	IsLikedByAuthorizedUser bool      `json:"is_liked_by_authorized_user"`
	CreatedAt               time.Time `json:"created_at"`
}
