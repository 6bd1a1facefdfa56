package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	Avatar       string    `json:"avatar"`
	Followers    IDSet     `json:"followers"`
	Following    IDSet     `json:"following"`
	Posts        []string  `json:"posts"`
	PostLikes    IDSet     `json:"post_likes"`
	CommentLikes IDSet     `json:"comment_likes"`
	IsAdmin      bool      `json:"is_admin"`
	IsDeleted    bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSummary is the public projection of a user embedded in post and
// comment views and follower listings.
type UserSummary struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Avatar         string    `json:"avatar"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	PostsCount     int       `json:"posts_count"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		Avatar:         u.Avatar,
		FollowersCount: u.Followers.Len(),
		FollowingCount: u.Following.Len(),
		PostsCount:     len(u.Posts),
		CreatedAt:      u.CreatedAt,
	}
}

// Clone returns a deep copy; the sets and lists are not shared.
func (u *User) Clone() *User {
	c := *u
	c.Followers = u.Followers.Clone()
	c.Following = u.Following.Clone()
	c.PostLikes = u.PostLikes.Clone()
	c.CommentLikes = u.CommentLikes.Clone()
	c.Posts = append([]string(nil), u.Posts...)
	return &c
}

// Principal is the authenticated caller. A nil *Principal is an anonymous caller.
type Principal struct {
	ID      string `json:"id"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"-"`
}

func (p *Principal) UserID() string {
	if p == nil {
		return ""
	}
	return p.ID
}

func (p *Principal) Admin() bool {
	return p != nil && p.IsAdmin
}

type FollowStatus struct {
	Following bool `json:"follow_status"`
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
}

// UpdateResult reports a profile update. AccessToken is set only when the
// password changed.
type UpdateResult struct {
	Success     bool   `json:"success,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}
