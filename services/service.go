// Package services holds the social graph and content engines: follow
// state, like toggles, feed assembly and the post, comment and account
// operations built on them. Every operation returns either a view from
// models or an *Error.
package services

import (
	"context"

	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

const (
	ownPostsPageSize   = 10
	feedPageSize       = 15
	searchPageSize     = 30
	commentsPageSize   = 10
	followersPageSize  = 50
	shortContentLength = 100
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type Service struct {
	store  repository.Store
	clock  Clock
	seq    Sequence
	hasher PasswordHasher
	tokens TokenIssuer
}

type Option func(*Service)

func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithSequence(seq Sequence) Option {
	return func(s *Service) { s.seq = seq }
}

// New builds a Service. Without options it uses the system clock and a
// LocalSequence seeded from the store's post count.
func New(store repository.Store, hasher PasswordHasher, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		store:  store,
		clock:  SystemClock{},
		hasher: hasher,
		tokens: tokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seq == nil {
		s.seq = NewLocalSequence(store.Posts().Count)
	}
	return s
}

func requireCaller(p *models.Principal) error {
	if p.UserID() == "" {
		return unauthorized("Unauthorized")
	}
	return nil
}

func offset(page, size int) int {
	return models.ClampPage(page) * size
}

// summaries loads the users referenced by ids. Missing users are simply
// absent from the map.
func (s *Service) summaries(ctx context.Context, ids []string) (map[string]*models.User, error) {
	seen := models.NewIDSet()
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen.Has(id) {
			seen.Add(id)
			unique = append(unique, id)
		}
	}
	return s.store.Users().GetMany(ctx, unique)
}

func summaryOf(users map[string]*models.User, id string) models.UserSummary {
	if u, ok := users[id]; ok {
		return u.Summary()
	}
	return models.UserSummary{ID: id}
}

func postView(p *models.Post, poster models.UserSummary, viewerID string) models.PostView {
	return models.PostView{
		ID:                      p.ID,
		Title:                   p.Title,
		Poster:                  poster,
		CommentsCount:           len(p.Comments),
		LikesCount:              p.Likes.Len(),
		IsLikedByAuthorizedUser: viewerID != "" && p.Likes.Has(viewerID),
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

func postRef(p *models.Post, viewerID string) *models.PostRef {
	return &models.PostRef{
		ID:                      p.ID,
		Title:                   p.Title,
		CommentsCount:           len(p.Comments),
		LikesCount:              p.Likes.Len(),
		IsLikedByAuthorizedUser: viewerID != "" && p.Likes.Has(viewerID),
		CreatedAt:               p.CreatedAt,
	}
}

func commentView(c *models.Comment, commenter models.UserSummary, viewerID string) models.CommentView {
	return models.CommentView{
		ID:                      c.ID,
		Content:                 c.Content,
		LikesCount:              c.Likes.Len(),
		Commenter:               commenter,
		PostID:                  c.PostID,
		IsLikedByAuthorizedUser: viewerID != "" && c.Likes.Has(viewerID),
		IsCommenter:             viewerID != "" && c.CommenterID == viewerID,
		IsDeleted:               c.IsDeleted,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}

func shorten(content string) string {
	r := []rune(content)
	if len(r) <= shortContentLength {
		return content
	}
	return string(r[:shortContentLength])
}
