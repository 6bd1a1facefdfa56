package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"masterboxer.com/project-social-blog/ids"
	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreatePost stores a post titled "<n>-<title>", n being the number of
// posts created before it, and appends it to the caller's posts.
func (s *Service) CreatePost(ctx context.Context, p *models.Principal, in PostInput) (models.PostView, error) {
	if err := requireCaller(p); err != nil {
		return models.PostView{}, err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return models.PostView{}, invalidArgument("title and content are required")
	}

	n, err := s.seq.Next(ctx)
	if err != nil {
		return models.PostView{}, internal("CreatePost sequence", err)
	}

	now := s.clock.Now()
	post := &models.Post{
		ID:        ids.New(),
		PosterID:  p.ID,
		Title:     fmt.Sprintf("%d-%s", n, in.Title),
		Content:   in.Content,
		Likes:     models.NewIDSet(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	var poster *models.User
	err = s.store.RunInTx(ctx, func(tx repository.Store) error {
		if err := tx.Posts().Create(ctx, post); err != nil {
			return err
		}
		if err := tx.Users().AppendPost(ctx, p.ID, post.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return unauthorized("Unauthorized")
			}
			return err
		}
		u, err := tx.Users().Get(ctx, p.ID)
		poster = u
		return err
	})
	if err != nil {
		return models.PostView{}, internal("CreatePost", err)
	}

	v := postView(post, poster.Summary(), p.ID)
	v.Content = post.Content
	v.IsPoster = true
	return v, nil
}

// UpdatePost replaces the content of one of the caller's posts.
func (s *Service) UpdatePost(ctx context.Context, p *models.Principal, postID, content string) (models.PostView, error) {
	if err := requireCaller(p); err != nil {
		return models.PostView{}, err
	}
	if postID = ids.Canonical(postID); postID == "" {
		return models.PostView{}, invalidArgument("use correct id")
	}
	if strings.TrimSpace(content) == "" {
		return models.PostView{}, invalidArgument("content is required")
	}

	var post *models.Post
	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		var err error
		post, err = tx.Posts().GetForUpdate(ctx, postID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && post.PosterID != p.ID) {
			return notFound("You don't have this post to modify it.")
		}
		if err != nil {
			return err
		}
		if post.IsDeleted {
			return conflict("You can't modify a deleted post.")
		}

		post.Content = content
		post.UpdatedAt = s.clock.Now()
		return tx.Posts().UpdateContent(ctx, postID, content, post.UpdatedAt)
	})
	if err != nil {
		return models.PostView{}, internal("UpdatePost", err)
	}

	posters, err := s.summaries(ctx, []string{post.PosterID})
	if err != nil {
		return models.PostView{}, internal("UpdatePost", err)
	}
	v := postView(post, summaryOf(posters, post.PosterID), p.ID)
	v.Content = post.Content
	v.IsPoster = true
	return v, nil
}

// DeletePost soft-deletes one of the caller's live posts and drops it from
// their post list. Its comments are left as they are.
func (s *Service) DeletePost(ctx context.Context, p *models.Principal, postID string) error {
	if err := requireCaller(p); err != nil {
		return err
	}
	if postID = ids.Canonical(postID); postID == "" {
		return invalidArgument("use correct id")
	}

	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		post, err := tx.Posts().GetForUpdate(ctx, postID)
		if errors.Is(err, repository.ErrNotFound) ||
			(err == nil && (post.PosterID != p.ID || post.IsDeleted)) {
			return notFound("Post wasn't found.")
		}
		if err != nil {
			return err
		}
		if err := tx.Posts().SoftDelete(ctx, postID, s.clock.Now()); err != nil {
			return err
		}
		return tx.Users().RemovePost(ctx, p.ID, postID)
	})
	if err != nil {
		return internal("DeletePost", err)
	}
	return nil
}

// GetPost returns one post with its full content. Only admins can read a
// deleted post.
func (s *Service) GetPost(ctx context.Context, p *models.Principal, postID string) (models.PostView, error) {
	if postID = ids.Canonical(postID); postID == "" {
		return models.PostView{}, invalidArgument("use correct id")
	}

	post, err := s.store.Posts().Get(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && post.IsDeleted && !p.Admin()) {
		return models.PostView{}, notFound("Post doesn't exist")
	}
	if err != nil {
		return models.PostView{}, internal("GetPost", err)
	}

	posters, err := s.summaries(ctx, []string{post.PosterID})
	if err != nil {
		return models.PostView{}, internal("GetPost", err)
	}
	v := postView(post, summaryOf(posters, post.PosterID), p.UserID())
	v.Content = post.Content
	v.IsPoster = p.UserID() == post.PosterID
	v.IsDeleted = post.IsDeleted
	return v, nil
}
