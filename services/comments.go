package services

import (
	"context"
	"errors"
	"strings"

	"masterboxer.com/project-social-blog/ids"
	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

func livePost(ctx context.Context, tx repository.Store, postID string, lock bool) (*models.Post, error) {
	get := tx.Posts().Get
	if lock {
		get = tx.Posts().GetForUpdate
	}
	post, err := get(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && post.IsDeleted) {
		return nil, notFound("Post wasn't found")
	}
	return post, err
}

// CreateComment adds a comment to a live post and appends its id to the
// post's comment list.
func (s *Service) CreateComment(ctx context.Context, p *models.Principal, postID, content string) (models.CommentView, error) {
	if err := requireCaller(p); err != nil {
		return models.CommentView{}, err
	}
	if strings.TrimSpace(content) == "" {
		return models.CommentView{}, invalidArgument("content body is required")
	}
	if postID = ids.Canonical(postID); postID == "" {
		return models.CommentView{}, invalidArgument("use correct id")
	}

	now := s.clock.Now()
	comment := &models.Comment{
		ID:          ids.New(),
		CommenterID: p.ID,
		PostID:      postID,
		Content:     content,
		Likes:       models.NewIDSet(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var post *models.Post
	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		var err error
		post, err = livePost(ctx, tx, postID, true)
		if err != nil {
			return err
		}
		if err := tx.Comments().Create(ctx, comment); err != nil {
			return err
		}
		post.Comments = append(post.Comments, comment.ID)
		return tx.Posts().AppendComment(ctx, postID, comment.ID)
	})
	if err != nil {
		return models.CommentView{}, internal("CreateComment", err)
	}

	users, err := s.summaries(ctx, []string{p.ID})
	if err != nil {
		return models.CommentView{}, internal("CreateComment", err)
	}
	v := commentView(comment, summaryOf(users, p.ID), p.ID)
	v.Post = postRef(post, p.ID)
	return v, nil
}

// UpdateComment replaces the content of the caller's comment on postID.
func (s *Service) UpdateComment(ctx context.Context, p *models.Principal, postID, commentID, content string) error {
	if err := requireCaller(p); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return invalidArgument("content body is required")
	}
	postID, commentID = ids.Canonical(postID), ids.Canonical(commentID)
	if postID == "" || commentID == "" {
		return invalidArgument("use correct id")
	}

	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		if _, err := livePost(ctx, tx, postID, false); err != nil {
			return err
		}
		comment, err := tx.Comments().GetForUpdate(ctx, commentID)
		if errors.Is(err, repository.ErrNotFound) ||
			(err == nil && (comment.IsDeleted || comment.PostID != postID || comment.CommenterID != p.ID)) {
			return notFound("Comment wasn't found")
		}
		if err != nil {
			return err
		}
		return tx.Comments().UpdateContent(ctx, commentID, content, s.clock.Now())
	})
	if err != nil {
		return internal("UpdateComment", err)
	}
	return nil
}

// DeleteComment soft-deletes the caller's comment and pulls its id from
// the post's comment list.
func (s *Service) DeleteComment(ctx context.Context, p *models.Principal, postID, commentID string) error {
	if err := requireCaller(p); err != nil {
		return err
	}
	postID, commentID = ids.Canonical(postID), ids.Canonical(commentID)
	if postID == "" || commentID == "" {
		return invalidArgument("use correct id")
	}

	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		comment, err := tx.Comments().GetForUpdate(ctx, commentID)
		if errors.Is(err, repository.ErrNotFound) ||
			(err == nil && (comment.IsDeleted || comment.PostID != postID || comment.CommenterID != p.ID)) {
			return notFound("comment wasn't found.")
		}
		if err != nil {
			return err
		}
		if err := tx.Comments().SoftDelete(ctx, commentID, s.clock.Now()); err != nil {
			return err
		}
		err = tx.Posts().RemoveComment(ctx, postID, commentID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return internal("DeleteComment", err)
	}
	return nil
}

// GetComment returns a comment with its commenter and a summary of its post.
func (s *Service) GetComment(ctx context.Context, p *models.Principal, postID, commentID string) (models.CommentView, error) {
	postID, commentID = ids.Canonical(postID), ids.Canonical(commentID)
	if postID == "" || commentID == "" {
		return models.CommentView{}, invalidArgument("use correct id")
	}

	comment, err := s.store.Comments().Get(ctx, commentID)
	if errors.Is(err, repository.ErrNotFound) ||
		(err == nil && (comment.PostID != postID || (comment.IsDeleted && !p.Admin()))) {
		return models.CommentView{}, notFound("Comment wasn't found")
	}
	if err != nil {
		return models.CommentView{}, internal("GetComment", err)
	}

	post, err := s.store.Posts().Get(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && post.IsDeleted && !p.Admin()) {
		return models.CommentView{}, notFound("Post wasn't found")
	}
	if err != nil {
		return models.CommentView{}, internal("GetComment", err)
	}

	users, err := s.summaries(ctx, []string{comment.CommenterID})
	if err != nil {
		return models.CommentView{}, internal("GetComment", err)
	}
	v := commentView(comment, summaryOf(users, comment.CommenterID), p.UserID())
	v.Post = postRef(post, p.UserID())
	return v, nil
}

// ListComments pages through a post's comments in creation order.
func (s *Service) ListComments(ctx context.Context, p *models.Principal, postID string, page int) (models.Page[models.CommentView], error) {
	if postID = ids.Canonical(postID); postID == "" {
		return models.Page[models.CommentView]{}, invalidArgument("use correct id")
	}
	page = models.ClampPage(page)

	post, err := s.store.Posts().Get(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && post.IsDeleted && !p.Admin()) {
		return models.Page[models.CommentView]{}, notFound("Post wasn't found")
	}
	if err != nil {
		return models.Page[models.CommentView]{}, internal("ListComments", err)
	}

	filter := repository.CommentFilter{PostID: postID, IncludeDeleted: p.Admin()}
	comments, total, err := s.store.Comments().Find(ctx, filter, offset(page, commentsPageSize), commentsPageSize)
	if err != nil {
		return models.Page[models.CommentView]{}, internal("ListComments", err)
	}

	commenterIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		commenterIDs = append(commenterIDs, c.CommenterID)
	}
	users, err := s.summaries(ctx, commenterIDs)
	if err != nil {
		return models.Page[models.CommentView]{}, internal("ListComments", err)
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, commentView(c, summaryOf(users, c.CommenterID), p.UserID()))
	}
	return models.NewPage(views, page, commentsPageSize, total), nil
}
