package services

import (
	"context"
	"errors"

	"masterboxer.com/project-social-blog/ids"
	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

// likeable is an entity kind that carries a like set mirrored on the
// liking user.
type likeable interface {
	// lock fetches the entity for update and returns its like set. It fails
	// with a not-found *Error when the entity is missing or deleted.
	lock(ctx context.Context, tx repository.Store, id string) (models.IDSet, error)
	add(ctx context.Context, tx repository.Store, id, userID string) error
	remove(ctx context.Context, tx repository.Store, id, userID string) error
}

type postLikes struct{}

func (postLikes) lock(ctx context.Context, tx repository.Store, id string) (models.IDSet, error) {
	post, err := tx.Posts().GetForUpdate(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && post.IsDeleted) {
		return nil, notFound("Post doesn't exist.")
	}
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

func (postLikes) add(ctx context.Context, tx repository.Store, id, userID string) error {
	return tx.Posts().AddLike(ctx, id, userID)
}

func (postLikes) remove(ctx context.Context, tx repository.Store, id, userID string) error {
	return tx.Posts().RemoveLike(ctx, id, userID)
}

// commentLikes also requires the comment's post to be live.
type commentLikes struct{}

func (commentLikes) lock(ctx context.Context, tx repository.Store, id string) (models.IDSet, error) {
	comment, err := tx.Comments().GetForUpdate(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && comment.IsDeleted) {
		return nil, notFound("Comment wasn't found")
	}
	if err != nil {
		return nil, err
	}

	post, err := tx.Posts().Get(ctx, comment.PostID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && post.IsDeleted) {
		return nil, notFound("Post wasn't found")
	}
	if err != nil {
		return nil, err
	}
	return comment.Likes, nil
}

func (commentLikes) add(ctx context.Context, tx repository.Store, id, userID string) error {
	return tx.Comments().AddLike(ctx, id, userID)
}

func (commentLikes) remove(ctx context.Context, tx repository.Store, id, userID string) error {
	return tx.Comments().RemoveLike(ctx, id, userID)
}

func likeableFor(kind models.EntityKind) (likeable, bool) {
	switch kind {
	case models.KindPost:
		return postLikes{}, true
	case models.KindComment:
		return commentLikes{}, true
	}
	return nil, false
}

// ToggleLike flips the caller's like on the entity. Calling it twice
// restores the starting state, so it is not safe to retry blindly.
func (s *Service) ToggleLike(ctx context.Context, p *models.Principal, kind models.EntityKind, entityID string) (models.LikeResult, error) {
	if err := requireCaller(p); err != nil {
		return models.LikeResult{}, err
	}
	target, ok := likeableFor(kind)
	if !ok {
		return models.LikeResult{}, invalidArgument("unknown entity kind")
	}
	if entityID = ids.Canonical(entityID); entityID == "" {
		return models.LikeResult{}, invalidArgument("use correct id")
	}

	var status models.LikeStatus
	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		likes, err := target.lock(ctx, tx, entityID)
		if err != nil {
			return err
		}
		if likes.Has(p.ID) {
			status = models.LikeRemoved
			return target.remove(ctx, tx, entityID, p.ID)
		}
		status = models.LikeAdded
		return target.add(ctx, tx, entityID, p.ID)
	})
	if err != nil {
		return models.LikeResult{}, internal("ToggleLike", err)
	}
	return models.LikeResult{Status: status}, nil
}
