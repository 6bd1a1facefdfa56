package services

import (
	"context"
	"errors"

	"masterboxer.com/project-social-blog/ids"
	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

// SetFollow moves the caller's follow of targetID into the desired state.
// Calling it with the state already in place changes nothing.
func (s *Service) SetFollow(ctx context.Context, p *models.Principal, targetID string, follow bool) (models.FollowStatus, error) {
	if targetID = ids.Canonical(targetID); targetID == "" {
		return models.FollowStatus{}, invalidArgument("invalid provided user id")
	}
	actorID := p.UserID()
	if actorID == targetID {
		if follow {
			return models.FollowStatus{}, invalidArgument("You can't follow yourself.")
		}
		return models.FollowStatus{}, invalidArgument("You can't unfollow yourself.")
	}

	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		target, err := tx.Users().Get(ctx, targetID)
		// A deleted account can still be unfollowed.
		if errors.Is(err, repository.ErrNotFound) || (err == nil && target.IsDeleted && follow) {
			return notFound("the user that you need to follow does not exist.")
		}
		if err != nil {
			return err
		}

		if actorID == "" {
			return unauthorized("Unauthorized")
		}
		actor, err := tx.Users().Get(ctx, actorID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && actor.IsDeleted) {
			return unauthorized("Unauthorized")
		}
		if err != nil {
			return err
		}

		if actor.Following.Has(targetID) == follow {
			return nil
		}
		if follow {
			return tx.Users().Follow(ctx, actorID, targetID)
		}
		return tx.Users().Unfollow(ctx, actorID, targetID)
	})
	if err != nil {
		return models.FollowStatus{}, internal("SetFollow", err)
	}
	return models.FollowStatus{Following: follow}, nil
}

// ListFollowers pages through the users the caller follows, ordered by id.
func (s *Service) ListFollowers(ctx context.Context, p *models.Principal, page int) (models.Page[models.UserSummary], error) {
	if err := requireCaller(p); err != nil {
		return models.Page[models.UserSummary]{}, err
	}
	page = models.ClampPage(page)

	users, total, err := s.store.Users().ListFollowedBy(ctx, p.ID, offset(page, followersPageSize), followersPageSize)
	if err != nil {
		return models.Page[models.UserSummary]{}, internal("ListFollowers", err)
	}

	data := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		data = append(data, u.Summary())
	}
	return models.NewPage(data, page, followersPageSize, total), nil
}
