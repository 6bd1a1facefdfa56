package services

import (
	"context"
	"errors"

	"masterboxer.com/project-social-blog/ids"
	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

type SearchQuery struct {
	Query string
	// Author restricts results to one poster when set.
	Author string
	// Sort "oldest" lists ascending by creation time; anything else descending.
	Sort string
	Page int
}

const SortOldest = "oldest"

// ListPosts pages through posterID's posts in storage order. An empty
// posterID lists the caller's own posts.
func (s *Service) ListPosts(ctx context.Context, p *models.Principal, posterID string, page int) (models.Page[models.PostView], error) {
	if posterID == "" {
		if err := requireCaller(p); err != nil {
			return models.Page[models.PostView]{}, err
		}
		posterID = p.ID
	}
	if posterID = ids.Canonical(posterID); posterID == "" {
		return models.Page[models.PostView]{}, invalidArgument("invalid provided user id")
	}
	page = models.ClampPage(page)

	filter := repository.PostFilter{
		PosterIDs:      []string{posterID},
		IncludeDeleted: p.Admin(),
	}
	posts, total, err := s.store.Posts().Find(ctx, filter, offset(page, ownPostsPageSize), ownPostsPageSize)
	if err != nil {
		return models.Page[models.PostView]{}, internal("ListPosts", err)
	}

	views, err := s.postViews(ctx, posts, p.UserID(), func(v *models.PostView, post *models.Post) {
		if p.Admin() {
			v.IsDeleted = post.IsDeleted
		}
	})
	if err != nil {
		return models.Page[models.PostView]{}, internal("ListPosts", err)
	}
	return models.NewPage(views, page, ownPostsPageSize, total), nil
}

// Feed serves posts by the users the caller follows. When that yields
// nothing for the page, the same page of the global timeline is served.
func (s *Service) Feed(ctx context.Context, p *models.Principal, page int) (models.Page[models.PostView], error) {
	if err := requireCaller(p); err != nil {
		return models.Page[models.PostView]{}, err
	}
	page = models.ClampPage(page)

	user, err := s.store.Users().Get(ctx, p.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Page[models.PostView]{}, unauthorized("Unauthorized")
	}
	if err != nil {
		return models.Page[models.PostView]{}, internal("Feed", err)
	}

	skip := offset(page, feedPageSize)
	posts, total, err := s.store.Posts().Find(ctx, repository.PostFilter{
		PosterIDs: user.Following.Slice(),
	}, skip, feedPageSize)
	if err != nil {
		return models.Page[models.PostView]{}, internal("Feed", err)
	}
	if len(posts) == 0 {
		posts, total, err = s.store.Posts().Find(ctx, repository.PostFilter{}, skip, feedPageSize)
		if err != nil {
			return models.Page[models.PostView]{}, internal("Feed", err)
		}
	}

	views, err := s.postViews(ctx, posts, p.ID, func(v *models.PostView, post *models.Post) {
		v.ShortContent = shorten(post.Content)
	})
	if err != nil {
		return models.Page[models.PostView]{}, internal("Feed", err)
	}
	return models.NewPage(views, page, feedPageSize, total), nil
}

// SearchPosts matches q.Query case-insensitively against title or content.
// The caller may be anonymous.
func (s *Service) SearchPosts(ctx context.Context, p *models.Principal, q SearchQuery) (models.Page[models.PostView], error) {
	if q.Author != "" {
		if q.Author = ids.Canonical(q.Author); q.Author == "" {
			return models.Page[models.PostView]{}, invalidArgument("invalid provided user id")
		}
	}
	page := models.ClampPage(q.Page)

	filter := repository.PostFilter{
		Query:          q.Query,
		IncludeDeleted: p.Admin(),
		Sort:           repository.SortNewest,
	}
	if q.Sort == SortOldest {
		filter.Sort = repository.SortOldest
	}
	if q.Author != "" {
		filter.PosterIDs = []string{q.Author}
	}

	posts, total, err := s.store.Posts().Find(ctx, filter, offset(page, searchPageSize), searchPageSize)
	if err != nil {
		return models.Page[models.PostView]{}, internal("SearchPosts", err)
	}

	views, err := s.postViews(ctx, posts, p.UserID(), func(v *models.PostView, post *models.Post) {
		v.Content = post.Content
		if p.Admin() {
			v.IsDeleted = post.IsDeleted
		}
	})
	if err != nil {
		return models.Page[models.PostView]{}, internal("SearchPosts", err)
	}
	return models.NewPage(views, page, searchPageSize, total), nil
}

// postViews projects posts with their posters loaded in one round trip.
// decorate, when set, adds the fields specific to one read path.
func (s *Service) postViews(ctx context.Context, posts []*models.Post, viewerID string, decorate func(*models.PostView, *models.Post)) ([]models.PostView, error) {
	posterIDs := make([]string, 0, len(posts))
	for _, post := range posts {
		posterIDs = append(posterIDs, post.PosterID)
	}
	posters, err := s.summaries(ctx, posterIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, 0, len(posts))
	for _, post := range posts {
		v := postView(post, summaryOf(posters, post.PosterID), viewerID)
		if decorate != nil {
			decorate(&v, post)
		}
		views = append(views, v)
	}
	return views, nil
}
