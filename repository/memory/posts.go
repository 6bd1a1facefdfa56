package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

type postRepo struct {
	s *Store
}

func (r *postRepo) Create(ctx context.Context, p *models.Post) error {
	st, unlock := r.s.lock()
	defer unlock()

	c := p.Clone()
	st.posts[c.ID] = c
	st.postOrder = append(st.postOrder, c.ID)
	return nil
}

func (r *postRepo) Get(ctx context.Context, id string) (*models.Post, error) {
	st, unlock := r.s.lock()
	defer unlock()

	p, ok := st.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *postRepo) GetForUpdate(ctx context.Context, id string) (*models.Post, error) {
	return r.Get(ctx, id)
}

func (r *postRepo) Count(ctx context.Context) (int, error) {
	st, unlock := r.s.lock()
	defer unlock()
	return len(st.posts), nil
}

func (r *postRepo) Find(ctx context.Context, f repository.PostFilter, skip, limit int) ([]*models.Post, int, error) {
	st, unlock := r.s.lock()
	defer unlock()

	var posters models.IDSet
	if f.PosterIDs != nil {
		posters = models.NewIDSet(f.PosterIDs...)
	}
	query := strings.ToLower(f.Query)

	var matched []*models.Post
	for _, id := range st.postOrder {
		p := st.posts[id]
		if !f.IncludeDeleted && p.IsDeleted {
			continue
		}
		if posters != nil && !posters.Has(p.PosterID) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Content), query) {
			continue
		}
		matched = append(matched, p)
	}

	switch f.Sort {
	case repository.SortNewest:
		slices.SortStableFunc(matched, func(a, b *models.Post) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case repository.SortOldest:
		slices.SortStableFunc(matched, func(a, b *models.Post) int { return a.CreatedAt.Compare(b.CreatedAt) })
	}

	out := make([]*models.Post, 0, limit)
	for _, p := range page(matched, skip, limit) {
		out = append(out, p.Clone())
	}
	return out, len(matched), nil
}

func (r *postRepo) UpdateContent(ctx context.Context, id, content string, at time.Time) error {
	return r.mutate(id, func(p *models.Post) {
		p.Content = content
		p.UpdatedAt = at
	})
}

func (r *postRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.mutate(id, func(p *models.Post) {
		p.IsDeleted = true
		p.UpdatedAt = at
	})
}

func (r *postRepo) SoftDeleteByPoster(ctx context.Context, posterID string, at time.Time) error {
	st, unlock := r.s.lock()
	defer unlock()

	for _, p := range st.posts {
		if p.PosterID == posterID {
			p.IsDeleted = true
			p.UpdatedAt = at
		}
	}
	return nil
}

func (r *postRepo) AppendComment(ctx context.Context, postID, commentID string) error {
	return r.mutate(postID, func(p *models.Post) {
		p.Comments = append(p.Comments, commentID)
	})
}

func (r *postRepo) RemoveComment(ctx context.Context, postID, commentID string) error {
	return r.mutate(postID, func(p *models.Post) {
		p.Comments = slices.DeleteFunc(p.Comments, func(id string) bool { return id == commentID })
	})
}

func (r *postRepo) AddLike(ctx context.Context, postID, userID string) error {
	return r.like(postID, userID, true)
}

func (r *postRepo) RemoveLike(ctx context.Context, postID, userID string) error {
	return r.like(postID, userID, false)
}

func (r *postRepo) like(postID, userID string, add bool) error {
	st, unlock := r.s.lock()
	defer unlock()

	p, ok1 := st.posts[postID]
	u, ok2 := st.users[userID]
	if !ok1 || !ok2 {
		return repository.ErrNotFound
	}
	if add {
		p.Likes.Add(userID)
		u.PostLikes.Add(postID)
	} else {
		p.Likes.Remove(userID)
		u.PostLikes.Remove(postID)
	}
	return nil
}

func (r *postRepo) mutate(id string, fn func(p *models.Post)) error {
	st, unlock := r.s.lock()
	defer unlock()

	p, ok := st.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(p)
	return nil
}
