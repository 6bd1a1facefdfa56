package memory

import (
	"context"
	"time"

	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

type commentRepo struct {
	s *Store
}

func (r *commentRepo) Create(ctx context.Context, c *models.Comment) error {
	st, unlock := r.s.lock()
	defer unlock()

	cc := c.Clone()
	st.comments[cc.ID] = cc
	st.commentOrder = append(st.commentOrder, cc.ID)
	return nil
}

func (r *commentRepo) Get(ctx context.Context, id string) (*models.Comment, error) {
	st, unlock := r.s.lock()
	defer unlock()

	c, ok := st.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *commentRepo) GetForUpdate(ctx context.Context, id string) (*models.Comment, error) {
	return r.Get(ctx, id)
}

func (r *commentRepo) Find(ctx context.Context, f repository.CommentFilter, skip, limit int) ([]*models.Comment, int, error) {
	st, unlock := r.s.lock()
	defer unlock()

	var matched []*models.Comment
	for _, id := range st.commentOrder {
		c := st.comments[id]
		if c.PostID != f.PostID || (!f.IncludeDeleted && c.IsDeleted) {
			continue
		}
		matched = append(matched, c)
	}

	out := make([]*models.Comment, 0, limit)
	for _, c := range page(matched, skip, limit) {
		out = append(out, c.Clone())
	}
	return out, len(matched), nil
}

func (r *commentRepo) UpdateContent(ctx context.Context, id, content string, at time.Time) error {
	st, unlock := r.s.lock()
	defer unlock()

	c, ok := st.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Content = content
	c.UpdatedAt = at
	return nil
}

func (r *commentRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	st, unlock := r.s.lock()
	defer unlock()

	c, ok := st.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.IsDeleted = true
	c.UpdatedAt = at
	return nil
}

func (r *commentRepo) AddLike(ctx context.Context, commentID, userID string) error {
	return r.like(commentID, userID, true)
}

func (r *commentRepo) RemoveLike(ctx context.Context, commentID, userID string) error {
	return r.like(commentID, userID, false)
}

func (r *commentRepo) like(commentID, userID string, add bool) error {
	st, unlock := r.s.lock()
	defer unlock()

	c, ok1 := st.comments[commentID]
	u, ok2 := st.users[userID]
	if !ok1 || !ok2 {
		return repository.ErrNotFound
	}
	if add {
		c.Likes.Add(userID)
		u.CommentLikes.Add(commentID)
	} else {
		c.Likes.Remove(userID)
		u.CommentLikes.Remove(commentID)
	}
	return nil
}
