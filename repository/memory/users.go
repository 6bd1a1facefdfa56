package memory

import (
	"context"
	"slices"
	"time"

	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	st, unlock := r.s.lock()
	defer unlock()

	if _, taken := st.emails[u.Email]; taken {
		return repository.ErrDuplicateEmail
	}
	c := u.Clone()
	st.users[c.ID] = c
	st.userOrder = append(st.userOrder, c.ID)
	st.emails[c.Email] = c.ID
	return nil
}

func (r *userRepo) Get(ctx context.Context, id string) (*models.User, error) {
	st, unlock := r.s.lock()
	defer unlock()

	u, ok := st.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *userRepo) GetForUpdate(ctx context.Context, id string) (*models.User, error) {
	return r.Get(ctx, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	st, unlock := r.s.lock()
	defer unlock()

	id, ok := st.emails[email]
	if !ok || st.users[id].IsDeleted {
		return nil, repository.ErrNotFound
	}
	return st.users[id].Clone(), nil
}

func (r *userRepo) GetMany(ctx context.Context, ids []string) (map[string]*models.User, error) {
	st, unlock := r.s.lock()
	defer unlock()

	out := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := st.users[id]; ok {
			out[id] = u.Clone()
		}
	}
	return out, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, u *models.User) error {
	st, unlock := r.s.lock()
	defer unlock()

	cur, ok := st.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Username = u.Username
	cur.Avatar = u.Avatar
	cur.Password = u.Password
	cur.UpdatedAt = u.UpdatedAt
	return nil
}

func (r *userRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	st, unlock := r.s.lock()
	defer unlock()

	u, ok := st.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsDeleted = true
	u.UpdatedAt = at
	return nil
}

func (r *userRepo) Follow(ctx context.Context, followerID, followingID string) error {
	st, unlock := r.s.lock()
	defer unlock()

	follower, ok1 := st.users[followerID]
	following, ok2 := st.users[followingID]
	if !ok1 || !ok2 {
		return repository.ErrNotFound
	}
	follower.Following.Add(followingID)
	following.Followers.Add(followerID)
	return nil
}

func (r *userRepo) Unfollow(ctx context.Context, followerID, followingID string) error {
	st, unlock := r.s.lock()
	defer unlock()

	follower, ok1 := st.users[followerID]
	following, ok2 := st.users[followingID]
	if !ok1 || !ok2 {
		return repository.ErrNotFound
	}
	follower.Following.Remove(followingID)
	following.Followers.Remove(followerID)
	return nil
}

func (r *userRepo) ListFollowedBy(ctx context.Context, followerID string, skip, limit int) ([]*models.User, int, error) {
	st, unlock := r.s.lock()
	defer unlock()

	var matched []*models.User
	for _, id := range st.userOrder {
		u := st.users[id]
		if !u.IsDeleted && u.Followers.Has(followerID) {
			matched = append(matched, u)
		}
	}
	slices.SortFunc(matched, func(a, b *models.User) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	out := make([]*models.User, 0, limit)
	for _, u := range page(matched, skip, limit) {
		out = append(out, u.Clone())
	}
	return out, len(matched), nil
}

func (r *userRepo) AppendPost(ctx context.Context, userID, postID string) error {
	st, unlock := r.s.lock()
	defer unlock()

	u, ok := st.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Posts = append(u.Posts, postID)
	return nil
}

func (r *userRepo) RemovePost(ctx context.Context, userID, postID string) error {
	st, unlock := r.s.lock()
	defer unlock()

	u, ok := st.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Posts = slices.DeleteFunc(u.Posts, func(id string) bool { return id == postID })
	return nil
}
