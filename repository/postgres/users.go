package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"

	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

type userRepo struct {
	q querier
}

const userColumns = `u.id, u.username, u.email, u.password, u.avatar, u.post_ids,
	u.is_admin, u.is_deleted, u.created_at, u.updated_at,
	ARRAY(SELECT follower_id FROM follows WHERE following_id = u.id),
	ARRAY(SELECT following_id FROM follows WHERE follower_id = u.id),
	ARRAY(SELECT post_id FROM post_likes WHERE user_id = u.id),
	ARRAY(SELECT comment_id FROM comment_likes WHERE user_id = u.id)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var posts, followers, following, postLikes, commentLikes pq.StringArray
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Avatar, &posts,
		&u.IsAdmin, &u.IsDeleted, &u.CreatedAt, &u.UpdatedAt,
		&followers, &following, &postLikes, &commentLikes); err != nil {
		return nil, err
	}
	u.Posts = []string(posts)
	u.Followers = models.NewIDSet(followers...)
	u.Following = models.NewIDSet(following...)
	u.PostLikes = models.NewIDSet(postLikes...)
	u.CommentLikes = models.NewIDSet(commentLikes...)
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password, avatar, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.Email, u.Password, u.Avatar, u.IsAdmin, u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return repository.ErrDuplicateEmail
	}
	return err
}

func (r *userRepo) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	return u, notFound(err)
}

func (r *userRepo) GetForUpdate(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.id = $1 FOR UPDATE`, id))
	return u, notFound(err)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.email = $1 AND NOT u.is_deleted`, email))
	return u, notFound(err)
}

func (r *userRepo) GetMany(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, rows.Err()
}

func (r *userRepo) UpdateProfile(ctx context.Context, u *models.User) error {
	return expectRow(r.q.ExecContext(ctx, `
		UPDATE users SET username = $1, avatar = $2, password = $3, updated_at = $4
		WHERE id = $5`,
		u.Username, u.Avatar, u.Password, u.UpdatedAt, u.ID))
}

func (r *userRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return expectRow(r.q.ExecContext(ctx,
		`UPDATE users SET is_deleted = TRUE, updated_at = $1 WHERE id = $2`, at, id))
}

func (r *userRepo) Follow(ctx context.Context, followerID, followingID string) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO follows (follower_id, following_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT DO NOTHING`,
		followerID, followingID)
	return err
}

func (r *userRepo) Unfollow(ctx context.Context, followerID, followingID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID)
	return err
}

func (r *userRepo) ListFollowedBy(ctx context.Context, followerID string, skip, limit int) ([]*models.User, int, error) {
	var total int
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1 AND NOT u.is_deleted`,
		followerID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1 AND NOT u.is_deleted
		ORDER BY u.id
		LIMIT $2 OFFSET $3`,
		followerID, limit, skip)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *userRepo) AppendPost(ctx context.Context, userID, postID string) error {
	return expectRow(r.q.ExecContext(ctx,
		`UPDATE users SET post_ids = array_append(post_ids, $1) WHERE id = $2`, postID, userID))
}

func (r *userRepo) RemovePost(ctx context.Context, userID, postID string) error {
	return expectRow(r.q.ExecContext(ctx,
		`UPDATE users SET post_ids = array_remove(post_ids, $1) WHERE id = $2`, postID, userID))
}
