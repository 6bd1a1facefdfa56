package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"

	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

type commentRepo struct {
	q querier
}

const commentColumns = `c.id, c.commenter_id, c.post_id, c.content,
	c.is_deleted, c.created_at, c.updated_at,
	ARRAY(SELECT user_id FROM comment_likes WHERE comment_id = c.id)`

func scanComment(row rowScanner) (*models.Comment, error) {
	var c models.Comment
	var likes pq.StringArray
	if err := row.Scan(&c.ID, &c.CommenterID, &c.PostID, &c.Content,
		&c.IsDeleted, &c.CreatedAt, &c.UpdatedAt, &likes); err != nil {
		return nil, err
	}
	c.Likes = models.NewIDSet(likes...)
	return &c, nil
}

func (r *commentRepo) Create(ctx context.Context, c *models.Comment) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO comments (id, commenter_id, post_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.CommenterID, c.PostID, c.Content, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *commentRepo) Get(ctx context.Context, id string) (*models.Comment, error) {
	c, err := scanComment(r.q.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments c WHERE c.id = $1`, id))
	return c, notFound(err)
}

func (r *commentRepo) GetForUpdate(ctx context.Context, id string) (*models.Comment, error) {
	c, err := scanComment(r.q.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments c WHERE c.id = $1 FOR UPDATE`, id))
	return c, notFound(err)
}

func (r *commentRepo) Find(ctx context.Context, f repository.CommentFilter, skip, limit int) ([]*models.Comment, int, error) {
	where := ` WHERE c.post_id = $1`
	if !f.IncludeDeleted {
		where += ` AND NOT c.is_deleted`
	}

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments c`+where, f.PostID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments c`+where+` ORDER BY c.seq LIMIT $2 OFFSET $3`,
		f.PostID, limit, skip)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

func (r *commentRepo) UpdateContent(ctx context.Context, id, content string, at time.Time) error {
	return expectRow(r.q.ExecContext(ctx,
		`UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`, content, at, id))
}

func (r *commentRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return expectRow(r.q.ExecContext(ctx,
		`UPDATE comments SET is_deleted = TRUE, updated_at = $1 WHERE id = $2`, at, id))
}

func (r *commentRepo) AddLike(ctx context.Context, commentID, userID string) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO comment_likes (comment_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT DO NOTHING`,
		commentID, userID)
	return err
}

func (r *commentRepo) RemoveLike(ctx context.Context, commentID, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`, commentID, userID)
	return err
}
