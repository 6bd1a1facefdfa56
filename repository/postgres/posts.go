package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

type postRepo struct {
	q querier
}

const postColumns = `p.id, p.poster_id, p.title, p.content, p.comment_ids,
	p.is_deleted, p.created_at, p.updated_at,
	ARRAY(SELECT user_id FROM post_likes WHERE post_id = p.id)`

func scanPost(row rowScanner) (*models.Post, error) {
	var p models.Post
	var comments, likes pq.StringArray
	if err := row.Scan(&p.ID, &p.PosterID, &p.Title, &p.Content, &comments,
		&p.IsDeleted, &p.CreatedAt, &p.UpdatedAt, &likes); err != nil {
		return nil, err
	}
	p.Comments = []string(comments)
	p.Likes = models.NewIDSet(likes...)
	return &p, nil
}

func (r *postRepo) Create(ctx context.Context, p *models.Post) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO posts (id, poster_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.PosterID, p.Title, p.Content, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *postRepo) Get(ctx context.Context, id string) (*models.Post, error) {
	p, err := scanPost(r.q.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts p WHERE p.id = $1`, id))
	return p, notFound(err)
}

func (r *postRepo) GetForUpdate(ctx context.Context, id string) (*models.Post, error) {
	p, err := scanPost(r.q.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts p WHERE p.id = $1 FOR UPDATE`, id))
	return p, notFound(err)
}

func (r *postRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}

func (r *postRepo) Find(ctx context.Context, f repository.PostFilter, skip, limit int) ([]*models.Post, int, error) {
	if f.PosterIDs != nil && len(f.PosterIDs) == 0 {
		return nil, 0, nil
	}

	whereClauses := []string{}
	args := []any{}
	i := 1

	if !f.IncludeDeleted {
		whereClauses = append(whereClauses, "NOT p.is_deleted")
	}
	if f.PosterIDs != nil {
		whereClauses = append(whereClauses, "p.poster_id = ANY($"+strconv.Itoa(i)+")")
		args = append(args, pq.Array(f.PosterIDs))
		i++
	}
	if f.Query != "" {
		n := strconv.Itoa(i)
		whereClauses = append(whereClauses,
			"(strpos(lower(p.title), lower($"+n+")) > 0 OR strpos(lower(p.content), lower($"+n+")) > 0)")
		args = append(args, f.Query)
		i++
	}

	where := ""
	if len(whereClauses) > 0 {
		where = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts p`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := " ORDER BY p.seq"
	switch f.Sort {
	case repository.SortNewest:
		order = " ORDER BY p.created_at DESC, p.seq DESC"
	case repository.SortOldest:
		order = " ORDER BY p.created_at ASC, p.seq ASC"
	}

	query := `SELECT ` + postColumns + ` FROM posts p` + where + order +
		" LIMIT $" + strconv.Itoa(i) + " OFFSET $" + strconv.Itoa(i+1)
	args = append(args, limit, skip)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}

func (r *postRepo) UpdateContent(ctx context.Context, id, content string, at time.Time) error {
	return expectRow(r.q.ExecContext(ctx,
		`UPDATE posts SET content = $1, updated_at = $2 WHERE id = $3`, content, at, id))
}

func (r *postRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return expectRow(r.q.ExecContext(ctx,
		`UPDATE posts SET is_deleted = TRUE, updated_at = $1 WHERE id = $2`, at, id))
}

func (r *postRepo) SoftDeleteByPoster(ctx context.Context, posterID string, at time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE posts SET is_deleted = TRUE, updated_at = $1 WHERE poster_id = $2`, at, posterID)
	return err
}

func (r *postRepo) AppendComment(ctx context.Context, postID, commentID string) error {
	return expectRow(r.q.ExecContext(ctx,
		`UPDATE posts SET comment_ids = array_append(comment_ids, $1) WHERE id = $2`, commentID, postID))
}

func (r *postRepo) RemoveComment(ctx context.Context, postID, commentID string) error {
	return expectRow(r.q.ExecContext(ctx,
		`UPDATE posts SET comment_ids = array_remove(comment_ids, $1) WHERE id = $2`, commentID, postID))
}

func (r *postRepo) AddLike(ctx context.Context, postID, userID string) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO post_likes (post_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT DO NOTHING`,
		postID, userID)
	return err
}

func (r *postRepo) RemoveLike(ctx context.Context, postID, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	return err
}
