// Package postgres implements repository.Store on database/sql with the
// lib/pq driver. Mirror relations (follows, likes) are single join-table
// rows, so both sides of a relation are always written together.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"masterboxer.com/project-social-blog/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB // nil inside a transaction
	q  querier
}

func New(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Users() repository.UserRepository       { return &userRepo{q: s.q} }
func (s *Store) Posts() repository.PostRepository       { return &postRepo{q: s.q} }
func (s *Store) Comments() repository.CommentRepository { return &commentRepo{q: s.q} }

func (s *Store) RunInTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&Store{q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// expectRow maps an UPDATE that touched nothing to ErrNotFound.
func expectRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
