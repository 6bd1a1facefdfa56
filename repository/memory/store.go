// Package memory is an in-process repository.Store. It backs local
// development (STORE=memory) and the service tests.
package memory

import (
	"context"
	"sync"

	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository"
)

type state struct {
	users        map[string]*models.User
	userOrder    []string
	emails       map[string]string
	posts        map[string]*models.Post
	postOrder    []string
	comments     map[string]*models.Comment
	commentOrder []string
}

func newState() *state {
	return &state{
		users:    map[string]*models.User{},
		emails:   map[string]string{},
		posts:    map[string]*models.Post{},
		comments: map[string]*models.Comment{},
	}
}

func (st *state) clone() *state {
	c := newState()
	for id, u := range st.users {
		c.users[id] = u.Clone()
	}
	for email, id := range st.emails {
		c.emails[email] = id
	}
	for id, p := range st.posts {
		c.posts[id] = p.Clone()
	}
	for id, cm := range st.comments {
		c.comments[id] = cm.Clone()
	}
	c.userOrder = append([]string(nil), st.userOrder...)
	c.postOrder = append([]string(nil), st.postOrder...)
	c.commentOrder = append([]string(nil), st.commentOrder...)
	return c
}

// Store is safe for concurrent use. Transactions are serialized and roll
// back to a snapshot when fn fails.
type Store struct {
	mu   *sync.Mutex
	root **state
	inTx bool
}

func New() *Store {
	st := newState()
	return &Store{mu: &sync.Mutex{}, root: &st}
}

func (s *Store) Users() repository.UserRepository       { return &userRepo{s} }
func (s *Store) Posts() repository.PostRepository       { return &postRepo{s} }
func (s *Store) Comments() repository.CommentRepository { return &commentRepo{s} }

func (s *Store) RunInTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := (*s.root).clone()
	if err := fn(&Store{mu: s.mu, root: s.root, inTx: true}); err != nil {
		*s.root = snapshot
		return err
	}
	return nil
}

// lock acquires the store mutex unless the caller already holds it
// through RunInTx.
func (s *Store) lock() (*state, func()) {
	if s.inTx {
		return *s.root, func() {}
	}
	s.mu.Lock()
	st := *s.root
	return st, s.mu.Unlock
}

func page[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}
