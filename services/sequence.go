package services

import (
	"context"
	"sync"
)

// Sequence hands out the numeric prefix of post titles. Next returns the
// number of posts that existed before this one.
type Sequence interface {
	Next(ctx context.Context) (int, error)
}

// CountFunc reports the current number of stored posts.
type CountFunc func(ctx context.Context) (int, error)

// LocalSequence is seeded lazily from the post count and then counts in
// process memory. Two processes sharing one database can hand out the same
// prefix; use RedisSequence when the API runs as more than one replica.
type LocalSequence struct {
	mu     sync.Mutex
	seed   CountFunc
	next   int
	seeded bool
}

func NewLocalSequence(seed CountFunc) *LocalSequence {
	return &LocalSequence{seed: seed}
}

func (s *LocalSequence) Next(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seeded {
		n, err := s.seed(ctx)
		if err != nil {
			return 0, err
		}
		s.next = n
		s.seeded = true
	}
	n := s.next
	s.next++
	return n, nil
}
