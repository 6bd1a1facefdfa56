package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"masterboxer.com/project-social-blog/models"
	"masterboxer.com/project-social-blog/repository/memory"
)

// MockClock advances one second on every call so creation order is
// visible in timestamps.
type MockClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type MockHasher struct{}

func (MockHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (MockHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

type MockTokens struct{}

func (MockTokens) Issue(userID, email string) (string, error) {
	return "token-" + userID, nil
}

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	clock := &MockClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New(store, MockHasher{}, MockTokens{}, WithClock(clock)), store
}

func mustUser(t *testing.T, s *Service, name string) *models.Principal {
	t.Helper()
	u, err := s.CreateUser(context.Background(), RegisterInput{
		Username: name,
		Email:    name + "@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", name, err)
	}
	return &models.Principal{ID: u.ID, Email: u.Email}
}

func mustPost(t *testing.T, s *Service, p *models.Principal, title, content string) models.PostView {
	t.Helper()
	v, err := s.CreatePost(context.Background(), p, PostInput{Title: title, Content: content})
	if err != nil {
		t.Fatalf("CreatePost(%s): %v", title, err)
	}
	return v
}

func mustComment(t *testing.T, s *Service, p *models.Principal, postID, content string) models.CommentView {
	t.Helper()
	v, err := s.CreateComment(context.Background(), p, postID, content)
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	return v
}

func admin(p *models.Principal) *models.Principal {
	return &models.Principal{ID: p.ID, Email: p.Email, IsAdmin: true}
}

func expectKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected %v error, got %v (%v)", want, got, err)
	}
}

func postIDs(views []models.PostView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestErrorKindsMatchSentinels(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", notFound("Post wasn't found"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("not-found error should match ErrNotFound")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatal("not-found error should not match ErrConflict")
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatal("plain errors should be internal")
	}
	if got := internal("Op", invalidArgument("bad")); KindOf(got) != KindInvalidArgument {
		t.Fatalf("internal should pass typed errors through, got %v", got)
	}
	if got := internal("Op", errors.New("pq: connection refused")); got.Error() != "Something went wrong" {
		t.Fatalf("internal leaked storage detail: %q", got.Error())
	}
}

func TestLocalSequenceSeedsOnce(t *testing.T) {
	calls := 0
	seq := NewLocalSequence(func(ctx context.Context) (int, error) {
		calls++
		return 3, nil
	})

	for want := 3; want < 6; want++ {
		got, err := seq.Next(context.Background())
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if got != want {
			t.Fatalf("Next = %d, want %d", got, want)
		}
	}
	if calls != 1 {
		t.Fatalf("seed called %d times, want 1", calls)
	}
}

func TestLocalSequenceRetriesFailedSeed(t *testing.T) {
	fail := true
	seq := NewLocalSequence(func(ctx context.Context) (int, error) {
		if fail {
			return 0, errors.New("count failed")
		}
		return 7, nil
	})

	if _, err := seq.Next(context.Background()); err == nil {
		t.Fatal("expected seed error")
	}
	fail = false
	got, err := seq.Next(context.Background())
	if err != nil || got != 7 {
		t.Fatalf("Next = %d, %v; want 7", got, err)
	}
}

func TestLocalSequenceConcurrentCallsAreDistinct(t *testing.T) {
	seq := NewLocalSequence(func(ctx context.Context) (int, error) { return 0, nil })

	const n = 50
	var wg sync.WaitGroup
	results := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := seq.Next(context.Background())
			if err != nil {
				t.Errorf("Next: %v", err)
				return
			}
			results <- v
		}()
	}
	wg.Wait()
	close(results)

	seen := models.NewIDSet()
	for v := range results {
		key := fmt.Sprint(v)
		if seen.Has(key) {
			t.Fatalf("duplicate sequence number %d", v)
		}
		seen.Add(key)
	}
	if seen.Len() != n {
		t.Fatalf("got %d numbers, want %d", seen.Len(), n)
	}
}
