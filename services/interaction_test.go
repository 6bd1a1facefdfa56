package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"masterboxer.com/project-social-blog/models"
)

func TestToggleLikePostIsInvolution(t *testing.T) {
	s, store := newTestService(t)
	ctx := context.Background()
	a := mustUser(t, s, "alice")
	post := mustPost(t, s, a, "hello", "world")

	res, err := s.ToggleLike(ctx, a, models.KindPost, post.ID)
	if err != nil || res.Status != models.LikeAdded {
		t.Fatalf("first toggle = %+v, %v; want ADD", res, err)
	}
	p, _ := store.Posts().Get(ctx, post.ID)
	u, _ := store.Users().Get(ctx, a.ID)
	if !p.Likes.Has(a.ID) || !u.PostLikes.Has(post.ID) {
		t.Fatal("like not mirrored on both sides")
	}

	res, err = s.ToggleLike(ctx, a, models.KindPost, post.ID)
	if err != nil || res.Status != models.LikeRemoved {
		t.Fatalf("second toggle = %+v, %v; want REMOVE", res, err)
	}
	p, _ = store.Posts().Get(ctx, post.ID)
	u, _ = store.Users().Get(ctx, a.ID)
	if p.Likes.Len() != 0 || u.PostLikes.Len() != 0 {
		t.Fatalf("likes=%d postLikes=%d after two toggles, want 0", p.Likes.Len(), u.PostLikes.Len())
	}
}

func TestToggleLikeCommentTwice(t *testing.T) {
	s, store := newTestService(t)
	ctx := context.Background()
	a := mustUser(t, s, "alice")
	b := mustUser(t, s, "bob")
	post := mustPost(t, s, a, "hello", "world")
	comment := mustComment(t, s, a, post.ID, "first")

	if _, err := s.ToggleLike(ctx, b, models.KindComment, comment.ID); err != nil {
		t.Fatalf("seed like: %v", err)
	}
	before, _ := store.Comments().Get(ctx, comment.ID)

	first, err := s.ToggleLike(ctx, a, models.KindComment, comment.ID)
	if err != nil || first.Status != models.LikeAdded {
		t.Fatalf("first = %+v, %v; want ADD", first, err)
	}
	u, _ := store.Users().Get(ctx, a.ID)
	if !u.CommentLikes.Has(comment.ID) {
		t.Fatal("comment like not mirrored on the user")
	}

	second, err := s.ToggleLike(ctx, a, models.KindComment, comment.ID)
	if err != nil || second.Status != models.LikeRemoved {
		t.Fatalf("second = %+v, %v; want REMOVE", second, err)
	}

	after, _ := store.Comments().Get(ctx, comment.ID)
	if after.Likes.Len() != before.Likes.Len() {
		t.Fatalf("like set size %d, want %d", after.Likes.Len(), before.Likes.Len())
	}
}

func TestToggleLikeRejectsDeletedEntities(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	a := mustUser(t, s, "alice")
	b := mustUser(t, s, "bob")

	post := mustPost(t, s, a, "hello", "world")
	comment := mustComment(t, s, b, post.ID, "nice")
	if err := s.DeletePost(ctx, a, post.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	_, err := s.ToggleLike(ctx, b, models.KindPost, post.ID)
	expectKind(t, err, KindNotFound)

	// The comment is live but its post is not.
	_, err = s.ToggleLike(ctx, a, models.KindComment, comment.ID)
	expectKind(t, err, KindNotFound)

	other := mustPost(t, s, a, "again", "content")
	gone := mustComment(t, s, b, other.ID, "bye")
	if err := s.DeleteComment(ctx, b, other.ID, gone.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	_, err = s.ToggleLike(ctx, a, models.KindComment, gone.ID)
	expectKind(t, err, KindNotFound)
}

func TestToggleLikeValidation(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	a := mustUser(t, s, "alice")
	post := mustPost(t, s, a, "hello", "world")

	_, err := s.ToggleLike(ctx, nil, models.KindPost, post.ID)
	expectKind(t, err, KindUnauthorized)

	_, err = s.ToggleLike(ctx, a, models.EntityKind("user"), post.ID)
	expectKind(t, err, KindInvalidArgument)

	_, err = s.ToggleLike(ctx, a, models.KindPost, "42")
	expectKind(t, err, KindInvalidArgument)
}

func TestToggleLikeConcurrentDistinctActors(t *testing.T) {
	s, store := newTestService(t)
	ctx := context.Background()
	owner := mustUser(t, s, "owner")
	post := mustPost(t, s, owner, "hello", "world")

	const n = 25
	actors := make([]*models.Principal, n)
	for i := range actors {
		actors[i] = mustUser(t, s, fmt.Sprintf("user%d", i))
	}

	var wg sync.WaitGroup
	for _, actor := range actors {
		wg.Add(1)
		go func(p *models.Principal) {
			defer wg.Done()
			if _, err := s.ToggleLike(ctx, p, models.KindPost, post.ID); err != nil {
				t.Errorf("ToggleLike: %v", err)
			}
		}(actor)
	}
	wg.Wait()

	p, _ := store.Posts().Get(ctx, post.ID)
	if p.Likes.Len() != n {
		t.Fatalf("likes = %d, want %d (lost update)", p.Likes.Len(), n)
	}
}

// Toggles by the same actor serialize on the entity, so the directions
// always alternate and an even number of calls ends unliked.
func TestToggleLikeConcurrentSameActor(t *testing.T) {
	s, store := newTestService(t)
	ctx := context.Background()
	a := mustUser(t, s, "alice")
	post := mustPost(t, s, a, "hello", "world")

	const n = 40
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		added   int
		removed int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.ToggleLike(ctx, a, models.KindPost, post.ID)
			if err != nil {
				t.Errorf("ToggleLike: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if res.Status == models.LikeAdded {
				added++
			} else {
				removed++
			}
		}()
	}
	wg.Wait()

	if added != n/2 || removed != n/2 {
		t.Fatalf("added=%d removed=%d, want %d each", added, removed, n/2)
	}
	p, _ := store.Posts().Get(ctx, post.ID)
	u, _ := store.Users().Get(ctx, a.ID)
	if p.Likes.Has(a.ID) || u.PostLikes.Has(post.ID) {
		t.Fatal("even number of toggles should end unliked on both sides")
	}
}
