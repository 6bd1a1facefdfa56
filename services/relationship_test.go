package services

import (
	"context"
	"strings"
	"testing"

	"masterboxer.com/project-social-blog/ids"
	"masterboxer.com/project-social-blog/models"
)

func TestSetFollowMirrorsBothSides(t *testing.T) {
	s, store := newTestService(t)
	ctx := context.Background()
	a := mustUser(t, s, "alice")
	b := mustUser(t, s, "bob")

	status, err := s.SetFollow(ctx, a, b.ID, true)
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	if !status.Following {
		t.Fatal("expected follow_status true")
	}

	ua, _ := store.Users().Get(ctx, a.ID)
	ub, _ := store.Users().Get(ctx, b.ID)
	if !ua.Following.Has(b.ID) || !ub.Followers.Has(a.ID) {
		t.Fatalf("follow not mirrored: a.following=%v b.followers=%v", ua.Following.Slice(), ub.Followers.Slice())
	}

	status, err = s.SetFollow(ctx, a, b.ID, false)
	if err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if status.Following {
		t.Fatal("expected follow_status false")
	}

	ua, _ = store.Users().Get(ctx, a.ID)
	ub, _ = store.Users().Get(ctx, b.ID)
	if ua.Following.Has(b.ID) || ub.Followers.Has(a.ID) {
		t.Fatal("unfollow left one side behind")
	}
}

func TestSetFollowIsIdempotent(t *testing.T) {
	s, store := newTestService(t)
	ctx := context.Background()
	a := mustUser(t, s, "alice")
	b := mustUser(t, s, "bob")

	for i := 0; i < 2; i++ {
		if _, err := s.SetFollow(ctx, a, b.ID, true); err != nil {
			t.Fatalf("follow #%d: %v", i+1, err)
		}
	}
	ua, _ := store.Users().Get(ctx, a.ID)
	ub, _ := store.Users().Get(ctx, b.ID)
	if ua.Following.Len() != 1 || ub.Followers.Len() != 1 {
		t.Fatalf("following=%d followers=%d, want 1 and 1", ua.Following.Len(), ub.Followers.Len())
	}

	// Unfollowing someone never followed is a successful no-op.
	c := mustUser(t, s, "carol")
	status, err := s.SetFollow(ctx, a, c.ID, false)
	if err != nil || status.Following {
		t.Fatalf("unfollow of stranger = %+v, %v", status, err)
	}
}

func TestSetFollowRejections(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	a := mustUser(t, s, "alice")
	b := mustUser(t, s, "bob")

	tests := []struct {
		name   string
		caller *models.Principal
		target string
		want   Kind
	}{
		{"self follow", a, a.ID, KindInvalidArgument},
		{"self follow lower-case id", a, strings.ToLower(a.ID), KindInvalidArgument},
		{"malformed target", a, "not-an-id", KindInvalidArgument},
		{"unknown target", a, ids.New(), KindNotFound},
		{"anonymous caller", nil, b.ID, KindUnauthorized},
		{"stale caller", &models.Principal{ID: ids.New()}, b.ID, KindUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.SetFollow(ctx, tt.caller, tt.target, true)
			expectKind(t, err, tt.want)
		})
	}
}

func TestSetFollowChecksTargetBeforeCaller(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.SetFollow(context.Background(), &models.Principal{ID: ids.New()}, ids.New(), true)
	expectKind(t, err, KindNotFound)
}

func TestListFollowersOrderedByID(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	a := mustUser(t, s, "alice")
	b := mustUser(t, s, "bob")
	c := mustUser(t, s, "carol")
	d := mustUser(t, s, "dave")

	for _, target := range []string{d.ID, b.ID, c.ID} {
		if _, err := s.SetFollow(ctx, a, target, true); err != nil {
			t.Fatalf("follow: %v", err)
		}
	}
	if err := s.DeleteUser(ctx, c); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	page, err := s.ListFollowers(ctx, a, 0)
	if err != nil {
		t.Fatalf("ListFollowers: %v", err)
	}
	if len(page.Data) != 2 || page.Data[0].ID != b.ID || page.Data[1].ID != d.ID {
		t.Fatalf("unexpected listing %+v", page.Data)
	}
	if page.Prev || page.Next {
		t.Fatalf("prev=%v next=%v, want both false", page.Prev, page.Next)
	}
	if page.Data[0].FollowersCount != 1 {
		t.Fatalf("followers count = %d, want 1", page.Data[0].FollowersCount)
	}

	_, err = s.ListFollowers(ctx, nil, 0)
	expectKind(t, err, KindUnauthorized)
}

func TestSetFollowDeletedTarget(t *testing.T) {
	s, store := newTestService(t)
	ctx := context.Background()
	a := mustUser(t, s, "alice")
	b := mustUser(t, s, "bob")
	c := mustUser(t, s, "carol")

	if _, err := s.SetFollow(ctx, a, b.ID, true); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := s.DeleteUser(ctx, b); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	_, err := s.SetFollow(ctx, c, b.ID, true)
	expectKind(t, err, KindNotFound)

	status, err := s.SetFollow(ctx, a, b.ID, false)
	if err != nil || status.Following {
		t.Fatalf("unfollow deleted = %+v, %v", status, err)
	}
	ua, _ := store.Users().Get(ctx, a.ID)
	if ua.Following.Has(b.ID) {
		t.Fatal("deleted account still followed")
	}
}
