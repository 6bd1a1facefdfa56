package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisSequence(t *testing.T, seed CountFunc) (*RedisSequence, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
	t.Cleanup(func() { client.Close() })
	return NewRedisSequence(client, "", seed), mr
}

func TestRedisSequenceSeedsFromCount(t *testing.T) {
	calls := 0
	seq, mr := newRedisSequence(t, func(ctx context.Context) (int, error) {
		calls++
		return 5, nil
	})

	for want := 5; want < 8; want++ {
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
	if v, _ := mr.Get(DefaultSequenceKey); v != "8" {
		t.Fatalf("stored counter = %q, want 8", v)
	}
}

func TestRedisSequenceSharedAcrossInstances(t *testing.T) {
	seed := func(ctx context.Context) (int, error) { return 0, nil }
	mr := miniredis.RunT(t)

	seqs := make([]*RedisSequence, 2)
	for i := range seqs {
		client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
		t.Cleanup(func() { client.Close() })
		seqs[i] = NewRedisSequence(client, "", seed)
	}

	const perInstance = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[int]bool{}
	)
	for _, seq := range seqs {
		for i := 0; i < perInstance; i++ {
			wg.Add(1)
			go func(seq *RedisSequence) {
				defer wg.Done()
				n, err := seq.Next(context.Background())
				if err != nil {
					t.Errorf("Next: %v", err)
					return
				}
				mu.Lock()
				defer mu.Unlock()
				if seen[n] {
					t.Errorf("duplicate number %d", n)
				}
				seen[n] = true
			}(seq)
		}
	}
	wg.Wait()

	if len(seen) != 2*perInstance {
		t.Fatalf("got %d distinct numbers, want %d", len(seen), 2*perInstance)
	}
}

func TestRedisSequenceSeedError(t *testing.T) {
	seq, _ := newRedisSequence(t, func(ctx context.Context) (int, error) {
		return 0, errors.New("count failed")
	})
	if _, err := seq.Next(context.Background()); err == nil {
		t.Fatal("expected seed error")
	}
}
