package services

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const DefaultSequenceKey = "posts:sequence"

// RedisSequence keeps the post counter in redis so every replica draws
// from the same atomic INCR.
type RedisSequence struct {
	client redis.UniversalClient
	key    string
	seed   CountFunc
}

func NewRedisSequence(client redis.UniversalClient, key string, seed CountFunc) *RedisSequence {
	if key == "" {
		key = DefaultSequenceKey
	}
	return &RedisSequence{client: client, key: key, seed: seed}
}

func (s *RedisSequence) Next(ctx context.Context) (int, error) {
	exists, err := s.client.Exists(ctx, s.key).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		n, err := s.seed(ctx)
		if err != nil {
			return 0, err
		}
		// Another replica may have seeded first; SETNX keeps its value.
		if err := s.client.SetNX(ctx, s.key, n, 0).Err(); err != nil {
			return 0, err
		}
	}

	v, err := s.client.Incr(ctx, s.key).Result()
	if err != nil {
		return 0, err
	}
	return int(v - 1), nil
}
