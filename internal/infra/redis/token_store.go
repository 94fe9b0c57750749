package redis

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"

	"aura-assistant/internal/domain"
	"aura-assistant/internal/domain/ports/repository"
)

var _ repository.TokenStore = (*TokenStore)(nil)

// TokenStore shares the Spotify access token between processes. The key
// never expires; a 401 from the API is what replaces it.
type TokenStore struct {
	client RedisClient
	key    string
}

func NewTokenStore(client RedisClient, key string) *TokenStore {
	return &TokenStore{client: client, key: key}
}

func (s *TokenStore) Get(ctx context.Context) (string, error) {
	v, err := s.client.Get(ctx, s.key)
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *TokenStore) Set(ctx context.Context, token string) error {
	return s.client.Set(ctx, s.key, token, 0)
}
