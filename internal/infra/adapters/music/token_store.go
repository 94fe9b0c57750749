package music

import (
	"context"
	"sync"

	"aura-assistant/internal/domain"
	"aura-assistant/internal/domain/ports/repository"
)

var _ repository.TokenStore = (*MemoryTokenStore)(nil)

// MemoryTokenStore keeps the access token in process memory.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

func (s *MemoryTokenStore) Get(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", domain.ErrNotFound
	}
	return s.token, nil
}

func (s *MemoryTokenStore) Set(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}
