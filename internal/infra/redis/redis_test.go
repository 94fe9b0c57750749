//go:build !integration

package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"aura-assistant/internal/domain"
)

// memRedis implements RedisClient over a map.
type memRedis struct {
	mu      sync.Mutex
	vals    map[string]string
	counts  map[string]int64
	expires map[string]time.Duration
	failGet error
}

func newMemRedis() *memRedis {
	return &memRedis{vals: map[string]string{}, counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memRedis) Ping(ctx context.Context) error { return nil }
func (m *memRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = value.(string)
	m.expires[key] = exp
	return nil
}
func (m *memRedis) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return "", m.failGet
	}
	v, ok := m.vals[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}
func (m *memRedis) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}
func (m *memRedis) Expire(ctx context.Context, key string, exp time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[key] = exp
	return nil
}
func (m *memRedis) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.vals, k)
		delete(m.counts, k)
	}
	return nil
}
func (m *memRedis) Close() error { return nil }

func TestTokenStore(t *testing.T) {
	ctx := context.Background()
	mem := newMemRedis()
	s := NewTokenStore(mem, "aura:spotify:access_token")

	if _, err := s.Get(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}
	if err := s.Set(ctx, "tok-1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "tok-2"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx)
	if err != nil || got != "tok-2" {
		t.Fatalf("expected tok-2, got %q (%v)", got, err)
	}
	if mem.expires["aura:spotify:access_token"] != 0 {
		t.Fatalf("token key must not expire, got %v", mem.expires["aura:spotify:access_token"])
	}

	mem.failGet = errors.New("conn refused")
	if _, err := s.Get(ctx); err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("transport errors must surface as-is, got %v", err)
	}
}

func TestRateLimiter(t *testing.T) {
	ctx := context.Background()
	mem := newMemRedis()
	rl := NewRateLimiter(mem)
	key := ClientKey("10.0.0.1", "process-message")

	for i := 1; i <= 3; i++ {
		ok, err := rl.Allow(ctx, key, 3, time.Minute)
		if err != nil || !ok {
			t.Fatalf("request %d should pass, got ok=%v err=%v", i, ok, err)
		}
	}
	ok, err := rl.Allow(ctx, key, 3, time.Minute)
	if err != nil || ok {
		t.Fatalf("4th request should be limited, got ok=%v err=%v", ok, err)
	}
	if mem.expires[key] != time.Minute {
		t.Fatalf("window should be set on first hit, got %v", mem.expires[key])
	}
	if key != "rate_limit:10.0.0.1:process-message" {
		t.Fatalf("unexpected key %q", key)
	}
}
