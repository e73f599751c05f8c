package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store counts requests per key within a fixed window. Incr returns the
// count including the current request and the time until the window resets.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	Decr(ctx context.Context, key string) error
}

// redisStore keeps windows in Redis so limits hold across instances.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed window store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	count := incr.Val()
	resetAfter := ttl.Val()
	if count == 1 || resetAfter < 0 {
		// first hit in this window, or key without expiry after a crash
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return count, window, err
		}
		resetAfter = window
	}
	return count, resetAfter, nil
}

func (s *redisStore) Decr(ctx context.Context, key string) error {
	return s.client.Decr(ctx, key).Err()
}

// memoryStore is the single-instance fallback used when Redis is disabled.
type memoryStore struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

// NewMemoryStore builds an in-memory window store.
func NewMemoryStore() Store {
	return &memoryStore{windows: make(map[string]*memoryWindow)}
}

func (s *memoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.windows[key]
	if !ok || now.After(entry.resetAt) {
		entry = &memoryWindow{resetAt: now.Add(window)}
		s.windows[key] = entry
	}
	entry.count++
	return entry.count, time.Until(entry.resetAt), nil
}

func (s *memoryStore) Decr(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.windows[key]; ok && entry.count > 0 {
		entry.count--
	}
	return nil
}
