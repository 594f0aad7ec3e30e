package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/at-ishikawa/imjang/internal/config"
)

// Store is an expiring counter store shared by every process that serves requests.
type Store interface {
	// Incr increments key and returns the new value. A new key expires after ttl.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Set stores key with a ttl.
	Set(ctx context.Context, key string, ttl time.Duration) error
	// Exists reports whether key is present and not expired.
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// NewStore returns a RedisStore when cfg has an address and a MemoryStore otherwise.
// The returned close function releases the Redis connection.
func NewStore(ctx context.Context, cfg config.RedisConfig) (Store, func() error, error) {
	if cfg.Addr == "" {
		return NewMemoryStore(), func() error { return nil }, nil
	}
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return NewRedisStore(c), c.Close, nil
}

// RedisStore implements Store on Redis.
type RedisStore struct {
	c *redis.Client
}

func NewRedisStore(c *redis.Client) *RedisStore {
	return &RedisStore{c: c}
}

// Incr creates key with its ttl and increments it in one transaction, so a counter never
// outlives its window.
func (s *RedisStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	if _, err := s.c.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, ttl)
		incr = pipe.Incr(ctx, key)
		return nil
	}); err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	return incr.Val(), nil
}

func (s *RedisStore) Set(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.c.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.c.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", key, err)
	}
	return n > 0, nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.c.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("del: %w", err)
	}
	return nil
}

type memoryEntry struct {
	value    int64
	expireAt time.Time
}

// MemoryStore implements Store in process memory. Expired entries are dropped when they are next touched.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(key)
	if !ok {
		e = memoryEntry{expireAt: s.now().Add(ttl)}
	}
	e.value++
	s.entries[key] = e
	return e.value, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{value: 1, expireAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.live(key)
	return ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}

// live must be called with mu held.
func (s *MemoryStore) live(key string) (memoryEntry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !s.now().Before(e.expireAt) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}
