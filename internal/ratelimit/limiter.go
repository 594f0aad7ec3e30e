// Package ratelimit locks out clients that keep failing to authenticate.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/imjang/internal/apperr"
	"github.com/at-ishikawa/imjang/internal/config"
)

const (
	DefaultWindow      = 10 * time.Minute
	DefaultLock        = 15 * time.Minute
	DefaultMaxAttempts = 5
)

// Limiter counts failures per identity and client address. MaxAttempts failures within Window lock the
// pair for Lock.
type Limiter struct {
	store       Store
	window      time.Duration
	lock        time.Duration
	maxAttempts int64
}

// NewLimiter creates a Limiter. Zero values in cfg fall back to the defaults.
func NewLimiter(store Store, cfg config.RateLimitConfig) *Limiter {
	l := &Limiter{
		store:       store,
		window:      time.Duration(cfg.WindowSeconds) * time.Second,
		lock:        time.Duration(cfg.LockSeconds) * time.Second,
		maxAttempts: int64(cfg.MaxAttempts),
	}
	if l.window <= 0 {
		l.window = DefaultWindow
	}
	if l.lock <= 0 {
		l.lock = DefaultLock
	}
	if l.maxAttempts <= 0 {
		l.maxAttempts = DefaultMaxAttempts
	}
	return l
}

// Key builds the limiter key of an identity (an email or other login name) and a client address.
func Key(identity, clientIP string) string {
	identity = strings.ToLower(strings.TrimSpace(identity))
	clientIP = strings.TrimSpace(clientIP)
	if clientIP == "" {
		clientIP = "unknown"
	}
	return identity + "|" + clientIP
}

// Allow returns TooManyRequests while key is locked.
func (l *Limiter) Allow(ctx context.Context, key string) error {
	locked, err := l.store.Exists(ctx, lockKey(key))
	if err != nil {
		return fmt.Errorf("check lock: %w", err)
	}
	if locked {
		return apperr.TooManyRequests("too many failed attempts, try again later")
	}
	return nil
}

// Fail records a failed attempt and locks key once the limit is reached.
func (l *Limiter) Fail(ctx context.Context, key string) error {
	n, err := l.store.Incr(ctx, attemptsKey(key), l.window)
	if err != nil {
		return fmt.Errorf("count failure: %w", err)
	}
	if n < l.maxAttempts {
		return nil
	}

	if err := l.store.Set(ctx, lockKey(key), l.lock); err != nil {
		return fmt.Errorf("lock key: %w", err)
	}
	if err := l.store.Delete(ctx, attemptsKey(key)); err != nil {
		return fmt.Errorf("reset attempts: %w", err)
	}
	slog.Warn("rate limit lock", "key", key, "attempts", n, "lock", l.lock)
	return nil
}

// Reset forgets the failures of key after a successful attempt.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if err := l.store.Delete(ctx, attemptsKey(key), lockKey(key)); err != nil {
		return fmt.Errorf("reset key: %w", err)
	}
	return nil
}

func attemptsKey(key string) string {
	return "imjang:ratelimit:attempts:" + key
}

func lockKey(key string) string {
	return "imjang:ratelimit:lock:" + key
}
