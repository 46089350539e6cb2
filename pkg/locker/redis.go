package locker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLocker implements DistributedLocker on top of Redsync (Redlock).
// Keys are namespaced with the configured prefix.
type RedisLocker struct {
	rs      *redsync.Redsync
	logger  *zap.Logger
	prefix  string
	mutexes map[string]*redsync.Mutex
	mu      sync.Mutex
}

// NewRedisLocker creates a Redis-based distributed locker. prefix may be
// empty; otherwise every lock key becomes "<prefix>:<key>".
func NewRedisLocker(client *redis.Client, logger *zap.Logger, prefix string) *RedisLocker {
	return &RedisLocker{
		rs:      redsync.New(goredis.NewPool(client)),
		logger:  logger,
		prefix:  prefix,
		mutexes: make(map[string]*redsync.Mutex),
	}
}

// Acquire makes a single non-blocking attempt to take the lock.
// Contention is reported as (false, nil); only infrastructure failures
// and context cancellation are errors.
func (r *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	mutex := r.rs.NewMutex(
		r.name(key),
		redsync.WithExpiry(ttl),
		redsync.WithTries(1),
	)

	if err := mutex.LockContext(ctx); err != nil {
		if ctx.Err() != nil {
			return false, fmt.Errorf("acquire lock %s: %w", key, ctx.Err())
		}
		if isContention(err) {
			r.logger.Debug("lock already held by another instance", zap.String("key", key))
			return false, nil
		}

		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	r.mu.Lock()
	r.mutexes[key] = mutex
	r.mu.Unlock()

	r.logger.Debug("lock acquired",
		zap.String("key", key),
		zap.Duration("ttl", ttl),
	)

	return true, nil
}

// Release unlocks key if this instance holds it. Releasing a lock owned by
// someone else, or one that already expired, is a no-op.
func (r *RedisLocker) Release(ctx context.Context, key string) error {
	r.mu.Lock()
	mutex, exists := r.mutexes[key]
	delete(r.mutexes, key)
	r.mu.Unlock()

	if !exists {
		return nil
	}

	ok, err := mutex.UnlockContext(ctx)
	if err != nil {
		var taken *redsync.ErrTaken
		if errors.As(err, &taken) {
			// expired and re-acquired elsewhere
			return nil
		}
		return fmt.Errorf("release lock %s: %w", key, err)
	}

	r.logger.Debug("lock released",
		zap.String("key", key),
		zap.Bool("owned", ok),
	)

	return nil
}

func (r *RedisLocker) name(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

// isContention reports whether err means "someone else holds the lock".
func isContention(err error) bool {
	var taken *redsync.ErrTaken
	if errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) {
		return true
	}
	// older redsync releases wrap contention in a plain error
	return strings.Contains(err.Error(), "lock already taken")
}
