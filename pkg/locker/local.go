package locker

import (
	"context"
	"sync"
	"time"
)

// LocalLocker is an in-process DistributedLocker for single-instance
// deployments running without Redis. Locks expire after their TTL exactly
// like the Redis implementation, so the scheduler's cooldown model holds.
type LocalLocker struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewLocalLocker creates an empty in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Acquire takes key unless an unexpired holder exists.
func (l *LocalLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if until, held := l.expires[key]; held && now.Before(until) {
		return false, nil
	}
	l.expires[key] = now.Add(ttl)

	return true, nil
}

// Release drops key. Releasing an unknown key is a no-op.
func (l *LocalLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.expires, key)
	l.mu.Unlock()

	return nil
}
