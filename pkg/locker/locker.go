// Package locker coordinates background work across service instances.
// RedisLocker is used when Redis is configured; LocalLocker covers a single
// instance without Redis.
package locker

import (
	"context"
	"time"
)

// DistributedLocker provides distributed lock capabilities across multiple instances.
// Implementations must be safe for concurrent use.
//
// Typical usage:
//
//	acquired, err := locker.Acquire(ctx, "sync:scheduler:lock", interval)
//	if err != nil {
//	    return err
//	}
//	if !acquired {
//	    // Another instance holds the lock
//	    return nil
//	}
//	defer locker.Release(ctx, "sync:scheduler:lock")
//
//	// import partners while holding the lock
type DistributedLocker interface {
	// Acquire makes one attempt to take key for ttl. It returns false, not
	// an error, when another holder has it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release gives key back early. It is a no-op when this instance does
	// not hold key.
	Release(ctx context.Context, key string) error
}

var (
	_ DistributedLocker = (*RedisLocker)(nil)
	_ DistributedLocker = (*LocalLocker)(nil)
)
