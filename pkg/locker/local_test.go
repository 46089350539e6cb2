package locker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_AcquireRelease(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	acquired, err := l.Acquire(ctx, testLockKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = l.Acquire(ctx, testLockKey, time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired, "second acquisition should fail while held")

	require.NoError(t, l.Release(ctx, testLockKey))

	acquired, err = l.Acquire(ctx, testLockKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "should be able to acquire after release")
}

func TestLocalLocker_Expiry(t *testing.T) {
	l := NewLocalLocker()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	acquired, _ := l.Acquire(ctx, testLockKey, time.Minute)
	require.True(t, acquired)

	now = now.Add(59 * time.Second)
	acquired, _ = l.Acquire(ctx, testLockKey, time.Minute)
	assert.False(t, acquired, "still inside cooldown")

	now = now.Add(2 * time.Second)
	acquired, _ = l.Acquire(ctx, testLockKey, time.Minute)
	assert.True(t, acquired, "cooldown elapsed")
}

func TestLocalLocker_CanceledContext(t *testing.T) {
	l := NewLocalLocker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acquired, err := l.Acquire(ctx, testLockKey, time.Minute)
	assert.Error(t, err)
	assert.False(t, acquired)
}
