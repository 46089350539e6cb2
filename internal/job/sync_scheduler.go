// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"partner-quadrant-service/internal/app/service"
	"partner-quadrant-service/pkg/locker"
)

// lockKey guards the import so that only one replica syncs per interval.
const lockKey = "sync:scheduler:lock"

// Syncer imports partners from every record source.
type Syncer interface {
	SyncAll(ctx context.Context) []service.SyncResult
}

// SyncConfig holds sync scheduler configuration.
type SyncConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// SyncScheduler periodically imports partners from the record store.
//
// The lock is held for the whole interval after a clean run, so other
// replicas skip their tick. A run with any failed source releases it so the
// next tick anywhere can retry.
type SyncScheduler struct {
	syncer   Syncer
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	locker   locker.DistributedLocker

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncScheduler creates a new SyncScheduler.
func NewSyncScheduler(
	syncer Syncer,
	cfg SyncConfig,
	logger *zap.Logger,
	l locker.DistributedLocker,
) *SyncScheduler {
	return &SyncScheduler{
		syncer:   syncer,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   logger,
		locker:   l,
	}
}

// Start launches the background loop. It returns immediately.
func (s *SyncScheduler) Start(runOnStartup bool) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.logger.Info("starting sync scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(ctx, runOnStartup)
}

// Stop cancels the loop and waits for an in-flight run to return.
func (s *SyncScheduler) Stop() {
	if s.cancel == nil {
		return
	}

	s.logger.Info("stopping sync scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("sync scheduler stopped")
}

func (s *SyncScheduler) run(ctx context.Context, runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.RunOnce(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs one locked sync. It reports whether this instance ran
// the import; false means the lock was held elsewhere or could not be taken.
func (s *SyncScheduler) RunOnce(ctx context.Context) bool {
	acquired, err := s.locker.Acquire(ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire sync lock", zap.Error(err))
		return false
	}
	if !acquired {
		s.logger.Debug("sync lock held by another instance, skipping")
		return false
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results := s.syncer.SyncAll(runCtx)

	imported, rejected, failed := 0, 0, 0
	for _, r := range results {
		rejected += r.Rejected
		if r.Error != nil {
			failed++
			s.logger.Warn("source sync failed",
				zap.String("source", r.Source),
				zap.Error(r.Error),
			)
			continue
		}
		imported += r.Imported
	}

	if failed > 0 {
		// release on the parent context: runCtx may already be expired
		if err := s.locker.Release(context.WithoutCancel(ctx), lockKey); err != nil {
			s.logger.Error("failed to release sync lock", zap.Error(err))
		}
		s.logger.Info("sync finished with errors, lock released",
			zap.Int("imported", imported),
			zap.Int("rejected", rejected),
			zap.Int("sources_failed", failed),
		)
		return true
	}

	s.logger.Info("sync finished, lock held for cooldown",
		zap.Int("imported", imported),
		zap.Int("rejected", rejected),
		zap.Duration("cooldown", s.interval),
	)

	return true
}
