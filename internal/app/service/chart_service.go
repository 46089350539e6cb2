// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"partner-quadrant-service/internal/domain"
	"partner-quadrant-service/internal/metrics"
)

// layoutKeyPrefix namespaces chart layout entries inside the cache.
const layoutKeyPrefix = "chart:layout:"

// ChartService builds chart layouts from the stored partners and caches
// them per viewport.
type ChartService struct {
	repo    domain.PartnerRepository
	cache   domain.Cache // nil disables caching
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger

	// generation is bumped by Invalidate; a layout built across a bump is
	// not written back.
	generation atomic.Uint64
}

// NewChartService creates a new ChartService. cache may be nil.
func NewChartService(
	repo domain.PartnerRepository,
	cache domain.Cache,
	ttl time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ChartService {
	return &ChartService{
		repo:    repo,
		cache:   cache,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

// Layout returns the chart layout for a width x height viewport. An invalid
// viewport fails with domain.ErrInvalidViewport before any data is loaded.
// Cache failures are logged and the layout is recomputed.
func (s *ChartService) Layout(ctx context.Context, width, height float64) (domain.ChartLayout, error) {
	if _, err := domain.ComputeGeometry(width, height); err != nil {
		return domain.ChartLayout{}, err
	}

	key := layoutKey(width, height)
	if layout, ok := s.fromCache(ctx, key); ok {
		return layout, nil
	}

	gen := s.generation.Load()
	partners, err := s.repo.List(ctx)
	if err != nil {
		return domain.ChartLayout{}, fmt.Errorf("loading partners: %w", err)
	}

	start := time.Now()
	layout, err := domain.BuildChartLayout(partners, width, height)
	if err != nil {
		return domain.ChartLayout{}, err
	}
	elapsed := time.Since(start)
	s.metrics.ObserveLayout(elapsed, len(layout.Labels.HoverOnly))

	s.logger.Debug("chart layout built",
		zap.Float64("width", width),
		zap.Float64("height", height),
		zap.Int("points", len(layout.Points)),
		zap.Int("hover_only", len(layout.Labels.HoverOnly)),
		zap.Duration("elapsed", elapsed),
	)

	if s.generation.Load() == gen {
		s.toCache(ctx, key, layout)
	} else {
		s.logger.Debug("partners changed while building layout, not caching", zap.String("key", key))
	}

	return layout, nil
}

// Invalidate drops every cached layout. Failures are logged, never returned,
// since a stale entry expires with its TTL anyway.
func (s *ChartService) Invalidate(ctx context.Context) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Warn("chart cache invalidation failed", zap.Error(err))
	}
}

func (s *ChartService) fromCache(ctx context.Context, key string) (domain.ChartLayout, bool) {
	if s.cache == nil {
		return domain.ChartLayout{}, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		s.metrics.CacheLookup(metrics.CacheError)
		s.logger.Warn("chart cache read failed", zap.String("key", key), zap.Error(err))
		return domain.ChartLayout{}, false
	}
	if data == nil {
		s.metrics.CacheLookup(metrics.CacheMiss)
		return domain.ChartLayout{}, false
	}

	var layout domain.ChartLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		s.metrics.CacheLookup(metrics.CacheError)
		s.logger.Warn("discarding undecodable cached layout", zap.String("key", key), zap.Error(err))
		return domain.ChartLayout{}, false
	}

	s.metrics.CacheLookup(metrics.CacheHit)

	return layout, true
}

func (s *ChartService) toCache(ctx context.Context, key string, layout domain.ChartLayout) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(layout)
	if err != nil {
		s.logger.Warn("chart layout not cacheable", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("chart cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// layoutKey formats the viewport without trailing zeros: 960x600, 800.5x600.
func layoutKey(width, height float64) string {
	return layoutKeyPrefix +
		strconv.FormatFloat(width, 'f', -1, 64) + "x" +
		strconv.FormatFloat(height, 'f', -1, 64)
}
