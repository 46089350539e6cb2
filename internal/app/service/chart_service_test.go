package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"partner-quadrant-service/internal/domain"
	"partner-quadrant-service/internal/infra/memory"
	"partner-quadrant-service/internal/metrics"
)

func TestChartService_Layout(t *testing.T) {
	repo := memory.NewRepository(seedPartners()...)
	svc := NewChartService(repo, nil, time.Minute, metrics.New("test"), zap.NewNop())

	layout, err := svc.Layout(context.Background(), 800, 600)

	require.NoError(t, err)
	assert.Len(t, layout.Points, 5)
	assert.Equal(t, 700.0, layout.Geometry.InnerWidth)
	assert.Equal(t, 5, len(layout.Labels.Fixed)+len(layout.Labels.HoverOnly))

	// points follow repository order (by name)
	assert.Equal(t, "Google", layout.Points[0].Name)
}

func TestChartService_InvalidViewport(t *testing.T) {
	repo := failingRepo{memory.NewRepository()}
	svc := NewChartService(repo, nil, time.Minute, nil, zap.NewNop())

	_, err := svc.Layout(context.Background(), 50, 50)

	// rejected before the repository is touched
	assert.ErrorIs(t, err, domain.ErrInvalidViewport)
}

func TestChartService_RepositoryError(t *testing.T) {
	svc := NewChartService(failingRepo{memory.NewRepository()}, nil, time.Minute, nil, zap.NewNop())

	_, err := svc.Layout(context.Background(), 800, 600)

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrInvalidViewport))
}

func TestChartService_CachesPerViewport(t *testing.T) {
	repo := memory.NewRepository(seedPartners()...)
	cache := newFakeCache()
	svc := NewChartService(repo, cache, 10*time.Minute, nil, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Layout(ctx, 960, 600)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.len())
	assert.Equal(t, 10*time.Minute, cache.lastTTL)
	assert.Contains(t, cache.data, "chart:layout:960x600")

	// served from cache even though the repository changed underneath
	require.NoError(t, repo.Create(ctx, domain.NewPartner("Late", 1, 1, 1, domain.SizePP)))
	second, err := svc.Layout(ctx, 960, 600)
	require.NoError(t, err)
	assert.Len(t, second.Points, len(first.Points))
	assert.Equal(t, first.Labels.Fixed, second.Labels.Fixed)

	_, err = svc.Layout(ctx, 800, 600)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.len())

	svc.Invalidate(ctx)
	assert.Equal(t, 0, cache.len())

	third, err := svc.Layout(ctx, 960, 600)
	require.NoError(t, err)
	assert.Len(t, third.Points, 6)
}

func TestChartService_InvalidateDuringBuildSkipsCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRepository(seedPartners()...)
	repo := &racingRepo{PartnerRepository: store}
	cache := newFakeCache()
	svc := NewChartService(repo, cache, 10*time.Minute, nil, zap.NewNop())

	repo.onList = func() {
		repo.onList = nil
		require.NoError(t, store.Create(ctx, domain.NewPartner("Late", 1, 1, 1, domain.SizePP)))
		svc.Invalidate(ctx)
	}

	stale, err := svc.Layout(ctx, 960, 600)
	require.NoError(t, err)
	assert.Len(t, stale.Points, 5)
	assert.Equal(t, 0, cache.len())

	fresh, err := svc.Layout(ctx, 960, 600)
	require.NoError(t, err)
	assert.Len(t, fresh.Points, 6)
	assert.Equal(t, 1, cache.len())
}

func TestChartService_CacheFailureFallsBack(t *testing.T) {
	repo := memory.NewRepository(seedPartners()...)
	cache := newFakeCache()
	cache.fail = true
	svc := NewChartService(repo, cache, time.Minute, nil, zap.NewNop())

	layout, err := svc.Layout(context.Background(), 800, 600)

	require.NoError(t, err)
	assert.Len(t, layout.Points, 5)
	assert.NotPanics(t, func() { svc.Invalidate(context.Background()) })
}

func TestChartService_CorruptCacheEntry(t *testing.T) {
	repo := memory.NewRepository(seedPartners()...)
	cache := newFakeCache()
	cache.data["chart:layout:800x600"] = []byte("{not json")
	svc := NewChartService(repo, cache, time.Minute, nil, zap.NewNop())

	layout, err := svc.Layout(context.Background(), 800, 600)

	require.NoError(t, err)
	assert.Len(t, layout.Points, 5)
}

func TestLayoutKey(t *testing.T) {
	assert.Equal(t, "chart:layout:960x600", layoutKey(960, 600))
	assert.Equal(t, "chart:layout:800.5x600", layoutKey(800.5, 600))
}
