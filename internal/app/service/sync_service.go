package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"partner-quadrant-service/internal/domain"
	"partner-quadrant-service/internal/metrics"
)

// ErrSourceNotFound is returned when a sync is requested for an unknown source.
var ErrSourceNotFound = errors.New("record source not found")

// SyncService imports partners from remote record sources.
type SyncService struct {
	repo    domain.PartnerRepository
	sources []domain.RecordSource
	charts  *ChartService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSyncService creates a new SyncService.
func NewSyncService(
	repo domain.PartnerRepository,
	sources []domain.RecordSource,
	charts *ChartService,
	m *metrics.Metrics,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		repo:    repo,
		sources: sources,
		charts:  charts,
		metrics: m,
		logger:  logger,
	}
}

// SyncResult holds the outcome of importing one source.
type SyncResult struct {
	Source     string
	Fetched    int
	Imported   int
	// Rejected counts rows dropped for failing validation or lacking an
	// external ID. Superseded counts earlier rows replaced by a later row
	// with the same external ID.
	Rejected   int
	Superseded int
	Duration   time.Duration
	Error      error
}

// SyncAll imports every source concurrently. Partial failures are allowed;
// the chart cache is invalidated once if anything was imported.
func (s *SyncService) SyncAll(ctx context.Context) []SyncResult {
	results := make([]SyncResult, len(s.sources))
	var wg sync.WaitGroup

	s.logger.Info("starting sync from all sources",
		zap.Int("source_count", len(s.sources)),
	)

	for i, source := range s.sources {
		wg.Add(1)
		go func(idx int, src domain.RecordSource) {
			defer wg.Done()
			results[idx] = s.syncSource(ctx, src)
		}(i, source)
	}

	wg.Wait()

	totalImported := 0
	totalErrors := 0
	for _, r := range results {
		if r.Error != nil {
			totalErrors++
		}
		totalImported += r.Imported
	}

	if totalImported > 0 {
		s.charts.Invalidate(ctx)
	}

	s.logger.Info("sync completed",
		zap.Int("total_imported", totalImported),
		zap.Int("sources_failed", totalErrors),
	)

	return results
}

// SyncSource imports a single source by name.
func (s *SyncService) SyncSource(ctx context.Context, name string) (*SyncResult, error) {
	for _, src := range s.sources {
		if src.Name() != name {
			continue
		}

		result := s.syncSource(ctx, src)
		if result.Imported > 0 {
			s.charts.Invalidate(ctx)
		}

		return &result, result.Error
	}

	return nil, ErrSourceNotFound
}

// SourceNames returns the names of all registered sources.
func (s *SyncService) SourceNames() []string {
	names := make([]string, len(s.sources))
	for i, src := range s.sources {
		names[i] = src.Name()
	}

	return names
}

// syncSource fetches, filters and upserts one source's rows.
func (s *SyncService) syncSource(ctx context.Context, source domain.RecordSource) (result SyncResult) {
	start := time.Now()
	name := source.Name()
	result.Source = name

	defer func() {
		result.Duration = time.Since(start)
		s.metrics.SyncRun(name, result.Error)
	}()

	fetched, err := source.Fetch(ctx)
	if err != nil {
		result.Error = err
		s.logger.Warn("source fetch failed",
			zap.String("source", name),
			zap.Error(err),
		)
		return result
	}
	result.Fetched = len(fetched)

	accepted, rejected := s.acceptRows(name, fetched)
	result.Rejected = rejected
	result.Superseded = result.Fetched - rejected - len(accepted)
	s.metrics.SyncRows(name, metrics.RowRejected, result.Rejected)

	if len(accepted) > 0 {
		if err := s.repo.UpsertExternal(ctx, accepted); err != nil {
			result.Error = err
			s.logger.Error("bulk upsert failed",
				zap.String("source", name),
				zap.Error(err),
			)
			return result
		}
	}

	result.Imported = len(accepted)
	s.metrics.SyncRows(name, metrics.RowImported, result.Imported)

	s.logger.Info("source sync completed",
		zap.String("source", name),
		zap.Int("fetched", result.Fetched),
		zap.Int("imported", result.Imported),
		zap.Int("rejected", result.Rejected),
		zap.Int("superseded", result.Superseded),
		zap.Duration("duration", time.Since(start)),
	)

	return result
}

// acceptRows drops rows that fail validation or carry no external ID, and
// keeps only the last row for a repeated external ID. It returns the kept
// rows and the number dropped.
func (s *SyncService) acceptRows(source string, rows []*domain.Partner) (accepted []*domain.Partner, rejected int) {
	accepted = make([]*domain.Partner, 0, len(rows))
	position := make(map[string]int, len(rows))

	for _, p := range rows {
		p.Source = source

		if p.ExternalID == "" {
			s.logger.Warn("rejecting row without external id",
				zap.String("source", source),
				zap.String("name", p.Name),
			)
			rejected++
			continue
		}
		if err := p.Validate(); err != nil {
			s.logger.Warn("rejecting invalid row",
				zap.String("source", source),
				zap.String("external_id", p.ExternalID),
				zap.Error(err),
			)
			rejected++
			continue
		}

		if i, seen := position[p.ExternalID]; seen {
			s.logger.Debug("duplicate external id, keeping the later row",
				zap.String("source", source),
				zap.String("external_id", p.ExternalID),
			)
			accepted[i] = p
			continue
		}
		position[p.ExternalID] = len(accepted)
		accepted = append(accepted, p)
	}

	return accepted, rejected
}
