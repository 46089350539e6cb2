package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"partner-quadrant-service/internal/domain"
)

// PartnerService handles partner management and score explanations.
// Every write invalidates the cached chart layouts.
type PartnerService struct {
	repo   domain.PartnerRepository
	charts *ChartService
	logger *zap.Logger
}

// NewPartnerService creates a new PartnerService.
func NewPartnerService(repo domain.PartnerRepository, charts *ChartService, logger *zap.Logger) *PartnerService {
	return &PartnerService{
		repo:   repo,
		charts: charts,
		logger: logger,
	}
}

// List returns every partner ordered by name.
func (s *PartnerService) List(ctx context.Context) ([]*domain.Partner, error) {
	partners, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list partners failed", zap.Error(err))
		return nil, err
	}

	return partners, nil
}

// Get returns a single partner or domain.ErrPartnerNotFound.
func (s *PartnerService) Get(ctx context.Context, id string) (*domain.Partner, error) {
	partner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("get partner failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrPartnerNotFound
	}

	return partner, nil
}

// Create validates and stores a new local partner.
func (s *PartnerService) Create(ctx context.Context, partner *domain.Partner) error {
	partner.Source = domain.SourceLocal
	partner.ExternalID = ""
	if err := partner.Validate(); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, partner); err != nil {
		s.logger.Error("create partner failed", zap.String("name", partner.Name), zap.Error(err))
		return fmt.Errorf("creating partner: %w", err)
	}

	s.logger.Info("partner created",
		zap.String("id", partner.ID),
		zap.String("name", partner.Name),
	)
	s.charts.Invalidate(ctx)

	return nil
}

// Update validates and overwrites the editable fields of a partner.
func (s *PartnerService) Update(ctx context.Context, partner *domain.Partner) error {
	if err := partner.Validate(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, partner); err != nil {
		if errors.Is(err, domain.ErrPartnerNotFound) {
			return err
		}
		s.logger.Error("update partner failed", zap.String("id", partner.ID), zap.Error(err))
		return fmt.Errorf("updating partner: %w", err)
	}

	s.logger.Info("partner updated", zap.String("id", partner.ID))
	s.charts.Invalidate(ctx)

	return nil
}

// Delete removes a partner.
func (s *PartnerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPartnerNotFound) {
			return err
		}
		s.logger.Error("delete partner failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("deleting partner: %w", err)
	}

	s.logger.Info("partner deleted", zap.String("id", id))
	s.charts.Invalidate(ctx)

	return nil
}

// Explain returns the partner together with the term-by-term derivation
// of its chart position.
func (s *PartnerService) Explain(ctx context.Context, id string) (*domain.Partner, domain.ScoreExplanation, error) {
	partner, err := s.Get(ctx, id)
	if err != nil {
		return nil, domain.ScoreExplanation{}, err
	}

	return partner, domain.ExplainPosition(partner), nil
}

// Count returns the total number of partners.
func (s *PartnerService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
