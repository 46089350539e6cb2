// Package registry builds the configured record store clients.
package registry

import (
	"go.uber.org/zap"

	"partner-quadrant-service/internal/config"
	"partner-quadrant-service/internal/domain"
	"partner-quadrant-service/internal/infra/recordstore"
	"partner-quadrant-service/internal/infra/recordstore/supabase"
)

// NewSources creates every enabled record source. A disabled source, or one
// with no URL, is left out and logged.
func NewSources(cfg config.RecordStoreConfig, logger *zap.Logger) []domain.RecordSource {
	sources := make([]domain.RecordSource, 0, 1)

	sb := cfg.Supabase
	if !sb.Enabled || sb.URL == "" {
		logger.Info("record source disabled", zap.String("source", supabase.SourceName))
		return sources
	}

	sources = append(sources, supabase.New(
		supabase.Config{
			ClientConfig: recordstore.ClientConfig{
				BaseURL: sb.URL,
				Timeout: sb.Timeout,
				Retry: recordstore.RetryConfig{
					MaxAttempts: sb.Retry.MaxAttempts,
					WaitTime:    sb.Retry.WaitTime,
					MaxWaitTime: sb.Retry.MaxWaitTime,
				},
				CB: recordstore.CBConfig{
					MaxRequests:  sb.CB.MaxRequests,
					Interval:     sb.CB.Interval,
					Timeout:      sb.CB.Timeout,
					FailureRatio: sb.CB.FailureRatio,
				},
			},
			APIKey: sb.APIKey,
			Table:  sb.Table,
		},
		logger.With(zap.String("source", supabase.SourceName)),
	))

	return sources
}
