package domain

import (
	"context"
	"time"
)

// PartnerRepository defines the interface for partner persistence operations.
// Implementations: internal/infra/postgres/repository.go
type PartnerRepository interface {
	// List returns all partners ordered by name.
	List(ctx context.Context) ([]*Partner, error)

	// GetByID retrieves a single partner. Returns nil, nil when it does not exist.
	GetByID(ctx context.Context, id string) (*Partner, error)

	// Create inserts a new partner and fills in its ID and timestamps.
	Create(ctx context.Context, partner *Partner) error

	// Update overwrites the editable fields of an existing partner.
	// Returns ErrPartnerNotFound if no row matches partner.ID.
	Update(ctx context.Context, partner *Partner) error

	// Delete removes a partner by ID. Returns ErrPartnerNotFound if no row matches.
	Delete(ctx context.Context, id string) error

	// UpsertExternal creates or updates imported partners keyed by source + external ID.
	UpsertExternal(ctx context.Context, partners []*Partner) error

	// Count returns the total number of partners.
	Count(ctx context.Context) (int64, error)
}

// RecordSource defines the interface for remote partner record stores.
// Implementations: internal/infra/recordstore/supabase/
type RecordSource interface {
	// Name returns the unique identifier for this source.
	Name() string

	// Fetch retrieves every partner row the source exposes.
	Fetch(ctx context.Context) ([]*Partner, error)

	// HealthCheck verifies the source is reachable.
	HealthCheck(ctx context.Context) error
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
