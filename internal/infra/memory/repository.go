// Package memory provides an in-process domain.PartnerRepository for demos
// and tests. Data lives only as long as the process.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"partner-quadrant-service/internal/domain"
)

// Repository is a mutex-guarded map of partners keyed by ID.
type Repository struct {
	mu       sync.RWMutex
	partners map[string]*domain.Partner
	now      func() time.Time
}

// NewRepository creates a repository holding copies of the given partners.
// Partners without an ID get a fresh UUID.
func NewRepository(seed ...*domain.Partner) *Repository {
	r := &Repository{
		partners: make(map[string]*domain.Partner, len(seed)),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, p := range seed {
		c := *p
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Source == "" {
			c.Source = domain.SourceLocal
		}
		r.partners[c.ID] = &c
	}

	return r
}

// List returns copies of every partner ordered by name, then ID.
func (r *Repository) List(_ context.Context) ([]*domain.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Partner, 0, len(r.partners))
	for _, p := range r.partners {
		c := *p
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *domain.Partner) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})

	return out, nil
}

// GetByID returns a copy of the partner, or nil when it does not exist.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.partners[id]
	if !ok {
		return nil, nil
	}
	c := *p

	return &c, nil
}

// Create stores a new partner and assigns its ID and timestamps.
func (r *Repository) Create(_ context.Context, partner *domain.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	partner.ID = uuid.NewString()
	if partner.Source == "" {
		partner.Source = domain.SourceLocal
	}
	partner.CreatedAt = now
	partner.UpdatedAt = now

	c := *partner
	r.partners[c.ID] = &c

	return nil
}

// Update overwrites the editable fields of an existing partner.
func (r *Repository) Update(_ context.Context, partner *domain.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.partners[partner.ID]
	if !ok {
		return domain.ErrPartnerNotFound
	}

	existing.Name = partner.Name
	existing.LeadPotential = partner.LeadPotential
	existing.InvestmentPotential = partner.InvestmentPotential
	existing.Engagement = partner.Engagement
	existing.StrategicAlignment = partner.StrategicAlignment
	existing.Size = partner.Size
	existing.UpdatedAt = r.now()

	*partner = *existing

	return nil
}

// Delete removes a partner by ID.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.partners[id]; !ok {
		return domain.ErrPartnerNotFound
	}
	delete(r.partners, id)

	return nil
}

// UpsertExternal inserts or updates imported partners keyed by source and external ID.
func (r *Repository) UpsertExternal(_ context.Context, partners []*domain.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bySourceKey := make(map[[2]string]*domain.Partner, len(r.partners))
	for _, p := range r.partners {
		if p.ExternalID != "" {
			bySourceKey[[2]string{p.Source, p.ExternalID}] = p
		}
	}

	now := r.now()
	for _, in := range partners {
		if in.ExternalID == "" {
			return fmt.Errorf("upserting partner %q: missing external id", in.Name)
		}

		key := [2]string{in.Source, in.ExternalID}
		if existing, ok := bySourceKey[key]; ok {
			in.ID = existing.ID
			in.CreatedAt = existing.CreatedAt
		} else {
			in.ID = uuid.NewString()
			in.CreatedAt = now
		}
		in.UpdatedAt = now

		c := *in
		r.partners[c.ID] = &c
		bySourceKey[key] = &c
	}

	return nil
}

// Count returns the number of stored partners.
func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.partners)), nil
}

var _ domain.PartnerRepository = (*Repository)(nil)
