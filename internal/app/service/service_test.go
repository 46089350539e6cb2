package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"partner-quadrant-service/internal/domain"
)

// seedPartners is the initial portfolio used across service tests.
func seedPartners() []*domain.Partner {
	return []*domain.Partner{
		{Name: "VTEX", LeadPotential: 5, InvestmentPotential: 4, Engagement: 5, StrategicAlignment: 5, Size: domain.SizeGG},
		{Name: "Koin", LeadPotential: 4, InvestmentPotential: 5, Engagement: 4, StrategicAlignment: 4, Size: domain.SizeG},
		{Name: "Google", LeadPotential: 5, InvestmentPotential: 1, Engagement: 1, StrategicAlignment: 1, Size: domain.SizeGG},
		{Name: "Wake", LeadPotential: 4, InvestmentPotential: 3, Engagement: 4, StrategicAlignment: 5, Size: domain.SizeG},
		{Name: "Uappi", LeadPotential: 5, InvestmentPotential: 3, Engagement: 4, StrategicAlignment: 4, Size: domain.SizeG},
	}
}

// fakeCache is an in-memory domain.Cache that can be told to fail.
type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	fail    bool
	gets    int
	clears  int
	lastTTL time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

var errCacheDown = errors.New("cache down")

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.fail {
		return nil, errCacheDown
	}
	return c.data[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errCacheDown
	}
	c.data[key] = value
	c.lastTTL = ttl
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *fakeCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clears++
	if c.fail {
		return errCacheDown
	}
	c.data = make(map[string][]byte)
	return nil
}

func (c *fakeCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// fakeSource is a domain.RecordSource returning canned rows.
type fakeSource struct {
	name string
	rows []*domain.Partner
	err  error
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Fetch(_ context.Context) ([]*domain.Partner, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*domain.Partner, len(s.rows))
	for i, r := range s.rows {
		c := *r
		out[i] = &c
	}
	return out, nil
}

func (s *fakeSource) HealthCheck(_ context.Context) error { return s.err }

// failingRepo wraps a repository and fails List.
type failingRepo struct {
	domain.PartnerRepository
}

func (failingRepo) List(context.Context) ([]*domain.Partner, error) {
	return nil, errors.New("db down")
}

// racingRepo runs onList after loading, standing in for a write that lands
// while a layout is being built.
type racingRepo struct {
	domain.PartnerRepository
	onList func()
}

func (r *racingRepo) List(ctx context.Context) ([]*domain.Partner, error) {
	partners, err := r.PartnerRepository.List(ctx)
	if r.onList != nil {
		r.onList()
	}
	return partners, err
}
