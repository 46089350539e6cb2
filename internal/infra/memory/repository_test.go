package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partner-quadrant-service/internal/domain"
)

func TestRepository_CRUD(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	p := domain.NewPartner("Koin", 4, 5, 4, domain.SizeG)
	require.NoError(t, repo.Create(ctx, p))

	_, err := uuid.Parse(p.ID)
	require.NoError(t, err, "ID should be a UUID")

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Koin", got.Name)

	// returned values are copies
	got.Name = "mutated"
	again, _ := repo.GetByID(ctx, p.ID)
	assert.Equal(t, "Koin", again.Name)

	p.Name = "Koin Pagamentos"
	require.NoError(t, repo.Update(ctx, p))
	got, _ = repo.GetByID(ctx, p.ID)
	assert.Equal(t, "Koin Pagamentos", got.Name)

	require.NoError(t, repo.Delete(ctx, p.ID))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_NotFound(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	assert.ErrorIs(t, repo.Update(ctx, &domain.Partner{ID: "missing"}), domain.ErrPartnerNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrPartnerNotFound)
}

func TestRepository_ListOrderedByName(t *testing.T) {
	repo := NewRepository(
		&domain.Partner{Name: "Wake", Size: domain.SizeG},
		&domain.Partner{Name: "Google", Size: domain.SizeGG},
		&domain.Partner{Name: "VTEX", Size: domain.SizeGG},
	)

	partners, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, partners, 3)
	assert.Equal(t, []string{"Google", "VTEX", "Wake"}, []string{partners[0].Name, partners[1].Name, partners[2].Name})
	assert.Equal(t, domain.SourceLocal, partners[0].Source)
}

func TestRepository_UpsertExternal(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first := []*domain.Partner{
		{Name: "Wake", Size: domain.SizeG, Source: "supabase", ExternalID: "1"},
	}
	require.NoError(t, repo.UpsertExternal(ctx, first))
	id := first[0].ID

	second := []*domain.Partner{
		{Name: "Wake Commerce", Size: domain.SizeG, Source: "supabase", ExternalID: "1"},
		{Name: "Koin", Size: domain.SizeG, Source: "other", ExternalID: "1"},
	}
	require.NoError(t, repo.UpsertExternal(ctx, second))

	assert.Equal(t, id, second[0].ID, "existing external row keeps its ID")
	assert.NotEqual(t, id, second[1].ID)

	count, _ := repo.Count(ctx)
	assert.Equal(t, int64(2), count)

	got, _ := repo.GetByID(ctx, id)
	assert.Equal(t, "Wake Commerce", got.Name)

	assert.Error(t, repo.UpsertExternal(ctx, []*domain.Partner{{Name: "x", Source: "supabase"}}))
}

func TestDemoPortfolio(t *testing.T) {
	repo := NewRepository(DemoPortfolio()...)

	partners, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, partners, 5)

	for _, p := range partners {
		assert.NoError(t, p.Validate())
		assert.Equal(t, domain.SourceLocal, p.Source)
	}
	assert.Equal(t, "Google", partners[0].Name)
}
