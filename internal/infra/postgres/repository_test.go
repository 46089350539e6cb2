package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgresContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"partner-quadrant-service/internal/domain"
	"partner-quadrant-service/internal/infra/postgres/migrations"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connected GORM DB
// with the partners schema applied (no seed rows).
//
// Prerequisites:
//   - Docker must be running
//
// OR
//   - Skip tests with: go test -short
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgresContainer.Run(ctx,
		"postgres:16-alpine",
		postgresContainer.WithDatabase("testdb"),
		postgresContainer.WithUsername("testuser"),
		postgresContainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf(`Failed to start PostgreSQL container: %v

Docker Prerequisites:
1. Ensure Docker is running
2. OR skip integration tests: go test -short

`, err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, err := gorm.Open(postgresDriver.Open(connStr), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, migrations.RunSchemaOnly(db), "Failed to run migrations")

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	return db
}

// importedPartner is a factory for partners coming from a record store.
func importedPartner(source, externalID, name string) *domain.Partner {
	return &domain.Partner{
		Name:                name,
		LeadPotential:       4,
		InvestmentPotential: 3,
		Engagement:          4,
		StrategicAlignment:  5,
		Size:                domain.SizeG,
		Source:              source,
		ExternalID:          externalID,
	}
}

// TestRepository_CRUD walks a local partner through create, read, update and delete.
func TestRepository_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	partner := domain.NewPartner("Koin", 4, 5, 4, domain.SizeG)
	partner.StrategicAlignment = 4
	require.NoError(t, repo.Create(ctx, partner))

	assert.NotEmpty(t, partner.ID, "ID should be generated")
	assert.Equal(t, domain.SourceLocal, partner.Source)

	got, err := repo.GetByID(ctx, partner.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Koin", got.Name)
	assert.Equal(t, domain.SizeG, got.Size)
	assert.Equal(t, 4, got.StrategicAlignment)

	originalUpdatedAt := got.UpdatedAt
	time.Sleep(10 * time.Millisecond)

	partner.Name = "Koin Pagamentos"
	partner.InvestmentPotential = 3
	require.NoError(t, repo.Update(ctx, partner))
	assert.True(t, partner.UpdatedAt.After(originalUpdatedAt), "UpdatedAt should be newer")

	got, err = repo.GetByID(ctx, partner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Koin Pagamentos", got.Name)
	assert.Equal(t, 3, got.InvestmentPotential)

	require.NoError(t, repo.Delete(ctx, partner.ID))

	got, err = repo.GetByID(ctx, partner.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "deleted partner should not be found")
}

// TestRepository_NotFound verifies missing rows surface as nil or ErrPartnerNotFound.
func TestRepository_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	missing := "00000000-0000-0000-0000-000000000000"

	got, err := repo.GetByID(ctx, missing)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = repo.Update(ctx, &domain.Partner{ID: missing, Name: "x", Size: domain.SizeM})
	assert.ErrorIs(t, err, domain.ErrPartnerNotFound)

	err = repo.Delete(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrPartnerNotFound)
}

// TestRepository_CheckConstraints verifies the database rejects out-of-range rows.
func TestRepository_CheckConstraints(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		partner *domain.Partner
	}{
		{"lead above range", &domain.Partner{Name: "a", LeadPotential: 6, Size: domain.SizeM}},
		{"negative engagement", &domain.Partner{Name: "b", Engagement: -1, Size: domain.SizeM}},
		{"unknown size", &domain.Partner{Name: "c", Size: "XL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, repo.Create(ctx, tt.partner))
		})
	}
}

// TestRepository_ListOrdering verifies List is ordered by name.
func TestRepository_ListOrdering(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Wake", "Google", "VTEX"} {
		require.NoError(t, repo.Create(ctx, domain.NewPartner(name, 3, 3, 3, domain.SizeM)))
	}

	partners, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, partners, 3)
	assert.Equal(t, "Google", partners[0].Name)
	assert.Equal(t, "VTEX", partners[1].Name)
	assert.Equal(t, "Wake", partners[2].Name)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

// TestUpsertExternal_MixedOperations verifies updates keep their IDs and new rows get one.
func TestUpsertExternal_MixedOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	initial := []*domain.Partner{
		importedPartner("supabase", "1", "Wake"),
		importedPartner("supabase", "2", "Uappi"),
	}
	require.NoError(t, repo.UpsertExternal(ctx, initial))

	id1, id2 := initial[0].ID, initial[1].ID
	require.NotEmpty(t, id1)
	require.NotEmpty(t, id2)

	updated := importedPartner("supabase", "1", "Wake Commerce")
	updated.Engagement = 5

	batch := []*domain.Partner{
		updated,
		importedPartner("supabase", "2", "Uappi"),
		importedPartner("supabase", "3", "VTEX"),
		importedPartner("other", "1", "Koin"),
	}
	require.NoError(t, repo.UpsertExternal(ctx, batch))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count, "same external id in another source is a new row")

	assert.Equal(t, id1, batch[0].ID, "ID should remain unchanged")
	assert.Equal(t, id2, batch[1].ID, "ID should remain unchanged")
	assert.NotEmpty(t, batch[2].ID)
	assert.NotEmpty(t, batch[3].ID)

	got, err := repo.GetByID(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, "Wake Commerce", got.Name)
	assert.Equal(t, 5, got.Engagement)
	assert.Equal(t, "1", got.ExternalID)
	assert.True(t, got.IsImported())
}

// TestUpsertExternal_RequiresExternalID rejects imported rows without a key.
func TestUpsertExternal_RequiresExternalID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	repo := NewRepository(setupTestDB(t))

	err := repo.UpsertExternal(context.Background(), []*domain.Partner{importedPartner("supabase", "", "Wake")})
	assert.Error(t, err)
}

// TestUpsertExternal_ConcurrentOperations verifies goroutine safety
func TestUpsertExternal_ConcurrentOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	const goroutines = 10
	var wg sync.WaitGroup
	errChan := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(iteration int) {
			defer wg.Done()

			p := importedPartner("supabase", "concurrent", "Partner "+string(rune('A'+iteration)))
			if err := repo.UpsertExternal(ctx, []*domain.Partner{p}); err != nil {
				errChan <- err
			}
		}(i)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		t.Errorf("concurrent upsert failed: %v", err)
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "should have exactly 1 record despite concurrent upserts")
}

// TestMigrations_Seed verifies the full migration set loads the initial portfolio.
func TestMigrations_Seed(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	require.NoError(t, migrations.Run(db))

	partners, err := NewRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, partners, 5)

	for _, p := range partners {
		assert.NoError(t, p.Validate(), p.Name)
		assert.Equal(t, domain.SourceLocal, p.Source)
	}
}
