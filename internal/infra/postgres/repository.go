package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"partner-quadrant-service/internal/domain"
)

// upsertColumns are overwritten when an imported partner already exists.
var upsertColumns = []string{
	"name", "lead_potential", "investment_potential", "engagement",
	"strategic_alignment", "size", "updated_at",
}

// Repository implements domain.PartnerRepository using PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every partner ordered by name, then id for ties.
func (r *Repository) List(ctx context.Context) ([]*domain.Partner, error) {
	var models []PartnerModel
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing partners: %w", err)
	}

	partners := make([]*domain.Partner, len(models))
	for i := range models {
		partners[i] = models[i].ToDomain()
	}

	return partners, nil
}

// GetByID retrieves a single partner by its ID.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Partner, error) {
	var model PartnerModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}

		return nil, fmt.Errorf("getting partner by id: %w", err)
	}

	return model.ToDomain(), nil
}

// Create inserts a partner and copies the generated ID and timestamps back.
func (r *Repository) Create(ctx context.Context, partner *domain.Partner) error {
	model := FromDomain(partner)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("creating partner: %w", err)
	}

	partner.ID = model.ID
	partner.Source = model.Source
	partner.CreatedAt = model.CreatedAt
	partner.UpdatedAt = model.UpdatedAt

	return nil
}

// Update overwrites the editable fields of an existing partner.
func (r *Repository) Update(ctx context.Context, partner *domain.Partner) error {
	var model PartnerModel
	result := r.db.WithContext(ctx).
		Model(&model).
		Clauses(clause.Returning{}).
		Where("id = ?", partner.ID).
		Updates(map[string]any{
			"name":                 partner.Name,
			"lead_potential":       partner.LeadPotential,
			"investment_potential": partner.InvestmentPotential,
			"engagement":           partner.Engagement,
			"strategic_alignment":  partner.StrategicAlignment,
			"size":                 string(partner.Size),
			"updated_at":           time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("updating partner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPartnerNotFound
	}

	updated := model.ToDomain()
	partner.Source = updated.Source
	partner.ExternalID = updated.ExternalID
	partner.CreatedAt = updated.CreatedAt
	partner.UpdatedAt = updated.UpdatedAt

	return nil
}

// Delete removes a partner by its ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PartnerModel{})
	if result.Error != nil {
		return fmt.Errorf("deleting partner: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPartnerNotFound
	}

	return nil
}

// UpsertExternal creates or updates imported partners in a batch.
// Rows are matched on (source, external_id); local IDs are never reassigned.
func (r *Repository) UpsertExternal(ctx context.Context, partners []*domain.Partner) error {
	if len(partners) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := FromDomainSlice(partners)
	for _, m := range models {
		if m.ExternalID == nil {
			return fmt.Errorf("upserting partner %q: missing external id", m.Name)
		}
		m.ID = "" // let the database assign or keep the existing key
		m.UpdatedAt = now
	}

	err := r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "source"}, {Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		},
		clause.Returning{},
	).CreateInBatches(models, 100).Error
	if err != nil {
		return fmt.Errorf("bulk upserting partners: %w", err)
	}

	for i, m := range models {
		partners[i].ID = m.ID
		partners[i].CreatedAt = m.CreatedAt
		partners[i].UpdatedAt = m.UpdatedAt
	}

	return nil
}

// Count returns the total number of partners.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&PartnerModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting partners: %w", err)
	}

	return count, nil
}
