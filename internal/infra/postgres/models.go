package postgres

import (
	"time"

	"partner-quadrant-service/internal/domain"
)

// PartnerModel is the GORM model for the partners table.
type PartnerModel struct {
	ID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string `gorm:"type:varchar(120);not null;index"`

	// Ratings
	LeadPotential       int `gorm:"not null;default:0;check:chk_partners_lead,lead_potential BETWEEN 0 AND 5"`
	InvestmentPotential int `gorm:"not null;default:0;check:chk_partners_investment,investment_potential BETWEEN 0 AND 5"`
	Engagement          int `gorm:"not null;default:0;check:chk_partners_engagement,engagement BETWEEN 0 AND 5"`
	StrategicAlignment  int `gorm:"not null;default:0;check:chk_partners_alignment,strategic_alignment BETWEEN 0 AND 5"`

	Size string `gorm:"type:varchar(2);not null;check:chk_partners_size,size IN ('PP','P','M','G','GG')"`

	// Origin; external_id stays NULL for local partners
	Source     string  `gorm:"type:varchar(50);not null;default:local;uniqueIndex:uq_partners_source_external"`
	ExternalID *string `gorm:"type:varchar(100);uniqueIndex:uq_partners_source_external"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for PartnerModel.
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts PartnerModel to domain.Partner.
func (m *PartnerModel) ToDomain() *domain.Partner {
	p := &domain.Partner{
		ID:                  m.ID,
		Name:                m.Name,
		LeadPotential:       m.LeadPotential,
		InvestmentPotential: m.InvestmentPotential,
		Engagement:          m.Engagement,
		StrategicAlignment:  m.StrategicAlignment,
		Size:                domain.CompanySize(m.Size),
		Source:              m.Source,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.ExternalID != nil {
		p.ExternalID = *m.ExternalID
	}

	return p
}

// FromDomain creates a PartnerModel from domain.Partner.
func FromDomain(p *domain.Partner) *PartnerModel {
	m := &PartnerModel{
		ID:                  p.ID,
		Name:                p.Name,
		LeadPotential:       p.LeadPotential,
		InvestmentPotential: p.InvestmentPotential,
		Engagement:          p.Engagement,
		StrategicAlignment:  p.StrategicAlignment,
		Size:                string(p.Size),
		Source:              p.Source,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	if m.Source == "" {
		m.Source = domain.SourceLocal
	}
	if p.ExternalID != "" {
		ext := p.ExternalID
		m.ExternalID = &ext
	}

	return m
}

// FromDomainSlice converts a slice of domain.Partner to PartnerModels.
func FromDomainSlice(partners []*domain.Partner) []*PartnerModel {
	models := make([]*PartnerModel, len(partners))
	for i, p := range partners {
		models[i] = FromDomain(p)
	}

	return models
}
