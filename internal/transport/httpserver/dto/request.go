// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"strings"

	"partner-quadrant-service/internal/domain"
)

// PartnerRequest is the body of POST and PUT /api/v1/partners.
// The three core ratings are required; strategic alignment defaults to 0.
type PartnerRequest struct {
	Name                string `json:"name" validate:"notblank,max=120"`
	LeadPotential       *int   `json:"lead_potential" validate:"required,gte=0,lte=5"`
	InvestmentPotential *int   `json:"investment_potential" validate:"required,gte=0,lte=5"`
	Engagement          *int   `json:"engagement" validate:"required,gte=0,lte=5"`
	StrategicAlignment  *int   `json:"strategic_alignment" validate:"omitempty,gte=0,lte=5"`
	Size                string `json:"size" validate:"required,oneof=PP P M G GG"`
}

// ToDomain converts a validated request into a partner.
func (r *PartnerRequest) ToDomain() *domain.Partner {
	p := domain.NewPartner(
		strings.TrimSpace(r.Name),
		deref(r.LeadPotential),
		deref(r.InvestmentPotential),
		deref(r.Engagement),
		domain.CompanySize(r.Size),
	)
	p.StrategicAlignment = deref(r.StrategicAlignment)

	return p
}

// Apply copies the request onto an existing partner, keeping its identity,
// origin and creation time.
func (r *PartnerRequest) Apply(p *domain.Partner) {
	p.Name = strings.TrimSpace(r.Name)
	p.LeadPotential = deref(r.LeadPotential)
	p.InvestmentPotential = deref(r.InvestmentPotential)
	p.Engagement = deref(r.Engagement)
	p.StrategicAlignment = deref(r.StrategicAlignment)
	p.Size = domain.CompanySize(r.Size)
}

// ChartQuery holds the viewport query parameters of the chart endpoints.
// Zero means "use the configured default".
type ChartQuery struct {
	Width  float64 `query:"width" validate:"gte=0"`
	Height float64 `query:"height" validate:"gte=0"`
}

// Resolve fills unset dimensions from the defaults.
func (q ChartQuery) Resolve(defaultWidth, defaultHeight float64) (width, height float64) {
	width, height = q.Width, q.Height
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}

	return width, height
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
