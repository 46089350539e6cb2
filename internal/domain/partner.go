// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CompanySize is the ordinal company-size category of a partner.
type CompanySize string

const (
	SizePP CompanySize = "PP"
	SizeP  CompanySize = "P"
	SizeM  CompanySize = "M"
	SizeG  CompanySize = "G"
	SizeGG CompanySize = "GG"
)

// CompanySizes lists every size in ascending order.
var CompanySizes = []CompanySize{SizePP, SizeP, SizeM, SizeG, SizeGG}

// Rating bounds shared by all numeric partner attributes.
const (
	MinRating = 0
	MaxRating = 5
)

// SourceLocal marks partners created through the API rather than imported.
const SourceLocal = "local"

// ErrPartnerNotFound is returned when a partner does not exist.
var ErrPartnerNotFound = errors.New("partner not found")

// Weight returns the 1..5 weight of the size category and false for unknown sizes.
func (s CompanySize) Weight() (int, bool) {
	switch s {
	case SizePP:
		return 1, true
	case SizeP:
		return 2, true
	case SizeM:
		return 3, true
	case SizeG:
		return 4, true
	case SizeGG:
		return 5, true
	default:
		return 0, false
	}
}

// Color returns the legend colour for the size category.
func (s CompanySize) Color() string {
	switch s {
	case SizePP:
		return "#FF6B6B"
	case SizeP:
		return "#FFD93D"
	case SizeM:
		return "#6BCB77"
	case SizeG:
		return "#4D96FF"
	case SizeGG:
		return "#9B59B6"
	default:
		return "#999999"
	}
}

// IsValid reports whether s is one of the known size categories.
func (s CompanySize) IsValid() bool {
	_, ok := s.Weight()
	return ok
}

// Partner is a scored entity plotted on the quadrant.
type Partner struct {
	ID   string `json:"id,omitempty"` // empty until persisted
	Name string `json:"name"`

	// Ratings, each in [0,5]
	LeadPotential       int `json:"lead_potential"`
	InvestmentPotential int `json:"investment_potential"`
	Engagement          int `json:"engagement"`
	StrategicAlignment  int `json:"strategic_alignment"`

	Size CompanySize `json:"size"`

	// Origin of the record: "local" or the record store it was imported from
	Source     string `json:"source"`
	ExternalID string `json:"external_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPartner creates a local Partner with timestamps set.
// Strategic alignment starts at 0.
func NewPartner(name string, lead, investment, engagement int, size CompanySize) *Partner {
	now := time.Now().UTC()
	return &Partner{
		Name:                name,
		LeadPotential:       lead,
		InvestmentPotential: investment,
		Engagement:          engagement,
		Size:                size,
		Source:              SourceLocal,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// IsImported returns true if the partner came from a remote record store.
func (p *Partner) IsImported() bool {
	return p.Source != "" && p.Source != SourceLocal
}

// ValidationError describes a single invalid partner field.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid partner %s: %s", e.Field, e.Reason)
}

// Validate checks the entity invariants: non-blank name, ratings in [0,5], known size.
// The first violation found is returned.
func (p *Partner) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be blank"}
	}

	ratings := []struct {
		field string
		value int
	}{
		{"lead_potential", p.LeadPotential},
		{"investment_potential", p.InvestmentPotential},
		{"engagement", p.Engagement},
		{"strategic_alignment", p.StrategicAlignment},
	}
	for _, r := range ratings {
		if r.value < MinRating || r.value > MaxRating {
			return &ValidationError{
				Field:  r.field,
				Reason: fmt.Sprintf("must be between %d and %d, got %d", MinRating, MaxRating, r.value),
			}
		}
	}

	if !p.Size.IsValid() {
		return &ValidationError{Field: "size", Reason: fmt.Sprintf("unknown size %q", p.Size)}
	}

	return nil
}
