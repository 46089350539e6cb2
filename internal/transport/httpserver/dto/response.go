package dto

import (
	"time"

	"partner-quadrant-service/internal/app/service"
	"partner-quadrant-service/internal/domain"
)

// PartnerResponse is a stored partner together with its computed position.
type PartnerResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	LeadPotential       int             `json:"lead_potential"`
	InvestmentPotential int             `json:"investment_potential"`
	Engagement          int             `json:"engagement"`
	StrategicAlignment  int             `json:"strategic_alignment"`
	Size                string          `json:"size"`
	Source              string          `json:"source"`
	ExternalID          string          `json:"external_id,omitempty"`
	Position            domain.Position `json:"position"`
	Quadrant            domain.Quadrant `json:"quadrant"`
	QuadrantLabel       string          `json:"quadrant_label"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
}

// FromDomainPartner converts domain.Partner to PartnerResponse.
func FromDomainPartner(p *domain.Partner) PartnerResponse {
	pos := domain.ComputePosition(p)
	q := pos.Quadrant()

	return PartnerResponse{
		ID:                  p.ID,
		Name:                p.Name,
		LeadPotential:       p.LeadPotential,
		InvestmentPotential: p.InvestmentPotential,
		Engagement:          p.Engagement,
		StrategicAlignment:  p.StrategicAlignment,
		Size:                string(p.Size),
		Source:              p.Source,
		ExternalID:          p.ExternalID,
		Position:            pos,
		Quadrant:            q,
		QuadrantLabel:       q.String(),
		CreatedAt:           p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           p.UpdatedAt.Format(time.RFC3339),
	}
}

// PartnerListResponse represents GET /api/v1/partners.
type PartnerListResponse struct {
	Partners []PartnerResponse `json:"partners"`
	Total    int               `json:"total"`
}

// FromDomainPartners converts a partner slice, keeping its order.
func FromDomainPartners(partners []*domain.Partner) PartnerListResponse {
	resp := PartnerListResponse{
		Partners: make([]PartnerResponse, len(partners)),
		Total:    len(partners),
	}
	for i, p := range partners {
		resp.Partners[i] = FromDomainPartner(p)
	}

	return resp
}

// ScoreResponse represents GET /api/v1/partners/:id/score.
type ScoreResponse struct {
	PartnerID     string                  `json:"partner_id"`
	Name          string                  `json:"name"`
	Explanation   domain.ScoreExplanation `json:"explanation"`
	QuadrantLabel string                  `json:"quadrant_label"`
}

// FromScoreExplanation builds the score breakdown response.
func FromScoreExplanation(p *domain.Partner, e domain.ScoreExplanation) ScoreResponse {
	return ScoreResponse{
		PartnerID:     p.ID,
		Name:          p.Name,
		Explanation:   e,
		QuadrantLabel: e.Quadrant.String(),
	}
}

// SyncResultResponse represents the outcome of importing one source.
type SyncResultResponse struct {
	Source     string `json:"source"`
	Fetched    int    `json:"fetched"`
	Imported   int    `json:"imported"`
	Rejected   int    `json:"rejected"`
	Superseded int    `json:"superseded"`
	Duration   string `json:"duration"`
	Error      string `json:"error,omitempty"`
}

// FromSyncResult converts a single service.SyncResult.
func FromSyncResult(r service.SyncResult) SyncResultResponse {
	resp := SyncResultResponse{
		Source:     r.Source,
		Fetched:    r.Fetched,
		Imported:   r.Imported,
		Rejected:   r.Rejected,
		Superseded: r.Superseded,
		Duration:   r.Duration.String(),
	}
	if r.Error != nil {
		resp.Error = r.Error.Error()
	}

	return resp
}

// SyncResponse represents the response for sync all operation.
type SyncResponse struct {
	Results []SyncResultResponse `json:"results"`
	Summary SyncSummary          `json:"summary"`
}

// SyncSummary holds summary of sync operation.
type SyncSummary struct {
	TotalImported int `json:"total_imported"`
	TotalRejected int `json:"total_rejected"`
	SourcesOK     int `json:"sources_ok"`
	SourcesFailed int `json:"sources_failed"`
}

// FromSyncResults converts service.SyncResult slice to SyncResponse.
func FromSyncResults(results []service.SyncResult) SyncResponse {
	resp := SyncResponse{
		Results: make([]SyncResultResponse, len(results)),
	}

	for i, r := range results {
		resp.Results[i] = FromSyncResult(r)
		resp.Summary.TotalRejected += r.Rejected
		if r.Error != nil {
			resp.Summary.SourcesFailed++
			continue
		}
		resp.Summary.TotalImported += r.Imported
		resp.Summary.SourcesOK++
	}

	return resp
}

// SourcesResponse represents GET /api/v1/admin/sources.
type SourcesResponse struct {
	Sources []string `json:"sources"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
