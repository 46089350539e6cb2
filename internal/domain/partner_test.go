package domain

import (
	"errors"
	"testing"
)

func TestCompanySize_Weight(t *testing.T) {
	tests := []struct {
		size     CompanySize
		expected int
		ok       bool
	}{
		{SizePP, 1, true},
		{SizeP, 2, true},
		{SizeM, 3, true},
		{SizeG, 4, true},
		{SizeGG, 5, true},
		{"XL", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			got, ok := tt.size.Weight()
			if got != tt.expected || ok != tt.ok {
				t.Errorf("Weight() = (%d, %v), want (%d, %v)", got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestCompanySizes_Monotonic(t *testing.T) {
	prev := 0
	for _, s := range CompanySizes {
		w, _ := s.Weight()
		if w != prev+1 {
			t.Errorf("size %s weight %d, want %d", s, w, prev+1)
		}
		prev = w
	}
}

func TestNewPartner(t *testing.T) {
	p := NewPartner("VTEX", 5, 4, 5, SizeGG)

	if p.Name != "VTEX" {
		t.Errorf("expected name 'VTEX', got %q", p.Name)
	}
	if p.StrategicAlignment != 0 {
		t.Errorf("expected strategic alignment 0, got %d", p.StrategicAlignment)
	}
	if p.Source != SourceLocal {
		t.Errorf("expected source %q, got %q", SourceLocal, p.Source)
	}
	if p.IsImported() {
		t.Error("expected new partner not to be imported")
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestPartner_Validate(t *testing.T) {
	valid := func() *Partner {
		return &Partner{Name: "Koin", LeadPotential: 4, InvestmentPotential: 5, Engagement: 4, StrategicAlignment: 4, Size: SizeG}
	}

	tests := []struct {
		name      string
		mutate    func(p *Partner)
		wantField string
	}{
		{"valid", func(*Partner) {}, ""},
		{"blank name", func(p *Partner) { p.Name = "   " }, "name"},
		{"empty name", func(p *Partner) { p.Name = "" }, "name"},
		{"lead above range", func(p *Partner) { p.LeadPotential = 6 }, "lead_potential"},
		{"investment below range", func(p *Partner) { p.InvestmentPotential = -1 }, "investment_potential"},
		{"engagement above range", func(p *Partner) { p.Engagement = 10 }, "engagement"},
		{"alignment above range", func(p *Partner) { p.StrategicAlignment = 6 }, "strategic_alignment"},
		{"unknown size", func(p *Partner) { p.Size = "XXL" }, "size"},
		{"boundaries", func(p *Partner) { p.LeadPotential = 0; p.Engagement = 5 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := p.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Validate() field = %s, want %s", ve.Field, tt.wantField)
			}
		})
	}
}

func TestPartner_IsImported(t *testing.T) {
	tests := []struct {
		source   string
		expected bool
	}{
		{"", false},
		{SourceLocal, false},
		{"supabase", true},
	}

	for _, tt := range tests {
		p := &Partner{Source: tt.source}
		if got := p.IsImported(); got != tt.expected {
			t.Errorf("IsImported() with source %q = %v, want %v", tt.source, got, tt.expected)
		}
	}
}
