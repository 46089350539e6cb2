package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"partner-quadrant-service/internal/domain"
)

// Row is one record of the partners table as PostgREST returns it.
type Row struct {
	ID                  FlexString `json:"id"`
	Name                string     `json:"name"`
	LeadPotential       FlexInt    `json:"lead_potential"`
	InvestmentPotential FlexInt    `json:"investment_potential"`
	Engagement          FlexInt    `json:"engagement"`
	StrategicAlignment  FlexInt    `json:"strategic_alignment"`
	Size                string     `json:"size"`
}

// ToDomain converts a Row to a domain.Partner tagged with the source name.
// Values are not validated here; the sync service drops invalid rows.
func (r *Row) ToDomain(source string) *domain.Partner {
	return &domain.Partner{
		Name:                strings.TrimSpace(r.Name),
		LeadPotential:       int(r.LeadPotential),
		InvestmentPotential: int(r.InvestmentPotential),
		Engagement:          int(r.Engagement),
		StrategicAlignment:  int(r.StrategicAlignment),
		Size:                domain.CompanySize(strings.ToUpper(strings.TrimSpace(r.Size))),
		Source:              source,
		ExternalID:          string(r.ID),
	}
}

// FlexInt decodes a JSON number, a numeric string ("4") or null (0).
// Integral floats such as 4.0 are accepted.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*f = 0
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v != math.Trunc(v) {
		return fmt.Errorf("rating %q is not an integer", raw)
	}
	*f = FlexInt(v)

	return nil
}

// FlexString decodes either a JSON string or a number into its text form,
// so both uuid and bigint primary keys work as external IDs.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())

	return nil
}
