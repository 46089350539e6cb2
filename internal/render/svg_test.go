package render

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partner-quadrant-service/internal/domain"
)

func buildLayout(t *testing.T, partners ...*domain.Partner) domain.ChartLayout {
	t.Helper()
	layout, err := domain.BuildChartLayout(partners, 800, 600)
	require.NoError(t, err)
	return layout
}

func partner(id, name string, lead, investment, engagement int, size domain.CompanySize) *domain.Partner {
	p := domain.NewPartner(name, lead, investment, engagement, size)
	p.ID = id
	return p
}

func TestSVG_WellFormed(t *testing.T) {
	layout := buildLayout(t,
		partner("1", "VTEX", 5, 4, 5, domain.SizeGG),
		partner("2", `Tom & Jerry's <Co>`, 1, 1, 1, domain.SizePP),
	)

	out := SVG(layout)

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error(), "svg must be well-formed XML")
			break
		}
	}
	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="800" height="600"`))
	assert.Contains(t, out, "Tom &amp; Jerry&apos;s &lt;Co&gt;")
}

func TestSVG_Frame(t *testing.T) {
	out := SVG(buildLayout(t))

	assert.Contains(t, out, `<g transform="translate(60,40)">`)
	assert.Equal(t, 2, strings.Count(out, `class="divider"`))
	assert.Contains(t, out, `stroke-dasharray="4,4"`)
	assert.Equal(t, 4, strings.Count(out, `class="quadrant-label"`))
	assert.Contains(t, out, "Lead Generation Potential")
	assert.Contains(t, out, `transform="rotate(-90)"`)
	for _, size := range domain.CompanySizes {
		assert.Contains(t, out, ">"+string(size)+"</text>")
	}
}

func TestSVG_FixedAndHoverLabels(t *testing.T) {
	layout := buildLayout(t,
		partner("1", "Wake", 4, 3, 4, domain.SizeG),
		partner("2", "Uappi", 4, 3, 4, domain.SizeG), // same position as Wake
		partner("3", "Google", 0, 0, 0, domain.SizePP),
	)
	require.Len(t, layout.Labels.HoverOnly, 2)

	out := SVG(layout)

	assert.Equal(t, 3, strings.Count(out, `<g class="point">`))
	assert.Equal(t, 1, strings.Count(out, `class="label"`))
	assert.Equal(t, 2, strings.Count(out, `class="hover-label"`))
	assert.Contains(t, out, `.point:hover .hover-label{visibility:visible}`)
	assert.Contains(t, out, `<text class="label"`)
	assert.Contains(t, out, ">Google</text>")
}

func TestSVG_Tooltip(t *testing.T) {
	out := SVG(buildLayout(t, partner("1", "Koin", 4, 5, 3, domain.SizeG)))

	assert.Contains(t, out, "<title>Koin\nSize: G\nEngagement: 3\nLead: 4\nInvestment: 5</title>")
	// radius = 5 + engagement*2
	assert.Contains(t, out, `r="11"`)
	assert.Contains(t, out, `fill="`+domain.SizeG.Color()+`"`)
}

func TestSVG_DuplicateNamesWithoutIDs(t *testing.T) {
	out := SVG(buildLayout(t,
		partner("", "Twin", 1, 1, 1, domain.SizeP),
		partner("", "Twin", 5, 5, 5, domain.SizeP),
	))

	assert.Equal(t, 2, strings.Count(out, ">Twin</text>"))
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{60, "60"},
		{12.5, "12.5"},
		{1.0 / 3, "0.33"},
		{-0.001, "0"},
		{-14.25, "-14.25"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, num(tt.in))
	}
}
