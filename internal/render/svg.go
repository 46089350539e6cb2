// Package render draws a computed chart layout as a standalone SVG document.
package render

import (
	"fmt"
	"strings"

	"partner-quadrant-service/internal/domain"
)

// Chart palette.
const (
	backgroundColor = "#ffffff"
	dividerColor    = "#999999"
	captionColor    = "#bbbbbb"
	textColor       = "#333333"
	pointStroke     = "#ffffff"
	fontFamily      = "sans-serif"
)

// hoverCSS hides deferred labels until their point group is hovered.
const hoverCSS = `.hover-label{visibility:hidden;pointer-events:none}` +
	`.point:hover .hover-label{visibility:visible}` +
	`.point:hover circle{stroke:#333333}`

// SVG renders layout. Coordinates in the layout are relative to the plot
// area, so everything but the background is drawn inside a group shifted by
// the top/left margins.
func SVG(layout domain.ChartLayout) string {
	g := layout.Geometry

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="%s">`,
		num(g.Width), num(g.Height), num(g.Width), num(g.Height), fontFamily))
	sb.WriteString(`<style>` + hoverCSS + `</style>`)
	sb.WriteString(fmt.Sprintf(`<rect width="%s" height="%s" fill="%s"/>`,
		num(g.Width), num(g.Height), backgroundColor))
	sb.WriteString(fmt.Sprintf(`<g transform="translate(%s,%s)">`, num(g.Margins.Left), num(g.Margins.Top)))

	writeFrame(&sb, g)
	writeLegend(&sb, g.Legend)
	writePoints(&sb, layout)

	sb.WriteString(`</g></svg>`)

	return sb.String()
}

func writeFrame(sb *strings.Builder, g domain.ChartGeometry) {
	sb.WriteString(fmt.Sprintf(`<rect class="plot-area" width="%s" height="%s" fill="none" stroke="%s"/>`,
		num(g.InnerWidth), num(g.InnerHeight), dividerColor))

	for _, d := range g.Dividers {
		sb.WriteString(fmt.Sprintf(
			`<line class="divider" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-dasharray="4,4"/>`,
			num(d.X1), num(d.Y1), num(d.X2), num(d.Y2), dividerColor))
	}

	for _, q := range g.QuadrantLabels {
		sb.WriteString(fmt.Sprintf(
			`<text class="quadrant-label" x="%s" y="%s" text-anchor="middle" font-size="12" fill="%s">%s</text>`,
			num(q.X), num(q.Y), captionColor, escapeXML(q.Text)))
	}

	sb.WriteString(fmt.Sprintf(
		`<text class="axis-title" x="%s" y="%s" text-anchor="middle" font-size="13" fill="%s">%s</text>`,
		num(g.XAxisTitle.X), num(g.XAxisTitle.Y), textColor, escapeXML(g.XAxisTitle.Text)))
	sb.WriteString(fmt.Sprintf(
		`<text class="axis-title" transform="rotate(-90)" x="%s" y="%s" text-anchor="middle" font-size="13" fill="%s">%s</text>`,
		num(g.YAxisTitle.X), num(g.YAxisTitle.Y), textColor, escapeXML(g.YAxisTitle.Text)))
}

func writeLegend(sb *strings.Builder, legend []domain.LegendEntry) {
	sb.WriteString(`<g class="legend">`)
	for _, e := range legend {
		sb.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
			num(e.CX), num(e.CY), num(e.Radius), e.Color))
		sb.WriteString(fmt.Sprintf(`<text x="%s" y="%s" font-size="11" fill="%s">%s</text>`,
			num(e.TextX), num(e.TextY), textColor, escapeXML(string(e.Size))))
	}
	sb.WriteString(`</g>`)
}

// writePoints draws one group per partner: the circle with its tooltip and,
// when present, the label. Labels come from the partition in point order.
func writePoints(sb *strings.Builder, layout domain.ChartLayout) {
	labels := make(map[int]labelRef, len(layout.Points))
	index := labelIndex(layout.Points)
	for _, l := range layout.Labels.Fixed {
		if i, ok := index.take(l); ok {
			labels[i] = labelRef{placement: l}
		}
	}
	for _, l := range layout.Labels.HoverOnly {
		if i, ok := index.take(l); ok {
			labels[i] = labelRef{placement: l, hover: true}
		}
	}

	for i, p := range layout.Points {
		sb.WriteString(`<g class="point">`)
		sb.WriteString(fmt.Sprintf(
			`<circle cx="%s" cy="%s" r="%s" fill="%s" fill-opacity="0.8" stroke="%s" stroke-width="1.5">`,
			num(p.CX), num(p.CY), num(p.Radius), p.Color, pointStroke))
		sb.WriteString(`<title>` + escapeXML(tooltip(p)) + `</title></circle>`)

		if ref, ok := labels[i]; ok {
			class := "label"
			if ref.hover {
				class = "hover-label"
			}
			sb.WriteString(fmt.Sprintf(`<text class="%s" x="%s" y="%s" font-size="11" fill="%s">%s</text>`,
				class, num(ref.placement.AnchorX), num(ref.placement.AnchorY), textColor, escapeXML(ref.placement.Name)))
		}
		sb.WriteString(`</g>`)
	}
}

type labelRef struct {
	placement domain.LabelPlacement
	hover     bool
}

// pointIndex matches label placements back to points. Partners without an ID
// (unsaved) are matched by name in order.
type pointIndex map[string][]int

func labelIndex(points []domain.PlottedPartner) pointIndex {
	idx := make(pointIndex, len(points))
	for i, p := range points {
		k := p.ID + "\x00" + p.Name
		idx[k] = append(idx[k], i)
	}
	return idx
}

func (idx pointIndex) take(l domain.LabelPlacement) (int, bool) {
	k := l.PartnerID + "\x00" + l.Name
	slots := idx[k]
	if len(slots) == 0 {
		return 0, false
	}
	idx[k] = slots[1:]
	return slots[0], true
}

func tooltip(p domain.PlottedPartner) string {
	return fmt.Sprintf("%s\nSize: %s\nEngagement: %d\nLead: %d\nInvestment: %d",
		p.Name, p.Size, p.Engagement, p.LeadPotential, p.InvestmentPotential)
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
