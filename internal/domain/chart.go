package domain

// Point radius in pixels: base plus a step per engagement level.
const (
	pointBaseRadius       = 5.0
	pointRadiusPerEngaged = 2.0
)

// PlottedPartner is a partner positioned in both domain and pixel space.
// CX/CY are relative to the plot-area origin.
type PlottedPartner struct {
	ID       string      `json:"id,omitempty"`
	Name     string      `json:"name"`
	Size     CompanySize `json:"size"`
	Position Position    `json:"position"`
	Quadrant Quadrant    `json:"quadrant"`
	CX       float64     `json:"cx"`
	CY       float64     `json:"cy"`
	Radius   float64     `json:"radius"`
	Color    string      `json:"color"`

	// Raw inputs kept for tooltips
	LeadPotential       int `json:"lead_potential"`
	InvestmentPotential int `json:"investment_potential"`
	Engagement          int `json:"engagement"`
}

// ChartLayout is the complete, immutable description of one chart render.
type ChartLayout struct {
	Geometry ChartGeometry    `json:"geometry"`
	Points   []PlottedPartner `json:"points"`
	Labels   LabelPartition   `json:"labels"`
}

// PlotPartner scores a partner and maps its position through the geometry's scales.
func PlotPartner(p *Partner, g ChartGeometry) PlottedPartner {
	pos := ComputePosition(p)

	return PlottedPartner{
		ID:                  p.ID,
		Name:                p.Name,
		Size:                p.Size,
		Position:            pos,
		Quadrant:            pos.Quadrant(),
		CX:                  g.XScale.Apply(pos.X),
		CY:                  g.YScale.Apply(pos.Y),
		Radius:              pointBaseRadius + float64(p.Engagement)*pointRadiusPerEngaged,
		Color:               p.Size.Color(),
		LeadPotential:       p.LeadPotential,
		InvestmentPotential: p.InvestmentPotential,
		Engagement:          p.Engagement,
	}
}

// BuildChartLayout runs the scoring, geometry and label passes for the current
// partner set and viewport. Points keep the order of partners.
func BuildChartLayout(partners []*Partner, width, height float64) (ChartLayout, error) {
	g, err := ComputeGeometry(width, height)
	if err != nil {
		return ChartLayout{}, err
	}

	points := make([]PlottedPartner, len(partners))
	for i, p := range partners {
		points[i] = PlotPartner(p, g)
	}

	return ChartLayout{
		Geometry: g,
		Points:   points,
		Labels:   ResolveLabels(points),
	}, nil
}
