package domain

import "errors"

// ErrInvalidViewport is returned when the drawing surface has no usable plot area.
var ErrInvalidViewport = errors.New("invalid viewport: plot area must be positive")

// Fixed chart margins in pixels.
const (
	MarginTop    = 40.0
	MarginRight  = 40.0
	MarginBottom = 60.0
	MarginLeft   = 60.0
)

// Legend layout in pixels.
const (
	legendSpacing = 60.0
	legendRadius  = 7.0
)

// Margins holds the space reserved around the plot area.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// LinearScale maps a numeric domain onto a pixel range.
type LinearScale struct {
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
}

// Apply maps v from the domain to the range. Values outside the domain extrapolate.
func (s LinearScale) Apply(v float64) float64 {
	t := (v - s.Domain[0]) / (s.Domain[1] - s.Domain[0])
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// Line is a segment in plot-area pixel space.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// TextAnchor is a piece of text placed at a pixel point.
type TextAnchor struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// QuadrantLabel is the caption drawn at the centre of a quadrant.
type QuadrantLabel struct {
	Quadrant Quadrant `json:"quadrant"`
	TextAnchor
}

// LegendEntry is one size category in the legend row.
type LegendEntry struct {
	Size   CompanySize `json:"size"`
	Color  string      `json:"color"`
	CX     float64     `json:"cx"`
	CY     float64     `json:"cy"`
	Radius float64     `json:"radius"`
	TextX  float64     `json:"text_x"`
	TextY  float64     `json:"text_y"`
}

// ChartGeometry describes the pixel layout of the quadrant for one viewport size.
// All coordinates except Width/Height are relative to the plot-area origin (Margins.Left, Margins.Top).
type ChartGeometry struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Margins     Margins `json:"margins"`
	InnerWidth  float64 `json:"inner_width"`
	InnerHeight float64 `json:"inner_height"`

	XScale LinearScale `json:"x_scale"`
	YScale LinearScale `json:"y_scale"`

	Dividers       []Line          `json:"dividers"`
	QuadrantLabels []QuadrantLabel `json:"quadrant_labels"`
	XAxisTitle     TextAnchor      `json:"x_axis_title"`
	YAxisTitle     TextAnchor      `json:"y_axis_title"` // drawn rotated -90 degrees
	Legend         []LegendEntry   `json:"legend"`
}

var quadrantCaptions = []struct {
	quadrant Quadrant
	x, y     float64
	text     string
}{
	{QuadrantLowLeadLowInvestment, 1.25, 1.25, "Low Lead, Low Investment"},
	{QuadrantHighLeadLowInvestment, 3.75, 1.25, "High Lead, Low Investment"},
	{QuadrantLowLeadHighInvestment, 1.25, 3.75, "Low Lead, High Investment"},
	{QuadrantHighLeadHighInvestment, 3.75, 3.75, "High Lead, High Investment"},
}

// ComputeGeometry derives scales, quadrant dividers and label positions from the
// drawing-surface size. It must be called again whenever the surface is resized.
// Returns ErrInvalidViewport when the plot area would be empty or negative.
func ComputeGeometry(width, height float64) (ChartGeometry, error) {
	innerWidth := width - MarginLeft - MarginRight
	innerHeight := height - MarginTop - MarginBottom
	if !(width > 0 && height > 0 && innerWidth > 0 && innerHeight > 0) {
		return ChartGeometry{}, ErrInvalidViewport
	}

	xScale := LinearScale{Domain: [2]float64{ScoreMin, ScoreMax}, Range: [2]float64{0, innerWidth}}
	yScale := LinearScale{Domain: [2]float64{ScoreMin, ScoreMax}, Range: [2]float64{innerHeight, 0}}

	g := ChartGeometry{
		Width:  width,
		Height: height,
		Margins: Margins{
			Top:    MarginTop,
			Right:  MarginRight,
			Bottom: MarginBottom,
			Left:   MarginLeft,
		},
		InnerWidth:  innerWidth,
		InnerHeight: innerHeight,
		XScale:      xScale,
		YScale:      yScale,
		Dividers: []Line{
			{X1: xScale.Apply(ScoreMidpoint), Y1: 0, X2: xScale.Apply(ScoreMidpoint), Y2: innerHeight},
			{X1: 0, Y1: yScale.Apply(ScoreMidpoint), X2: innerWidth, Y2: yScale.Apply(ScoreMidpoint)},
		},
		XAxisTitle: TextAnchor{X: innerWidth / 2, Y: innerHeight + 40, Text: "Lead Generation Potential"},
		YAxisTitle: TextAnchor{X: -innerHeight / 2, Y: -40, Text: "Investment Potential"},
	}

	g.QuadrantLabels = make([]QuadrantLabel, len(quadrantCaptions))
	for i, c := range quadrantCaptions {
		g.QuadrantLabels[i] = QuadrantLabel{
			Quadrant: c.quadrant,
			TextAnchor: TextAnchor{
				X:    xScale.Apply(c.x),
				Y:    yScale.Apply(c.y),
				Text: c.text,
			},
		}
	}

	originX, originY := xScale.Apply(ScoreMin), yScale.Apply(ScoreMax)
	g.Legend = make([]LegendEntry, len(CompanySizes))
	for i, size := range CompanySizes {
		cx := originX + float64(i)*legendSpacing
		g.Legend[i] = LegendEntry{
			Size:   size,
			Color:  size.Color(),
			CX:     cx,
			CY:     originY,
			Radius: legendRadius,
			TextX:  cx + 15,
			TextY:  originY + 5,
		}
	}

	return g, nil
}
