package domain

// Axis weights. x is lead-generation attractiveness, y is investment attractiveness.
const (
	leadWeight       = 0.4
	xSizeWeight      = 0.3
	xEngageWeight    = 0.2
	alignmentWeight  = 0.1
	investmentWeight = 0.5
	ySizeWeight      = 0.3
	yEngageWeight    = 0.2
)

// Domain bounds of both chart axes.
const (
	ScoreMin      = 0.0
	ScoreMax      = 5.0
	ScoreMidpoint = 2.5
)

// Quadrant identifies one of the four regions split at the domain midpoint.
type Quadrant int

const (
	QuadrantLowLeadLowInvestment   Quadrant = 1
	QuadrantHighLeadLowInvestment  Quadrant = 2
	QuadrantLowLeadHighInvestment  Quadrant = 3
	QuadrantHighLeadHighInvestment Quadrant = 4
)

// String returns the quadrant's caption, e.g. "High Lead, Low Investment".
func (q Quadrant) String() string {
	for _, c := range quadrantCaptions {
		if c.quadrant == q {
			return c.text
		}
	}
	return "Unknown"
}

// Position is a partner's plot position in domain space, each coordinate in [0,5].
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quadrant returns the quadrant the position falls into.
// Coordinates equal to the midpoint count as high.
func (p Position) Quadrant() Quadrant {
	highLead := p.X >= ScoreMidpoint
	highInvestment := p.Y >= ScoreMidpoint

	switch {
	case highLead && highInvestment:
		return QuadrantHighLeadHighInvestment
	case highInvestment:
		return QuadrantLowLeadHighInvestment
	case highLead:
		return QuadrantHighLeadLowInvestment
	default:
		return QuadrantLowLeadLowInvestment
	}
}

// ComputePosition maps a partner's raw attributes to its (x, y) composite scores.
//
// Formula:
//
//	x = lead*0.4 + size*0.3 + engagement*0.2 + alignment*0.1
//	y = investment*0.5 + size*0.3 + engagement*0.2
//
// size is the 1..5 weight of the company-size category. Both axes are clamped to [0,5].
// Inputs are not validated here; an unknown size contributes 0.
func ComputePosition(p *Partner) Position {
	sizeValue, _ := p.Size.Weight()
	size := float64(sizeValue)

	x := float64(p.LeadPotential)*leadWeight +
		size*xSizeWeight +
		float64(p.Engagement)*xEngageWeight +
		float64(p.StrategicAlignment)*alignmentWeight

	y := float64(p.InvestmentPotential)*investmentWeight +
		size*ySizeWeight +
		float64(p.Engagement)*yEngageWeight

	return Position{X: clampScore(x), Y: clampScore(y)}
}

// ScoreTerm is one weighted input of a composite score.
type ScoreTerm struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// AxisBreakdown explains how one axis score was reached.
type AxisBreakdown struct {
	Terms   []ScoreTerm `json:"terms"`
	Raw     float64     `json:"raw"`
	Clamped float64     `json:"clamped"`
}

// ScoreExplanation is the calculation trace behind ComputePosition.
type ScoreExplanation struct {
	SizeWeight int           `json:"size_weight"`
	X          AxisBreakdown `json:"x"`
	Y          AxisBreakdown `json:"y"`
	Quadrant   Quadrant      `json:"quadrant"`
}

// ExplainPosition returns the per-term breakdown of both axis scores.
// The clamped totals equal ComputePosition(p).
func ExplainPosition(p *Partner) ScoreExplanation {
	sizeValue, _ := p.Size.Weight()
	size := float64(sizeValue)

	x := newAxisBreakdown(
		ScoreTerm{Name: "lead_potential", Value: float64(p.LeadPotential), Weight: leadWeight},
		ScoreTerm{Name: "size", Value: size, Weight: xSizeWeight},
		ScoreTerm{Name: "engagement", Value: float64(p.Engagement), Weight: xEngageWeight},
		ScoreTerm{Name: "strategic_alignment", Value: float64(p.StrategicAlignment), Weight: alignmentWeight},
	)
	y := newAxisBreakdown(
		ScoreTerm{Name: "investment_potential", Value: float64(p.InvestmentPotential), Weight: investmentWeight},
		ScoreTerm{Name: "size", Value: size, Weight: ySizeWeight},
		ScoreTerm{Name: "engagement", Value: float64(p.Engagement), Weight: yEngageWeight},
	)

	return ScoreExplanation{
		SizeWeight: sizeValue,
		X:          x,
		Y:          y,
		Quadrant:   Position{X: x.Clamped, Y: y.Clamped}.Quadrant(),
	}
}

func newAxisBreakdown(terms ...ScoreTerm) AxisBreakdown {
	var raw float64
	for i := range terms {
		terms[i].Contribution = terms[i].Value * terms[i].Weight
		raw += terms[i].Contribution
	}

	return AxisBreakdown{Terms: terms, Raw: raw, Clamped: clampScore(raw)}
}

// clampScore bounds v to the [0,5] axis domain. NaN passes through.
func clampScore(v float64) float64 {
	if v < ScoreMin {
		return ScoreMin
	}
	if v > ScoreMax {
		return ScoreMax
	}
	return v
}
