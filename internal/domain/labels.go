package domain

import "unicode/utf8"

// Label box heuristics in pixels. The width estimate is a per-character
// constant, not font metrics.
const (
	LabelPadding    = 10.0
	LabelCharWidth  = 5.5
	LabelLineHeight = 16.0
)

// Box is an axis-aligned rectangle given by its top-left corner and size.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Overlaps reports whether the interiors of b and o intersect.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.X+o.Width &&
		b.X+b.Width > o.X &&
		b.Y < o.Y+o.Height &&
		b.Y+b.Height > o.Y
}

// LabelBox returns the candidate label box for a name drawn next to the point (cx, cy).
func LabelBox(name string, cx, cy float64) Box {
	return Box{
		X:      cx + LabelPadding,
		Y:      cy - LabelPadding,
		Width:  float64(utf8.RuneCountInString(name)) * LabelCharWidth,
		Height: LabelLineHeight,
	}
}

// LabelPlacement is the label decision for one partner.
type LabelPlacement struct {
	PartnerID   string  `json:"partner_id,omitempty"`
	Name        string  `json:"name"`
	Box         Box     `json:"box"`
	AnchorX     float64 `json:"anchor_x"`
	AnchorY     float64 `json:"anchor_y"`
	Overlapping bool    `json:"overlapping"`
}

// LabelPartition splits labels into always-drawn and drawn-on-hover sets.
// Both lists keep the input order.
type LabelPartition struct {
	Fixed     []LabelPlacement `json:"fixed"`
	HoverOnly []LabelPlacement `json:"hover_only"`
}

// IsHoverOnly reports whether the partner with the given id was deferred to hover.
func (lp LabelPartition) IsHoverOnly(partnerID string) bool {
	for _, l := range lp.HoverOnly {
		if l.PartnerID == partnerID {
			return true
		}
	}
	return false
}

// ResolveLabels decides which partner labels can be drawn statically.
//
// Every partner gets a candidate box anchored up-right of its point. Each unordered
// pair is tested for intersection; a partner in at least one intersecting pair is
// hover-only, all others are fixed. Overlap is not transitive: a partner whose box
// intersects no other box stays fixed even if its neighbours collide with each other.
//
// O(n^2), intended for tens of partners.
func ResolveLabels(points []PlottedPartner) LabelPartition {
	placements := make([]LabelPlacement, len(points))
	for i, p := range points {
		box := LabelBox(p.Name, p.CX, p.CY)
		placements[i] = LabelPlacement{
			PartnerID: p.ID,
			Name:      p.Name,
			Box:       box,
			AnchorX:   box.X,
			AnchorY:   box.Y,
		}
	}

	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			if placements[i].Box.Overlaps(placements[j].Box) {
				placements[i].Overlapping = true
				placements[j].Overlapping = true
			}
		}
	}

	partition := LabelPartition{
		Fixed:     make([]LabelPlacement, 0, len(placements)),
		HoverOnly: make([]LabelPlacement, 0),
	}
	for _, pl := range placements {
		if pl.Overlapping {
			partition.HoverOnly = append(partition.HoverOnly, pl)
		} else {
			partition.Fixed = append(partition.Fixed, pl)
		}
	}

	return partition
}
