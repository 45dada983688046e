package layout

import (
	"fmt"
	"math"
	"slices"
)

// ResizeInput is everything a single separator-move frame needs.
type ResizeInput struct {
	Proportions []float64 // declaration order
	Separator   int       // declaration index of the panel before the separator
	Pointer     Point
	Container   Rect
	Axis        Axis
	Reversed    bool

	FixedExtent  float64 // total fixed-panel extent on Axis
	SpacerExtent float64 // total spacer extent
}

// SeparatorPosition returns the pointer's distance from the container's flex
// start, clamped to [1, extent]. In a reversed layout the flex start is the
// far edge.
func SeparatorPosition(p Point, r Rect, a Axis, reversed bool) float64 {
	extent := r.Extent(a)
	pos := p.Along(a) - r.Origin(a)
	if reversed {
		pos = extent - pos
	}
	if pos <= 0 {
		return 1
	}
	if pos >= extent {
		return extent
	}
	return pos
}

// ComputeResize scales the panels at declaration indices 0..Separator so that
// their combined weight matches the separator's new position; panels after
// the separator keep their weights. The input vector is not modified.
//
// ok is false when the frame must be skipped: the container is not measurable,
// or the scale factor is not a positive finite number (all leading panels are
// fixed or zero-weight, or nothing is left for flexible panels).
func ComputeResize(in ResizeInput) (out []float64, ok bool) {
	if in.Separator < 0 || in.Separator >= len(in.Proportions) {
		panic(fmt.Sprintf("layout: separator %d out of range for %d panels", in.Separator, len(in.Proportions)))
	}
	extent := in.Container.Extent(in.Axis)
	if !(extent > 0) || math.IsInf(extent, 0) {
		return nil, false
	}
	separatorPos := SeparatorPosition(in.Pointer, in.Container, in.Axis, in.Reversed)
	layoutSize := extent - in.FixedExtent - in.SpacerExtent

	var flexUnitsSum, currentFlexValue float64
	for i, w := range in.Proportions {
		flexUnitsSum += w
		if i <= in.Separator {
			currentFlexValue += w
		}
	}
	newFlexValue := separatorPos * flexUnitsSum / layoutSize
	relation := newFlexValue / currentFlexValue
	if math.IsNaN(relation) || math.IsInf(relation, 0) || relation <= 0 {
		return nil, false
	}

	out = slices.Clone(in.Proportions)
	for i := 0; i <= in.Separator; i++ {
		out[i] *= relation
	}
	return out, true
}
