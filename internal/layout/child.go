package layout

// Role tags a declared child. Any value other than the constants below is an
// "other" child: projected and rendered, ignored for sizing.
type Role string

const (
	RolePanel     Role = "panel"
	RoleSeparator Role = "separator"
	RoleSpacer    Role = "spacer"
)

// ChildDescriptor is one declared child. Only the fields relevant to Role are read.
type ChildDescriptor struct {
	ID    string
	Title string
	Role  Role

	// Panel attributes. FixedWidth and FixedHeight are mutually exclusive;
	// FixedWidth wins when both are set.
	Fixed        bool
	FixedWidth   float64
	FixedHeight  float64
	Proportion   float64
	CollapseSize float64

	// Size is the extent of a spacer (or an other child) along the axis.
	Size float64
}

// PanelDescriptor is the sizing view of one panel.
type PanelDescriptor struct {
	Fixed       bool
	FixedWidth  float64
	FixedHeight float64
	Proportion  float64 // 0 for fixed panels
}

// FixedExtent returns the panel's fixed size on the given axis.
func (p PanelDescriptor) FixedExtent(a Axis) float64 {
	if a == Vertical {
		return p.FixedHeight
	}
	return p.FixedWidth
}

// Classification is the result of Classify.
type Classification struct {
	Panels []PanelDescriptor

	// PanelIndex maps child index -> declaration index, -1 for non-panels.
	PanelIndex []int
	// PanelChild maps declaration index -> child index.
	PanelChild []int
	// SeparatorIndex maps child index -> separator layout index (the
	// declaration index of the panel before it), -1 for non-separators.
	// A separator declared before any panel gets -1 as well.
	SeparatorIndex []int

	TotalFixedWidth  float64
	TotalFixedHeight float64
	TotalSpacerSize  float64
}

// TotalFixedExtent returns the fixed-panel total on the given axis.
func (c Classification) TotalFixedExtent(a Axis) float64 {
	if a == Vertical {
		return c.TotalFixedHeight
	}
	return c.TotalFixedWidth
}

// Proportions returns a fresh proportion vector in declaration order.
func (c Classification) Proportions() []float64 {
	out := make([]float64, len(c.Panels))
	for i, p := range c.Panels {
		out[i] = p.Proportion
	}
	return out
}

// Classify tags children and totals their fixed sizes. Malformed attributes
// are not rejected: a fixed panel with neither extent counts as zero, a
// flexible panel keeps whatever proportion it declared.
func Classify(children []ChildDescriptor) Classification {
	c := Classification{
		PanelIndex:     make([]int, len(children)),
		SeparatorIndex: make([]int, len(children)),
	}
	for i, ch := range children {
		c.PanelIndex[i] = -1
		c.SeparatorIndex[i] = -1
		switch ch.Role {
		case RolePanel:
			c.PanelIndex[i] = len(c.Panels)
			c.PanelChild = append(c.PanelChild, i)
			p := PanelDescriptor{Fixed: ch.Fixed}
			if ch.Fixed {
				switch {
				case ch.FixedWidth != 0:
					p.FixedWidth = ch.FixedWidth
					c.TotalFixedWidth += ch.FixedWidth
				case ch.FixedHeight != 0:
					p.FixedHeight = ch.FixedHeight
					c.TotalFixedHeight += ch.FixedHeight
				}
			} else {
				p.Proportion = ch.Proportion
			}
			c.Panels = append(c.Panels, p)
		case RoleSeparator:
			c.SeparatorIndex[i] = len(c.Panels) - 1
		case RoleSpacer:
			c.TotalSpacerSize += ch.Size
		}
	}
	return c
}
