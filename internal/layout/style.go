package layout

import (
	"math"
	"slices"
	"sort"
)

// PanelStyle is the render attributes of one panel.
type PanelStyle struct {
	Decl           int
	Flex           float64 // meaningless when FlexNone
	FlexNone       bool    // fixed panel
	FixedExtent    float64
	HasFixedExtent bool
	DisplayOrder   int
	Collapsed      bool
	CollapseSize   float64
	DragSource     bool
	DragTarget     bool
}

// SeparatorStyle is the render attributes of one separator.
type SeparatorStyle struct {
	Index    int  // layout index, -1 if no panel precedes it
	Disabled bool // refuses drags
	Dragging bool // some separator drag is in progress
	Active   bool // this separator is the one being dragged
}

// ChildStyle is the projection of one declared child. Panel and Separator are
// only meaningful for the matching Role.
type ChildStyle struct {
	Child     int
	ID        string
	Title     string
	Role      Role
	Panel     PanelStyle
	Separator SeparatorStyle
	Size      float64 // spacers and other children
}

// Projection is the engine state flattened for rendering.
type Projection struct {
	Axis          Axis
	Reversed      bool
	SeparatorSize int
	Dragging      bool
	Children      []ChildStyle
	Order         Order
	PanelChild    []int
}

// Project computes per-child render attributes from the current state.
func (e *Engine) Project() Projection {
	p := Projection{
		Axis:          e.opts.Axis,
		Reversed:      e.opts.Reversed,
		SeparatorSize: e.opts.SeparatorSize,
		Dragging:      e.session != nil,
		Children:      make([]ChildStyle, len(e.children)),
		Order:         e.Order(),
		PanelChild:    slices.Clone(e.current.PanelChild),
	}
	for i, ch := range e.children {
		cs := ChildStyle{Child: i, ID: ch.ID, Title: ch.Title, Role: ch.Role, Size: ch.Size}
		switch ch.Role {
		case RolePanel:
			decl := e.current.PanelIndex[i]
			desc := e.current.Panels[decl]
			ps := PanelStyle{
				Decl:         decl,
				FlexNone:     desc.Fixed,
				DisplayOrder: e.state.Order.Position(decl),
				Collapsed:    e.collapsed.Has(decl),
				CollapseSize: ch.CollapseSize,
			}
			if !desc.Fixed {
				ps.Flex = e.state.Proportions[decl]
			}
			if ext := desc.FixedExtent(e.opts.Axis); desc.Fixed && ext != 0 {
				ps.FixedExtent, ps.HasFixedExtent = ext, true
			}
			ps.DragSource = e.drag.hasSource && e.drag.source == decl
			ps.DragTarget = e.drag.hasOver && e.drag.over == decl
			cs.Panel = ps
		case RoleSeparator:
			idx := e.current.SeparatorIndex[i]
			cs.Separator = SeparatorStyle{
				Index:    idx,
				Disabled: e.SeparatorDisabled(idx),
				Dragging: e.session != nil,
				Active:   e.session != nil && e.session.index == idx,
			}
		}
		p.Children[i] = cs
	}
	return p
}

// Sequence returns child indices in display sequence: the declared sequence
// with each panel slot filled by the panel the Order puts there, reversed for
// a reversed layout. Separators and spacers keep their declared slots.
func (p Projection) Sequence() []int {
	seq := make([]int, 0, len(p.Children))
	slot := 0
	for i, cs := range p.Children {
		if cs.Role == RolePanel {
			seq = append(seq, p.PanelChild[p.Order[slot]])
			slot++
			continue
		}
		seq = append(seq, i)
	}
	if p.Reversed {
		slices.Reverse(seq)
	}
	return seq
}

// Segment is one child's cell span along the axis.
type Segment struct {
	Child     int
	Role      Role
	Panel     int // declaration index, -1 for non-panels
	Separator int // layout index, -1 for non-separators
	Start     int
	Size      int
}

// End returns the first cell after the segment.
func (s Segment) End() int { return s.Start + s.Size }

// Segments lays the projection out over extent cells. Separators take
// SeparatorSize cells, spacers and other children their Size, fixed panels
// their fixed extent, collapsed panels their CollapseSize (at least one
// cell). What remains is shared by flexible panels in proportion to their
// weights; rounding leftovers go to the largest fractional parts. Segments
// that overflow extent are clipped.
func (p Projection) Segments(extent int) []Segment {
	seq := p.Sequence()
	segs := make([]Segment, len(seq))
	type share struct {
		seg  int
		frac float64
	}
	var (
		used    int
		flex    []int
		weights float64
	)
	for k, ci := range seq {
		cs := p.Children[ci]
		seg := Segment{Child: ci, Role: cs.Role, Panel: -1, Separator: -1}
		switch cs.Role {
		case RolePanel:
			seg.Panel = cs.Panel.Decl
			switch {
			case cs.Panel.Collapsed:
				seg.Size = max(cells(cs.Panel.CollapseSize), 1)
			case cs.Panel.FlexNone:
				seg.Size = cells(cs.Panel.FixedExtent)
			default:
				if w := cs.Panel.Flex; w > 0 && !math.IsInf(w, 0) {
					flex = append(flex, k)
					weights += w
				}
			}
		case RoleSeparator:
			seg.Separator = cs.Separator.Index
			seg.Size = p.SeparatorSize
		default:
			seg.Size = cells(cs.Size)
		}
		used += seg.Size
		segs[k] = seg
	}

	if remaining := extent - used; remaining > 0 && weights > 0 {
		shares := make([]share, 0, len(flex))
		given := 0
		for _, k := range flex {
			exact := float64(remaining) * p.Children[seq[k]].Panel.Flex / weights
			whole := int(math.Floor(exact))
			segs[k].Size = whole
			given += whole
			shares = append(shares, share{seg: k, frac: exact - float64(whole)})
		}
		sort.SliceStable(shares, func(i, j int) bool { return shares[i].frac > shares[j].frac })
		for i := 0; given < remaining && i < len(shares); i++ {
			segs[shares[i].seg].Size++
			given++
		}
	}

	start := 0
	for k := range segs {
		segs[k].Start = start
		size := min(segs[k].Size, max(extent-start, 0))
		segs[k].Size = size
		start += size
	}
	return segs
}

// SegmentAt returns the segment covering cell, if any.
func SegmentAt(segs []Segment, cell int) (Segment, bool) {
	for _, s := range segs {
		if s.Size > 0 && cell >= s.Start && cell < s.End() {
			return s, true
		}
	}
	return Segment{}, false
}

func cells(v float64) int {
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
