package layout

import (
	"fmt"
	"slices"
	"time"
)

// Observer is told about every state change the engine makes. Slices passed
// to it are copies.
type Observer interface {
	SeparatorPressed(index int, proportions []float64)
	SeparatorMoved(index int, proportions []float64, applied bool)
	SeparatorReleased(index int, proportions []float64, stats SessionStats)
	PanelsSwapped(source, over int, order Order)
	PanelToggled(index int, collapsed bool)
}

// Options configures an Engine. The zero value is a horizontal, unthrottled
// layout with one-cell separators.
type Options struct {
	Axis             Axis
	Reversed         bool
	ThrottleInterval time.Duration
	SeparatorSize    int

	// OnResize is called once when a separator drag starts, with the
	// proportions and collapsed panels from before the drag.
	OnResize func(proportions []float64, collapsed []int)

	Capture  Capture
	Observer Observer
	Now      func() time.Time
}

// Engine owns the layout state. It is not safe for concurrent use; the host
// calls it from its event loop.
type Engine struct {
	opts     Options
	children []ChildDescriptor
	current  Classification // always matches children
	state    State          // replaced only when the panel count changes
	bounds   Rect
	throttle *Throttle

	collapsed CollapsedSet
	session   *SeparatorSession
	drag      panelDrag
}

type panelDrag struct {
	source, over       int
	hasSource, hasOver bool
}

// NewEngine builds an engine for children.
func NewEngine(children []ChildDescriptor, opts Options) *Engine {
	if opts.SeparatorSize <= 0 {
		opts.SeparatorSize = 1
	}
	if opts.Capture == nil {
		opts.Capture = nopCapture{}
	}
	e := &Engine{
		opts:     opts,
		throttle: NewThrottle(opts.ThrottleInterval, opts.Now),
	}
	e.children = slices.Clone(children)
	e.current = Classify(e.children)
	e.state = Initialize(e.children)
	return e
}

// SetChildren replaces the declared children. Sizing state is recomputed only
// when the number of panels changes; in that case manual sizing and ordering
// are discarded and any panel drag is cancelled.
func (e *Engine) SetChildren(children []ChildDescriptor) {
	e.children = slices.Clone(children)
	e.current = Classify(e.children)
	if len(e.current.Panels) == e.state.PanelCount() {
		return
	}
	if e.session != nil {
		e.session.Release()
	}
	e.state = Initialize(e.children)
	e.drag = panelDrag{}
}

// Children returns a copy of the declared children.
func (e *Engine) Children() []ChildDescriptor { return slices.Clone(e.children) }

// Options returns the options the engine runs with, defaults applied.
func (e *Engine) Options() Options { return e.opts }

// SetBounds records the container's measured bounds. The zero Rect means the
// container is not mounted and separator moves are no-ops.
func (e *Engine) SetBounds(r Rect) { e.bounds = r }

// Bounds returns the last recorded container bounds.
func (e *Engine) Bounds() Rect { return e.bounds }

// PanelCount returns the number of panels in the sizing state.
func (e *Engine) PanelCount() int { return e.state.PanelCount() }

// Proportions returns a copy of the proportion vector.
func (e *Engine) Proportions() []float64 { return slices.Clone(e.state.Proportions) }

// Order returns a copy of the display order.
func (e *Engine) Order() Order { return slices.Clone(e.state.Order) }

// Collapsed returns the collapsed declaration indices in ascending order.
func (e *Engine) Collapsed() []int { return e.collapsed.Indices() }

// IsCollapsed reports whether panel i is collapsed.
func (e *Engine) IsCollapsed(i int) bool { return e.collapsed.Has(i) }

// Session returns the open separator session, or nil.
func (e *Engine) Session() *SeparatorSession { return e.session }

// SeparatorDisabled reports whether the separator with the given layout
// index refuses drags: it lacks a panel on either side, touches a collapsed
// panel, or touches a fixed panel sitting at either end of the children.
func (e *Engine) SeparatorDisabled(index int) bool {
	panels := e.current.Panels
	if index < 0 || index+1 >= len(panels) {
		return true
	}
	if e.collapsed.Has(index) || e.collapsed.Has(index+1) {
		return true
	}
	if panels[index].Fixed && e.current.PanelChild[index] == 0 {
		return true
	}
	last := len(e.children) - 1
	if panels[index+1].Fixed && e.current.PanelChild[index+1] == last {
		return true
	}
	return false
}

// PressSeparator opens a drag session on the separator with the given layout
// index, acquiring pointer capture and firing OnResize with the pre-drag
// state. It returns nil, and does nothing, for a disabled separator. An open
// session on another separator is released first.
func (e *Engine) PressSeparator(index int) *SeparatorSession {
	if e.SeparatorDisabled(index) {
		return nil
	}
	if e.opts.OnResize != nil {
		e.opts.OnResize(e.Proportions(), e.Collapsed())
	}
	s := e.open(index)
	if e.opts.Observer != nil {
		e.opts.Observer.SeparatorPressed(index, e.Proportions())
	}
	return s
}

func (e *Engine) open(index int) *SeparatorSession {
	if e.session != nil {
		e.session.Release()
	}
	s := &SeparatorSession{
		engine:   e,
		index:    index,
		baseline: e.Proportions(),
	}
	e.session = s
	e.opts.Capture.Acquire(s)
	return s
}

// MoveSeparator forwards a pointer move to the open session, if any.
func (e *Engine) MoveSeparator(p Point) bool {
	if e.session == nil {
		return false
	}
	return e.session.Move(p)
}

// ReleaseSeparator ends the open session, if any.
func (e *Engine) ReleaseSeparator() {
	if e.session != nil {
		e.session.Release()
	}
}

// DoubleClickSeparator moves the separator to position (a coordinate on the
// layout axis, in the same space as pointer events) and releases it at once.
// The synthesized move is not throttled and OnResize is not fired.
func (e *Engine) DoubleClickSeparator(index int, position float64) bool {
	if e.SeparatorDisabled(index) {
		return false
	}
	s := e.open(index)
	defer s.Release()
	return s.apply(e.pointOnAxis(position))
}

// NudgeSeparator moves the separator with the given layout index by delta
// cells on the grid Segments lays out over the container, positive towards
// the end of the screen. A pointer one cell away can round back to the same
// cell, so pointer positions are tried outwards until the rendered separator
// lands delta cells away. Moves are not throttled. If no position gets there
// the proportions are left as they were and false is returned.
func (e *Engine) NudgeSeparator(index, delta int) bool {
	extent := int(e.bounds.Extent(e.opts.Axis))
	if delta == 0 || extent <= 0 || e.SeparatorDisabled(index) {
		return false
	}
	start, ok := e.separatorStart(index, extent)
	if !ok {
		return false
	}
	s := e.PressSeparator(index)
	if s == nil {
		return false
	}
	defer s.Release()

	// In a reversed layout the leading panels sit after the separator, so
	// the pointer that keeps it in place is its far edge.
	base := start
	if e.opts.Reversed {
		base += e.opts.SeparatorSize
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	want := start + delta
	origin := e.bounds.Origin(e.opts.Axis)
	for pos := base + delta; pos >= 0 && pos <= extent; pos += step {
		if !s.apply(e.pointOnAxis(origin + float64(pos))) {
			continue
		}
		if got, ok := e.separatorStart(index, extent); ok && (got-want)*step >= 0 {
			return true
		}
	}
	e.state.Proportions = s.Baseline()
	return false
}

// separatorStart returns the first cell of separator index when the current
// state is laid out over extent cells.
func (e *Engine) separatorStart(index, extent int) (int, bool) {
	for _, seg := range e.Project().Segments(extent) {
		if seg.Role == RoleSeparator && seg.Separator == index {
			return seg.Start, true
		}
	}
	return 0, false
}

// pointOnAxis returns the point at position on the layout axis, on the
// container's edge across it.
func (e *Engine) pointOnAxis(position float64) Point {
	if e.opts.Axis == Vertical {
		return Point{X: e.bounds.X, Y: position}
	}
	return Point{X: position, Y: e.bounds.Y}
}

// StartDrag records the panel a reorder drag started on.
func (e *Engine) StartDrag(decl int) {
	e.mustPanel(decl)
	e.drag.source, e.drag.hasSource = decl, true
}

// DragOver records the panel currently under a reorder drag. The last call wins.
func (e *Engine) DragOver(decl int) {
	e.mustPanel(decl)
	e.drag.over, e.drag.hasOver = decl, true
}

// DragSource returns the panel a reorder drag started on.
func (e *Engine) DragSource() (int, bool) { return e.drag.source, e.drag.hasSource }

// DragTarget returns the panel under the reorder drag.
func (e *Engine) DragTarget() (int, bool) { return e.drag.over, e.drag.hasOver }

// EndDrag finishes a reorder drag. When a source and a different target
// were recorded their display positions are swapped. The drag is cleared
// either way. It reports whether a swap happened.
func (e *Engine) EndDrag() bool {
	d := e.drag
	e.drag = panelDrag{}
	if !d.hasSource || !d.hasOver || d.source == d.over {
		return false
	}
	e.state.Order = e.state.Order.Swap(d.source, d.over)
	if e.opts.Observer != nil {
		e.opts.Observer.PanelsSwapped(d.source, d.over, e.Order())
	}
	return true
}

// CancelDrag drops a reorder drag without swapping.
func (e *Engine) CancelDrag() { e.drag = panelDrag{} }

// MovePanel swaps panel decl with its neighbour delta display positions away,
// through the same start/over/end protocol a pointer drag uses. It reports
// whether the panel moved.
func (e *Engine) MovePanel(decl, delta int) bool {
	e.mustPanel(decl)
	target := e.state.Order.Position(decl) + delta
	if delta == 0 || target < 0 || target >= len(e.state.Order) {
		return false
	}
	e.StartDrag(decl)
	e.DragOver(e.state.Order[target])
	return e.EndDrag()
}

// Toggle flips the collapsed state of panel decl and reports the new state.
func (e *Engine) Toggle(decl int) bool {
	e.mustPanel(decl)
	collapsed := e.collapsed.Toggle(decl)
	if e.opts.Observer != nil {
		e.opts.Observer.PanelToggled(decl, collapsed)
	}
	return collapsed
}

func (e *Engine) mustPanel(decl int) {
	if decl < 0 || decl >= e.state.PanelCount() {
		panic(fmt.Sprintf("layout: panel %d out of range for %d panels", decl, e.state.PanelCount()))
	}
}
