package ui

import (
	"log"
	"strings"
	"time"

	"flexpanes/internal/layout"
	"flexpanes/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// doubleClickWindow is how close two presses on the same separator must be
// to count as a double click.
const doubleClickWindow = 400 * time.Millisecond

// markerWidth is the width of the collapse marker at the start of a title.
const markerWidth = 3

// SplitOptions configures a SplitView.
type SplitOptions struct {
	// DoubleClickPosition is where a double-clicked separator jumps to,
	// measured from the container's start. Zero means the middle.
	DoubleClickPosition float64
	// Mockup tints each panel from a fixed palette.
	Mockup bool
	Now    func() time.Time
}

// SplitView hosts a layout engine: it lays panels out along the engine's
// axis, turns mouse input into separator drags, title-bar reorders and
// collapse clicks, and renders the result.
type SplitView struct {
	engine  *layout.Engine
	capture *MouseCapture
	panels  []Panel // by declaration index
	focus   *FocusManager
	opts    SplitOptions

	width, height int
	proj          layout.Projection
	segs          []layout.Segment

	reordering bool
	lastPress  separatorPress
}

type separatorPress struct {
	index int
	at    time.Time
	ok    bool
}

var _ Layout = (*SplitView)(nil)

// NewSplitView builds a view over engine. views holds one View per panel in
// declaration order; missing entries get an empty TextView. capture must be
// the Capture the engine was built with.
func NewSplitView(engine *layout.Engine, capture *MouseCapture, views []View, opts SplitOptions) *SplitView {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if capture == nil {
		capture = NewMouseCapture()
	}
	s := &SplitView{
		engine:  engine,
		capture: capture,
		focus:   &FocusManager{},
		opts:    opts,
	}
	s.panels = s.buildPanels(views)
	s.refresh()
	s.focus.SetOrder(s.FocusOrder())
	return s
}

func (s *SplitView) buildPanels(views []View) []Panel {
	children := s.engine.Children()
	cls := layout.Classify(children)
	panels := make([]Panel, 0, len(cls.PanelChild))
	for decl, ci := range cls.PanelChild {
		ch := children[ci]
		title := ch.Title
		if title == "" {
			title = ch.ID
		}
		var v View
		if decl < len(views) && views[decl] != nil {
			v = views[decl]
		} else {
			v = NewTextView("")
		}
		panels = append(panels, Panel{ID: ch.ID, Title: title, Decl: decl, View: v})
	}
	return panels
}

// SetChildren replaces the hosted engine's children and the panels built on
// them. views holds one View per panel in declaration order, as for
// NewSplitView. Views carried over from the old panels keep running; new
// ones are started and dropped ones closed. The engine keeps its sizing
// when the panel count is unchanged.
func (s *SplitView) SetChildren(children []layout.ChildDescriptor, views []View) tea.Cmd {
	s.engine.ReleaseSeparator()
	s.engine.CancelDrag()
	s.reordering = false
	s.lastPress = separatorPress{}

	old := make(map[View]bool, len(s.panels))
	for _, p := range s.panels {
		old[p.View] = true
	}
	s.engine.SetChildren(children)
	s.panels = s.buildPanels(views)

	var cmds []tea.Cmd
	for _, p := range s.panels {
		if old[p.View] {
			delete(old, p.View)
			continue
		}
		cmds = append(cmds, p.View.Init())
	}
	for v := range old {
		if c, ok := v.(Closer); ok {
			if err := c.Close(); err != nil {
				log.Printf("close panel view: %v", err)
			}
		}
	}
	s.focus.SetOrder(s.FocusOrder())
	return tea.Batch(append(cmds, s.after())...)
}

// Engine returns the hosted engine.
func (s *SplitView) Engine() *layout.Engine { return s.engine }

// Focus returns the focus manager. Its order follows the display order.
func (s *SplitView) Focus() *FocusManager { return s.focus }

// Init starts every panel's view.
func (s *SplitView) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(s.panels))
	for _, p := range s.panels {
		cmds = append(cmds, p.View.Init())
	}
	return tea.Batch(cmds...)
}

// Panels implements Layout.
func (s *SplitView) Panels() []Panel {
	out := make([]Panel, 0, len(s.panels))
	for _, decl := range s.engine.Order() {
		out = append(out, s.panels[decl])
	}
	return out
}

// FocusOrder implements Layout. Collapsed panels stay focusable so they can
// be expanded from the keyboard.
func (s *SplitView) FocusOrder() []string {
	order := s.engine.Order()
	ids := make([]string, 0, len(order))
	for _, decl := range order {
		ids = append(ids, s.panels[decl].ID)
	}
	if s.engine.Options().Reversed {
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}
	return ids
}

// Panel returns the panel with the given ID.
func (s *SplitView) Panel(id string) (Panel, bool) {
	for _, p := range s.panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

// FocusedDecl returns the declaration index of the focused panel.
func (s *SplitView) FocusedDecl() (int, bool) {
	for _, p := range s.panels {
		if p.ID == s.focus.Current {
			return p.Decl, true
		}
	}
	return 0, false
}

// Dragging reports whether a separator drag is in progress.
func (s *SplitView) Dragging() bool { return s.engine.Session() != nil }

// Reordering reports whether a title-bar drag is in progress.
func (s *SplitView) Reordering() bool { return s.reordering }

// Segments returns the current cell segments in display sequence.
func (s *SplitView) Segments() []layout.Segment { return s.segs }

// SetSize sets the cells available to the split and resizes panel views.
func (s *SplitView) SetSize(width, height int) tea.Cmd {
	s.width, s.height = max(width, 0), max(height, 0)
	s.engine.SetBounds(layout.Rect{Width: float64(s.width), Height: float64(s.height)})
	return s.refresh()
}

func (s *SplitView) extent() int {
	if s.engine.Options().Axis == layout.Vertical {
		return s.height
	}
	return s.width
}

// along returns the mouse coordinate on the layout axis and across it.
func (s *SplitView) along(msg tea.MouseMsg) (int, int) {
	if s.engine.Options().Axis == layout.Vertical {
		return msg.Y, msg.X
	}
	return msg.X, msg.Y
}

// refresh recomputes segments and panel bounds. Views whose content area
// changed are told their new size.
func (s *SplitView) refresh() tea.Cmd {
	s.proj = s.engine.Project()
	s.segs = s.proj.Segments(s.extent())
	vertical := s.proj.Axis == layout.Vertical

	var cmds []tea.Cmd
	for _, seg := range s.segs {
		if seg.Role != layout.RolePanel {
			continue
		}
		p := &s.panels[seg.Panel]
		b := Bounds{X: seg.Start, W: seg.Size, H: s.height}
		if vertical {
			b = Bounds{Y: seg.Start, W: s.width, H: seg.Size}
		}
		if b == p.Bounds {
			continue
		}
		p.Bounds = b
		if s.engine.IsCollapsed(p.Decl) {
			continue
		}
		if sz, ok := p.View.(Sizer); ok {
			cb := p.ContentBounds()
			cmds = append(cmds, sz.SetSize(cb.W, cb.H))
		}
	}
	return tea.Batch(cmds...)
}

// after runs once the engine state may have changed: it relayouts and
// flushes pending capture mode switches.
func (s *SplitView) after() tea.Cmd {
	return tea.Batch(s.refresh(), s.capture.Flush())
}

// Update routes a message: mouse events drive the engine, keys go to the
// focused panel, PanelMsg values go to the panel they name.
func (s *SplitView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return s.handleMouse(msg)
	case tea.KeyMsg:
		decl, ok := s.FocusedDecl()
		if !ok {
			return nil
		}
		return s.updatePanel(decl, msg)
	case PanelMsg:
		for _, p := range s.panels {
			if p.ID == msg.PanelID() {
				return s.updatePanel(p.Decl, msg)
			}
		}
	}
	return nil
}

func (s *SplitView) updatePanel(decl int, msg tea.Msg) tea.Cmd {
	v, cmd := s.panels[decl].View.Update(msg)
	s.panels[decl].View = v
	return cmd
}

func (s *SplitView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return s.press(msg)
		}
		if tea.MouseEvent(msg).IsWheel() {
			if seg, ok := s.segmentAt(msg); ok && seg.Role == layout.RolePanel {
				return s.updatePanel(seg.Panel, msg)
			}
		}
	case tea.MouseActionMotion:
		return s.motion(msg)
	case tea.MouseActionRelease:
		return s.release(msg)
	}
	return nil
}

func (s *SplitView) segmentAt(msg tea.MouseMsg) (layout.Segment, bool) {
	if msg.X < 0 || msg.Y < 0 || msg.X >= s.width || msg.Y >= s.height {
		return layout.Segment{}, false
	}
	cell, _ := s.along(msg)
	return layout.SegmentAt(s.segs, cell)
}

func (s *SplitView) press(msg tea.MouseMsg) tea.Cmd {
	seg, ok := s.segmentAt(msg)
	if !ok {
		return nil
	}
	switch seg.Role {
	case layout.RoleSeparator:
		return s.pressSeparator(seg.Separator)
	case layout.RolePanel:
		p := s.panels[seg.Panel]
		s.focus.SetFocus(p.ID)
		if !s.onTitle(p, msg) {
			return nil
		}
		if msg.X-p.Bounds.X < markerWidth {
			s.engine.Toggle(p.Decl)
			return s.after()
		}
		s.engine.StartDrag(p.Decl)
		s.reordering = true
		return s.after()
	}
	return nil
}

func (s *SplitView) onTitle(p Panel, msg tea.MouseMsg) bool {
	return msg.Y == p.Bounds.Y && p.Bounds.H > 0
}

func (s *SplitView) pressSeparator(index int) tea.Cmd {
	if index < 0 {
		return nil
	}
	now := s.opts.Now()
	if s.lastPress.ok && s.lastPress.index == index && now.Sub(s.lastPress.at) <= doubleClickWindow {
		s.lastPress = separatorPress{}
		s.engine.ReleaseSeparator()
		s.engine.DoubleClickSeparator(index, s.doubleClickTarget())
		return s.after()
	}
	s.lastPress = separatorPress{index: index, at: now, ok: true}
	s.engine.PressSeparator(index)
	return s.after()
}

func (s *SplitView) doubleClickTarget() float64 {
	b := s.engine.Bounds()
	a := s.engine.Options().Axis
	if s.opts.DoubleClickPosition > 0 {
		return b.Origin(a) + s.opts.DoubleClickPosition
	}
	return b.Origin(a) + b.Extent(a)/2
}

func (s *SplitView) motion(msg tea.MouseMsg) tea.Cmd {
	if s.engine.Session() != nil {
		if s.engine.MoveSeparator(layout.Point{X: float64(msg.X), Y: float64(msg.Y)}) {
			return s.after()
		}
		return nil
	}
	if s.reordering {
		if seg, ok := s.segmentAt(msg); ok && seg.Role == layout.RolePanel {
			if over, has := s.engine.DragTarget(); !has || over != seg.Panel {
				s.engine.DragOver(seg.Panel)
				return s.after()
			}
		}
	}
	return nil
}

func (s *SplitView) release(msg tea.MouseMsg) tea.Cmd {
	if s.engine.Session() != nil {
		s.engine.ReleaseSeparator()
		return s.after()
	}
	if !s.reordering {
		return nil
	}
	if seg, ok := s.segmentAt(msg); ok && seg.Role == layout.RolePanel {
		s.engine.DragOver(seg.Panel)
	}
	s.reordering = false
	if s.engine.EndDrag() {
		s.focus.SetOrder(s.FocusOrder())
	}
	return s.after()
}

// ToggleFocused collapses or expands the focused panel.
func (s *SplitView) ToggleFocused() tea.Cmd {
	decl, ok := s.FocusedDecl()
	if !ok {
		return nil
	}
	s.engine.Toggle(decl)
	return s.after()
}

// MoveFocused moves the focused panel delta slots on screen (negative is
// left or up).
func (s *SplitView) MoveFocused(delta int) tea.Cmd {
	decl, ok := s.FocusedDecl()
	if !ok {
		return nil
	}
	if s.engine.Options().Reversed {
		delta = -delta
	}
	if !s.engine.MovePanel(decl, delta) {
		return nil
	}
	s.focus.SetOrder(s.FocusOrder())
	return s.after()
}

// focusedSeparator returns the separator following the focused panel's
// display slot, or the one before it for the last panel.
func (s *SplitView) focusedSeparator() (int, bool) {
	decl, ok := s.FocusedDecl()
	n := s.engine.PanelCount()
	if !ok || n < 2 {
		return 0, false
	}
	return min(s.engine.Order().Position(decl), n-2), true
}

// ResetSeparator moves the separator next to the focused panel the way a
// double click does.
func (s *SplitView) ResetSeparator() tea.Cmd {
	idx, ok := s.focusedSeparator()
	if !ok {
		return nil
	}
	s.engine.DoubleClickSeparator(idx, s.doubleClickTarget())
	return s.after()
}

// NudgeSeparator moves the separator next to the focused panel by delta
// cells on screen.
func (s *SplitView) NudgeSeparator(delta int) tea.Cmd {
	idx, ok := s.focusedSeparator()
	if !ok {
		return nil
	}
	s.engine.NudgeSeparator(idx, delta)
	return s.after()
}

// Close closes every panel view that holds resources.
func (s *SplitView) Close() error {
	var first error
	for _, p := range s.panels {
		if c, ok := p.View.(Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// View renders the split as exactly height lines of width cells.
func (s *SplitView) View() string {
	if s.width <= 0 || s.height <= 0 {
		return ""
	}
	vertical := s.proj.Axis == layout.Vertical
	blocks := make([]string, 0, len(s.segs))
	for _, seg := range s.segs {
		if seg.Size <= 0 {
			continue
		}
		w, h := seg.Size, s.height
		if vertical {
			w, h = s.width, seg.Size
		}
		var lines []string
		cs := s.proj.Children[seg.Child]
		switch seg.Role {
		case layout.RolePanel:
			lines = s.renderPanel(s.panels[seg.Panel], cs.Panel, w, h)
		case layout.RoleSeparator:
			lines = renderSeparator(cs.Separator, vertical, w, h)
		default:
			lines = textutil.FitBlock("", w, h)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	if vertical {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (s *SplitView) renderPanel(p Panel, ps layout.PanelStyle, w, h int) []string {
	marker := "[-]"
	if ps.Collapsed {
		marker = "[+]"
	}
	titleStyle := Styles.Title
	switch {
	case ps.DragSource:
		titleStyle = Styles.TitleSource
	case ps.DragTarget:
		titleStyle = Styles.TitleTarget
	case p.ID == s.focus.Current:
		titleStyle = Styles.TitleFocused
	}
	title := titleStyle.Render(textutil.PadRightVisual(marker+" "+p.Title, w))

	var body []string
	switch {
	case ps.Collapsed:
		body = make([]string, max(h-1, 0))
		for i := range body {
			body[i] = Styles.Collapsed.Render(textutil.PadRightVisual("", w))
		}
	default:
		body = textutil.FitBlock(p.View.View(), w, h-1)
	}

	lines := append([]string{title}, body...)
	if s.opts.Mockup {
		tint := MockupStyle(ps.DisplayOrder)
		for i, l := range lines {
			lines[i] = tint.Render(l)
		}
	}
	return lines
}

func renderSeparator(ss layout.SeparatorStyle, vertical bool, w, h int) []string {
	style := Styles.Separator
	switch {
	case ss.Disabled:
		style = Styles.SeparatorDisabled
	case ss.Active:
		style = Styles.SeparatorActive
	case ss.Dragging:
		style = Styles.SeparatorDragging
	}
	glyph := "│"
	if vertical {
		glyph = "─"
	}
	if ss.Disabled && !vertical {
		glyph = "┊"
	} else if ss.Disabled {
		glyph = "┈"
	}
	line := style.Render(strings.Repeat(glyph, w))
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return lines
}
