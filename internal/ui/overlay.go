package ui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Overlay is a popup drawn over the split, with a dismiss key.
type Overlay struct {
	Title   string
	View    View
	Dismiss string // Key that dismisses (e.g. "esc")
}

// IsDismissKey returns true if the given key string should dismiss this overlay.
func (o *Overlay) IsDismissKey(key string) bool {
	return key == o.Dismiss
}

// OverlayStack manages a stack of overlays (topmost receives input first).
type OverlayStack struct {
	Stack []Overlay
}

// Push adds an overlay to the top of the stack.
func (s *OverlayStack) Push(o Overlay) {
	s.Stack = append(s.Stack, o)
}

// Pop removes and returns the top overlay.
func (s *OverlayStack) Pop() (Overlay, bool) {
	o, ok := s.Peek()
	if ok {
		s.Stack = s.Stack[:len(s.Stack)-1]
	}
	return o, ok
}

// Peek returns the top overlay without removing it.
func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of overlays in the stack.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// HandleKey gives msg to the top overlay: its dismiss key pops it, anything
// else goes to its View. handled is false when the stack is empty.
func (s *OverlayStack) HandleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := &s.Stack[len(s.Stack)-1]
	if top.IsDismissKey(msg.String()) {
		s.Pop()
		return nil, true
	}
	newView, cmd := top.View.Update(msg)
	top.View = newView
	return cmd, true
}

// Render draws the top overlay boxed and centered in width x height cells.
func (s *OverlayStack) Render(width, height int) (string, bool) {
	o, ok := s.Peek()
	if !ok {
		return "", false
	}
	body := o.View.View()
	if o.Title != "" {
		body = Styles.Title.Render(o.Title) + "\n\n" + body
	}
	body += "\n\n" + Styles.Hint.Render(o.Dismiss+": close")
	box := Styles.Overlay.Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box), true
}

// bindingsHelp lists every binding in reg, one per line, sorted.
func bindingsHelp(reg *KeybindRegistry) string {
	seqs := make([]string, 0, len(reg.bindings))
	width := 0
	for seq, cmd := range reg.bindings {
		if cmd == nil {
			continue
		}
		seqs = append(seqs, seq)
		width = max(width, lipgloss.Width(seq))
	}
	sort.Strings(seqs)
	lines := make([]string, 0, len(seqs))
	for _, seq := range seqs {
		desc := reg.descriptions[seq]
		key := lipgloss.NewStyle().Width(width).Foreground(lipgloss.Color(ColorHighlight)).Render(seq)
		lines = append(lines, key+"  "+desc)
	}
	lines = append(lines, "",
		"mouse: drag a separator to resize, double-click it to reset",
		"       drag a title onto a panel to swap, click [-] to collapse")
	return strings.Join(lines, "\n")
}
